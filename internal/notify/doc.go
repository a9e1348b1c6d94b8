// Package notify announces new, updated and removed URLs to search-engine
// indexing endpoints (Baidu push, IndexNow, Google Indexing API). Calls are
// made once; failures are logged and reported, never retried.
package notify
