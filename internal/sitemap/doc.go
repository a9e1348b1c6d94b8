// Package sitemap maintains the URL inventory of a published site: the
// all/live/dead URL lists, sitemap.xml and robots.txt.
package sitemap
