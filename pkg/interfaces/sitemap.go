package interfaces

import (
	"context"
	"time"
)

// SitemapService maintains the URL inventory files for a static site: the
// historical "all known" list, the live sitemap (XML and text), the derived
// dead list, and robots.txt.
type SitemapService interface {
	// Build collects live post URLs from a posts directory and rewrites every
	// inventory artifact.
	Build(ctx context.Context, req SitemapBuildRequest) (*SitemapResult, error)
	// Update reconciles an existing live URL list against the historical
	// inventory without scanning posts.
	Update(ctx context.Context, req SitemapUpdateRequest) (*SitemapResult, error)
}

// SitemapBuildRequest names the files touched by a full sitemap build.
type SitemapBuildRequest struct {
	AllPath    string
	PostsDir   string
	XMLPath    string
	TextPath   string
	DeadPath   string
	RobotsPath string
	// Site overrides dominant-site detection when set (host or scheme://host).
	Site string
}

// SitemapUpdateRequest names the files touched by a reconcile-only run.
type SitemapUpdateRequest struct {
	AllPath    string
	LivePath   string
	DeadPath   string
	RobotsPath string
	Site       string
}

// SitemapResult summarises a sitemap run.
type SitemapResult struct {
	Site        string
	Entries     int
	AllCount    int
	LiveCount   int
	DeadCount   int
	Skipped     []string
	GeneratedAt time.Time
}
