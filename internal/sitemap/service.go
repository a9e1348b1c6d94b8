package sitemap

import (
	"context"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-sitepub/internal/logging"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

// Config captures site and rendering settings for the sitemap service.
type Config struct {
	// Host forces the site instead of deriving the dominant one from inputs.
	Host           string
	Scheme         string
	PostPath       string
	WellKnownFiles []string
	XML            XMLOptions
}

// Option mutates the service during construction.
type Option func(*Service)

// WithWriter overrides where artifacts are persisted.
func WithWriter(writer ArtifactWriter) Option {
	return func(s *Service) {
		if writer != nil {
			s.writer = writer
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithClock overrides the time source used for result timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// Service implements interfaces.SitemapService on local files.
type Service struct {
	cfg    Config
	writer ArtifactWriter
	logger interfaces.Logger
	now    func() time.Time
}

var _ interfaces.SitemapService = (*Service)(nil)

// NewService constructs a sitemap service.
func NewService(cfg Config, opts ...Option) *Service {
	svc := &Service{
		cfg:    cfg,
		writer: NewFileWriter(),
		logger: logging.NoOp(),
		now:    time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(svc)
		}
	}
	return svc
}

// Build scans the posts directory and rewrites sitemap.xml, sitemap.txt, the
// all/dead lists and robots.txt. sitemap.txt holds post URLs only; the
// well-known site files are added to the live set afterwards.
func (s *Service) Build(ctx context.Context, req interfaces.SitemapBuildRequest) (*interfaces.SitemapResult, error) {
	allKnown, err := ReadOptionalURLList(req.AllPath)
	if err != nil {
		return nil, err
	}

	site, err := s.resolveSite(req.Site, allKnown)
	if err != nil {
		return nil, err
	}
	logger := logging.WithFields(s.logger, map[string]any{"site": site.String()})

	collection, err := CollectPosts(ctx, os.DirFS(req.PostsDir), site, PostOptions{
		PostPath:        s.cfg.PostPath,
		TimestampLayout: s.cfg.XML.TimestampLayout,
	}, logger)
	if err != nil {
		return nil, err
	}

	xmlDoc, err := RenderXML(collection.Entries, s.cfg.XML)
	if err != nil {
		return nil, err
	}
	live := collection.URLs()
	if err := s.write(ctx, req.XMLPath, xmlDoc, CategorySitemap); err != nil {
		return nil, err
	}
	if err := s.write(ctx, req.TextPath, FormatURLList(live), CategoryURLList); err != nil {
		return nil, err
	}

	rec := Reconcile(allKnown, live, site, s.cfg.WellKnownFiles)
	if err := s.persist(ctx, rec, req.AllPath, req.DeadPath, req.RobotsPath); err != nil {
		return nil, err
	}

	result := s.result(site, rec)
	result.Entries = len(collection.Entries)
	result.Skipped = collection.Skipped
	logger.Info("sitemap.build.completed",
		"entries", result.Entries,
		"skipped", len(result.Skipped),
		"all_count", result.AllCount,
		"live_count", result.LiveCount,
		"dead_count", result.DeadCount,
	)
	return result, nil
}

// Update reconciles an existing live list against the inventory and rewrites
// the all/dead lists and robots.txt. The live list itself is left untouched.
func (s *Service) Update(ctx context.Context, req interfaces.SitemapUpdateRequest) (*interfaces.SitemapResult, error) {
	allKnown, err := ReadOptionalURLList(req.AllPath)
	if err != nil {
		return nil, err
	}
	live, err := ReadURLList(req.LivePath)
	if err != nil {
		return nil, err
	}

	site, err := s.resolveSite(req.Site, live)
	if err != nil {
		return nil, err
	}
	logger := logging.WithFields(s.logger, map[string]any{"site": site.String()})

	rec := Reconcile(allKnown, live, site, s.cfg.WellKnownFiles)
	if err := s.persist(ctx, rec, req.AllPath, req.DeadPath, req.RobotsPath); err != nil {
		return nil, err
	}

	result := s.result(site, rec)
	result.Entries = live.Len()
	logger.Info("sitemap.update.completed",
		"all_count", result.AllCount,
		"live_count", result.LiveCount,
		"dead_count", result.DeadCount,
	)
	return result, nil
}

func (s *Service) persist(ctx context.Context, rec Reconciliation, allPath, deadPath, robotsPath string) error {
	if err := s.write(ctx, allPath, FormatURLList(rec.All), CategoryURLList); err != nil {
		return err
	}
	if err := s.write(ctx, deadPath, FormatURLList(rec.Dead), CategoryURLList); err != nil {
		return err
	}
	return s.write(ctx, robotsPath, RenderRobots(rec.Live, rec.Dead), CategoryRobots)
}

func (s *Service) write(ctx context.Context, path string, content []byte, category ArtifactCategory) error {
	if err := s.writer.WriteFile(ctx, Artifact{Path: path, Content: content, Category: category}); err != nil {
		return err
	}
	s.logger.Debug("sitemap.artifact.written", "path", path, "category", string(category), "bytes", len(content))
	return nil
}

// resolveSite prefers the request override, then the configured host, then
// the dominant host of urls.
func (s *Service) resolveSite(override string, urls URLSet) (Site, error) {
	for _, candidate := range []string{override, s.cfg.Host} {
		if strings.TrimSpace(candidate) == "" {
			continue
		}
		return ParseSite(candidate, s.cfg.Scheme)
	}
	site, ok := DominantSite(urls.Sorted())
	if !ok {
		return Site{}, ErrNoDominantSite
	}
	return site, nil
}

func (s *Service) result(site Site, rec Reconciliation) *interfaces.SitemapResult {
	return &interfaces.SitemapResult{
		Site:        site.String(),
		AllCount:    rec.All.Len(),
		LiveCount:   rec.Live.Len(),
		DeadCount:   rec.Dead.Len(),
		GeneratedAt: s.now(),
	}
}

