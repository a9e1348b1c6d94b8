package di

import (
	"context"
	"fmt"
	"strings"

	markdowncmd "github.com/goliatone/go-sitepub/internal/commands/markdown"
	notifycmd "github.com/goliatone/go-sitepub/internal/commands/notify"
	sitemapcmd "github.com/goliatone/go-sitepub/internal/commands/sitemap"

	"github.com/goliatone/go-sitepub/internal/commands"
	"github.com/goliatone/go-sitepub/internal/logging"
	"github.com/goliatone/go-sitepub/internal/logging/console"
	"github.com/goliatone/go-sitepub/internal/logging/gologger"
	"github.com/goliatone/go-sitepub/internal/markdown"
	"github.com/goliatone/go-sitepub/internal/notify"
	"github.com/goliatone/go-sitepub/internal/runtimeconfig"
	"github.com/goliatone/go-sitepub/internal/sitemap"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

// Container wires the sitepub services from a runtime configuration.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	httpClient     interfaces.HTTPDoer
	writer         sitemap.ArtifactWriter

	sitemapService   interfaces.SitemapService
	markdownPipeline interfaces.MarkdownPipeline
}

// Option mutates the container during construction.
type Option func(*Container)

// WithLoggerProvider overrides the provider built from the logging config.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithHTTPClient injects the client used by the Baidu and IndexNow
// notifiers, and by the Google notifier in place of its OAuth2 client.
func WithHTTPClient(client interfaces.HTTPDoer) Option {
	return func(c *Container) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithArtifactWriter overrides where sitemap artifacts are written.
func WithArtifactWriter(writer sitemap.ArtifactWriter) Option {
	return func(c *Container) {
		if writer != nil {
			c.writer = writer
		}
	}
}

// WithSitemapService replaces the file-backed sitemap service.
func WithSitemapService(svc interfaces.SitemapService) Option {
	return func(c *Container) {
		if svc != nil {
			c.sitemapService = svc
		}
	}
}

// WithMarkdownPipeline replaces the configured Markdown pipeline.
func WithMarkdownPipeline(pipeline interfaces.MarkdownPipeline) Option {
	return func(c *Container) {
		if pipeline != nil {
			c.markdownPipeline = pipeline
		}
	}
}

// NewContainer validates cfg and builds the services it describes.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if c.loggerProvider == nil {
		provider, err := NewLoggerProvider(cfg.Logging)
		if err != nil {
			return nil, err
		}
		c.loggerProvider = provider
	}

	if c.sitemapService == nil {
		sitemapOpts := []sitemap.Option{
			sitemap.WithLogger(logging.SitemapLogger(c.loggerProvider)),
		}
		if c.writer != nil {
			sitemapOpts = append(sitemapOpts, sitemap.WithWriter(c.writer))
		}
		c.sitemapService = sitemap.NewService(sitemap.Config{
			Host:           cfg.Site.Host,
			Scheme:         cfg.Site.Scheme,
			PostPath:       cfg.Site.PostPath,
			WellKnownFiles: cfg.Site.WellKnownFiles,
			XML: sitemap.XMLOptions{
				ChangeFreq:      cfg.Sitemap.ChangeFreq,
				Priority:        cfg.Sitemap.Priority,
				TimestampLayout: cfg.Sitemap.TimestampLayout,
				LastModLayout:   cfg.Sitemap.LastModLayout,
			},
		}, sitemapOpts...)
	}

	if c.markdownPipeline == nil {
		pipeline, err := markdown.NewPipeline(markdown.PipelineConfig{
			Pattern:         cfg.Markdown.Pattern,
			Recursive:       cfg.Markdown.Recursive,
			TimestampLayout: cfg.Markdown.TimestampLayout,
			Filters:         cfg.Markdown.Filters,
			FigureDir:       cfg.Markdown.FigureDir,
			FigureBaseURL:   cfg.Markdown.FigureBaseURL,
			PostPath:        cfg.Site.PostPath,
		}, markdown.WithPipelineLogger(logging.MarkdownLogger(c.loggerProvider)))
		if err != nil {
			return nil, err
		}
		c.markdownPipeline = pipeline
	}

	logging.ModuleLogger(c.loggerProvider, "sitepub").Debug("container.configured",
		"logging_provider", cfg.Logging.Provider,
		"filters", strings.Join(cfg.Markdown.Filters, ","),
	)
	return c, nil
}

// NewLoggerProvider builds the provider named by cfg.Provider.
func NewLoggerProvider(cfg runtimeconfig.LoggingConfig) (interfaces.LoggerProvider, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "", "console":
		level, ok := console.ParseLevel(cfg.Level)
		if !ok {
			return nil, fmt.Errorf("%w: %q", runtimeconfig.ErrLoggingLevelInvalid, cfg.Level)
		}
		return console.NewProvider(console.Options{MinLevel: &level}), nil
	case "gologger":
		return gologger.NewProvider(gologger.Config{
			Level:     cfg.Level,
			Format:    cfg.Format,
			AddSource: cfg.AddSource,
			Focus:     cfg.Focus,
		})
	default:
		return nil, fmt.Errorf("%w: %q", runtimeconfig.ErrLoggingProviderUnknown, cfg.Provider)
	}
}

// LoggerProvider returns the configured logger provider.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// SitemapService returns the sitemap service.
func (c *Container) SitemapService() interfaces.SitemapService {
	return c.sitemapService
}

// MarkdownPipeline returns the Markdown pipeline.
func (c *Container) MarkdownPipeline() interfaces.MarkdownPipeline {
	return c.markdownPipeline
}

func (c *Container) notifyOptions() []notify.Option {
	opts := []notify.Option{
		notify.WithLogger(logging.NotifyLogger(c.loggerProvider)),
		notify.WithTimeout(c.Config.Notify.Timeout),
	}
	if c.httpClient != nil {
		opts = append(opts, notify.WithHTTPClient(c.httpClient))
	}
	return opts
}

// BaiduNotifier builds a Baidu notifier for token.
func (c *Container) BaiduNotifier(token string) (interfaces.Notifier, error) {
	return notify.NewBaiduNotifier(notify.BaiduConfig{
		Endpoint: c.Config.Notify.Baidu.Endpoint,
		Token:    token,
	}, c.notifyOptions()...)
}

// IndexNowNotifier builds an IndexNow notifier for key.
func (c *Container) IndexNowNotifier(key string) (interfaces.Notifier, error) {
	return notify.NewIndexNowNotifier(notify.IndexNowConfig{
		Endpoint: c.Config.Notify.IndexNow.Endpoint,
		Key:      key,
	}, c.notifyOptions()...)
}

// GoogleNotifier builds a Google Indexing API notifier from the
// service-account key stored at keyPath.
func (c *Container) GoogleNotifier(ctx context.Context, keyPath string) (interfaces.Notifier, error) {
	credentials, err := notify.LoadCredentials(keyPath)
	if err != nil {
		return nil, err
	}
	return notify.NewGoogleNotifier(ctx, notify.GoogleConfig{
		Endpoint:          c.Config.Notify.Google.Endpoint,
		Scopes:            c.Config.Notify.Google.Scopes,
		RequestsPerMinute: c.Config.Notify.Google.RequestsPerMinute,
	}, credentials, c.notifyOptions()...)
}

// ConvertHandler returns a command handler bound to the Markdown pipeline.
func (c *Container) ConvertHandler() *markdowncmd.ConvertHandler {
	return markdowncmd.NewConvertHandler(
		c.markdownPipeline,
		commands.CommandLogger(c.loggerProvider, "markdown"),
		commands.WithTimeout[markdowncmd.ConvertCommand](c.Config.Commands.Timeout),
	)
}

// BuildSitemapHandler returns a command handler for full sitemap builds.
func (c *Container) BuildSitemapHandler() *sitemapcmd.BuildHandler {
	return sitemapcmd.NewBuildHandler(
		c.sitemapService,
		commands.CommandLogger(c.loggerProvider, "sitemap"),
		commands.WithTimeout[sitemapcmd.BuildCommand](c.Config.Commands.Timeout),
	)
}

// UpdateSitemapHandler returns a command handler for reconcile-only runs.
func (c *Container) UpdateSitemapHandler() *sitemapcmd.UpdateHandler {
	return sitemapcmd.NewUpdateHandler(
		c.sitemapService,
		commands.CommandLogger(c.loggerProvider, "sitemap"),
		commands.WithTimeout[sitemapcmd.UpdateCommand](c.Config.Commands.Timeout),
	)
}

// PushHandler returns a command handler announcing URL lists to notifier.
func (c *Container) PushHandler(notifier interfaces.Notifier) *notifycmd.PushHandler {
	return notifycmd.NewPushHandler(
		notifier,
		commands.CommandLogger(c.loggerProvider, "notify"),
		commands.WithTimeout[notifycmd.PushCommand](c.Config.Commands.Timeout),
	)
}
