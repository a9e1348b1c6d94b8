package sitepub

import (
	"context"

	markdowncmd "github.com/goliatone/go-sitepub/internal/commands/markdown"
	notifycmd "github.com/goliatone/go-sitepub/internal/commands/notify"
	sitemapcmd "github.com/goliatone/go-sitepub/internal/commands/sitemap"
	"github.com/goliatone/go-sitepub/internal/di"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

// SitemapService exports the sitemap service contract.
type SitemapService = interfaces.SitemapService

// MarkdownPipeline exports the Markdown pipeline contract.
type MarkdownPipeline = interfaces.MarkdownPipeline

// Notifier exports the search-engine notifier contract.
type Notifier = interfaces.Notifier

// NotifyReport exports the notifier run summary.
type NotifyReport = interfaces.NotifyReport

// ConvertCommand exports the Markdown conversion command message.
type ConvertCommand = markdowncmd.ConvertCommand

// BuildSitemapCommand exports the full sitemap build command message.
type BuildSitemapCommand = sitemapcmd.BuildCommand

// UpdateSitemapCommand exports the reconcile-only command message.
type UpdateSitemapCommand = sitemapcmd.UpdateCommand

// PushCommand exports the notifier push command message.
type PushCommand = notifycmd.PushCommand

// Module represents the top level sitepub runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a sitepub module using the provided configuration and optional DI overrides.
func New(cfg Config, opts ...di.Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// Config returns the validated configuration the module was built from.
func (m *Module) Config() Config {
	return m.container.Config
}

// LoggerProvider returns the configured logger provider.
func (m *Module) LoggerProvider() interfaces.LoggerProvider {
	return m.container.LoggerProvider()
}

// Sitemap returns the sitemap service.
func (m *Module) Sitemap() SitemapService {
	return m.container.SitemapService()
}

// Markdown returns the Markdown pipeline.
func (m *Module) Markdown() MarkdownPipeline {
	return m.container.MarkdownPipeline()
}

// Convert runs the Markdown pipeline through its command handler.
func (m *Module) Convert(ctx context.Context, cmd ConvertCommand) (*interfaces.ConvertResult, error) {
	handler := m.container.ConvertHandler()
	if err := handler.Execute(ctx, cmd); err != nil {
		return nil, err
	}
	return handler.Result(), nil
}

// BuildSitemap runs a full sitemap build through its command handler.
func (m *Module) BuildSitemap(ctx context.Context, cmd BuildSitemapCommand) (*interfaces.SitemapResult, error) {
	handler := m.container.BuildSitemapHandler()
	if err := handler.Execute(ctx, cmd); err != nil {
		return nil, err
	}
	return handler.Result(), nil
}

// UpdateSitemap reconciles an existing live list through its command handler.
func (m *Module) UpdateSitemap(ctx context.Context, cmd UpdateSitemapCommand) (*interfaces.SitemapResult, error) {
	handler := m.container.UpdateSitemapHandler()
	if err := handler.Execute(ctx, cmd); err != nil {
		return nil, err
	}
	return handler.Result(), nil
}

// Push announces the URL lists named by cmd through notifier.
func (m *Module) Push(ctx context.Context, notifier Notifier, cmd PushCommand) (*NotifyReport, error) {
	handler := m.container.PushHandler(notifier)
	if err := handler.Execute(ctx, cmd); err != nil {
		return handler.Report(), err
	}
	return handler.Report(), nil
}

// BaiduNotifier builds a Baidu push notifier for token.
func (m *Module) BaiduNotifier(token string) (Notifier, error) {
	return m.container.BaiduNotifier(token)
}

// IndexNowNotifier builds an IndexNow notifier for key.
func (m *Module) IndexNowNotifier(key string) (Notifier, error) {
	return m.container.IndexNowNotifier(key)
}

// GoogleNotifier builds a Google Indexing API notifier from a service-account key file.
func (m *Module) GoogleNotifier(ctx context.Context, keyPath string) (Notifier, error) {
	return m.container.GoogleNotifier(ctx, keyPath)
}
