package sitemapcmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-sitepub/internal/commands"
	"github.com/goliatone/go-sitepub/internal/logging"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const (
	buildOperation  = "sitemap.build"
	updateOperation = "sitemap.update"
)

// ErrServiceRequired is returned when no sitemap service is wired into a handler.
var ErrServiceRequired = errors.New("sitemap command: service is required")

var (
	_ command.Commander[BuildCommand]  = (*BuildHandler)(nil)
	_ command.Commander[UpdateCommand] = (*UpdateHandler)(nil)
)

// BuildHandler runs full sitemap builds via the shared command handler foundation.
type BuildHandler struct {
	inner  *commands.Handler[BuildCommand]
	result *interfaces.SitemapResult
}

// NewBuildHandler creates a handler bound to the supplied sitemap service.
func NewBuildHandler(service interfaces.SitemapService, logger interfaces.Logger, opts ...commands.HandlerOption[BuildCommand]) *BuildHandler {
	baseLogger := commands.EnsureLogger(logger)
	h := &BuildHandler{}

	exec := func(ctx context.Context, msg BuildCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		result, err := service.Build(ctx, interfaces.SitemapBuildRequest{
			AllPath:    msg.AllPath,
			PostsDir:   msg.PostsDir,
			XMLPath:    msg.XMLPath,
			TextPath:   msg.TextPath,
			DeadPath:   msg.DeadPath,
			RobotsPath: msg.RobotsPath,
			Site:       msg.Site,
		})
		if err != nil {
			return err
		}
		h.result = result
		logResult(baseLogger, result, "sitemap.command.build.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[BuildCommand]{
		commands.WithLogger[BuildCommand](baseLogger),
		commands.WithOperation[BuildCommand](buildOperation),
		commands.WithMessageFields(func(msg BuildCommand) map[string]any {
			fields := map[string]any{
				"posts_dir": msg.PostsDir,
				"xml_path":  msg.XMLPath,
			}
			if msg.Site != "" {
				fields["site"] = msg.Site
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[BuildCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[BuildCommand].
func (h *BuildHandler) Execute(ctx context.Context, msg BuildCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Result returns the summary of the last successful build.
func (h *BuildHandler) Result() *interfaces.SitemapResult {
	return h.result
}

// UpdateHandler runs reconcile-only updates via the shared command handler foundation.
type UpdateHandler struct {
	inner  *commands.Handler[UpdateCommand]
	result *interfaces.SitemapResult
}

// NewUpdateHandler creates a handler bound to the supplied sitemap service.
func NewUpdateHandler(service interfaces.SitemapService, logger interfaces.Logger, opts ...commands.HandlerOption[UpdateCommand]) *UpdateHandler {
	baseLogger := commands.EnsureLogger(logger)
	h := &UpdateHandler{}

	exec := func(ctx context.Context, msg UpdateCommand) error {
		if service == nil {
			return ErrServiceRequired
		}
		result, err := service.Update(ctx, interfaces.SitemapUpdateRequest{
			AllPath:    msg.AllPath,
			LivePath:   msg.LivePath,
			DeadPath:   msg.DeadPath,
			RobotsPath: msg.RobotsPath,
			Site:       msg.Site,
		})
		if err != nil {
			return err
		}
		h.result = result
		logResult(baseLogger, result, "sitemap.command.update.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[UpdateCommand]{
		commands.WithLogger[UpdateCommand](baseLogger),
		commands.WithOperation[UpdateCommand](updateOperation),
		commands.WithMessageFields(func(msg UpdateCommand) map[string]any {
			fields := map[string]any{
				"live_path": msg.LivePath,
			}
			if msg.Site != "" {
				fields["site"] = msg.Site
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[UpdateCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[UpdateCommand].
func (h *UpdateHandler) Execute(ctx context.Context, msg UpdateCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Result returns the summary of the last successful update.
func (h *UpdateHandler) Result() *interfaces.SitemapResult {
	return h.result
}

func logResult(logger interfaces.Logger, result *interfaces.SitemapResult, event string) {
	if result == nil {
		return
	}
	logging.WithFields(logger, map[string]any{
		"site":          result.Site,
		"entry_count":   result.Entries,
		"all_count":     result.AllCount,
		"live_count":    result.LiveCount,
		"dead_count":    result.DeadCount,
		"skipped_count": len(result.Skipped),
	}).Info(event)
}
