package notifycmd

import (
	"context"
	"errors"

	"github.com/goliatone/go-sitepub/internal/commands"
	"github.com/goliatone/go-sitepub/internal/logging"
	"github.com/goliatone/go-sitepub/internal/sitemap"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const pushOperation = "notify.push"

// ErrNotifierRequired is returned when no notifier is wired into the handler.
var ErrNotifierRequired = errors.New("notify command: notifier is required")

var _ command.Commander[PushCommand] = (*PushHandler)(nil)

// PushHandler reads URL lists from disk and hands them to a notifier.
// Provider rejections are logged and recorded in the report; only I/O and
// request preparation failures are returned.
type PushHandler struct {
	inner  *commands.Handler[PushCommand]
	report *interfaces.NotifyReport
}

// NewPushHandler creates a handler bound to the supplied notifier.
func NewPushHandler(notifier interfaces.Notifier, logger interfaces.Logger, opts ...commands.HandlerOption[PushCommand]) *PushHandler {
	baseLogger := commands.EnsureLogger(logger)
	h := &PushHandler{}

	exec := func(ctx context.Context, msg PushCommand) error {
		h.report = nil
		if notifier == nil {
			return ErrNotifierRequired
		}
		updated, err := sitemap.ReadURLList(msg.UpdatedPath)
		if err != nil {
			return err
		}
		req := interfaces.NotifyRequest{Updated: updated.Sorted()}
		if msg.RemovedPath != "" {
			removed, err := sitemap.ReadURLList(msg.RemovedPath)
			if err != nil {
				return err
			}
			req.Removed = removed.Sorted()
		}

		report, err := notifier.Notify(ctx, req)
		if report != nil {
			h.report = report
			entry := logging.WithProvider(baseLogger, notifier.Provider())
			logging.WithFields(entry, map[string]any{
				"sent_count":   report.Sent,
				"failed_count": report.Failed,
			}).Info("notify.command.push.completed")
		}
		return err
	}

	handlerOpts := []commands.HandlerOption[PushCommand]{
		commands.WithLogger[PushCommand](baseLogger),
		commands.WithOperation[PushCommand](pushOperation),
		commands.WithMessageFields(func(msg PushCommand) map[string]any {
			fields := map[string]any{"updated_path": msg.UpdatedPath}
			if msg.RemovedPath != "" {
				fields["removed_path"] = msg.RemovedPath
			}
			if notifier != nil {
				fields["provider"] = notifier.Provider()
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[PushCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[PushCommand].
func (h *PushHandler) Execute(ctx context.Context, msg PushCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Report returns the report of the last run.
func (h *PushHandler) Report() *interfaces.NotifyReport {
	return h.report
}
