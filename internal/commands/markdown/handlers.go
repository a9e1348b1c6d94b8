package markdowncmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/goliatone/go-sitepub/internal/commands"
	"github.com/goliatone/go-sitepub/internal/logging"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
	command "github.com/goliatone/go-command"
)

const convertOperation = "markdown.convert"

// ErrPipelineRequired is returned when no pipeline is wired into the handler.
var ErrPipelineRequired = errors.New("markdown command: pipeline is required")

var _ command.Commander[ConvertCommand] = (*ConvertHandler)(nil)

// ConvertHandler runs the Markdown pipeline through the shared command handler foundation.
type ConvertHandler struct {
	inner  *commands.Handler[ConvertCommand]
	result *interfaces.ConvertResult
}

// NewConvertHandler creates a handler bound to the supplied pipeline.
func NewConvertHandler(pipeline interfaces.MarkdownPipeline, logger interfaces.Logger, opts ...commands.HandlerOption[ConvertCommand]) *ConvertHandler {
	baseLogger := commands.EnsureLogger(logger)
	h := &ConvertHandler{}

	exec := func(ctx context.Context, msg ConvertCommand) error {
		if pipeline == nil {
			return ErrPipelineRequired
		}
		result, err := pipeline.Run(ctx, msg.NotesDir, msg.TargetDir)
		if err != nil {
			return err
		}
		h.result = result

		summary := logging.WithFields(baseLogger, map[string]any{
			"written_count": len(result.Written),
			"skipped_count": len(result.Skipped),
			"error_count":   result.Failed(),
		})
		for path, docErr := range result.Errors {
			logging.WithFields(baseLogger, map[string]any{"path": path}).
				Error("markdown.command.convert.document_failed", "error", docErr)
		}
		summary.Info("markdown.command.convert.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[ConvertCommand]{
		commands.WithLogger[ConvertCommand](baseLogger),
		commands.WithOperation[ConvertCommand](convertOperation),
		commands.WithMessageFields(func(msg ConvertCommand) map[string]any {
			return map[string]any{
				"notes_dir":  msg.NotesDir,
				"target_dir": msg.TargetDir,
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ConvertCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)
	h.inner = commands.NewHandler(exec, handlerOpts...)
	return h
}

// Execute satisfies command.Commander[ConvertCommand].
func (h *ConvertHandler) Execute(ctx context.Context, msg ConvertCommand) error {
	return h.inner.Execute(ctx, msg)
}

// Result returns the summary of the last successful run.
func (h *ConvertHandler) Result() *interfaces.ConvertResult {
	return h.result
}

// Summary formats a one-line description of result for terminal output.
func Summary(result *interfaces.ConvertResult) string {
	if result == nil {
		return "no documents processed"
	}
	return fmt.Sprintf("written=%d skipped=%d failed=%d", len(result.Written), len(result.Skipped), result.Failed())
}
