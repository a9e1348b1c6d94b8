package markdown

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/goliatone/go-sitepub/internal/logging"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

// ErrOutputNameTaken reports two notes sharing an output file name.
var ErrOutputNameTaken = errors.New("markdown: output file name already written")

// PipelineConfig controls discovery, finalisation and filters.
type PipelineConfig struct {
	Pattern         string
	Recursive       bool
	TimestampLayout string
	Filters         []string
	FigureDir       string
	FigureBaseURL   string
	PostPath        string
}

// PipelineOption mutates the pipeline during construction.
type PipelineOption func(*Pipeline)

// WithPipelineLogger sets the pipeline logger.
func WithPipelineLogger(logger interfaces.Logger) PipelineOption {
	return func(p *Pipeline) {
		if logger != nil {
			p.logger = logger
		}
	}
}

// Pipeline converts a notes directory into publishable Markdown.
type Pipeline struct {
	cfg     PipelineConfig
	filters []Filter
	logger  interfaces.Logger
}

var _ interfaces.MarkdownPipeline = (*Pipeline)(nil)

// NewPipeline resolves the configured filter chain.
func NewPipeline(cfg PipelineConfig, opts ...PipelineOption) (*Pipeline, error) {
	filters, err := BuildFilters(cfg.Filters)
	if err != nil {
		return nil, err
	}
	p := &Pipeline{
		cfg:     cfg,
		filters: filters,
		logger:  logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p, nil
}

// Run converts every note under notesDir into targetDir/<file name>. Notes
// without front matter are skipped. Per-note failures are logged and
// collected in the result; only discovery failures abort the run.
func (p *Pipeline) Run(ctx context.Context, notesDir, targetDir string) (*interfaces.ConvertResult, error) {
	info, err := os.Stat(notesDir)
	if err != nil {
		return nil, fmt.Errorf("markdown pipeline: notes dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("markdown pipeline: notes dir %s is not a directory", notesDir)
	}

	loader := NewLoader(os.DirFS(notesDir), LoaderConfig{
		BasePath:  notesDir,
		Pattern:   p.cfg.Pattern,
		Recursive: p.cfg.Recursive,
	})
	sources, err := loader.LoadDirectory(ctx)
	if err != nil {
		return nil, err
	}

	result := &interfaces.ConvertResult{Errors: map[string]error{}}
	publishable := make([]*Document, 0, len(sources))
	for _, source := range sources {
		logger := logging.WithMarkdownContext(p.logger, source.Rel, "load")
		switch {
		case source.Err != nil:
			result.Errors[source.Path] = source.Err
			logger.Error("markdown.document.failed", "error", source.Err)
		case source.Meta.IsEmpty():
			result.Skipped = append(result.Skipped, source.Path)
			logger.Debug("markdown.document.skipped", "reason", ErrEmptyFrontMatter.Error())
		default:
			doc := source.Document
			publishable = append(publishable, &doc)
		}
	}

	env := FilterEnv{
		NotesDir:      notesDir,
		TargetDir:     targetDir,
		FigureDir:     p.cfg.FigureDir,
		FigureBaseURL: p.cfg.FigureBaseURL,
		PostPath:      p.cfg.PostPath,
		Links:         NewLinkIndex(publishable),
		Figures:       NewFigureNames(),
		Logger:        p.logger,
	}
	registry := NewRegistry()
	written := map[string]string{}

	for _, doc := range publishable {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		output := filepath.Join(targetDir, doc.Name())
		if err := p.convert(ctx, doc, registry, env, written, output); err != nil {
			result.Errors[doc.Path] = err
			logging.WithMarkdownContext(p.logger, doc.Rel, "convert").Error("markdown.document.failed", "error", err)
			continue
		}
		written[output] = doc.Path
		result.Written = append(result.Written, output)
	}

	p.logger.Info("markdown.pipeline.completed",
		"notes_dir", notesDir,
		"target_dir", targetDir,
		"written", len(result.Written),
		"skipped", len(result.Skipped),
		"failed", result.Failed(),
	)
	return result, nil
}

func (p *Pipeline) convert(ctx context.Context, doc *Document, registry *Registry, env FilterEnv, written map[string]string, output string) error {
	if owner, ok := written[output]; ok {
		return fmt.Errorf("%w: %s (from %s)", ErrOutputNameTaken, output, owner)
	}
	if err := Finalize(doc, registry, p.cfg.TimestampLayout); err != nil {
		return err
	}
	filterEnv := env
	filterEnv.Logger = logging.WithMarkdownContext(p.logger, doc.Rel, "filter")
	if err := applyFilters(ctx, p.filters, doc, filterEnv); err != nil {
		return err
	}
	rendered, err := RenderDocument(doc.Meta, doc.Body)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(output), 0o755); err != nil {
		return fmt.Errorf("ensure target dir: %w", err)
	}
	if err := os.WriteFile(output, rendered, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}
	return nil
}
