package interfaces

import "context"

// MarkdownPipeline converts a notes directory into publishable Markdown.
type MarkdownPipeline interface {
	Run(ctx context.Context, notesDir, targetDir string) (*ConvertResult, error)
}

// ConvertResult summarises a pipeline run. Per-document failures are listed
// in Errors keyed by source path; they never abort the batch.
type ConvertResult struct {
	Written []string
	Skipped []string
	Errors  map[string]error
}

// Failed returns the number of documents that errored.
func (r *ConvertResult) Failed() int {
	if r == nil {
		return 0
	}
	return len(r.Errors)
}
