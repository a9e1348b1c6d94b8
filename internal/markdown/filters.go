package markdown

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

// ErrUnknownFilter reports a filter name without an implementation.
var ErrUnknownFilter = errors.New("markdown: unknown filter")

// FilterEnv carries run-wide settings shared by every filter.
type FilterEnv struct {
	NotesDir      string
	TargetDir     string
	FigureDir     string
	FigureBaseURL string
	// PostPath is a fmt pattern receiving the abbrlink, e.g. "posts/%s.html".
	PostPath string
	Links    LinkIndex
	// Figures assigns copied image names across the run.
	Figures *FigureNames
	Logger  interfaces.Logger
}

// Filter transforms a finalized document in place.
type Filter interface {
	Name() string
	Apply(ctx context.Context, doc *Document, env FilterEnv) error
}

var filterFactories = map[string]func() Filter{
	"alert":    func() Filter { return alertFilter{} },
	"equation": func() Filter { return equationFilter{} },
	"figure":   func() Filter { return figureFilter{} },
	"footnote": func() Filter { return footnoteFilter{} },
	"link":     func() Filter { return linkFilter{} },
}

// BuildFilters resolves names into a chain, preserving order and dropping
// duplicates.
func BuildFilters(names []string) ([]Filter, error) {
	chain := make([]Filter, 0, len(names))
	seen := map[string]struct{}{}
	for _, name := range names {
		key := strings.ToLower(strings.TrimSpace(name))
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		factory, ok := filterFactories[key]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownFilter, name)
		}
		seen[key] = struct{}{}
		chain = append(chain, factory())
	}
	return chain, nil
}

func applyFilters(ctx context.Context, chain []Filter, doc *Document, env FilterEnv) error {
	for _, filter := range chain {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := filter.Apply(ctx, doc, env); err != nil {
			return fmt.Errorf("filter %s: %w", filter.Name(), err)
		}
	}
	return nil
}
