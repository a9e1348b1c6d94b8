package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

// LoaderConfig configures how notes are discovered within a base directory.
type LoaderConfig struct {
	// BasePath is the directory the filesystem is rooted at. It prefixes
	// SourceFile paths.
	BasePath string
	// Pattern limits discovered files to those matching the supplied glob (defaults to "*.md").
	Pattern string
	// Recursive controls whether sub-directories are traversed.
	Recursive bool
}

// Loader turns filesystem paths into parsed notes.
type Loader struct {
	fs        fs.FS
	basePath  string
	pattern   string
	recursive bool
}

// NewLoader constructs a Loader using the provided filesystem and configuration.
func NewLoader(filesystem fs.FS, cfg LoaderConfig) *Loader {
	pattern := cfg.Pattern
	if strings.TrimSpace(pattern) == "" {
		pattern = "*.md"
	}

	return &Loader{
		fs:        filesystem,
		basePath:  cfg.BasePath,
		pattern:   pattern,
		recursive: cfg.Recursive,
	}
}

// LoadFile reads and parses a single note. Read failures are returned; front
// matter failures are carried on the SourceFile.
func (l *Loader) LoadFile(ctx context.Context, rel string) (*SourceFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	rel = path.Clean(filepath.ToSlash(rel))

	data, err := fs.ReadFile(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader read %s: %w", rel, err)
	}
	info, err := fs.Stat(l.fs, rel)
	if err != nil {
		return nil, fmt.Errorf("markdown loader stat %s: %w", rel, err)
	}
	return newSourceFile(filepath.Join(l.basePath, filepath.FromSlash(rel)), rel, info, data), nil
}

// LoadDirectory discovers notes under the filesystem root sorted by path.
// Files that cannot be read are returned with Err set so one bad file does
// not hide the rest.
func (l *Loader) LoadDirectory(ctx context.Context) ([]*SourceFile, error) {
	var results []*SourceFile

	walkErr := fs.WalkDir(l.fs, ".", func(current string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			if current != "." && !l.recursive {
				return fs.SkipDir
			}
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if !l.matchesPattern(current) {
			return nil
		}

		result, err := l.LoadFile(ctx, current)
		if err != nil {
			result = &SourceFile{
				Document: Document{Path: filepath.Join(l.basePath, filepath.FromSlash(current)), Rel: current},
				Err:      err,
			}
		}
		results = append(results, result)
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("markdown loader walk %s: %w", l.basePath, walkErr)
	}

	sort.Slice(results, func(i, j int) bool {
		return results[i].Rel < results[j].Rel
	})
	return results, nil
}

func (l *Loader) matchesPattern(current string) bool {
	pattern := filepath.ToSlash(l.pattern)
	// "**/" is implied by recursion.
	pattern = strings.ReplaceAll(pattern, "**/", "")
	if strings.Contains(pattern, "/") {
		match, err := path.Match(pattern, current)
		return err == nil && match
	}
	match, err := path.Match(pattern, path.Base(current))
	return err == nil && match
}
