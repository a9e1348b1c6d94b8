package sitemap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ArtifactCategory labels the kind of file being written.
type ArtifactCategory string

const (
	CategoryURLList ArtifactCategory = "url_list"
	CategorySitemap ArtifactCategory = "sitemap"
	CategoryRobots  ArtifactCategory = "robots"
)

// Artifact describes a full-snapshot write of one output file.
type Artifact struct {
	Path     string
	Content  []byte
	Category ArtifactCategory
}

// ArtifactWriter abstracts where sitemap outputs are persisted.
type ArtifactWriter interface {
	WriteFile(ctx context.Context, artifact Artifact) error
}

// NewFileWriter returns a writer that replaces files on the local
// filesystem, creating parent directories as needed.
func NewFileWriter() ArtifactWriter {
	return fileWriter{}
}

type fileWriter struct{}

func (fileWriter) WriteFile(ctx context.Context, artifact Artifact) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(artifact.Path) == "" {
		return errors.New("sitemap: write requires path")
	}

	dir := filepath.Dir(artifact.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("sitemap: ensure dir %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(artifact.Path)+".*")
	if err != nil {
		return fmt.Errorf("sitemap: write %s: %w", artifact.Path, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(artifact.Content); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("sitemap: write %s: %w", artifact.Path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("sitemap: write %s: %w", artifact.Path, err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("sitemap: write %s: %w", artifact.Path, err)
	}
	if err := os.Rename(tmpName, artifact.Path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("sitemap: replace %s: %w", artifact.Path, err)
	}
	return nil
}
