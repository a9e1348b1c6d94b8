package markdown

import (
	"context"
	"fmt"
	"hash/crc32"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// figureFilter copies locally referenced images next to the converted
// output and points the image destinations at their published location.
type figureFilter struct{}

func (figureFilter) Name() string { return "figure" }

func (figureFilter) Apply(ctx context.Context, doc *Document, env FilterEnv) error {
	body := parseBody(doc.Body)
	replacements := map[string]string{}

	var destinations []string
	body.walk(func(node ast.Node) ast.WalkStatus {
		if image, ok := node.(*ast.Image); ok {
			destinations = append(destinations, string(image.Destination))
		}
		return ast.WalkContinue
	})

	for _, dest := range destinations {
		if _, done := replacements[dest]; done || !isLocalReference(dest) {
			continue
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		source, ok := resolveFigure(doc, env, dest)
		if !ok {
			if env.Logger != nil {
				env.Logger.Warn("markdown.figure.missing", "path", doc.Rel, "figure", dest)
			}
			continue
		}
		name := env.Figures.Assign(source)
		if err := copyFile(source, filepath.Join(env.TargetDir, env.FigureDir, name)); err != nil {
			return fmt.Errorf("copy figure %s: %w", dest, err)
		}
		replacements[dest] = figureURL(env, name)
	}

	doc.Body = body.replaceDestinations(replacements)
	return nil
}

// FigureNames assigns published file names to figure sources for one run so
// two images sharing a base name do not overwrite each other. It is not safe
// for concurrent use.
type FigureNames struct {
	owners  map[string]string
	sources map[string]string
}

// NewFigureNames returns an empty name table.
func NewFigureNames() *FigureNames {
	return &FigureNames{owners: map[string]string{}, sources: map[string]string{}}
}

// Assign returns the published name for source. The base name is used when
// free; otherwise the CRC32 of the source path is appended to the stem.
// A nil table always returns the base name.
func (n *FigureNames) Assign(source string) string {
	base := filepath.Base(source)
	if n == nil {
		return base
	}
	if name, ok := n.sources[source]; ok {
		return name
	}

	name := base
	if owner, taken := n.owners[name]; taken && owner != source {
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)
		sum := crc32.ChecksumIEEE([]byte(filepath.ToSlash(source)))
		name = fmt.Sprintf("%s-%x%s", stem, sum, ext)
		for i := 2; ; i++ {
			if owner, taken := n.owners[name]; !taken || owner == source {
				break
			}
			name = fmt.Sprintf("%s-%x-%d%s", stem, sum, i, ext)
		}
	}
	n.owners[name] = source
	n.sources[source] = name
	return name
}

// isLocalReference reports destinations that point at files relative to the
// note rather than at a URL, an absolute site path or an anchor.
func isLocalReference(dest string) bool {
	dest = strings.TrimSpace(dest)
	if dest == "" || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") {
		return false
	}
	parsed, err := url.Parse(dest)
	if err != nil {
		return false
	}
	return parsed.Scheme == "" && parsed.Host == ""
}

func resolveFigure(doc *Document, env FilterEnv, dest string) (string, bool) {
	rel, err := url.PathUnescape(dest)
	if err != nil {
		rel = dest
	}
	if idx := strings.IndexAny(rel, "?#"); idx >= 0 {
		rel = rel[:idx]
	}
	rel = filepath.FromSlash(rel)

	candidates := []string{filepath.Join(filepath.Dir(doc.Path), rel)}
	if env.NotesDir != "" {
		candidates = append(candidates, filepath.Join(env.NotesDir, rel))
	}
	for _, candidate := range candidates {
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, true
		}
	}
	return "", false
}

func figureURL(env FilterEnv, name string) string {
	escaped := url.PathEscape(name)
	if base := strings.TrimRight(strings.TrimSpace(env.FigureBaseURL), "/"); base != "" {
		return base + "/" + escaped
	}
	return "/" + path.Join(filepath.ToSlash(env.FigureDir), escaped)
}

func copyFile(src, dst string) error {
	if src == dst {
		return nil
	}
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
