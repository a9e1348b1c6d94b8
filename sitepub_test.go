package sitepub_test

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-sitepub"
	"github.com/goliatone/go-sitepub/internal/di"
	"github.com/goliatone/go-sitepub/internal/logging/console"
	goerrors "github.com/goliatone/go-errors"
)

func newModule(t *testing.T, mutate func(*sitepub.Config)) *sitepub.Module {
	t.Helper()
	cfg := sitepub.DefaultConfig()
	if mutate != nil {
		mutate(&cfg)
	}
	module, err := sitepub.New(cfg, di.WithLoggerProvider(console.NewProvider(console.Options{Writer: io.Discard})))
	if err != nil {
		t.Fatalf("sitepub.New: %v", err)
	}
	return module
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	return string(data)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := sitepub.DefaultConfig()
	cfg.Sitemap.Priority = "2"
	if _, err := sitepub.New(cfg); !errors.Is(err, sitepub.ErrSitemapPriorityInvalid) {
		t.Fatalf("expected priority error, got %v", err)
	}
}

func TestConvertThenBuildSitemap(t *testing.T) {
	root := t.TempDir()
	notes := filepath.Join(root, "notes")
	posts := filepath.Join(root, "source", "_posts")
	public := filepath.Join(root, "public")

	writeFile(t, filepath.Join(notes, "hello.md"), "---\ntitle: hello\n---\n\nHello world.\n")
	writeFile(t, filepath.Join(notes, "draft.md"), "---\ntitle: draft\nhide: true\n---\n\nNot yet.\n")
	writeFile(t, filepath.Join(public, "sitemap.all.txt"), "https://a.com/posts/gone.html\n")

	module := newModule(t, nil)
	ctx := context.Background()

	converted, err := module.Convert(ctx, sitepub.ConvertCommand{NotesDir: notes, TargetDir: posts})
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	if len(converted.Written) != 2 || converted.Failed() != 0 {
		t.Fatalf("unexpected convert result %+v", converted)
	}
	if out := readFile(t, filepath.Join(posts, "hello.md")); !strings.Contains(out, "abbrlink: 3610a686") {
		t.Fatalf("expected abbrlink in output, got:\n%s", out)
	}

	result, err := module.BuildSitemap(ctx, sitepub.BuildSitemapCommand{
		AllPath:    filepath.Join(public, "sitemap.all.txt"),
		PostsDir:   posts,
		XMLPath:    filepath.Join(public, "sitemap.xml"),
		TextPath:   filepath.Join(public, "sitemap.txt"),
		DeadPath:   filepath.Join(public, "sitemap.dead.txt"),
		RobotsPath: filepath.Join(public, "robots.txt"),
	})
	if err != nil {
		t.Fatalf("build sitemap: %v", err)
	}
	if result.Entries != 1 {
		t.Fatalf("expected hidden post excluded, got %d entries", result.Entries)
	}
	if txt := readFile(t, filepath.Join(public, "sitemap.txt")); txt != "https://a.com/posts/3610a686.html\n" {
		t.Fatalf("unexpected sitemap.txt %q", txt)
	}
	if dead := readFile(t, filepath.Join(public, "sitemap.dead.txt")); dead != "https://a.com/posts/gone.html\n" {
		t.Fatalf("unexpected dead list %q", dead)
	}
	robots := readFile(t, filepath.Join(public, "robots.txt"))
	if !strings.Contains(robots, "Disallow: /posts/gone.html") || !strings.Contains(robots, "Allow: /posts/3610a686.html") {
		t.Fatalf("unexpected robots.txt:\n%s", robots)
	}
}

func TestBuildSitemapValidationIsCategorised(t *testing.T) {
	module := newModule(t, nil)
	_, err := module.BuildSitemap(context.Background(), sitepub.BuildSitemapCommand{})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestUpdateSitemapUsesConfiguredHost(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "live.txt"), "https://b.com/new\n")
	writeFile(t, filepath.Join(dir, "all.txt"), "https://b.com/old\n")

	module := newModule(t, func(cfg *sitepub.Config) {
		cfg.Site.Host = "b.com"
		cfg.Site.WellKnownFiles = nil
	})
	result, err := module.UpdateSitemap(context.Background(), sitepub.UpdateSitemapCommand{
		AllPath:    filepath.Join(dir, "all.txt"),
		LivePath:   filepath.Join(dir, "live.txt"),
		DeadPath:   filepath.Join(dir, "dead.txt"),
		RobotsPath: filepath.Join(dir, "robots.txt"),
	})
	if err != nil {
		t.Fatalf("update sitemap: %v", err)
	}
	if result.DeadCount != 1 || result.AllCount != 2 {
		t.Fatalf("unexpected result %+v", result)
	}
}
