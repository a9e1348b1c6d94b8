package main

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-sitepub"
	"github.com/goliatone/go-sitepub/cmd/internal/bootstrap"
	"github.com/goliatone/go-sitepub/internal/logging/console"
)

func useQuietModule(t *testing.T) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(opts bootstrap.Options) (*sitepub.Module, error) {
		opts.LoggerProvider = console.NewProvider(console.Options{Writer: io.Discard})
		return bootstrap.BuildModule(opts)
	}
}

func TestRunRejectsWrongArity(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"a", "b", "c"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "usage: sitemap-build") {
		t.Fatalf("expected usage on stderr, got %q", stderr.String())
	}
}

func TestRunBuildsArtifactsForSiteFlag(t *testing.T) {
	useQuietModule(t)

	dir := t.TempDir()
	posts := filepath.Join(dir, "posts")
	if err := os.MkdirAll(posts, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	post := "---\ntitle: hello\nabbrlink: 3610a686\nupdated: 2024-06-01 10:00:00\n---\n\nbody\n"
	if err := os.WriteFile(filepath.Join(posts, "hello.md"), []byte(post), 0o644); err != nil {
		t.Fatalf("write post: %v", err)
	}

	paths := []string{
		filepath.Join(dir, "sitemap.all.txt"),
		posts,
		filepath.Join(dir, "sitemap.xml"),
		filepath.Join(dir, "sitemap.txt"),
		filepath.Join(dir, "sitemap.dead.txt"),
		filepath.Join(dir, "robots.txt"),
	}

	var stdout, stderr bytes.Buffer
	args := append([]string{"--site", "https://a.com"}, paths...)
	if code := run(args, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "entries=1") {
		t.Fatalf("unexpected summary %q", stdout.String())
	}
	xml, err := os.ReadFile(paths[2])
	if err != nil {
		t.Fatalf("read sitemap.xml: %v", err)
	}
	if !strings.Contains(string(xml), "<loc>https://a.com/posts/3610a686.html</loc>") {
		t.Fatalf("unexpected sitemap.xml:\n%s", xml)
	}
	if _, err := os.Stat(paths[5]); err != nil {
		t.Fatalf("expected robots.txt: %v", err)
	}
}

func TestRunFailsWithoutSite(t *testing.T) {
	useQuietModule(t)

	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	code := run([]string{
		filepath.Join(dir, "all.txt"),
		dir,
		filepath.Join(dir, "sitemap.xml"),
		filepath.Join(dir, "sitemap.txt"),
		filepath.Join(dir, "dead.txt"),
		filepath.Join(dir, "robots.txt"),
	}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
}
