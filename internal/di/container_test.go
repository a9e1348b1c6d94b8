package di_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	notifycmd "github.com/goliatone/go-sitepub/internal/commands/notify"
	sitemapcmd "github.com/goliatone/go-sitepub/internal/commands/sitemap"
	"github.com/goliatone/go-sitepub/internal/di"
	ditesting "github.com/goliatone/go-sitepub/internal/di/testing"
	"github.com/goliatone/go-sitepub/internal/logging/gologger"
	"github.com/goliatone/go-sitepub/internal/notify"
	"github.com/goliatone/go-sitepub/internal/runtimeconfig"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

type recordingDoer struct {
	requests []*http.Request
	bodies   []string
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	d.requests = append(d.requests, req)
	d.bodies = append(d.bodies, string(body))
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(`{"success":1}`)),
		Header:     http.Header{},
	}, nil
}

func TestNewContainerBuildsServices(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig())
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if container.SitemapService() == nil {
		t.Fatal("expected sitemap service")
	}
	if container.MarkdownPipeline() == nil {
		t.Fatal("expected markdown pipeline")
	}
	if container.LoggerProvider() == nil {
		t.Fatal("expected logger provider")
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Filters = []string{"mermaid"}

	_, err := di.NewContainer(cfg)
	if !errors.Is(err, runtimeconfig.ErrMarkdownFilterUnknown) {
		t.Fatalf("expected unknown filter error, got %v", err)
	}
}

func TestNewLoggerProviderUsesGoLoggerAdapter(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig().Logging
	cfg.Provider = "gologger"
	cfg.Level = "debug"
	cfg.Format = "json"

	provider, err := di.NewLoggerProvider(cfg)
	if err != nil {
		t.Fatalf("NewLoggerProvider returned error: %v", err)
	}
	if _, ok := provider.(*gologger.Provider); !ok {
		t.Fatalf("expected go-logger provider, got %T", provider)
	}
}

func TestContainerNotifiersUseInjectedClient(t *testing.T) {
	doer := &recordingDoer{}
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithHTTPClient(doer))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	notifier, err := container.BaiduNotifier("secret")
	if err != nil {
		t.Fatalf("BaiduNotifier returned error: %v", err)
	}

	dir := t.TempDir()
	live := filepath.Join(dir, "sitemap.txt")
	if err := os.WriteFile(live, []byte("https://a.com/posts/1.html\n"), 0o644); err != nil {
		t.Fatalf("write live list: %v", err)
	}

	handler := container.PushHandler(notifier)
	if err := handler.Execute(context.Background(), notifycmd.PushCommand{UpdatedPath: live}); err != nil {
		t.Fatalf("push returned error: %v", err)
	}
	if len(doer.requests) != 1 {
		t.Fatalf("expected one request, got %d", len(doer.requests))
	}
	if got := doer.requests[0].URL.Query().Get("token"); got != "secret" {
		t.Fatalf("expected token query, got %q", got)
	}
	if doer.bodies[0] != "a.com/posts/1.html" {
		t.Fatalf("unexpected body %q", doer.bodies[0])
	}
}

func TestContainerGoogleNotifierRequiresValidKey(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithHTTPClient(&recordingDoer{}))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	keyPath := filepath.Join(t.TempDir(), "key.json")
	if err := os.WriteFile(keyPath, []byte(`{"type":"user"}`), 0o600); err != nil {
		t.Fatalf("write key: %v", err)
	}

	_, err = container.GoogleNotifier(context.Background(), keyPath)
	if !errors.Is(err, notify.ErrInvalidCredentials) {
		t.Fatalf("expected invalid credentials, got %v", err)
	}
}

type nilProvider struct{}

func (nilProvider) GetLogger(string) interfaces.Logger {
	return nil
}

func TestWithLoggerProviderOverridesConfig(t *testing.T) {
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), di.WithLoggerProvider(nilProvider{}))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	if _, ok := container.LoggerProvider().(nilProvider); !ok {
		t.Fatalf("expected injected provider, got %T", container.LoggerProvider())
	}
}

func TestContainerSitemapUsesArtifactWriter(t *testing.T) {
	writer := ditesting.NewMemoryWriter()
	cfg := runtimeconfig.DefaultConfig()
	cfg.Site.WellKnownFiles = nil
	container, err := di.NewContainer(cfg, di.WithArtifactWriter(writer))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	dir := t.TempDir()
	live := filepath.Join(dir, "live.txt")
	if err := os.WriteFile(live, []byte("https://a.com/new\n"), 0o644); err != nil {
		t.Fatalf("write live list: %v", err)
	}

	handler := container.UpdateSitemapHandler()
	if err := handler.Execute(context.Background(), sitemapcmd.UpdateCommand{
		AllPath:    filepath.Join(dir, "all.txt"),
		LivePath:   live,
		DeadPath:   "dead.txt",
		RobotsPath: "robots.txt",
	}); err != nil {
		t.Fatalf("update returned error: %v", err)
	}

	if len(writer.Writes()) != 3 {
		t.Fatalf("expected all, dead and robots writes, got %d", len(writer.Writes()))
	}
	robots, ok := writer.File("robots.txt")
	if !ok || !strings.Contains(robots, "Allow: /new") {
		t.Fatalf("unexpected robots.txt %q", robots)
	}
	if _, err := os.Stat(filepath.Join(dir, "all.txt")); !os.IsNotExist(err) {
		t.Fatalf("expected no file written to disk, got %v", err)
	}
}
