package main

import (
	"bytes"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-sitepub"
	"github.com/goliatone/go-sitepub/cmd/internal/bootstrap"
	"github.com/goliatone/go-sitepub/internal/di"
	"github.com/goliatone/go-sitepub/internal/logging/console"
)

type recordingDoer struct {
	requests []*http.Request
	bodies   []string
	status   int
}

func (d *recordingDoer) Do(req *http.Request) (*http.Response, error) {
	body, _ := io.ReadAll(req.Body)
	d.requests = append(d.requests, req)
	d.bodies = append(d.bodies, string(body))
	status := d.status
	if status == 0 {
		status = http.StatusOK
	}
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader("{}")),
		Header:     http.Header{},
	}, nil
}

func useDoer(t *testing.T, doer *recordingDoer) {
	t.Helper()
	original := moduleBuilder
	t.Cleanup(func() { moduleBuilder = original })
	moduleBuilder = func(opts bootstrap.Options) (*sitepub.Module, error) {
		opts.LoggerProvider = console.NewProvider(console.Options{Writer: io.Discard})
		opts.DIOptions = append(opts.DIOptions, di.WithHTTPClient(doer))
		return bootstrap.BuildModule(opts)
	}
}

func writeLive(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sitemap.txt")
	if err := os.WriteFile(path, []byte("https://a.com/posts/1.html\nhttps://a.com/posts/2.html\n"), 0o644); err != nil {
		t.Fatalf("write sitemap.txt: %v", err)
	}
	return path
}

func TestRunRejectsWrongArity(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := run([]string{"sitemap.txt"}, &stdout, &stderr); code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(stderr.String(), "usage: push-indexnow") {
		t.Fatalf("expected usage on stderr, got %q", stderr.String())
	}
}

func TestRunPushesLiveList(t *testing.T) {
	doer := &recordingDoer{}
	useDoer(t, doer)

	var stdout, stderr bytes.Buffer
	if code := run([]string{writeLive(t), "secret"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", code, stderr.String())
	}
	if len(doer.requests) != 1 {
		t.Fatalf("expected one request, got %d", len(doer.requests))
	}
	if !strings.Contains(doer.bodies[0], `"key":"secret"`) || !strings.Contains(doer.bodies[0], `"keyLocation":"https://a.com/secret.txt"`) {
		t.Fatalf("unexpected payload %s", doer.bodies[0])
	}
	if !strings.Contains(stdout.String(), "sent=1 failed=0") {
		t.Fatalf("unexpected summary %q", stdout.String())
	}
}

func TestRunSucceedsWhenProviderRejects(t *testing.T) {
	doer := &recordingDoer{status: http.StatusBadRequest}
	useDoer(t, doer)

	var stdout, stderr bytes.Buffer
	if code := run([]string{writeLive(t), "secret"}, &stdout, &stderr); code != 0 {
		t.Fatalf("expected exit code 0, got %d (stderr %q)", code, stderr.String())
	}
	if !strings.Contains(stdout.String(), "sent=0 failed=1") {
		t.Fatalf("unexpected summary %q", stdout.String())
	}
}
