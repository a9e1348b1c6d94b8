package runtimeconfig_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/goliatone/go-sitepub/internal/runtimeconfig"
)

func TestDefaultConfigValidates(t *testing.T) {
	if err := runtimeconfig.DefaultConfig().Validate(); err != nil {
		t.Fatalf("Validate() returned unexpected error: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*runtimeconfig.Config)
		want   error
	}{
		{"post path without verb", func(c *runtimeconfig.Config) { c.Site.PostPath = "posts/index.html" }, runtimeconfig.ErrSitePostPathInvalid},
		{"bad changefreq", func(c *runtimeconfig.Config) { c.Sitemap.ChangeFreq = "fortnightly" }, runtimeconfig.ErrSitemapChangeFreqInvalid},
		{"priority out of range", func(c *runtimeconfig.Config) { c.Sitemap.Priority = "1.5" }, runtimeconfig.ErrSitemapPriorityInvalid},
		{"relative endpoint", func(c *runtimeconfig.Config) { c.Notify.Baidu.Endpoint = "/urls" }, runtimeconfig.ErrNotifyEndpointInvalid},
		{"negative rpm", func(c *runtimeconfig.Config) { c.Notify.Google.RequestsPerMinute = -1 }, runtimeconfig.ErrNotifyRateInvalid},
		{"empty pattern", func(c *runtimeconfig.Config) { c.Markdown.Pattern = " " }, runtimeconfig.ErrMarkdownPatternRequired},
		{"unknown filter", func(c *runtimeconfig.Config) { c.Markdown.Filters = []string{"upload"} }, runtimeconfig.ErrMarkdownFilterUnknown},
		{"missing provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "" }, runtimeconfig.ErrLoggingProviderRequired},
		{"unknown provider", func(c *runtimeconfig.Config) { c.Logging.Provider = "syslog" }, runtimeconfig.ErrLoggingProviderUnknown},
		{"bad level", func(c *runtimeconfig.Config) { c.Logging.Level = "loud" }, runtimeconfig.ErrLoggingLevelInvalid},
		{"bad gologger format", func(c *runtimeconfig.Config) {
			c.Logging.Provider = "gologger"
			c.Logging.Format = "xml"
		}, runtimeconfig.ErrLoggingFormatInvalid},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := runtimeconfig.DefaultConfig()
			tc.mutate(&cfg)
			if err := cfg.Validate(); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestDecodeYAMLOverlaysDefaults(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	data := []byte(`
site:
  host: blog.example.com
sitemap:
  priority: "0.5"
notify:
  timeout: 5s
  google:
    requests_per_minute: 60
markdown:
  filters: [footnote, link]
logging:
  level: debug
`)
	if err := runtimeconfig.DecodeYAML(data, &cfg); err != nil {
		t.Fatalf("DecodeYAML: %v", err)
	}
	if cfg.Site.Host != "blog.example.com" || cfg.Site.Scheme != "https" {
		t.Fatalf("unexpected site config: %+v", cfg.Site)
	}
	if cfg.Sitemap.Priority != "0.5" || cfg.Sitemap.ChangeFreq != "monthly" {
		t.Fatalf("unexpected sitemap config: %+v", cfg.Sitemap)
	}
	if cfg.Notify.Timeout != 5*time.Second || cfg.Notify.Google.RequestsPerMinute != 60 {
		t.Fatalf("unexpected notify config: %+v", cfg.Notify)
	}
	if len(cfg.Markdown.Filters) != 2 || cfg.Markdown.Filters[1] != "link" {
		t.Fatalf("unexpected filters: %v", cfg.Markdown.Filters)
	}
}

func TestDecodeYAMLRejectsUnknownKeys(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	if err := runtimeconfig.DecodeYAML([]byte("sitemap:\n  frequency: daily\n"), &cfg); err == nil {
		t.Fatal("expected unknown key error")
	}
}

func TestApplyEnv(t *testing.T) {
	env := map[string]string{
		"SITEPUB_SITE_HOST":        "a.com",
		"SITEPUB_LOG_LEVEL":        "warn",
		"SITEPUB_GOOGLE_RPM":       "120",
		"SITEPUB_COMMAND_TIMEOUT":  "2m",
		"SITEPUB_MARKDOWN_FILTERS": "alert, equation ,",
	}
	cfg := runtimeconfig.DefaultConfig()
	err := runtimeconfig.ApplyEnv(&cfg, func(key string) (string, bool) {
		value, ok := env[key]
		return value, ok
	})
	if err != nil {
		t.Fatalf("ApplyEnv: %v", err)
	}
	if cfg.Site.Host != "a.com" || cfg.Logging.Level != "warn" {
		t.Fatalf("unexpected overrides: %+v %+v", cfg.Site, cfg.Logging)
	}
	if cfg.Notify.Google.RequestsPerMinute != 120 || cfg.Commands.Timeout != 2*time.Minute {
		t.Fatalf("unexpected numeric overrides: %+v %+v", cfg.Notify.Google, cfg.Commands)
	}
	if len(cfg.Markdown.Filters) != 2 || cfg.Markdown.Filters[1] != "equation" {
		t.Fatalf("unexpected filters: %v", cfg.Markdown.Filters)
	}
}

func TestApplyEnvRejectsBadDuration(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	err := runtimeconfig.ApplyEnv(&cfg, func(key string) (string, bool) {
		if key == "SITEPUB_NOTIFY_TIMEOUT" {
			return "soon", true
		}
		return "", false
	})
	if err == nil {
		t.Fatal("expected duration parse error")
	}
}

func TestLoadReadsFileAndEnvFile(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "sitepub.yaml")
	if err := os.WriteFile(configPath, []byte("site:\n  scheme: http\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	envPath := filepath.Join(dir, "test.env")
	if err := os.WriteFile(envPath, []byte("SITEPUB_SITEMAP_CHANGEFREQ=weekly\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Unsetenv("SITEPUB_SITEMAP_CHANGEFREQ") })

	cfg, err := runtimeconfig.Load(configPath, envPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Site.Scheme != "http" {
		t.Fatalf("expected scheme from file, got %q", cfg.Site.Scheme)
	}
	if cfg.Sitemap.ChangeFreq != "weekly" {
		t.Fatalf("expected changefreq from env file, got %q", cfg.Sitemap.ChangeFreq)
	}
}
