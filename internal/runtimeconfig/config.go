package runtimeconfig

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"
)

var ErrSitemapChangeFreqInvalid = errors.New("sitepub config: sitemap changefreq is invalid")
var ErrSitemapPriorityInvalid = errors.New("sitepub config: sitemap priority must be between 0.0 and 1.0")
var ErrSitePostPathInvalid = errors.New("sitepub config: site post path must contain a single %s verb")
var ErrNotifyEndpointInvalid = errors.New("sitepub config: notifier endpoint must be an absolute http(s) URL")
var ErrNotifyRateInvalid = errors.New("sitepub config: google requests per minute must be zero or positive")
var ErrMarkdownPatternRequired = errors.New("sitepub config: markdown pattern is required")
var ErrMarkdownFilterUnknown = errors.New("sitepub config: markdown filter is unknown")
var ErrLoggingProviderRequired = errors.New("sitepub config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("sitepub config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("sitepub config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("sitepub config: logging format is invalid")

// Config aggregates the settings shared by every sitepub command.
type Config struct {
	Site     SiteConfig     `yaml:"site"`
	Sitemap  SitemapConfig  `yaml:"sitemap"`
	Notify   NotifyConfig   `yaml:"notify"`
	Markdown MarkdownConfig `yaml:"markdown"`
	Commands CommandsConfig `yaml:"commands"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// SiteConfig describes how site-relative URLs are built.
type SiteConfig struct {
	// Host forces the site host instead of deriving the dominant one.
	Host string `yaml:"host"`
	// Scheme is used when Host is set or no scheme can be observed.
	Scheme string `yaml:"scheme"`
	// PostPath is a fmt pattern receiving the abbrlink.
	PostPath string `yaml:"post_path"`
	// WellKnownFiles are always treated as live URLs.
	WellKnownFiles []string `yaml:"well_known_files"`
}

// SitemapConfig captures sitemap.xml rendering options.
type SitemapConfig struct {
	ChangeFreq      string `yaml:"changefreq"`
	Priority        string `yaml:"priority"`
	TimestampLayout string `yaml:"timestamp_layout"`
	LastModLayout   string `yaml:"lastmod_layout"`
}

// NotifyConfig groups the search-engine notifier settings.
type NotifyConfig struct {
	Timeout  time.Duration  `yaml:"timeout"`
	Baidu    BaiduConfig    `yaml:"baidu"`
	IndexNow IndexNowConfig `yaml:"indexnow"`
	Google   GoogleConfig   `yaml:"google"`
}

// BaiduConfig configures the Baidu push endpoint.
type BaiduConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// IndexNowConfig configures the IndexNow endpoint.
type IndexNowConfig struct {
	Endpoint string `yaml:"endpoint"`
}

// GoogleConfig configures the Google Indexing API client.
type GoogleConfig struct {
	Endpoint          string   `yaml:"endpoint"`
	Scopes            []string `yaml:"scopes"`
	RequestsPerMinute int      `yaml:"requests_per_minute"`
}

// MarkdownConfig captures discovery and filter settings for the converter.
type MarkdownConfig struct {
	Pattern         string   `yaml:"pattern"`
	Recursive       bool     `yaml:"recursive"`
	TimestampLayout string   `yaml:"timestamp_layout"`
	Filters         []string `yaml:"filters"`
	FigureDir       string   `yaml:"figure_dir"`
	FigureBaseURL   string   `yaml:"figure_base_url"`
}

// CommandsConfig captures command execution behaviour.
type CommandsConfig struct {
	// Timeout bounds a command run; zero disables the deadline.
	Timeout time.Duration `yaml:"timeout"`
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string   `yaml:"provider"`
	Level     string   `yaml:"level"`
	Format    string   `yaml:"format"`
	AddSource bool     `yaml:"add_source"`
	Focus     []string `yaml:"focus"`
}

// TimestampLayout is the front matter timestamp format (YYYY-MM-DD HH:MM:SS).
const TimestampLayout = "2006-01-02 15:04:05"

// KnownFilters lists the markdown filters in their default order.
var KnownFilters = []string{"alert", "equation", "figure", "footnote", "link"}

// DefaultConfig returns the stock publishing settings.
func DefaultConfig() Config {
	return Config{
		Site: SiteConfig{
			Scheme:   "https",
			PostPath: "posts/%s.html",
			WellKnownFiles: []string{
				"sitemap.xml",
				"sitemap.txt",
				"atom.xml",
				"index.html",
				"robots.txt",
				"ads.txt",
				"ddaa8128e40b45f9a08905b37f52607a.txt",
			},
		},
		Sitemap: SitemapConfig{
			ChangeFreq:      "monthly",
			Priority:        "0.8",
			TimestampLayout: TimestampLayout,
			LastModLayout:   "2006-01-02",
		},
		Notify: NotifyConfig{
			Timeout: 30 * time.Second,
			Baidu: BaiduConfig{
				Endpoint: "http://data.zz.baidu.com/urls",
			},
			IndexNow: IndexNowConfig{
				Endpoint: "https://api.indexnow.org/IndexNow",
			},
			Google: GoogleConfig{
				Endpoint: "https://indexing.googleapis.com/v3/urlNotifications:publish",
				Scopes:   []string{"https://www.googleapis.com/auth/indexing"},
			},
		},
		Markdown: MarkdownConfig{
			Pattern:         "*.md",
			Recursive:       true,
			TimestampLayout: TimestampLayout,
			Filters:         append([]string(nil), KnownFilters...),
			FigureDir:       "images",
		},
		Commands: CommandsConfig{},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if strings.Count(cfg.Site.PostPath, "%s") != 1 {
		return fmt.Errorf("%w: %q", ErrSitePostPathInvalid, cfg.Site.PostPath)
	}
	if !isSupportedChangeFreq(cfg.Sitemap.ChangeFreq) {
		return fmt.Errorf("%w: %s", ErrSitemapChangeFreqInvalid, cfg.Sitemap.ChangeFreq)
	}
	if !isValidPriority(cfg.Sitemap.Priority) {
		return fmt.Errorf("%w: %s", ErrSitemapPriorityInvalid, cfg.Sitemap.Priority)
	}
	for name, endpoint := range map[string]string{
		"baidu":    cfg.Notify.Baidu.Endpoint,
		"indexnow": cfg.Notify.IndexNow.Endpoint,
		"google":   cfg.Notify.Google.Endpoint,
	} {
		if !isHTTPURL(endpoint) {
			return fmt.Errorf("%w: %s=%q", ErrNotifyEndpointInvalid, name, endpoint)
		}
	}
	if cfg.Notify.Google.RequestsPerMinute < 0 {
		return ErrNotifyRateInvalid
	}
	if strings.TrimSpace(cfg.Markdown.Pattern) == "" {
		return ErrMarkdownPatternRequired
	}
	for _, name := range cfg.Markdown.Filters {
		if !isKnownFilter(name) {
			return fmt.Errorf("%w: %s", ErrMarkdownFilterUnknown, name)
		}
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}

func isSupportedChangeFreq(value string) bool {
	switch value {
	case "always", "hourly", "daily", "weekly", "monthly", "yearly", "never":
		return true
	default:
		return false
	}
}

func isValidPriority(value string) bool {
	var priority float64
	if _, err := fmt.Sscanf(value, "%g", &priority); err != nil {
		return false
	}
	return priority >= 0 && priority <= 1
}

func isHTTPURL(value string) bool {
	parsed, err := url.Parse(strings.TrimSpace(value))
	if err != nil {
		return false
	}
	return (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}

func isKnownFilter(name string) bool {
	for _, known := range KnownFilters {
		if strings.EqualFold(strings.TrimSpace(name), known) {
			return true
		}
	}
	return false
}
