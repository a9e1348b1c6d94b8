package runtimeconfig

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// EnvPrefix namespaces every environment override.
const EnvPrefix = "SITEPUB_"

// Load builds a Config from defaults, an optional YAML file, optional dotenv
// files, and SITEPUB_* environment variables, in that order. With no env
// files a ".env" in the working directory is loaded when present. The result
// is validated.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := DefaultConfig()

	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("sitepub config: read %s: %w", path, err)
		}
		if err := DecodeYAML(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("sitepub config: decode %s: %w", path, err)
		}
	}

	if len(envFiles) == 0 {
		// .env is optional
		_ = godotenv.Load()
	} else if err := godotenv.Load(envFiles...); err != nil {
		return Config{}, fmt.Errorf("sitepub config: load env files: %w", err)
	}

	if err := ApplyEnv(&cfg, os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// DecodeYAML overlays YAML data onto cfg. Unknown keys are rejected.
func DecodeYAML(data []byte, cfg *Config) error {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// ApplyEnv overlays SITEPUB_* variables resolved through lookup onto cfg.
func ApplyEnv(cfg *Config, lookup func(string) (string, bool)) error {
	if cfg == nil || lookup == nil {
		return nil
	}

	str := func(key string, target *string) {
		if value, ok := lookup(EnvPrefix + key); ok && strings.TrimSpace(value) != "" {
			*target = strings.TrimSpace(value)
		}
	}

	str("SITE_HOST", &cfg.Site.Host)
	str("SITE_SCHEME", &cfg.Site.Scheme)
	str("SITE_POST_PATH", &cfg.Site.PostPath)
	str("SITEMAP_CHANGEFREQ", &cfg.Sitemap.ChangeFreq)
	str("SITEMAP_PRIORITY", &cfg.Sitemap.Priority)
	str("BAIDU_ENDPOINT", &cfg.Notify.Baidu.Endpoint)
	str("INDEXNOW_ENDPOINT", &cfg.Notify.IndexNow.Endpoint)
	str("GOOGLE_ENDPOINT", &cfg.Notify.Google.Endpoint)
	str("MARKDOWN_PATTERN", &cfg.Markdown.Pattern)
	str("FIGURE_DIR", &cfg.Markdown.FigureDir)
	str("FIGURE_BASE_URL", &cfg.Markdown.FigureBaseURL)
	str("LOG_PROVIDER", &cfg.Logging.Provider)
	str("LOG_LEVEL", &cfg.Logging.Level)
	str("LOG_FORMAT", &cfg.Logging.Format)

	if value, ok := lookup(EnvPrefix + "MARKDOWN_FILTERS"); ok {
		cfg.Markdown.Filters = SplitList(value)
	}
	if value, ok := lookup(EnvPrefix + "GOOGLE_RPM"); ok && strings.TrimSpace(value) != "" {
		rpm, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("sitepub config: %sGOOGLE_RPM: %w", EnvPrefix, err)
		}
		cfg.Notify.Google.RequestsPerMinute = rpm
	}
	for key, target := range map[string]*time.Duration{
		"NOTIFY_TIMEOUT":  &cfg.Notify.Timeout,
		"COMMAND_TIMEOUT": &cfg.Commands.Timeout,
	} {
		value, ok := lookup(EnvPrefix + key)
		if !ok || strings.TrimSpace(value) == "" {
			continue
		}
		duration, err := time.ParseDuration(strings.TrimSpace(value))
		if err != nil {
			return fmt.Errorf("sitepub config: %s%s: %w", EnvPrefix, key, err)
		}
		*target = duration
	}
	return nil
}

// SplitList parses a comma separated list into trimmed, non-empty values.
func SplitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
