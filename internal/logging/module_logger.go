package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

const (
	rootModule     = "sitepub"
	sitemapModule  = "sitepub.sitemap"
	notifyModule   = "sitepub.notify"
	markdownModule = "sitepub.markdown"
)

const (
	fieldMarkdownPath  = "markdown_path"
	fieldMarkdownStage = "stage"
	fieldProvider      = "provider"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module identifier is
// attached as a structured field so entries can be filtered downstream.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	if fieldsLogger, ok := logger.(interfaces.FieldsLogger); ok {
		return fieldsLogger.WithFields(map[string]any{
			"module": module,
		})
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// SitemapLogger returns the logger namespace reserved for sitemap runs.
func SitemapLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, sitemapModule)
}

// NotifyLogger returns the logger namespace reserved for search-engine notifiers.
func NotifyLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, notifyModule)
}

// MarkdownLogger returns the logger namespace reserved for markdown workflows.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// WithMarkdownContext enriches the logger with the document path and pipeline
// stage. Empty values are ignored.
func WithMarkdownContext(logger interfaces.Logger, path, stage string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldMarkdownPath] = trimmed
	}
	if trimmed := strings.TrimSpace(stage); trimmed != "" {
		fields[fieldMarkdownStage] = trimmed
	}
	return WithFields(logger, fields)
}

// WithProvider tags entries with the notifier provider name.
func WithProvider(logger interfaces.Logger, provider string) interfaces.Logger {
	if trimmed := strings.TrimSpace(provider); trimmed != "" {
		return WithFields(logger, map[string]any{fieldProvider: trimmed})
	}
	return logger
}

// NoOp returns a logger that drops every log entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
