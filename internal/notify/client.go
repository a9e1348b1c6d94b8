package notify

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goliatone/go-sitepub/internal/logging"
	"github.com/goliatone/go-sitepub/internal/sitemap"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

// ErrNoSite reports URL input with no host to derive the site from.
var ErrNoSite = errors.New("notify: no url with a host to derive the site from")

const (
	DefaultTimeout  = 30 * time.Second
	maxResponseBody = 64 << 10
)

// Option configures a notifier.
type Option func(*options)

type options struct {
	client  interfaces.HTTPDoer
	logger  interfaces.Logger
	timeout time.Duration
}

// WithHTTPClient injects the HTTP client used for provider calls.
func WithHTTPClient(client interfaces.HTTPDoer) Option {
	return func(o *options) {
		if client != nil {
			o.client = client
		}
	}
}

// WithLogger sets the notifier logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(o *options) {
		if logger != nil {
			o.logger = logger
		}
	}
}

// WithTimeout bounds each provider call when the default client is used.
func WithTimeout(timeout time.Duration) Option {
	return func(o *options) {
		if timeout > 0 {
			o.timeout = timeout
		}
	}
}

func resolveOptions(opts []Option) options {
	resolved := options{logger: logging.NoOp(), timeout: DefaultTimeout}
	for _, opt := range opts {
		if opt != nil {
			opt(&resolved)
		}
	}
	return resolved
}

func (o options) httpClient() interfaces.HTTPDoer {
	if o.client != nil {
		return o.client
	}
	return &http.Client{Timeout: o.timeout}
}

// call describes one POST to a provider.
type call struct {
	endpoint    string
	contentType string
	body        []byte
	url         string
	action      string
}

// post performs c once and converts the response into an outcome. Transport
// errors and non-2xx statuses are logged, not returned.
func post(ctx context.Context, client interfaces.HTTPDoer, logger interfaces.Logger, c call) interfaces.NotifyOutcome {
	outcome := interfaces.NotifyOutcome{URL: c.url, Action: c.action}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(c.body))
	if err != nil {
		outcome.Err = err
		logger.Error("notify.request.invalid", "url", c.url, "error", err)
		return outcome
	}
	req.Header.Set("Content-Type", c.contentType)

	resp, err := client.Do(req)
	if err != nil {
		outcome.Err = err
		logger.Error("notify.request.failed", "url", c.url, "action", c.action, "error", err)
		return outcome
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		outcome.Err = fmt.Errorf("read response: %w", err)
	}
	outcome.StatusCode = resp.StatusCode
	outcome.Body = strings.TrimSpace(string(body))

	if outcome.OK() {
		logger.Info("notify.response", "url", c.url, "action", c.action, "status_code", outcome.StatusCode, "body", outcome.Body)
	} else {
		logger.Warn("notify.response.rejected", "url", c.url, "action", c.action, "status_code", outcome.StatusCode, "body", outcome.Body)
	}
	return outcome
}

func dominantSite(urls []string) (sitemap.Site, error) {
	site, ok := sitemap.DominantSite(urls)
	if !ok {
		return sitemap.Site{}, ErrNoSite
	}
	return site, nil
}

func cleanURLs(urls []string) []string {
	out := make([]string, 0, len(urls))
	for _, u := range urls {
		if trimmed := strings.Trim(u, " \r\n"); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
