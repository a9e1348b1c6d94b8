package notify

import (
	"context"
	"errors"
	"net/url"
	"strings"

	"github.com/goliatone/go-sitepub/internal/logging"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

// ProviderBaidu names the Baidu link push provider.
const ProviderBaidu = "baidu"

// DefaultBaiduEndpoint is the Baidu link push API.
const DefaultBaiduEndpoint = "http://data.zz.baidu.com/urls"

// ErrTokenRequired reports a missing provider token or key.
var ErrTokenRequired = errors.New("notify: token is required")

// BaiduConfig configures the Baidu notifier.
type BaiduConfig struct {
	Endpoint string
	Token    string
}

// BaiduNotifier pushes updated URLs to Baidu in a single plain-text call.
type BaiduNotifier struct {
	cfg    BaiduConfig
	client interfaces.HTTPDoer
	logger interfaces.Logger
}

var _ interfaces.Notifier = (*BaiduNotifier)(nil)

// NewBaiduNotifier validates cfg and builds the notifier.
func NewBaiduNotifier(cfg BaiduConfig, opts ...Option) (*BaiduNotifier, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, ErrTokenRequired
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultBaiduEndpoint
	}
	resolved := resolveOptions(opts)
	return &BaiduNotifier{
		cfg:    cfg,
		client: resolved.httpClient(),
		logger: logging.WithProvider(resolved.logger, ProviderBaidu),
	}, nil
}

// Provider implements interfaces.Notifier.
func (n *BaiduNotifier) Provider() string { return ProviderBaidu }

// Notify posts every updated URL as host+path, CRLF separated, for the
// dominant site of the list. Removed URLs are ignored.
func (n *BaiduNotifier) Notify(ctx context.Context, req interfaces.NotifyRequest) (*interfaces.NotifyReport, error) {
	report := &interfaces.NotifyReport{Provider: ProviderBaidu}
	urls := cleanURLs(req.Updated)
	if len(urls) == 0 {
		n.logger.Info("notify.skipped", "reason", "no urls")
		return report, nil
	}
	site, err := dominantSite(urls)
	if err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(urls))
	for _, raw := range urls {
		if parsed, err := url.Parse(raw); err == nil {
			lines = append(lines, parsed.Host+parsed.EscapedPath())
			continue
		}
		lines = append(lines, raw)
	}

	endpoint, err := url.Parse(n.cfg.Endpoint)
	if err != nil {
		return nil, err
	}
	query := endpoint.Query()
	query.Set("site", site.Host)
	query.Set("token", n.cfg.Token)
	endpoint.RawQuery = query.Encode()

	report.Record(post(ctx, n.client, n.logger, call{
		endpoint:    endpoint.String(),
		contentType: "text/plain",
		body:        []byte(strings.Join(lines, "\r\n")),
		url:         site.String(),
		action:      "push",
	}))
	n.logger.Info("notify.completed", "site", site.Host, "urls", len(urls), "sent", report.Sent, "failed", report.Failed)
	return report, nil
}
