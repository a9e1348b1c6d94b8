package notify

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/goliatone/go-sitepub/internal/logging"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

// ProviderIndexNow names the IndexNow provider.
const ProviderIndexNow = "indexnow"

// DefaultIndexNowEndpoint is the shared IndexNow API.
const DefaultIndexNowEndpoint = "https://api.indexnow.org/IndexNow"

// IndexNowConfig configures the IndexNow notifier.
type IndexNowConfig struct {
	Endpoint string
	Key      string
}

// IndexNowPayload is the JSON body accepted by IndexNow.
type IndexNowPayload struct {
	Host        string   `json:"host"`
	Key         string   `json:"key"`
	KeyLocation string   `json:"keyLocation"`
	URLList     []string `json:"urlList"`
}

// IndexNowNotifier submits updated URLs to IndexNow in one JSON call.
type IndexNowNotifier struct {
	cfg    IndexNowConfig
	client interfaces.HTTPDoer
	logger interfaces.Logger
}

var _ interfaces.Notifier = (*IndexNowNotifier)(nil)

// NewIndexNowNotifier validates cfg and builds the notifier.
func NewIndexNowNotifier(cfg IndexNowConfig, opts ...Option) (*IndexNowNotifier, error) {
	if strings.TrimSpace(cfg.Key) == "" {
		return nil, ErrTokenRequired
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultIndexNowEndpoint
	}
	resolved := resolveOptions(opts)
	return &IndexNowNotifier{
		cfg:    cfg,
		client: resolved.httpClient(),
		logger: logging.WithProvider(resolved.logger, ProviderIndexNow),
	}, nil
}

// Provider implements interfaces.Notifier.
func (n *IndexNowNotifier) Provider() string { return ProviderIndexNow }

// Notify submits the updated URLs with the key file hosted at the site root.
// Removed URLs are ignored.
func (n *IndexNowNotifier) Notify(ctx context.Context, req interfaces.NotifyRequest) (*interfaces.NotifyReport, error) {
	report := &interfaces.NotifyReport{Provider: ProviderIndexNow}
	urls := cleanURLs(req.Updated)
	if len(urls) == 0 {
		n.logger.Info("notify.skipped", "reason", "no urls")
		return report, nil
	}
	site, err := dominantSite(urls)
	if err != nil {
		return nil, err
	}

	body, err := json.Marshal(IndexNowPayload{
		Host:        site.Host,
		Key:         n.cfg.Key,
		KeyLocation: site.URL(n.cfg.Key + ".txt"),
		URLList:     urls,
	})
	if err != nil {
		return nil, err
	}

	report.Record(post(ctx, n.client, n.logger, call{
		endpoint:    n.cfg.Endpoint,
		contentType: "application/json; charset=utf-8",
		body:        body,
		url:         site.String(),
		action:      "submit",
	}))
	n.logger.Info("notify.completed", "site", site.Host, "urls", len(urls), "sent", report.Sent, "failed", report.Failed)
	return report, nil
}
