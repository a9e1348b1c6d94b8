package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"golang.org/x/oauth2/google"
	"golang.org/x/time/rate"

	"github.com/goliatone/go-sitepub/internal/logging"
	"github.com/goliatone/go-sitepub/pkg/interfaces"
)

// ProviderGoogle names the Google Indexing API provider.
const ProviderGoogle = "google"

const (
	DefaultGoogleEndpoint = "https://indexing.googleapis.com/v3/urlNotifications:publish"
	GoogleIndexingScope   = "https://www.googleapis.com/auth/indexing"

	ActionURLUpdated = "URL_UPDATED"
	ActionURLDeleted = "URL_DELETED"
)

// GoogleConfig configures the Google notifier.
type GoogleConfig struct {
	Endpoint string
	Scopes   []string
	// RequestsPerMinute paces calls client-side; zero disables pacing.
	RequestsPerMinute int
}

// GoogleNotification is the JSON body of one publish call.
type GoogleNotification struct {
	URL  string `json:"url"`
	Type string `json:"type"`
}

// GoogleNotifier publishes one notification per URL using service-account
// credentials.
type GoogleNotifier struct {
	cfg     GoogleConfig
	client  interfaces.HTTPDoer
	logger  interfaces.Logger
	limiter *rate.Limiter
}

var _ interfaces.Notifier = (*GoogleNotifier)(nil)

// NewGoogleNotifier validates the service-account key and builds an
// OAuth2-authorised client from it. WithHTTPClient bypasses the OAuth2
// client, the key is still validated. ctx scopes token refreshes.
func NewGoogleNotifier(ctx context.Context, cfg GoogleConfig, credentials []byte, opts ...Option) (*GoogleNotifier, error) {
	if err := ValidateCredentials(credentials); err != nil {
		return nil, err
	}
	if strings.TrimSpace(cfg.Endpoint) == "" {
		cfg.Endpoint = DefaultGoogleEndpoint
	}
	if len(cfg.Scopes) == 0 {
		cfg.Scopes = []string{GoogleIndexingScope}
	}

	resolved := resolveOptions(opts)
	client := resolved.client
	if client == nil {
		jwtConfig, err := google.JWTConfigFromJSON(credentials, cfg.Scopes...)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidCredentials, err)
		}
		httpClient := jwtConfig.Client(ctx)
		httpClient.Timeout = resolved.timeout
		client = httpClient
	}

	notifier := &GoogleNotifier{
		cfg:    cfg,
		client: client,
		logger: logging.WithProvider(resolved.logger, ProviderGoogle),
	}
	if cfg.RequestsPerMinute > 0 {
		notifier.limiter = rate.NewLimiter(rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)), 1)
	}
	return notifier, nil
}

// Provider implements interfaces.Notifier.
func (n *GoogleNotifier) Provider() string { return ProviderGoogle }

// Notify publishes URL_UPDATED for every updated URL, then URL_DELETED for
// every removed URL. Only context cancellation stops the run early.
func (n *GoogleNotifier) Notify(ctx context.Context, req interfaces.NotifyRequest) (*interfaces.NotifyReport, error) {
	report := &interfaces.NotifyReport{Provider: ProviderGoogle}
	batches := []struct {
		action string
		urls   []string
	}{
		{ActionURLUpdated, cleanURLs(req.Updated)},
		{ActionURLDeleted, cleanURLs(req.Removed)},
	}

	for _, batch := range batches {
		for _, u := range batch.urls {
			if n.limiter != nil {
				if err := n.limiter.Wait(ctx); err != nil {
					return report, err
				}
			} else if err := ctx.Err(); err != nil {
				return report, err
			}

			body, err := json.Marshal(GoogleNotification{URL: u, Type: batch.action})
			if err != nil {
				return report, err
			}
			report.Record(post(ctx, n.client, n.logger, call{
				endpoint:    n.cfg.Endpoint,
				contentType: "application/json",
				body:        body,
				url:         u,
				action:      batch.action,
			}))
		}
	}

	n.logger.Info("notify.completed",
		"updated", len(batches[0].urls),
		"removed", len(batches[1].urls),
		"sent", report.Sent,
		"failed", report.Failed,
	)
	return report, nil
}
