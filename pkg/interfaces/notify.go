package interfaces

import (
	"context"
	"net/http"
)

// HTTPDoer is the subset of *http.Client used by the notifiers.
type HTTPDoer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Notifier pushes URL changes to a search-engine indexing endpoint. Delivery
// failures are reported through the NotifyReport rather than the error
// return, which is reserved for problems preparing the request.
type Notifier interface {
	Provider() string
	Notify(ctx context.Context, req NotifyRequest) (*NotifyReport, error)
}

// NotifyRequest carries the URLs to announce. Providers without a deletion
// concept ignore Removed.
type NotifyRequest struct {
	Updated []string
	Removed []string
}

// NotifyOutcome records the response of a single provider call.
type NotifyOutcome struct {
	URL        string
	Action     string
	StatusCode int
	Body       string
	Err        error
}

// OK reports whether the call reached the provider and returned 2xx.
func (o NotifyOutcome) OK() bool {
	return o.Err == nil && o.StatusCode >= 200 && o.StatusCode < 300
}

// NotifyReport aggregates the outcomes of a notifier run.
type NotifyReport struct {
	Provider string
	Sent     int
	Failed   int
	Outcomes []NotifyOutcome
}

// Record appends an outcome and updates the counters.
func (r *NotifyReport) Record(outcome NotifyOutcome) {
	if r == nil {
		return
	}
	r.Outcomes = append(r.Outcomes, outcome)
	if outcome.OK() {
		r.Sent++
		return
	}
	r.Failed++
}
