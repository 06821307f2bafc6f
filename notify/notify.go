// Package notify delivers workflow results to an external endpoint.
//
// The [Webhook] sink POSTs a JSON payload and treats any non-2xx status as a
// failure. Failures are logged and reported to an optional handler, but never
// returned: a failed notification must not fail the workflow that produced it.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// DefaultTimeout bounds a single delivery attempt.
const DefaultTimeout = 10 * time.Second

// NotificationError describes a delivery that did not succeed.
// StatusCode is 0 when no response was received.
type NotificationError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *NotificationError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("notify %s: status %d: %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("notify %s: %v", e.URL, e.Err)
}

func (e *NotificationError) Unwrap() error { return e.Err }

// ErrUnexpectedStatus is wrapped by a NotificationError for non-2xx responses.
var ErrUnexpectedStatus = errors.New("unexpected status")

// Option configures a Webhook.
type Option func(*Webhook)

// WithTimeout sets the per-delivery timeout. Non-positive values are ignored.
func WithTimeout(d time.Duration) Option {
	return func(w *Webhook) {
		if d > 0 {
			w.timeout = d
		}
	}
}

// WithHTTPClient replaces the HTTP client used for delivery.
func WithHTTPClient(c *http.Client) Option {
	return func(w *Webhook) {
		if c != nil {
			w.client = c
		}
	}
}

// WithLogger sets the logger used to record failed deliveries.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Webhook) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// WithErrorHandler registers fn to be called with every failed delivery.
func WithErrorHandler(fn func(*NotificationError)) Option {
	return func(w *Webhook) {
		w.onError = fn
	}
}

// Webhook posts JSON payloads to a fixed URL. It is safe for concurrent use.
type Webhook struct {
	url     string
	client  *http.Client
	timeout time.Duration
	logger  *slog.Logger
	onError func(*NotificationError)
}

// NewWebhook creates a sink for url.
func NewWebhook(url string, opts ...Option) *Webhook {
	w := &Webhook{
		url:     url,
		client:  http.DefaultClient,
		timeout: DefaultTimeout,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// URL returns the delivery endpoint.
func (w *Webhook) URL() string { return w.url }

// Notify delivers payload. Any failure is logged and passed to the error
// handler; Notify itself always returns normally.
func (w *Webhook) Notify(ctx context.Context, payload any) {
	err := w.Deliver(ctx, payload)
	if err == nil {
		return
	}

	w.logger.WarnContext(ctx, "webhook delivery failed",
		"url", w.url,
		"status", err.StatusCode,
		"error", err.Err,
	)
	if w.onError != nil {
		w.onError(err)
	}
}

// Deliver performs one POST and reports the outcome.
func (w *Webhook) Deliver(ctx context.Context, payload any) *NotificationError {
	body, err := json.Marshal(payload)
	if err != nil {
		return &NotificationError{URL: w.url, Err: fmt.Errorf("encoding payload: %w", err)}
	}

	ctx, cancel := context.WithTimeout(ctx, w.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
	if err != nil {
		return &NotificationError{URL: w.url, Err: err}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return &NotificationError{URL: w.url, Err: err}
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 64<<10))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &NotificationError{
			URL:        w.url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("%w %s", ErrUnexpectedStatus, resp.Status),
		}
	}
	return nil
}
