package client

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	ai "github.com/spetersoncode/mailroute"
	"github.com/spetersoncode/mailroute/internal/provider/anthropic"
	"github.com/spetersoncode/mailroute/internal/provider/google"
	"github.com/spetersoncode/mailroute/internal/provider/openai"
	"github.com/spetersoncode/mailroute/internal/retry"
)

// RetryConfig holds retry configuration parameters.
type RetryConfig = retry.Config

// DefaultRetryConfig returns the default retry configuration.
func DefaultRetryConfig() RetryConfig { return retry.DefaultConfig() }

// DisabledRetryConfig returns a configuration that makes a single attempt.
func DisabledRetryConfig() RetryConfig { return retry.Disabled() }

// Config selects and authenticates a provider.
type Config struct {
	Provider ai.Provider
	APIKey   string

	// Model overrides the provider's default chat model.
	Model string
}

// ErrMissingAPIKey is returned when no API key is configured for the provider.
type ErrMissingAPIKey struct {
	Provider ai.Provider
}

func (e *ErrMissingAPIKey) Error() string {
	return fmt.Sprintf("no API key configured for %s", e.Provider)
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRetryConfig replaces the default retry behaviour.
func WithRetryConfig(cfg RetryConfig) ClientOption {
	return func(c *Client) {
		c.retry = cfg
	}
}

// WithLogger sets the logger used to report retries.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithDefaultTemperature sets the default temperature for requests.
// Per-request options override this default.
func WithDefaultTemperature(t float64) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, ai.WithTemperature(t))
	}
}

// WithDefaultMaxTokens sets the default max tokens for requests.
func WithDefaultMaxTokens(n int) ClientOption {
	return func(c *Client) {
		c.defaultOpts = append(c.defaultOpts, ai.WithMaxTokens(n))
	}
}

// Client implements the generation port over a single ChatProvider.
// It is safe for concurrent use.
type Client struct {
	provider    ai.ChatProvider
	retry       retry.Config
	logger      *slog.Logger
	defaultOpts []ai.Option
}

// New creates the provider named by cfg and wraps it in a Client.
func New(ctx context.Context, cfg Config, opts ...ClientOption) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, &ErrMissingAPIKey{Provider: cfg.Provider}
	}

	var provider ai.ChatProvider
	switch cfg.Provider {
	case ai.ProviderGoogle, "":
		g, err := google.New(ctx, cfg.APIKey, google.WithModel(google.ChatModel(cfg.Model)))
		if err != nil {
			return nil, fmt.Errorf("creating google client: %w", err)
		}
		provider = g
	case ai.ProviderOpenAI:
		provider = openai.New(cfg.APIKey, openai.WithModel(openai.ChatModel(cfg.Model)))
	case ai.ProviderAnthropic:
		provider = anthropic.New(cfg.APIKey, anthropic.WithModel(anthropic.ChatModel(cfg.Model)))
	default:
		return nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}

	return NewWithProvider(provider, opts...), nil
}

// NewWithProvider wraps an existing ChatProvider.
func NewWithProvider(provider ai.ChatProvider, opts ...ClientOption) *Client {
	c := &Client{
		provider: provider,
		retry:    retry.DefaultConfig(),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Chat sends a conversation to the provider, retrying transient failures.
// Per-request options are applied after the client defaults.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	all := make([]ai.Option, 0, len(c.defaultOpts)+len(opts))
	all = append(all, c.defaultOpts...)
	all = append(all, opts...)

	cfg := c.retry
	cfg.OnRetry = func(attempt int, delay time.Duration, err error) {
		c.logger.Warn("retrying provider call",
			"attempt", attempt,
			"delay", delay,
			"error", err,
		)
	}

	return retry.Do(ctx, cfg, func(ctx context.Context) (*ai.Response, error) {
		return c.provider.Chat(ctx, messages, all...)
	})
}
