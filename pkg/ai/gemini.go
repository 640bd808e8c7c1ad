// Package ai wraps the Gemini client behind a small text-completion
// interface so domain code never imports the SDK directly.
package ai

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/time/rate"
	"google.golang.org/genai"
)

const maxElapsedRetryTime = 30 * time.Second

// Client calls the Gemini API with client-side rate limiting and
// exponential-backoff retries on transient failures.
type Client struct {
	client  *genai.Client
	model   string
	limiter *rate.Limiter
	retries uint64
	logger  *slog.Logger
}

// Options tune the client. Zero values get sensible defaults.
type Options struct {
	Model              string
	RateLimitPerMinute int
	MaxRetries         int
	Logger             *slog.Logger
}

// NewClient creates a Gemini-backed completer. The API key is read from the
// environment by the SDK (GEMINI_API_KEY or Vertex credentials).
func NewClient(ctx context.Context, opts Options) (*Client, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	if opts.Model == "" {
		opts.Model = "gemini-2.0-flash"
	}
	if opts.RateLimitPerMinute <= 0 {
		opts.RateLimitPerMinute = 15
	}
	if opts.MaxRetries <= 0 {
		opts.MaxRetries = 3
	}
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	return &Client{
		client:  client,
		model:   opts.Model,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(opts.RateLimitPerMinute)), 1),
		retries: uint64(opts.MaxRetries),
		logger:  opts.Logger,
	}, nil
}

// Complete sends the prompt and returns the model's text reply. It waits on
// the rate limiter first and retries transient failures with exponential
// backoff; ctx cancels both the wait and the retries.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: prompt}},
		},
	}

	var text string
	operation := func() error {
		resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
		if err != nil {
			c.logger.Debug("model call failed, retrying", slog.Any("error", err))
			return err
		}
		text = resp.Text()
		return nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = maxElapsedRetryTime
	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(policy, c.retries), ctx))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return text, nil
}
