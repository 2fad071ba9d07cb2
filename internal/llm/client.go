package llm

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
)

// Client is an abstraction over generation backends
type Client interface {
	// Available reports whether the backend is reachable and serves the configured model
	Available(ctx context.Context) error
	// Generate returns the raw backend text for prompt
	Generate(ctx context.Context, prompt string) (string, error)
	// Model returns the configured model name
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// Option customises a client built by NewClient
type Option func(*options)

type options struct {
	httpClient *http.Client
	logger     zerolog.Logger
}

// WithHTTPClient sets the HTTP client used by HTTP based providers
func WithHTTPClient(c *http.Client) Option {
	return func(o *options) { o.httpClient = c }
}

// WithLogger sets the logger used to report failed tries
func WithLogger(l zerolog.Logger) Option {
	return func(o *options) { o.logger = l }
}

func buildOptions(opts []Option) options {
	o := options{httpClient: &http.Client{}, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// NewClient creates a client for the configured provider
func NewClient(ctx context.Context, config *Config, apiKey string, opts ...Option) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid backend config: %w", err)
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config, apiKey, opts...)
	default:
		return NewOllamaClient(config, opts...)
	}
}

// withRetries runs try once plus maxRetries more times, waiting a constant backoff
// between failures. It returns the number of tries made.
func withRetries(ctx context.Context, config *Config, log zerolog.Logger, try func(ctx context.Context) error) (int, error) {
	maxRetries := config.MaxRetries
	if maxRetries < 0 {
		maxRetries = 0
	}
	wait := config.Backoff
	if wait <= 0 {
		wait = time.Nanosecond
	}

	tries := 0
	b := retry.WithMaxRetries(uint64(maxRetries), retry.NewConstant(wait))
	err := retry.Do(ctx, b, func(ctx context.Context) error {
		tries++
		if err := try(ctx); err != nil {
			if !isRetryable(err) {
				return err
			}
			log.Warn().Err(err).Int("try", tries).Int("max_tries", maxRetries+1).Msg("generation try failed")
			return retry.RetryableError(err)
		}
		return nil
	})
	return tries, err
}

// permanentError marks a failure that another try cannot fix
type permanentError struct {
	err error
}

func (e *permanentError) Error() string { return e.err.Error() }
func (e *permanentError) Unwrap() error { return e.err }

func isRetryable(err error) bool {
	_, permanent := err.(*permanentError)
	return !permanent
}
