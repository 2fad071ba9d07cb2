// Package llm talks to the text generation backends that draft resume documents.
// Configuration is passed explicitly to each client; nothing is read from the environment here.
package llm

import (
	"fmt"
	"time"
)

// Provider identifies a generation backend
type Provider string

// Supported providers
const (
	// ProviderOllama is a local Ollama server
	ProviderOllama Provider = "ollama"
	// ProviderGemini is Google Gemini
	ProviderGemini Provider = "gemini"
)

// Defaults for a local Ollama install
const (
	DefaultBaseURL      = "http://localhost:11434"
	DefaultModel        = "llama3.2"
	DefaultGeminiModel  = "gemini-2.0-flash"
	DefaultTimeout      = 120 * time.Second
	DefaultProbeTimeout = 10 * time.Second
	DefaultMaxRetries   = 2
	DefaultBackoff      = 2 * time.Second
	DefaultTemperature  = 0.3
	DefaultTopP         = 0.9
	DefaultNumPredict   = 2048
)

// Config holds everything a client needs to reach its backend
type Config struct {
	Provider Provider
	BaseURL  string
	Model    string

	// Timeout bounds a single generation request
	Timeout time.Duration
	// ProbeTimeout bounds the availability probe
	ProbeTimeout time.Duration
	// MaxRetries is the number of additional tries after the first one
	MaxRetries int
	// Backoff is the constant wait between tries
	Backoff time.Duration

	Temperature float64
	TopP        float64
	NumPredict  int
}

// DefaultConfig returns the default Ollama configuration
func DefaultConfig() *Config {
	return &Config{
		Provider:     ProviderOllama,
		BaseURL:      DefaultBaseURL,
		Model:        DefaultModel,
		Timeout:      DefaultTimeout,
		ProbeTimeout: DefaultProbeTimeout,
		MaxRetries:   DefaultMaxRetries,
		Backoff:      DefaultBackoff,
		Temperature:  DefaultTemperature,
		TopP:         DefaultTopP,
		NumPredict:   DefaultNumPredict,
	}
}

// DefaultGeminiConfig returns the default Gemini configuration
func DefaultGeminiConfig() *Config {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	cfg.BaseURL = ""
	cfg.Model = DefaultGeminiModel
	return cfg
}

// WithModel returns a copy of c using model
func (c *Config) WithModel(model string) *Config {
	out := *c
	out.Model = model
	return &out
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	switch c.Provider {
	case ProviderOllama:
		if c.BaseURL == "" {
			return fmt.Errorf("base URL is required for provider %s", c.Provider)
		}
	case ProviderGemini:
	default:
		return fmt.Errorf("unsupported provider %q", c.Provider)
	}
	if c.Model == "" {
		return fmt.Errorf("model is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxRetries < 0 {
		return fmt.Errorf("max retries must not be negative, got %d", c.MaxRetries)
	}
	if c.Backoff < 0 {
		return fmt.Errorf("backoff must not be negative, got %s", c.Backoff)
	}
	return nil
}
