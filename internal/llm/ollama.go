package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
)

// OllamaClient implements Client for an Ollama server
type OllamaClient struct {
	config     *Config
	httpClient *http.Client
	logger     zerolog.Logger
}

type generateRequest struct {
	Model   string          `json:"model"`
	Prompt  string          `json:"prompt"`
	Stream  bool            `json:"stream"`
	Options generateOptions `json:"options"`
}

type generateOptions struct {
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	NumPredict  int     `json:"num_predict"`
}

type generateResponse struct {
	Response string `json:"response"`
}

type tagsResponse struct {
	Models []struct {
		Name string `json:"name"`
	} `json:"models"`
}

// NewOllamaClient creates a client for the server at config.BaseURL
func NewOllamaClient(config *Config, opts ...Option) (*OllamaClient, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.BaseURL == "" {
		return nil, fmt.Errorf("base URL is required")
	}

	o := buildOptions(opts)
	return &OllamaClient{
		config:     config,
		httpClient: o.httpClient,
		logger:     o.logger,
	}, nil
}

// Models lists the model names the server has installed
func (c *OllamaClient) Models(ctx context.Context) ([]string, error) {
	timeout := c.config.ProbeTimeout
	if timeout <= 0 {
		timeout = DefaultProbeTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/api/tags"), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create tags request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach %s: %w", c.config.BaseURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tags request returned HTTP %d", resp.StatusCode)
	}

	var tags tagsResponse
	if err := json.NewDecoder(resp.Body).Decode(&tags); err != nil {
		return nil, fmt.Errorf("failed to decode tags response: %w", err)
	}

	names := make([]string, 0, len(tags.Models))
	for _, m := range tags.Models {
		names = append(names, m.Name)
	}
	return names, nil
}

// Available probes the server and checks that the configured model is installed.
// A model matches when its name contains the configured model name.
func (c *OllamaClient) Available(ctx context.Context) error {
	names, err := c.Models(ctx)
	if err != nil {
		return &UnavailableError{Model: c.config.Model, Message: "probe failed", Cause: err}
	}

	for _, name := range names {
		if strings.Contains(name, c.config.Model) {
			return nil
		}
	}
	return &UnavailableError{
		Model:   c.config.Model,
		Message: fmt.Sprintf("model not installed (found %d models)", len(names)),
	}
}

// Generate posts prompt to /api/generate. Timeouts, connection failures and
// non-200 responses are retried after a constant backoff. Any 200 response is
// returned as is, including an empty one.
func (c *OllamaClient) Generate(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(generateRequest{
		Model:  c.config.Model,
		Prompt: prompt,
		Stream: false,
		Options: generateOptions{
			Temperature: c.config.Temperature,
			TopP:        c.config.TopP,
			NumPredict:  c.config.NumPredict,
		},
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal generate request: %w", err)
	}

	var text string
	tries, err := withRetries(ctx, c.config, c.logger, func(ctx context.Context) error {
		out, err := c.generateOnce(ctx, body)
		if err != nil {
			return err
		}
		text = out
		return nil
	})
	if err != nil {
		return "", &CallError{Message: "ollama generate", Tries: tries, Cause: err}
	}

	c.logger.Debug().Int("tries", tries).Int("chars", len(text)).Msg("ollama generate succeeded")
	return text, nil
}

func (c *OllamaClient) generateOnce(ctx context.Context, body []byte) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.config.Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint("/api/generate"), bytes.NewReader(body))
	if err != nil {
		return "", &permanentError{err: fmt.Errorf("failed to create generate request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("generate request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("generate returned HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var out generateResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		// a malformed 200 body is not retried
		return "", &permanentError{err: fmt.Errorf("failed to decode generate response: %w", err)}
	}
	return out.Response, nil
}

// Model returns the configured model name
func (c *OllamaClient) Model() string {
	return c.config.Model
}

// Close releases idle connections
func (c *OllamaClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *OllamaClient) endpoint(path string) string {
	return strings.TrimRight(c.config.BaseURL, "/") + path
}
