// Package config provides configuration loading and validation for the CLI.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/ghanatheyakash/Resume-builder/internal/llm"
	"github.com/ghanatheyakash/Resume-builder/internal/logger"
)

// Config represents the CLI configuration that can be loaded from a JSON or YAML file.
// All fields are optional; missing values come from Defaults or CLI flags.
type Config struct {
	// Inputs
	Job          string   `json:"job,omitempty" yaml:"job,omitempty" validate:"omitempty,file"`
	Details      string   `json:"details,omitempty" yaml:"details,omitempty" validate:"omitempty,file"`
	JobURLs      []string `json:"job_urls,omitempty" yaml:"job_urls,omitempty" validate:"omitempty,dive,url"`
	URLsFile     string   `json:"urls_file,omitempty" yaml:"urls_file,omitempty" validate:"omitempty,file"`
	Template     string   `json:"template,omitempty" yaml:"template,omitempty"`
	TemplateFile string   `json:"template_file,omitempty" yaml:"template_file,omitempty" validate:"omitempty,file"`

	// Outputs
	OutputDir  string   `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`
	ResumesDir string   `json:"resumes_dir,omitempty" yaml:"resumes_dir,omitempty"`
	Formats    []string `json:"formats,omitempty" yaml:"formats,omitempty" validate:"omitempty,dive,oneof=html pdf"`

	// Backend
	Provider       string  `json:"provider,omitempty" yaml:"provider,omitempty" validate:"omitempty,oneof=ollama gemini"`
	BackendURL     string  `json:"backend_url,omitempty" yaml:"backend_url,omitempty" validate:"omitempty,url"`
	Model          string  `json:"model,omitempty" yaml:"model,omitempty"`
	APIKey         string  `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	TimeoutSeconds int     `json:"timeout_seconds,omitempty" yaml:"timeout_seconds,omitempty" validate:"gte=0"`
	MaxRetries     int     `json:"max_retries,omitempty" yaml:"max_retries,omitempty" validate:"gte=0,lte=10"`
	BackoffSeconds float64 `json:"backoff_seconds,omitempty" yaml:"backoff_seconds,omitempty" validate:"gte=0"`
	Temperature    float64 `json:"temperature,omitempty" yaml:"temperature,omitempty" validate:"gte=0,lte=2"`
	TopP           float64 `json:"top_p,omitempty" yaml:"top_p,omitempty" validate:"gte=0,lte=1"`
	NumPredict     int     `json:"num_predict,omitempty" yaml:"num_predict,omitempty" validate:"gte=0"`
	MaxAttempts    int     `json:"max_attempts,omitempty" yaml:"max_attempts,omitempty" validate:"gte=0,lte=10"`

	// Job fetching
	UseBrowser       bool   `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`
	FetchConcurrency int    `json:"fetch_concurrency,omitempty" yaml:"fetch_concurrency,omitempty" validate:"gte=0,lte=32"`
	ChromePath       string `json:"chrome_path,omitempty" yaml:"chrome_path,omitempty"`

	// Server
	Port      int    `json:"port,omitempty" yaml:"port,omitempty" validate:"gte=0,lte=65535"`
	JWTSecret string `json:"jwt_secret,omitempty" yaml:"jwt_secret,omitempty"`

	// Behavior
	DatabaseURL string `json:"database_url,omitempty" yaml:"database_url,omitempty"`
	LogLevel    string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=trace debug info warn error"`
	LogFormat   string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=json pretty"`
	Verbose     bool   `json:"verbose,omitempty" yaml:"verbose,omitempty"`
}

// Environment variables consulted by FromEnv
const (
	EnvBackendURL  = "OLLAMA_BASE_URL"
	EnvModel       = "OLLAMA_MODEL"
	EnvAPIKey      = "GEMINI_API_KEY"
	EnvDatabaseURL = "DATABASE_URL"
	EnvChromePath  = "CHROME_PATH"
	EnvJWTSecret   = "JWT_SECRET"
)

// Defaults returns the built-in configuration. Model is left empty so that each
// provider falls back to its own default model.
func Defaults() Config {
	return Config{
		Template:         "harvard",
		OutputDir:        "output",
		ResumesDir:       "resumes",
		Formats:          []string{"html", "pdf"},
		Provider:         string(llm.ProviderOllama),
		BackendURL:       llm.DefaultBaseURL,
		TimeoutSeconds:   int(llm.DefaultTimeout / time.Second),
		MaxRetries:       llm.DefaultMaxRetries,
		BackoffSeconds:   llm.DefaultBackoff.Seconds(),
		Temperature:      llm.DefaultTemperature,
		TopP:             llm.DefaultTopP,
		NumPredict:       llm.DefaultNumPredict,
		MaxAttempts:      2,
		FetchConcurrency: 4,
		Port:             8080,
		LogLevel:         "info",
		LogFormat:        logger.FormatPretty,
	}
}

// FromEnv returns a Config holding only the values found through lookup.
// The CLI passes os.Getenv; tests pass a map lookup.
func FromEnv(lookup func(string) string) Config {
	return Config{
		BackendURL:  lookup(EnvBackendURL),
		Model:       lookup(EnvModel),
		APIKey:      lookup(EnvAPIKey),
		DatabaseURL: lookup(EnvDatabaseURL),
		ChromePath:  lookup(EnvChromePath),
		JWTSecret:   lookup(EnvJWTSecret),
	}
}

// LoadConfig loads configuration from a JSON or YAML file, chosen by extension.
// Returns an error if the file cannot be read or parsed.
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	if !filepath.IsAbs(path) {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get current directory: %w", err)
		}
		path = filepath.Join(cwd, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})
	return v
}

// Validate checks that the configuration has valid values.
// Required inputs are checked by the commands after merging.
func (c *Config) Validate() error {
	if c.Job != "" && (len(c.JobURLs) > 0 || c.URLsFile != "") {
		return fmt.Errorf("config error: 'job' and 'job_urls'/'urls_file' are mutually exclusive")
	}

	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			msgs := make([]string, 0, len(fieldErrs))
			for _, fe := range fieldErrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("config error: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("config error: %w", err)
	}

	return nil
}

func describe(fe validator.FieldError) string {
	field := fe.Field()
	switch fe.Tag() {
	case "file":
		return fmt.Sprintf("'%s' file not found: %v", field, fe.Value())
	case "oneof":
		return fmt.Sprintf("'%s' must be one of [%s], got %v", field, fe.Param(), fe.Value())
	case "url":
		return fmt.Sprintf("'%s' must be a URL, got %v", field, fe.Value())
	case "gte", "lte":
		return fmt.Sprintf("'%s' must be %s %s", field, fe.Tag(), fe.Param())
	default:
		return fmt.Sprintf("'%s' failed '%s' check", field, fe.Tag())
	}
}

// MergeWithDefaults returns a new Config with empty fields filled from defaults.
// Bool fields cannot be told apart from false and are not merged.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	mergeString(&result.Job, defaults.Job)
	mergeString(&result.Details, defaults.Details)
	mergeString(&result.URLsFile, defaults.URLsFile)
	mergeString(&result.Template, defaults.Template)
	mergeString(&result.TemplateFile, defaults.TemplateFile)
	mergeString(&result.OutputDir, defaults.OutputDir)
	mergeString(&result.ResumesDir, defaults.ResumesDir)
	mergeString(&result.Provider, defaults.Provider)
	mergeString(&result.BackendURL, defaults.BackendURL)
	mergeString(&result.Model, defaults.Model)
	mergeString(&result.APIKey, defaults.APIKey)
	mergeString(&result.ChromePath, defaults.ChromePath)
	mergeString(&result.DatabaseURL, defaults.DatabaseURL)
	mergeString(&result.JWTSecret, defaults.JWTSecret)
	mergeString(&result.LogLevel, defaults.LogLevel)
	mergeString(&result.LogFormat, defaults.LogFormat)

	if len(result.JobURLs) == 0 {
		result.JobURLs = defaults.JobURLs
	}
	if len(result.Formats) == 0 {
		result.Formats = defaults.Formats
	}

	mergeInt(&result.TimeoutSeconds, defaults.TimeoutSeconds)
	mergeInt(&result.MaxRetries, defaults.MaxRetries)
	mergeInt(&result.NumPredict, defaults.NumPredict)
	mergeInt(&result.MaxAttempts, defaults.MaxAttempts)
	mergeInt(&result.FetchConcurrency, defaults.FetchConcurrency)
	mergeInt(&result.Port, defaults.Port)

	if result.BackoffSeconds == 0 {
		result.BackoffSeconds = defaults.BackoffSeconds
	}
	if result.Temperature == 0 {
		result.Temperature = defaults.Temperature
	}
	if result.TopP == 0 {
		result.TopP = defaults.TopP
	}

	return result
}

func mergeString(dst *string, fallback string) {
	if *dst == "" {
		*dst = fallback
	}
}

func mergeInt(dst *int, fallback int) {
	if *dst == 0 {
		*dst = fallback
	}
}

// LLMConfig builds the explicit backend configuration
func (c *Config) LLMConfig() *llm.Config {
	cfg := llm.DefaultConfig()
	if c.Provider == string(llm.ProviderGemini) {
		cfg = llm.DefaultGeminiConfig()
	}

	if c.BackendURL != "" && cfg.Provider == llm.ProviderOllama {
		cfg.BaseURL = c.BackendURL
	}
	if c.Model != "" {
		cfg.Model = c.Model
	}
	if c.TimeoutSeconds > 0 {
		cfg.Timeout = time.Duration(c.TimeoutSeconds) * time.Second
	}
	cfg.MaxRetries = c.MaxRetries
	if c.BackoffSeconds > 0 {
		cfg.Backoff = time.Duration(c.BackoffSeconds * float64(time.Second))
	}
	if c.Temperature > 0 {
		cfg.Temperature = c.Temperature
	}
	if c.TopP > 0 {
		cfg.TopP = c.TopP
	}
	if c.NumPredict > 0 {
		cfg.NumPredict = c.NumPredict
	}
	return cfg
}

// LoggerConfig builds the logger configuration
func (c *Config) LoggerConfig() logger.Config {
	level := c.LogLevel
	if c.Verbose {
		level = "debug"
	}
	return logger.Config{Level: level, Format: c.LogFormat}
}
