package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/ghanatheyakash/Resume-builder/internal/acquisition"
	"github.com/ghanatheyakash/Resume-builder/internal/config"
	"github.com/ghanatheyakash/Resume-builder/internal/db"
	"github.com/ghanatheyakash/Resume-builder/internal/export"
	"github.com/ghanatheyakash/Resume-builder/internal/llm"
	"github.com/ghanatheyakash/Resume-builder/internal/logger"
	"github.com/ghanatheyakash/Resume-builder/internal/observability"
	"github.com/ghanatheyakash/Resume-builder/internal/pipeline"
)

// backendFlags are the generation backend settings accepted by several commands
type backendFlags struct {
	provider    string
	backendURL  string
	model       string
	apiKey      string
	timeout     int
	maxRetries  int
	maxAttempts int
	databaseURL string
}

func (b *backendFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&b.provider, "provider", "", "Generation backend: ollama or gemini")
	cmd.Flags().StringVar(&b.backendURL, "backend-url", "", "Ollama base URL (defaults to OLLAMA_BASE_URL or http://localhost:11434)")
	cmd.Flags().StringVar(&b.model, "model", "", "Model name (defaults to OLLAMA_MODEL or the provider default)")
	cmd.Flags().StringVar(&b.apiKey, "api-key", "", "Gemini API key (defaults to GEMINI_API_KEY)")
	cmd.Flags().IntVar(&b.timeout, "timeout", 0, "Backend request timeout in seconds")
	cmd.Flags().IntVar(&b.maxRetries, "max-retries", 0, "Retries per backend call")
	cmd.Flags().IntVar(&b.maxAttempts, "max-attempts", 0, "Generate/validate attempts per resume")
	cmd.Flags().StringVar(&b.databaseURL, "db-url", "", "PostgreSQL URL for run history (defaults to DATABASE_URL)")
}

func (b *backendFlags) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("provider") {
		cfg.Provider = b.provider
	}
	if flags.Changed("backend-url") {
		cfg.BackendURL = b.backendURL
	}
	if flags.Changed("model") {
		cfg.Model = b.model
	}
	if flags.Changed("api-key") {
		cfg.APIKey = b.apiKey
	}
	if flags.Changed("timeout") {
		cfg.TimeoutSeconds = b.timeout
	}
	if flags.Changed("max-retries") {
		cfg.MaxRetries = b.maxRetries
	}
	if flags.Changed("max-attempts") {
		cfg.MaxAttempts = b.maxAttempts
	}
	if flags.Changed("db-url") {
		cfg.DatabaseURL = b.databaseURL
	}
}

// loadConfig resolves the configuration: flags override the config file, which
// overrides the environment, which overrides the built-in defaults.
func loadConfig(cmd *cobra.Command, root *rootOptions, overrides func(*config.Config)) (config.Config, error) {
	var cfg config.Config
	if root.configPath != "" {
		loaded, err := config.LoadConfig(root.configPath)
		if err != nil {
			return cfg, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = *loaded
	}

	if overrides != nil {
		overrides(&cfg)
	}
	flags := cmd.Flags()
	if flags.Changed("verbose") {
		cfg.Verbose = root.verbose
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = root.logLevel
	}
	if flags.Changed("log-format") {
		cfg.LogFormat = root.logFormat
	}

	cfg = cfg.MergeWithDefaults(config.FromEnv(os.Getenv))
	cfg = cfg.MergeWithDefaults(config.Defaults())
	// zero is a valid retry count but reads as unset to the merge
	if flags.Changed("max-retries") {
		if n, err := flags.GetInt("max-retries"); err == nil {
			cfg.MaxRetries = n
		}
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func newLogger(cfg config.Config) zerolog.Logger {
	return logger.New(cfg.LoggerConfig(), os.Stderr)
}

// newAcquirer builds the acquisition loop. When the backend cannot be constructed
// the loop still runs on the fallback parser.
func newAcquirer(ctx context.Context, cfg config.Config, log zerolog.Logger) (*acquisition.Acquirer, func()) {
	client, err := llm.NewClient(ctx, cfg.LLMConfig(), cfg.APIKey, llm.WithLogger(log))
	if err != nil {
		log.Warn().Err(err).Msg("generation backend not configured, using fallback parser only")
		client = nil
	}

	acquirer := acquisition.New(client, log)
	acquirer.MaxAttempts = cfg.MaxAttempts
	return acquirer, func() {
		if client != nil {
			_ = client.Close()
		}
	}
}

// openStore connects to the run database when one is configured. Connection
// failures are logged and the command continues without persistence.
func openStore(ctx context.Context, cfg config.Config, log zerolog.Logger) *db.DB {
	if cfg.DatabaseURL == "" {
		return nil
	}
	database, err := db.Connect(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Warn().Err(err).Msg("continuing without database persistence")
		return nil
	}
	if err := database.Migrate(ctx); err != nil {
		log.Warn().Err(err).Msg("continuing without database persistence")
		database.Close()
		return nil
	}
	return database
}

func baseRunOptions(cfg config.Config, acquirer *acquisition.Acquirer, out io.Writer, log zerolog.Logger) pipeline.RunOptions {
	return pipeline.RunOptions{
		Template:     cfg.Template,
		TemplatePath: cfg.TemplateFile,
		Formats:      cfg.Formats,
		OutputDir:    cfg.OutputDir,
		ResumesDir:   cfg.ResumesDir,
		Acquirer:     acquirer,
		PDF:          export.Options{ChromePath: cfg.ChromePath},
		Printer:      observability.NewPrinter(out),
		Logger:       log,
		Verbose:      cfg.Verbose,
	}
}

func readTextFile(path, what string) (string, error) {
	if path == "" {
		return "", fmt.Errorf("--%s is required", what)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read %s file: %w", what, err)
	}
	return string(data), nil
}

// readURLs reads one URL per line, skipping blank lines and # comments.
func readURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		urls = append(urls, line)
	}
	return urls, scanner.Err()
}
