package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/ghanatheyakash/Resume-builder/internal/config"
	"github.com/ghanatheyakash/Resume-builder/internal/fetch"
	"github.com/ghanatheyakash/Resume-builder/internal/server"
	"github.com/ghanatheyakash/Resume-builder/internal/server/ratelimit"
)

type serveOptions struct {
	port       int
	jwtSecret  string
	template   string
	formats    []string
	output     string
	resumesDir string
	chromePath string
	useBrowser bool
	backend    backendFlags
}

func newServeCmd(root *rootOptions) *cobra.Command {
	opts := &serveOptions{}
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Serves resume generation and management over HTTP.

When a JWT secret is set (--jwt-secret or JWT_SECRET) every endpoint except /health
requires a bearer token created with the token command. Rate limits are read from
the RATE_LIMIT_* environment variables.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, root, opts)
		},
	}

	cmd.Flags().IntVarP(&opts.port, "port", "p", 0, "Port to listen on (default 8080)")
	cmd.Flags().StringVar(&opts.jwtSecret, "jwt-secret", "", "Secret for bearer tokens (defaults to JWT_SECRET)")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Default template")
	cmd.Flags().StringSliceVar(&opts.formats, "formats", nil, "Default output formats: html, pdf")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Directory for resumes generated from a job description")
	cmd.Flags().StringVar(&opts.resumesDir, "resumes-dir", "", "Directory for resumes generated from job URLs")
	cmd.Flags().StringVar(&opts.chromePath, "chrome-path", "", "Chrome executable (defaults to CHROME_PATH)")
	cmd.Flags().BoolVar(&opts.useBrowser, "use-browser", false, "Render job pages in headless Chrome when plain HTTP returns too little text")
	opts.backend.register(cmd)
	return cmd
}

func (o *serveOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("port") {
		cfg.Port = o.port
	}
	if flags.Changed("jwt-secret") {
		cfg.JWTSecret = o.jwtSecret
	}
	if flags.Changed("template") {
		cfg.Template = o.template
	}
	if flags.Changed("formats") {
		cfg.Formats = o.formats
	}
	if flags.Changed("output") {
		cfg.OutputDir = o.output
	}
	if flags.Changed("resumes-dir") {
		cfg.ResumesDir = o.resumesDir
	}
	if flags.Changed("chrome-path") {
		cfg.ChromePath = o.chromePath
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = o.useBrowser
	}
	o.backend.apply(cmd, cfg)
}

func runServe(cmd *cobra.Command, root *rootOptions, opts *serveOptions) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(cmd, root, func(c *config.Config) { opts.apply(cmd, c) })
	if err != nil {
		return err
	}
	srv, cleanup, err := buildServer(ctx, cfg)
	if err != nil {
		return err
	}
	defer cleanup()
	return srv.Start(ctx)
}

// buildServer wires the server from the resolved configuration.
func buildServer(ctx context.Context, cfg config.Config) (*server.Server, func(), error) {
	log := newLogger(cfg)
	acquirer, closeClient := newAcquirer(ctx, cfg, log)
	cleanups := []func(){closeClient}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.UseBrowser = cfg.UseBrowser
	fetchOpts.ChromePath = cfg.ChromePath
	fetchOpts.Logger = log

	serverCfg := server.Config{
		Port:      cfg.Port,
		Options:   baseRunOptions(cfg, acquirer, nil, log),
		Fetch:     fetchOpts,
		RateLimit: ratelimit.LoadConfig(os.Getenv),
		Logger:    log,
	}
	if store := openStore(ctx, cfg, log); store != nil {
		cleanups = append(cleanups, store.Close)
		serverCfg.Runs = store
	}
	if cfg.JWTSecret != "" {
		tokens, err := server.NewTokenService(cfg.JWTSecret)
		if err != nil {
			cleanup()
			return nil, nil, err
		}
		serverCfg.Tokens = tokens
	} else {
		log.Warn().Msg("no JWT secret configured, the API is unauthenticated")
	}

	srv, err := server.New(serverCfg)
	if err != nil {
		cleanup()
		return nil, nil, err
	}
	return srv, cleanup, nil
}
