package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ghanatheyakash/Resume-builder/internal/acquisition"
	"github.com/ghanatheyakash/Resume-builder/internal/config"
	"github.com/ghanatheyakash/Resume-builder/internal/observability"
	"github.com/ghanatheyakash/Resume-builder/internal/pipeline"
)

type generateOptions struct {
	job          string
	details      string
	template     string
	templateFile string
	output       string
	formats      []string
	chromePath   string
	backend      backendFlags
}

func newGenerateCmd(root *rootOptions) *cobra.Command {
	opts := &generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a resume from a job description and candidate details",
		Long: `Reads a job description and free-text candidate details, produces a validated
structured resume, and renders it with the chosen template.

Configuration can be loaded with --config. Command-line arguments override config file values.`,
		Example: `  resume_builder generate --job job_description.txt --details user_details.txt --template harvard`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runGenerate(cmd, root, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.job, "job", "j", "", "Path to the job description text file")
	cmd.Flags().StringVarP(&opts.details, "details", "d", "", "Path to the candidate details text file")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Template: harvard, enhancv or resumeio")
	cmd.Flags().StringVar(&opts.templateFile, "template-file", "", "Path to a custom HTML template (overrides --template)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Output directory")
	cmd.Flags().StringSliceVar(&opts.formats, "formats", nil, "Output formats: html, pdf")
	cmd.Flags().StringVar(&opts.chromePath, "chrome-path", "", "Chrome executable used for PDF export (defaults to CHROME_PATH)")
	opts.backend.register(cmd)
	return cmd
}

func (o *generateOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("job") {
		cfg.Job = o.job
	}
	if flags.Changed("details") {
		cfg.Details = o.details
	}
	if flags.Changed("template") {
		cfg.Template = o.template
	}
	if flags.Changed("template-file") {
		cfg.TemplateFile = o.templateFile
	}
	if flags.Changed("output") {
		cfg.OutputDir = o.output
	}
	if flags.Changed("formats") {
		cfg.Formats = o.formats
	}
	if flags.Changed("chrome-path") {
		cfg.ChromePath = o.chromePath
	}
	o.backend.apply(cmd, cfg)
}

func runGenerate(cmd *cobra.Command, root *rootOptions, opts *generateOptions) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd, root, func(c *config.Config) { opts.apply(cmd, c) })
	if err != nil {
		return err
	}

	jobDescription, err := readTextFile(cfg.Job, "job")
	if err != nil {
		return err
	}
	userDetails, err := readTextFile(cfg.Details, "details")
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	acquirer, closeClient := newAcquirer(ctx, cfg, log)
	defer closeClient()

	runOpts := baseRunOptions(cfg, acquirer, cmd.OutOrStdout(), log)
	runOpts.JobDescription = jobDescription
	runOpts.UserDetails = userDetails
	if store := openStore(ctx, cfg, log); store != nil {
		defer store.Close()
		runOpts.Store = store
	}

	outcome, err := pipeline.Run(ctx, runOpts)
	if err != nil {
		var failed *acquisition.GenerationFailedError
		if errors.As(err, &failed) {
			observability.NewPrinter(cmd.ErrOrStderr()).PrintValidationErrors(failed.Errors)
			return fmt.Errorf("resume generation failed after %d attempts", failed.Attempts)
		}
		return err
	}

	if len(outcome.Warnings) > 0 {
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Completed with %d warning(s)\n", len(outcome.Warnings))
	}
	return nil
}
