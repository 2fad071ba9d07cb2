package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ghanatheyakash/Resume-builder/internal/config"
	"github.com/ghanatheyakash/Resume-builder/internal/fetch"
	"github.com/ghanatheyakash/Resume-builder/internal/pipeline"
)

type fromJobsOptions struct {
	urls        []string
	urlsFile    string
	details     string
	template    string
	resumesDir  string
	formats     []string
	useBrowser  bool
	concurrency int
	chromePath  string
	backend     backendFlags
}

func newFromJobsCmd(root *rootOptions) *cobra.Command {
	opts := &fromJobsOptions{}
	cmd := &cobra.Command{
		Use:   "from-jobs",
		Short: "Generate one resume per job posting URL",
		Long: `Fetches each job posting, extracts its details, and generates a tailored resume
into its own folder (Role_Company_Timestamp) under the resumes directory.

URLs come from --urls or --urls-file (one per line, # starts a comment).`,
		Example: `  resume_builder from-jobs --urls-file jobs.txt --details user_details.txt`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runFromJobs(cmd, root, opts)
		},
	}

	cmd.Flags().StringSliceVar(&opts.urls, "urls", nil, "Job posting URLs")
	cmd.Flags().StringVar(&opts.urlsFile, "urls-file", "", "File with one job URL per line")
	cmd.Flags().StringVarP(&opts.details, "details", "d", "", "Path to the candidate details text file")
	cmd.Flags().StringVarP(&opts.template, "template", "t", "", "Template: harvard, enhancv or resumeio")
	cmd.Flags().StringVar(&opts.resumesDir, "resumes-dir", "", "Directory holding one folder per generated resume")
	cmd.Flags().StringSliceVar(&opts.formats, "formats", nil, "Output formats: html, pdf")
	cmd.Flags().BoolVar(&opts.useBrowser, "use-browser", false, "Render pages in headless Chrome when plain HTTP returns too little text")
	cmd.Flags().IntVar(&opts.concurrency, "concurrency", 0, "Job pages fetched in parallel")
	cmd.Flags().StringVar(&opts.chromePath, "chrome-path", "", "Chrome executable (defaults to CHROME_PATH)")
	opts.backend.register(cmd)
	return cmd
}

func (o *fromJobsOptions) apply(cmd *cobra.Command, cfg *config.Config) {
	flags := cmd.Flags()
	if flags.Changed("urls") {
		cfg.JobURLs = o.urls
	}
	if flags.Changed("urls-file") {
		cfg.URLsFile = o.urlsFile
	}
	if flags.Changed("details") {
		cfg.Details = o.details
	}
	if flags.Changed("template") {
		cfg.Template = o.template
	}
	if flags.Changed("resumes-dir") {
		cfg.ResumesDir = o.resumesDir
	}
	if flags.Changed("formats") {
		cfg.Formats = o.formats
	}
	if flags.Changed("use-browser") {
		cfg.UseBrowser = o.useBrowser
	}
	if flags.Changed("concurrency") {
		cfg.FetchConcurrency = o.concurrency
	}
	if flags.Changed("chrome-path") {
		cfg.ChromePath = o.chromePath
	}
	o.backend.apply(cmd, cfg)
}

func collectURLs(cfg config.Config) ([]string, error) {
	urls := append([]string(nil), cfg.JobURLs...)
	if cfg.URLsFile != "" {
		f, err := os.Open(cfg.URLsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open urls file: %w", err)
		}
		defer func() { _ = f.Close() }()

		fromFile, err := readURLs(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read urls file: %w", err)
		}
		urls = append(urls, fromFile...)
	}
	if len(urls) == 0 {
		return nil, fmt.Errorf("either --urls or --urls-file must be provided (via flag or config)")
	}
	return urls, nil
}

func runFromJobs(cmd *cobra.Command, root *rootOptions, opts *fromJobsOptions) error {
	ctx := cmd.Context()
	cfg, err := loadConfig(cmd, root, func(c *config.Config) { opts.apply(cmd, c) })
	if err != nil {
		return err
	}

	urls, err := collectURLs(cfg)
	if err != nil {
		return err
	}
	userDetails, err := readTextFile(cfg.Details, "details")
	if err != nil {
		return err
	}

	log := newLogger(cfg)
	out := cmd.OutOrStdout()

	store := openStore(ctx, cfg, log)
	var cache pipeline.PostingCache
	if store != nil {
		defer store.Close()
		cache = store
	}

	fetchOpts := fetch.DefaultOptions()
	fetchOpts.UseBrowser = cfg.UseBrowser
	fetchOpts.ChromePath = cfg.ChromePath
	fetchOpts.Logger = log

	_, _ = fmt.Fprintf(out, "Fetching %d job posting(s)...\n", len(urls))
	fetched, err := pipeline.FetchJobs(ctx, urls, fetchOpts, cfg.FetchConcurrency, cache)
	if err != nil {
		return err
	}
	for _, f := range fetched.Failures {
		_, _ = fmt.Fprintf(out, "! Skipping %s: %v\n", f.URL, f.Err)
	}
	if len(fetched.Jobs) == 0 {
		return fmt.Errorf("no job postings could be parsed")
	}
	_, _ = fmt.Fprintln(out, fetch.SummaryReport(fetched.Jobs))

	acquirer, closeClient := newAcquirer(ctx, cfg, log)
	defer closeClient()

	runOpts := baseRunOptions(cfg, acquirer, out, log)
	runOpts.UserDetails = userDetails
	if store != nil {
		runOpts.Store = store
	}
	if cfg.Verbose {
		for _, job := range fetched.Jobs {
			runOpts.Printer.PrintJobDetails(job)
		}
	}

	batch, err := pipeline.RunJobs(ctx, fetched.Jobs, runOpts)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(out, "\nGenerated %d of %d resume(s) in %s\n", len(batch.Outcomes), len(fetched.Jobs), cfg.ResumesDir)
	for _, f := range batch.Failures {
		_, _ = fmt.Fprintf(out, "! %s at %s: %v\n", f.Job.Title, f.Job.Company, f.Err)
	}
	if len(batch.Outcomes) == 0 {
		return fmt.Errorf("no resumes were generated")
	}
	return nil
}
