// Package pipeline provides the high-level orchestration for the resume generation process.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/ghanatheyakash/Resume-builder/internal/acquisition"
	"github.com/ghanatheyakash/Resume-builder/internal/db"
	"github.com/ghanatheyakash/Resume-builder/internal/export"
	"github.com/ghanatheyakash/Resume-builder/internal/fetch"
	"github.com/ghanatheyakash/Resume-builder/internal/observability"
	"github.com/ghanatheyakash/Resume-builder/internal/rendering"
	"github.com/ghanatheyakash/Resume-builder/internal/storage"
	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// Progress steps reported through OnProgress.
const (
	StepAcquire   = "acquire"
	StepRender    = "render"
	StepExport    = "export"
	StepArtifacts = "artifacts"
	StepPersist   = "persist"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step    string `json:"step"`
	Message string `json:"message"`
	RunID   string `json:"run_id,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs
type ProgressCallback func(event ProgressEvent)

// RunStore persists finished runs. *db.DB satisfies it.
type RunStore interface {
	SaveRun(ctx context.Context, run *db.Run) (uuid.UUID, error)
}

// RunOptions holds configuration for running the pipeline
type RunOptions struct {
	// JobDescription is the text given to generation. When empty and Job is set,
	// it is built from the job details.
	JobDescription string
	// Job is set for resumes generated from a scraped posting; the output then goes
	// to its own folder under ResumesDir.
	Job         *types.JobDetails
	UserDetails string

	Template     string
	TemplatePath string
	Formats      []string
	OutputDir    string
	ResumesDir   string

	Acquirer  *acquisition.Acquirer
	PDF       export.Options
	Exporters map[string]export.Exporter
	Store     RunStore

	Printer    *observability.Printer
	Logger     zerolog.Logger
	Verbose    bool
	OnProgress ProgressCallback
	Now        func() time.Time
}

// Outcome describes a generated resume.
type Outcome struct {
	RunID    uuid.UUID
	Folder   string
	Template string
	Files    []string
	Record   *types.ResumeRecord
	Source   acquisition.Source
	Attempts int
	// Warnings collects failures that did not stop the run, such as a PDF export
	Warnings []string
}

// Run generates one resume: acquire the record, render it, export every format,
// and save the supporting artifacts. A GenerationFailedError from acquisition is
// returned unchanged.
func Run(ctx context.Context, opts RunOptions) (*Outcome, error) {
	opts = withDefaults(opts)
	runID := uuid.New()
	log := opts.Logger.With().Str("run_id", runID.String()).Logger()
	emit := func(step, msg string) {
		log.Debug().Str("step", step).Msg(msg)
		if opts.OnProgress != nil {
			opts.OnProgress(ProgressEvent{Step: step, Message: msg, RunID: runID.String()})
		}
	}

	jobDescription := opts.JobDescription
	if jobDescription == "" && opts.Job != nil {
		jobDescription = fetch.JobDescriptionText(opts.Job)
	}
	if opts.Acquirer == nil {
		return nil, errors.New("pipeline: no acquirer configured")
	}

	opts.Printer.Step("Generating structured resume data...")
	result, err := opts.Acquirer.Acquire(ctx, jobDescription, opts.UserDetails)
	if err != nil {
		return nil, err
	}
	emit(StepAcquire, fmt.Sprintf("resume acquired from %s after %d attempt(s)", result.Source, result.Attempts))
	if opts.Verbose {
		opts.Printer.PrintResume(result.Record)
	}

	templateName, html, err := render(result.Record, opts)
	if err != nil {
		return nil, err
	}
	emit(StepRender, "rendered template "+templateName)

	folder, err := outputFolder(opts)
	if err != nil {
		return nil, err
	}

	outcome := &Outcome{
		RunID:    runID,
		Folder:   folder,
		Template: templateName,
		Record:   result.Record,
		Source:   result.Source,
		Attempts: result.Attempts,
	}

	for _, format := range opts.Formats {
		path := filepath.Join(folder, rendering.OutputName(templateName, format))
		if err := exportFormat(ctx, opts, format, html, path); err != nil {
			log.Warn().Err(err).Str("format", format).Msg("export failed")
			outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("%s export failed: %v", format, err))
			continue
		}
		outcome.Files = append(outcome.Files, path)
		emit(StepExport, "wrote "+path)
	}

	method := storage.MethodDirect
	if opts.Job != nil {
		method = storage.MethodJobURL
	}
	written, err := storage.SaveArtifacts(folder, storage.Artifacts{
		Resume:         result.Document,
		JobDescription: jobDescription,
		JobDetails:     opts.Job,
		Info: storage.GenerationInfo{
			RunID:     runID,
			Template:  templateName,
			Method:    method,
			Source:    string(result.Source),
			Attempts:  result.Attempts,
			Generated: opts.Now(),
		},
	})
	if err != nil {
		return outcome, fmt.Errorf("failed to save artifacts: %w", err)
	}
	outcome.Files = append(outcome.Files, written...)
	emit(StepArtifacts, fmt.Sprintf("saved %d artifact(s)", len(written)))

	if opts.Store != nil {
		if persist(ctx, opts, outcome, jobDescription, result.Document, log) {
			emit(StepPersist, "run stored")
		}
	}

	opts.Printer.PrintRunSummary(observability.RunSummary{
		RunID:    runID.String(),
		Folder:   folder,
		Template: templateName,
		Source:   string(result.Source),
		Attempts: result.Attempts,
		Files:    baseNames(outcome.Files),
		Warnings: outcome.Warnings,
	})
	return outcome, nil
}

func withDefaults(opts RunOptions) RunOptions {
	if opts.Printer == nil {
		opts.Printer = observability.NewPrinter(io.Discard)
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if len(opts.Formats) == 0 {
		opts.Formats = []string{"html"}
	}
	if opts.OutputDir == "" {
		opts.OutputDir = "output"
	}
	if opts.ResumesDir == "" {
		opts.ResumesDir = "resumes"
	}
	return opts
}

func render(record *types.ResumeRecord, opts RunOptions) (string, string, error) {
	if opts.TemplatePath != "" {
		name := strings.TrimSuffix(filepath.Base(opts.TemplatePath), filepath.Ext(opts.TemplatePath))
		html, err := rendering.RenderHTMLFile(record, opts.TemplatePath)
		return storage.SanitizeFilename(name), html, err
	}

	name := rendering.ResolveTemplate(opts.Template)
	if opts.Template != "" && name != opts.Template {
		opts.Logger.Warn().Str("template", opts.Template).Str("using", name).Msg("unknown template")
	}
	html, err := rendering.RenderHTML(record, name)
	return name, html, err
}

func outputFolder(opts RunOptions) (string, error) {
	if opts.Job != nil {
		return storage.CreateJobFolder(opts.ResumesDir, opts.Job.Title, opts.Job.Company, opts.Now())
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		return "", &storage.Error{Path: opts.OutputDir, Message: "failed to create folder", Cause: err}
	}
	return opts.OutputDir, nil
}

func exportFormat(ctx context.Context, opts RunOptions, format, html, path string) error {
	exporter, ok := opts.Exporters[format]
	if !ok {
		var err error
		if exporter, err = export.ForFormat(format, opts.PDF); err != nil {
			return err
		}
	}
	return exporter.Export(ctx, html, path)
}

// persist reports whether the run was stored; failures become outcome warnings.
func persist(ctx context.Context, opts RunOptions, outcome *Outcome, jobDescription string, doc types.Document, log zerolog.Logger) bool {
	run := &db.Run{
		ID:             outcome.RunID,
		JobTitle:       types.Deref(outcome.Record.JobTitle),
		Source:         string(outcome.Source),
		Attempts:       outcome.Attempts,
		Template:       outcome.Template,
		Folder:         outcome.Folder,
		Record:         doc,
		JobDescription: jobDescription,
	}
	if opts.Job != nil {
		run.JobTitle = opts.Job.Title
		run.Company = opts.Job.Company
		run.JobURL = opts.Job.URL
	}

	if _, err := opts.Store.SaveRun(ctx, run); err != nil {
		log.Warn().Err(err).Msg("failed to store run")
		outcome.Warnings = append(outcome.Warnings, fmt.Sprintf("database save failed: %v", err))
		return false
	}
	return true
}

func baseNames(paths []string) []string {
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names
}
