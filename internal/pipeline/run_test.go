package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghanatheyakash/Resume-builder/internal/acquisition"
	"github.com/ghanatheyakash/Resume-builder/internal/export"
	"github.com/ghanatheyakash/Resume-builder/internal/observability"
	"github.com/ghanatheyakash/Resume-builder/internal/storage"
	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

const validDetails = "Name: Ann Lee\nEmail: ann@x.com\nJob Title: Engineer\nSkills: Go, SQL\nExperience:\n- Dev | Acme | 2020\n  * Shipped things"

var fixedNow = time.Date(2025, 4, 5, 6, 7, 8, 0, time.UTC)

func baseOptions(t *testing.T, exporter export.Exporter) RunOptions {
	t.Helper()
	return RunOptions{
		JobDescription: "Backend role",
		UserDetails:    validDetails,
		Template:       "harvard",
		Formats:        []string{"html", "pdf"},
		OutputDir:      filepath.Join(t.TempDir(), "output"),
		ResumesDir:     filepath.Join(t.TempDir(), "resumes"),
		Acquirer:       acquisition.New(nil, zerolog.Nop()),
		Exporters:      map[string]export.Exporter{"html": exporter, "pdf": exporter},
		Logger:         zerolog.Nop(),
		Now:            func() time.Time { return fixedNow },
	}
}

func TestRun_DirectInput(t *testing.T) {
	exporter := &fileExporter{}
	opts := baseOptions(t, exporter)
	var events []ProgressEvent
	opts.OnProgress = func(e ProgressEvent) { events = append(events, e) }

	outcome, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, opts.OutputDir, outcome.Folder)
	assert.Equal(t, "harvard", outcome.Template)
	assert.Equal(t, acquisition.SourceFallback, outcome.Source)
	assert.Equal(t, 1, outcome.Attempts)
	assert.Empty(t, outcome.Warnings)
	assert.Equal(t, 2, exporter.calls)
	assert.Equal(t, "Ann Lee", outcome.Record.Name)

	html, err := os.ReadFile(filepath.Join(opts.OutputDir, "resume_harvard.html"))
	require.NoError(t, err)
	assert.Contains(t, string(html), "Ann Lee")
	assert.FileExists(t, filepath.Join(opts.OutputDir, "resume_harvard.pdf"))
	assert.FileExists(t, filepath.Join(opts.OutputDir, storage.ResumeDataFile))
	assert.NoFileExists(t, filepath.Join(opts.OutputDir, storage.JobDetailsFile))

	info, err := os.ReadFile(filepath.Join(opts.OutputDir, storage.GenerationInfoFile))
	require.NoError(t, err)
	assert.Contains(t, string(info), "Method: "+storage.MethodDirect)
	assert.Contains(t, string(info), "Source: fallback")

	steps := make([]string, 0, len(events))
	for _, e := range events {
		steps = append(steps, e.Step)
		assert.Equal(t, outcome.RunID.String(), e.RunID)
	}
	assert.Equal(t, []string{StepAcquire, StepRender, StepExport, StepExport, StepArtifacts}, steps)
}

func TestRun_FromJob(t *testing.T) {
	opts := baseOptions(t, &fileExporter{})
	opts.JobDescription = ""
	opts.Job = &types.JobDetails{
		URL:     "https://jobs.lever.co/acme/1",
		Title:   "Backend Engineer",
		Company: "Acme",
		Skills:  []string{"Go"},
	}
	store := &fakeStore{}
	opts.Store = store
	var steps []string
	opts.OnProgress = func(e ProgressEvent) { steps = append(steps, e.Step) }

	outcome, err := Run(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(opts.ResumesDir, "Backend_Engineer_Acme_20250405_060708"), outcome.Folder)
	assert.FileExists(t, filepath.Join(outcome.Folder, storage.JobDetailsFile))
	assert.FileExists(t, filepath.Join(outcome.Folder, storage.AnalysisReportFile))

	jd, err := os.ReadFile(filepath.Join(outcome.Folder, storage.JobDescriptionFile))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(jd), "JOB DESCRIPTION: Backend Engineer\nCOMPANY: Acme"))

	require.Len(t, store.runs, 1)
	assert.Equal(t, outcome.RunID, store.runs[0].ID)
	assert.Equal(t, "Acme", store.runs[0].Company)
	assert.Equal(t, "https://jobs.lever.co/acme/1", store.runs[0].JobURL)
	assert.Equal(t, "Ann Lee", store.runs[0].Record["name"])
	assert.Contains(t, steps, StepPersist)
}

func TestRun_ExportFailureIsAWarning(t *testing.T) {
	opts := baseOptions(t, &fileExporter{})
	opts.Exporters["pdf"] = failingExporter{}
	var out bytes.Buffer
	opts.Printer = observability.NewPrinter(&out)

	outcome, err := Run(context.Background(), opts)
	require.NoError(t, err)

	require.Len(t, outcome.Warnings, 1)
	assert.Contains(t, outcome.Warnings[0], "pdf export failed")
	assert.FileExists(t, filepath.Join(opts.OutputDir, "resume_harvard.html"))
	assert.NoFileExists(t, filepath.Join(opts.OutputDir, "resume_harvard.pdf"))
	assert.Contains(t, out.String(), "RESUME GENERATED")
	assert.Contains(t, out.String(), "chrome not found")
}

func TestRun_StoreFailureIsAWarning(t *testing.T) {
	opts := baseOptions(t, &fileExporter{})
	opts.Store = &fakeStore{err: errors.New("connection refused")}
	var steps []string
	opts.OnProgress = func(e ProgressEvent) { steps = append(steps, e.Step) }

	outcome, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, outcome.Warnings, 1)
	assert.Contains(t, outcome.Warnings[0], "database save failed")
	assert.NotContains(t, steps, StepPersist)
}

func TestRun_GenerationFailedPropagates(t *testing.T) {
	opts := baseOptions(t, &fileExporter{})
	opts.UserDetails = "Skills: Go"

	outcome, err := Run(context.Background(), opts)
	require.Error(t, err)
	assert.Nil(t, outcome)

	var failed *acquisition.GenerationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Contains(t, failed.Errors, "Name cannot be empty")
	assert.NoDirExists(t, opts.OutputDir)
}

func TestRun_UnknownTemplateFallsBack(t *testing.T) {
	opts := baseOptions(t, &fileExporter{})
	opts.Template = "fancy"
	opts.Formats = []string{"html"}

	outcome, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "harvard", outcome.Template)
}

func TestRun_CustomTemplateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "my template.html")
	require.NoError(t, os.WriteFile(path, []byte(`<h1>{{.Name}}</h1>`), 0o644))

	opts := baseOptions(t, &fileExporter{})
	opts.TemplatePath = path
	opts.Formats = []string{"html"}

	outcome, err := Run(context.Background(), opts)
	require.NoError(t, err)
	assert.Equal(t, "my_template", outcome.Template)

	html, err := os.ReadFile(filepath.Join(opts.OutputDir, "resume_my_template.html"))
	require.NoError(t, err)
	assert.Equal(t, "<h1>Ann Lee</h1>", string(html))
}

func TestRun_UnsupportedFormat(t *testing.T) {
	opts := baseOptions(t, &fileExporter{})
	opts.Exporters = nil
	opts.Formats = []string{"html", "docx"}

	outcome, err := Run(context.Background(), opts)
	require.NoError(t, err)
	require.Len(t, outcome.Warnings, 1)
	assert.Contains(t, outcome.Warnings[0], `unsupported export format "docx"`)
	assert.FileExists(t, filepath.Join(opts.OutputDir, "resume_harvard.html"))
}

func TestRun_NoAcquirer(t *testing.T) {
	opts := baseOptions(t, &fileExporter{})
	opts.Acquirer = nil

	_, err := Run(context.Background(), opts)
	assert.Error(t, err)
}
