// Package acquisition drives the generate, validate and retry loop that turns a job
// description and candidate notes into a valid resume record.
package acquisition

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/ghanatheyakash/Resume-builder/internal/llm"
	"github.com/ghanatheyakash/Resume-builder/internal/parsing"
	"github.com/ghanatheyakash/Resume-builder/internal/types"
	"github.com/ghanatheyakash/Resume-builder/internal/validation"
)

// DefaultMaxAttempts bounds backend usage for a single resume
const DefaultMaxAttempts = 2

// Source names where an attempt's document came from
type Source string

const (
	// SourceBackend means the document was extracted from backend output
	SourceBackend Source = "backend"
	// SourceFallback means the document came from the deterministic parser
	SourceFallback Source = "fallback"
)

// Acquirer produces validated resume records
type Acquirer struct {
	// Client is the generation backend. A nil client always uses the fallback parser.
	Client llm.Client
	// MaxAttempts defaults to DefaultMaxAttempts when zero or negative
	MaxAttempts int
	Logger      zerolog.Logger
}

// New returns an Acquirer with the default attempt limit
func New(client llm.Client, logger zerolog.Logger) *Acquirer {
	return &Acquirer{Client: client, MaxAttempts: DefaultMaxAttempts, Logger: logger}
}

// Result is a successfully validated record
type Result struct {
	Record   *types.ResumeRecord
	Document types.Document
	Source   Source
	// Attempts is the number of attempts made, including the successful one
	Attempts int
}

// outcome is the product of one attempt
type outcome struct {
	doc    types.Document
	source Source
}

// Acquire runs attempts until one validates or the attempt limit is reached.
// Backend unavailability, call failures and unextractable output switch that
// attempt to the fallback parser; only *GenerationFailedError is returned for
// exhausted attempts.
func (a *Acquirer) Acquire(ctx context.Context, jobDescription, userDetails string) (*Result, error) {
	maxAttempts := a.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}

	var (
		errorContext string
		lastErrors   []string
	)

	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		out := a.attempt(ctx, jobDescription, userDetails, errorContext)
		lastErrors = validation.Validate(out.doc)

		log := a.Logger.With().Int("attempt", attempt).Int("max_attempts", maxAttempts).Str("source", string(out.source)).Logger()
		if len(lastErrors) == 0 {
			record, err := types.DecodeRecord(out.doc)
			if err == nil {
				log.Info().Msg("resume document validated")
				return &Result{Record: record, Document: out.doc, Source: out.source, Attempts: attempt}, nil
			}
			lastErrors = []string{err.Error()}
		}

		log.Warn().Strs("errors", lastErrors).Msg("resume document failed validation")
		errorContext = strings.Join(lastErrors, "\n")
	}

	return nil, &GenerationFailedError{Attempts: maxAttempts, Errors: lastErrors}
}

// attempt commits to exactly one source: the backend when it is available and
// returns extractable JSON, otherwise the fallback parser.
func (a *Acquirer) attempt(ctx context.Context, jobDescription, userDetails, errorContext string) outcome {
	doc, err := a.fromBackend(ctx, jobDescription, userDetails, errorContext)
	if err == nil {
		return outcome{doc: doc, source: SourceBackend}
	}

	a.logRecovered(err)
	return outcome{doc: a.fromFallback(userDetails, jobDescription, errorContext), source: SourceFallback}
}

// errNoClient is the reason recorded when no backend is configured
var errNoClient = errors.New("no generation backend configured")

// errEmptyResponse is the reason recorded for an empty backend payload
var errEmptyResponse = errors.New("backend returned an empty response")

func (a *Acquirer) fromBackend(ctx context.Context, jobDescription, userDetails, errorContext string) (types.Document, error) {
	if a.Client == nil {
		return nil, errNoClient
	}
	if err := a.Client.Available(ctx); err != nil {
		return nil, err
	}

	raw, err := a.Client.Generate(ctx, llm.BuildResumePrompt(jobDescription, userDetails, errorContext))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, errEmptyResponse
	}

	doc, err := llm.ExtractJSON(raw)
	if err != nil {
		return nil, err
	}

	doc = FillMissing(doc)
	doc["job_description"] = jobDescription
	if errorContext != "" {
		doc["errors"] = errorContext
	}
	return doc, nil
}

func (a *Acquirer) fromFallback(userDetails, jobDescription, errorContext string) types.Document {
	record := parsing.ParseDetails(userDetails, jobDescription, errorContext)
	doc, err := record.Document()
	if err != nil {
		a.Logger.Error().Err(err).Msg("failed to convert parsed record")
		return types.Document{"job_description": jobDescription}
	}
	return doc
}

func (a *Acquirer) logRecovered(err error) {
	var (
		unavailable *llm.UnavailableError
		callErr     *llm.CallError
		extractErr  *llm.ExtractionError
		reason      string
	)
	switch {
	case errors.As(err, &unavailable):
		reason = "backend unavailable"
	case errors.As(err, &callErr):
		reason = "backend call failed"
	case errors.As(err, &extractErr):
		reason = "no JSON in backend output"
	case errors.Is(err, errEmptyResponse):
		reason = "empty backend output"
	default:
		reason = "no backend"
	}
	a.Logger.Warn().Err(err).Str("reason", reason).Msg("falling back to text parser")
}
