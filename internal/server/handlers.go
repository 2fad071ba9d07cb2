package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"github.com/ghanatheyakash/Resume-builder/internal/acquisition"
	"github.com/ghanatheyakash/Resume-builder/internal/export"
	"github.com/ghanatheyakash/Resume-builder/internal/fetch"
	"github.com/ghanatheyakash/Resume-builder/internal/parsing"
	"github.com/ghanatheyakash/Resume-builder/internal/pipeline"
	"github.com/ghanatheyakash/Resume-builder/internal/rendering"
	"github.com/ghanatheyakash/Resume-builder/internal/types"
	"github.com/ghanatheyakash/Resume-builder/internal/validation"
)

// maxRequestBytes bounds request bodies
const maxRequestBytes = 1 << 20

// GenerateRequest is the body of POST /generate and POST /generate/stream.
// Exactly one of JobDescription and JobURL is required.
type GenerateRequest struct {
	JobDescription string   `json:"job_description,omitempty"`
	JobURL         string   `json:"job_url,omitempty"`
	UserDetails    string   `json:"user_details"`
	Template       string   `json:"template,omitempty"`
	Formats        []string `json:"formats,omitempty"`
}

// Validate checks the request fields.
func (r *GenerateRequest) Validate() error {
	if strings.TrimSpace(r.UserDetails) == "" {
		return &ErrValidation{Field: "user_details", Message: "is required"}
	}
	hasText := strings.TrimSpace(r.JobDescription) != ""
	hasURL := strings.TrimSpace(r.JobURL) != ""
	switch {
	case !hasText && !hasURL:
		return &ErrValidation{Field: "job_description", Message: "either job_description or job_url is required"}
	case hasText && hasURL:
		return &ErrValidation{Field: "job_url", Message: "job_description and job_url are mutually exclusive"}
	}
	for _, f := range r.Formats {
		if _, err := export.ForFormat(f, export.Options{}); err != nil {
			return &ErrValidation{Field: "formats", Message: err.Error()}
		}
	}
	return nil
}

// GenerateResponse describes a generated resume.
type GenerateResponse struct {
	RunID    string              `json:"run_id"`
	Folder   string              `json:"folder"`
	Template string              `json:"template"`
	Source   string              `json:"source"`
	Attempts int                 `json:"attempts"`
	Files    []string            `json:"files"`
	Warnings []string            `json:"warnings,omitempty"`
	Resume   *types.ResumeRecord `json:"resume"`
}

// generationFailedResponse is returned when no attempt validated.
type generationFailedResponse struct {
	Error    string   `json:"error"`
	Attempts int      `json:"attempts"`
	Errors   []string `json:"errors"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string][]string{"templates": rendering.TemplateNames()})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(dst); err != nil {
		return &ErrValidation{Field: "body", Message: "invalid JSON: " + err.Error()}
	}
	return nil
}

func (s *Server) decodeGenerateRequest(w http.ResponseWriter, r *http.Request) (*GenerateRequest, error) {
	var req GenerateRequest
	if err := decodeBody(w, r, &req); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return &req, nil
}

// generate runs one pipeline for req. onProgress may be nil.
func (s *Server) generate(ctx context.Context, req *GenerateRequest, onProgress pipeline.ProgressCallback) (*GenerateResponse, error) {
	opts := s.cfg.Options
	opts.UserDetails = req.UserDetails
	opts.OnProgress = onProgress
	if req.Template != "" {
		opts.Template = req.Template
		opts.TemplatePath = ""
	}
	if len(req.Formats) > 0 {
		opts.Formats = req.Formats
	}

	if req.JobURL != "" {
		job, err := fetch.ParseJob(ctx, req.JobURL, s.cfg.Fetch)
		if err != nil {
			return nil, err
		}
		opts.Job = job
	} else {
		opts.JobDescription = req.JobDescription
		// every direct request gets its own folder
		opts.OutputDir = filepath.Join(opts.OutputDir, uuid.NewString())
	}
	if s.cfg.Runs != nil {
		opts.Store = s.cfg.Runs
	}

	outcome, err := pipeline.Run(ctx, opts)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(outcome.Files))
	for _, f := range outcome.Files {
		files = append(files, filepath.Base(f))
	}
	return &GenerateResponse{
		RunID:    outcome.RunID.String(),
		Folder:   filepath.Base(outcome.Folder),
		Template: outcome.Template,
		Source:   string(outcome.Source),
		Attempts: outcome.Attempts,
		Files:    files,
		Warnings: outcome.Warnings,
		Resume:   outcome.Record,
	}, nil
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeGenerateRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp, err := s.generate(r.Context(), req, nil)
	if err != nil {
		var failed *acquisition.GenerationFailedError
		if errors.As(err, &failed) {
			s.jsonResponse(w, http.StatusUnprocessableEntity, generationFailedResponse{
				Error:    err.Error(),
				Attempts: failed.Attempts,
				Errors:   failed.Errors,
			})
			return
		}
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, resp)
}

// handleGenerateStream runs a generation and streams progress via SSE
func (s *Server) handleGenerateStream(w http.ResponseWriter, r *http.Request) {
	req, err := s.decodeGenerateRequest(w, r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	resp, err := s.generate(r.Context(), req, func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			s.log.Warn().Err(err).Msg("failed to write SSE event")
		}
	})
	if err != nil {
		s.log.Warn().Err(err).Msg("streamed generation failed")
		sse.WriteError(err)
		return
	}
	sse.WriteComplete(resp)
}

// validateResponse is the body of POST /validate
type validateResponse struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	var doc any
	if err := decodeBody(w, r, &doc); err != nil {
		s.writeError(w, err)
		return
	}

	errs := validation.Validate(doc)
	if errs == nil {
		errs = []string{}
	}
	s.jsonResponse(w, http.StatusOK, validateResponse{Valid: len(errs) == 0, Errors: errs})
}

// parseDetailsRequest is the body of POST /parse-details
type parseDetailsRequest struct {
	UserDetails    string `json:"user_details"`
	JobDescription string `json:"job_description,omitempty"`
}

func (s *Server) handleParseDetails(w http.ResponseWriter, r *http.Request) {
	var req parseDetailsRequest
	if err := decodeBody(w, r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if strings.TrimSpace(req.UserDetails) == "" {
		s.writeError(w, &ErrValidation{Field: "user_details", Message: "is required"})
		return
	}
	s.jsonResponse(w, http.StatusOK, parsing.ParseDetails(req.UserDetails, req.JobDescription, ""))
}
