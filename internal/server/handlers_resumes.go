package server

import (
	"net/http"
	"time"

	"github.com/ghanatheyakash/Resume-builder/internal/storage"
)

// ResumeResponse describes one resume folder.
type ResumeResponse struct {
	Folder   string    `json:"folder"`
	Created  time.Time `json:"created"`
	Template string    `json:"template"`
	Method   string    `json:"method"`
	Source   string    `json:"source,omitempty"`
	RunID    string    `json:"run_id,omitempty"`
	JobTitle string    `json:"job_title"`
	Company  string    `json:"company"`
	Files    []string  `json:"files"`
}

func toResumeResponse(info storage.ResumeInfo) ResumeResponse {
	return ResumeResponse{
		Folder:   info.Folder,
		Created:  info.Created,
		Template: info.Template,
		Method:   info.Method,
		Source:   info.Source,
		RunID:    info.RunID,
		JobTitle: info.JobTitle,
		Company:  info.Company,
		Files:    info.Files,
	}
}

// StatsResponse aggregates the resume folders.
type StatsResponse struct {
	Total     int            `json:"total"`
	Recent    int            `json:"recent"`
	Templates map[string]int `json:"templates"`
	Methods   map[string]int `json:"methods"`
	Oldest    *time.Time     `json:"oldest,omitempty"`
	Newest    *time.Time     `json:"newest,omitempty"`
}

// fileTypes maps the format query parameter to a content type
var fileTypes = map[string]string{
	"html": "text/html; charset=utf-8",
	"pdf":  "application/pdf",
}

func (s *Server) handleListResumes(w http.ResponseWriter, _ *http.Request) {
	resumes, err := s.resumes.List()
	if err != nil {
		s.writeError(w, err)
		return
	}

	out := make([]ResumeResponse, 0, len(resumes))
	for _, r := range resumes {
		out = append(out, toResumeResponse(r))
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"resumes": out, "count": len(out)})
}

func (s *Server) handleResumeStats(w http.ResponseWriter, _ *http.Request) {
	stats, err := s.resumes.Stats(time.Now())
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := StatsResponse{
		Total:     stats.Total,
		Recent:    stats.Recent,
		Templates: stats.Templates,
		Methods:   stats.Methods,
	}
	if stats.Total > 0 {
		resp.Oldest, resp.Newest = &stats.Oldest, &stats.Newest
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleGetResume(w http.ResponseWriter, r *http.Request) {
	info, err := s.resumes.Info(r.PathValue("folder"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, toResumeResponse(*info))
}

// handleResumeFile serves the rendered resume; ?format= selects html (default) or pdf
func (s *Server) handleResumeFile(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "html"
	}
	contentType, ok := fileTypes[format]
	if !ok {
		s.writeError(w, &ErrValidation{Field: "format", Message: "must be html or pdf"})
		return
	}

	path, err := s.resumes.FindFile(r.PathValue("folder"), format)
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", contentType)
	http.ServeFile(w, r, path)
}

func (s *Server) handleDeleteResume(w http.ResponseWriter, r *http.Request) {
	if err := s.resumes.Delete(r.PathValue("folder")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
