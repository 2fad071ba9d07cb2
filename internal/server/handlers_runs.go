package server

import (
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/ghanatheyakash/Resume-builder/internal/db"
)

// maxListLimit caps the limit query parameter of GET /runs
const maxListLimit = 100

func (s *Server) runStore() (RunStore, error) {
	if s.cfg.Runs == nil {
		return nil, &ErrUnavailable{Feature: "run history"}
	}
	return s.cfg.Runs, nil
}

func parseRunID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, &ErrValidation{Field: "id", Message: "invalid run ID"}
	}
	return id, nil
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	store, err := s.runStore()
	if err != nil {
		s.writeError(w, err)
		return
	}

	limit := db.DefaultListLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			s.writeError(w, &ErrValidation{Field: "limit", Message: "must be a positive integer"})
			return
		}
		limit = min(n, maxListLimit)
	}

	runs, err := store.ListRuns(r.Context(), limit)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if runs == nil {
		runs = []db.Run{}
	}
	s.jsonResponse(w, http.StatusOK, map[string]any{"runs": runs, "count": len(runs)})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	store, err := s.runStore()
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := parseRunID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	run, err := store.GetRun(r.Context(), id)
	if err != nil {
		s.writeError(w, err)
		return
	}
	if run == nil {
		s.errorResponse(w, http.StatusNotFound, "run not found: "+id.String())
		return
	}
	s.jsonResponse(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	store, err := s.runStore()
	if err != nil {
		s.writeError(w, err)
		return
	}
	id, err := parseRunID(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if err := store.DeleteRun(r.Context(), id); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
