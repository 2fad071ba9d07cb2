package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghanatheyakash/Resume-builder/internal/acquisition"
	"github.com/ghanatheyakash/Resume-builder/internal/db"
	"github.com/ghanatheyakash/Resume-builder/internal/export"
	"github.com/ghanatheyakash/Resume-builder/internal/fetch"
	"github.com/ghanatheyakash/Resume-builder/internal/pipeline"
	"github.com/ghanatheyakash/Resume-builder/internal/server/ratelimit"
	"github.com/ghanatheyakash/Resume-builder/internal/storage"
)

const validDetails = "Name: Ann Lee\nEmail: ann@example.com\nSkills: Go, SQL\nExperience:\n- Dev | Acme | 2020\n  * Shipped things"

// memoryRuns is an in-memory RunStore
type memoryRuns struct {
	mu   sync.Mutex
	runs map[uuid.UUID]db.Run
}

func newMemoryRuns() *memoryRuns {
	return &memoryRuns{runs: map[uuid.UUID]db.Run{}}
}

func (m *memoryRuns) SaveRun(_ context.Context, run *db.Run) (uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if run.ID == uuid.Nil {
		run.ID = uuid.New()
	}
	m.runs[run.ID] = *run
	return run.ID, nil
}

func (m *memoryRuns) GetRun(_ context.Context, id uuid.UUID) (*db.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	run, ok := m.runs[id]
	if !ok {
		return nil, nil
	}
	return &run, nil
}

func (m *memoryRuns) ListRuns(_ context.Context, limit int) ([]db.Run, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := []db.Run{}
	for _, r := range m.runs {
		if len(out) == limit {
			break
		}
		out = append(out, r)
	}
	return out, nil
}

func (m *memoryRuns) DeleteRun(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.runs, id)
	return nil
}

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	return Config{
		Options: pipeline.RunOptions{
			Template:   "harvard",
			Formats:    []string{"html"},
			OutputDir:  filepath.Join(dir, "output"),
			ResumesDir: filepath.Join(dir, "resumes"),
			Acquirer:   acquisition.New(nil, zerolog.Nop()),
			Exporters:  map[string]export.Exporter{"html": export.HTMLExporter{}},
		},
		Fetch:     fetch.DefaultOptions(),
		RateLimit: &ratelimit.Config{Enabled: false},
		Logger:    zerolog.Nop(),
	}
}

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()
	s, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func doRequest(t *testing.T, s *Server, method, path string, body any, headers ...string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if raw, ok := body.(string); ok {
			buf.WriteString(raw)
		} else {
			require.NoError(t, json.NewEncoder(&buf).Encode(body))
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestNew_RequiresAcquirer(t *testing.T) {
	_, err := New(Config{})
	assert.Error(t, err)
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, testConfig(t))

	rec := doRequest(t, s, http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode[map[string]string](t, rec)["status"])
}

func TestTemplates(t *testing.T) {
	s := newTestServer(t, testConfig(t))

	rec := doRequest(t, s, http.MethodGet, "/templates", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, []string{"enhancv", "harvard", "resumeio"}, decode[map[string][]string](t, rec)["templates"])
}

func TestCORSPreflight(t *testing.T) {
	s := newTestServer(t, testConfig(t))

	rec := doRequest(t, s, http.MethodOptions, "/generate", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Headers"), "Authorization")
}

func TestRateLimit(t *testing.T) {
	cfg := testConfig(t)
	cfg.RateLimit = &ratelimit.Config{Enabled: true, DefaultLimit: 1, DefaultWindow: time.Minute}
	s := newTestServer(t, cfg)

	first := doRequest(t, s, http.MethodGet, "/resumes", nil)
	assert.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "1", first.Header().Get("X-RateLimit-Limit"))

	second := doRequest(t, s, http.MethodGet, "/resumes", nil)
	assert.Equal(t, http.StatusTooManyRequests, second.Code)
	assert.NotEmpty(t, second.Header().Get("Retry-After"))
	assert.Equal(t, "rate_limit_exceeded", decode[map[string]any](t, second)["error"])

	assert.Equal(t, http.StatusOK, doRequest(t, s, http.MethodGet, "/health", nil).Code)
}

func TestAuthentication(t *testing.T) {
	tokens, err := NewTokenService("0123456789abcdef0123")
	require.NoError(t, err)
	cfg := testConfig(t)
	cfg.Tokens = tokens
	s := newTestServer(t, cfg)

	assert.Equal(t, http.StatusOK, doRequest(t, s, http.MethodGet, "/health", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(t, s, http.MethodGet, "/resumes", nil).Code)

	token, err := tokens.Issue("ci", time.Hour)
	require.NoError(t, err)
	rec := doRequest(t, s, http.MethodGet, "/resumes", nil, "Authorization", "Bearer "+token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{&ErrValidation{Field: "x", Message: "bad"}, http.StatusBadRequest},
		{storage.ErrNotFound, http.StatusNotFound},
		{&acquisition.GenerationFailedError{Attempts: 2}, http.StatusUnprocessableEntity},
		{&fetch.Error{URL: "http://x", Message: "HTTP status 404"}, http.StatusBadGateway},
		{&ErrUnavailable{Feature: "run history"}, http.StatusServiceUnavailable},
		{errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, HTTPStatus(tt.err), tt.err.Error())
	}
}
