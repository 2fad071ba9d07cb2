package main

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

const testDetails = `Name: Ann Lee
Email: ann@example.com
Job Title: Backend Engineer
Skills: Go, PostgreSQL
Experience:
- Engineer | Acme | 2020-2024
  * Built the billing service
`

const testJobPage = `<html><body>
<h1>Platform Engineer</h1>
<div class="company">Initech</div>
<div class="location">Remote</div>
<div class="description">Senior role building Go services on Kubernetes. Fully remote.</div>
</body></html>`

// executeCommand runs the root command in process and returns its stdout.
func executeCommand(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()

	// keep the developer's environment out of the run
	for _, key := range []string{"DATABASE_URL", "OLLAMA_BASE_URL", "OLLAMA_MODEL", "GEMINI_API_KEY", "CHROME_PATH", "JWT_SECRET"} {
		t.Setenv(key, "")
	}

	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append(args, "--log-level", "error"))

	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

// newBackendServer serves an Ollama server with no models installed, so every
// generation falls back to the offline parser, plus one job posting page.
func newBackendServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/api/tags", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"models":[]}`))
	})
	mux.HandleFunc("/jobs/1", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(testJobPage))
	})
	mux.HandleFunc("/jobs/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}
