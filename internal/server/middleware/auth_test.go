package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubValidator struct {
	valid map[string]string
}

func (v stubValidator) ValidateToken(token string) (string, error) {
	if subject, ok := v.valid[token]; ok {
		return subject, nil
	}
	return "", errors.New("invalid token")
}

func newAuthHandler() http.Handler {
	validator := stubValidator{valid: map[string]string{"good-token": "ci"}}
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("subject=" + Subject(r)))
	})
	return Auth(validator, "/health")(next)
}

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
		wantBody   string
	}{
		{name: "valid token", path: "/resumes", header: "Bearer good-token", wantStatus: http.StatusOK, wantBody: "subject=ci"},
		{name: "scheme is case insensitive", path: "/resumes", header: "bearer good-token", wantStatus: http.StatusOK, wantBody: "subject=ci"},
		{name: "missing header", path: "/resumes", wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", path: "/resumes", header: "Basic good-token", wantStatus: http.StatusUnauthorized},
		{name: "no token", path: "/resumes", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "extra parts", path: "/resumes", header: "Bearer good-token extra", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", path: "/resumes", header: "Bearer other", wantStatus: http.StatusUnauthorized},
		{name: "public path", path: "/health", wantStatus: http.StatusOK, wantBody: "subject="},
	}

	handler := newAuthHandler()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			handler.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantBody != "" {
				assert.Equal(t, tt.wantBody, rec.Body.String())
			}
			if tt.wantStatus == http.StatusUnauthorized {
				assert.Contains(t, rec.Header().Get("WWW-Authenticate"), "Bearer")
			}
		})
	}
}

func TestSubject_Unauthenticated(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, Subject(req))
}
