package acquisition

import (
	"context"
	"errors"
	"testing"

	"github.com/ghanatheyakash/Resume-builder/internal/llm"
	"github.com/ghanatheyakash/Resume-builder/internal/types"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const janeDetails = "Name: Jane Doe\nEmail: jane@x.com\nSkills: Go, Rust"

func newAcquirer(client llm.Client) *Acquirer {
	return &Acquirer{Client: client, MaxAttempts: DefaultMaxAttempts, Logger: zerolog.Nop()}
}

func TestAcquire_BackendSuccess(t *testing.T) {
	client := &fakeClient{responses: []string{
		"Sure! Here is the resume:\n```json\n{\"name\": \"Ann Lee\", \"email\": \"ann@x.com\", \"skills\": [\"Go\"]}\n```",
	}}

	res, err := newAcquirer(client).Acquire(context.Background(), "JD text", janeDetails)
	require.NoError(t, err)

	assert.Equal(t, SourceBackend, res.Source)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, "Ann Lee", res.Record.Name)
	assert.Equal(t, []string{"Go"}, res.Record.Skills)
	assert.NotNil(t, res.Record.Experience)
	assert.Equal(t, "JD text", res.Record.JobDescription)
	assert.Empty(t, res.Record.Errors)
	assert.Equal(t, 1, client.generateCalls)
}

func TestAcquire_UnavailableUsesFallbackWithoutGenerating(t *testing.T) {
	client := &fakeClient{unavailable: true}

	res, err := newAcquirer(client).Acquire(context.Background(), "JD", janeDetails)
	require.NoError(t, err)

	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, "Jane Doe", res.Record.Name)
	assert.Equal(t, []string{"Go", "Rust"}, res.Record.Skills)
	assert.Equal(t, 0, client.generateCalls)
	assert.Equal(t, 1, client.probeCalls)
}

func TestAcquire_FallbackPaths(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
	}{
		{"call failure", &fakeClient{errs: []error{&llm.CallError{Message: "boom", Tries: 3}}}},
		{"empty response", &fakeClient{responses: []string{"   "}}},
		{"no JSON", &fakeClient{responses: []string{"I cannot help with that."}}},
		{"broken JSON", &fakeClient{responses: []string{`{"name": "Ann",`}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := newAcquirer(tt.client).Acquire(context.Background(), "JD", janeDetails)
			require.NoError(t, err)

			assert.Equal(t, SourceFallback, res.Source)
			assert.Equal(t, "Jane Doe", res.Record.Name)
			assert.Equal(t, 1, tt.client.generateCalls)
		})
	}
}

func TestAcquire_NilClientUsesFallback(t *testing.T) {
	res, err := newAcquirer(nil).Acquire(context.Background(), "JD", janeDetails)
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
}

func TestAcquire_RetriesWithErrorContext(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"name": "", "email": "ann"}`,
		`{"name": "Ann", "email": "ann@x.com"}`,
	}}

	res, err := newAcquirer(client).Acquire(context.Background(), "JD", janeDetails)
	require.NoError(t, err)

	assert.Equal(t, 2, res.Attempts)
	assert.Equal(t, SourceBackend, res.Source)
	require.Len(t, client.prompts, 2)
	assert.NotContains(t, client.prompts[0], "Name cannot be empty")
	assert.Contains(t, client.prompts[1], "Name cannot be empty\nEmail must contain '@' symbol")
	assert.Equal(t, "Name cannot be empty\nEmail must contain '@' symbol", res.Record.Errors)
}

func TestAcquire_GenerationFailedAfterMaxAttempts(t *testing.T) {
	client := &fakeClient{responses: []string{
		`{"name": "", "email": "a@b.c"}`,
		`{"name": "Ann", "email": "bad", "skills": "Go"}`,
	}}

	_, err := newAcquirer(client).Acquire(context.Background(), "JD", janeDetails)

	var failed *GenerationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 2, failed.Attempts)
	assert.Equal(t, 2, client.generateCalls)
	assert.Contains(t, failed.Errors, "Email must contain '@' symbol")
	assert.NotContains(t, failed.Errors, "Name cannot be empty")
	assert.Len(t, failed.Errors, 2)
}

func TestAcquire_FallbackThatNeverValidates(t *testing.T) {
	client := &fakeClient{unavailable: true}

	_, err := newAcquirer(client).Acquire(context.Background(), "JD", "nothing useful")

	var failed *GenerationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, DefaultMaxAttempts, failed.Attempts)
	assert.Equal(t, []string{"Name cannot be empty"}, failed.Errors)
	assert.Equal(t, 2, client.probeCalls)
	assert.Equal(t, 0, client.generateCalls)
}

func TestAcquire_IgnoresKeysDifferingOnlyByCase(t *testing.T) {
	client := &fakeClient{responses: []string{`{"name": "Ann", "email": "a@x.com", "Summary": 5, "SKILLS": "Go"}`}}

	res, err := newAcquirer(client).Acquire(context.Background(), "JD", janeDetails)
	require.NoError(t, err)

	assert.Equal(t, SourceBackend, res.Source)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, "", types.Deref(res.Record.Summary))
	assert.Equal(t, []string{}, res.Record.Skills)
}

func TestAcquire_CustomMaxAttempts(t *testing.T) {
	client := &fakeClient{responses: []string{`{"name": ""}`}}
	a := newAcquirer(client)
	a.MaxAttempts = 3

	_, err := a.Acquire(context.Background(), "JD", "")

	var failed *GenerationFailedError
	require.ErrorAs(t, err, &failed)
	assert.Equal(t, 3, failed.Attempts)
	assert.Equal(t, 3, client.generateCalls)
}

func TestAcquire_ZeroMaxAttemptsUsesDefault(t *testing.T) {
	client := &fakeClient{responses: []string{`{"name": ""}`}}
	a := &Acquirer{Client: client, Logger: zerolog.Nop()}

	_, err := a.Acquire(context.Background(), "JD", "")
	require.Error(t, err)
	assert.Equal(t, DefaultMaxAttempts, client.generateCalls)
}

func TestAcquire_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newAcquirer(&fakeClient{}).Acquire(ctx, "JD", janeDetails)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestGenerationFailedError_Message(t *testing.T) {
	err := &GenerationFailedError{Attempts: 2, Errors: []string{"a", "b"}}
	assert.Equal(t, "failed to generate a valid resume after 2 attempts: a; b", err.Error())
}
