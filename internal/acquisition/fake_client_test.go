package acquisition

import (
	"context"

	"github.com/ghanatheyakash/Resume-builder/internal/llm"
)

// fakeClient is a scripted llm.Client
type fakeClient struct {
	unavailable bool
	responses   []string
	errs        []error

	probeCalls    int
	generateCalls int
	prompts       []string
}

func (f *fakeClient) Available(ctx context.Context) error {
	f.probeCalls++
	if f.unavailable {
		return &llm.UnavailableError{Model: "fake", Message: "model not installed"}
	}
	return nil
}

func (f *fakeClient) Generate(ctx context.Context, prompt string) (string, error) {
	i := f.generateCalls
	f.generateCalls++
	f.prompts = append(f.prompts, prompt)

	if i < len(f.errs) && f.errs[i] != nil {
		return "", f.errs[i]
	}
	if len(f.responses) == 0 {
		return "", nil
	}
	if i >= len(f.responses) {
		return f.responses[len(f.responses)-1], nil
	}
	return f.responses[i], nil
}

func (f *fakeClient) Model() string { return "fake" }

func (f *fakeClient) Close() error { return nil }
