package llm

import "fmt"

// UnavailableError means the backend could not be reached or does not serve the model
type UnavailableError struct {
	Model   string
	Message string
	Cause   error
}

func (e *UnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("backend unavailable (model %s): %s: %v", e.Model, e.Message, e.Cause)
	}
	return fmt.Sprintf("backend unavailable (model %s): %s", e.Model, e.Message)
}

func (e *UnavailableError) Unwrap() error {
	return e.Cause
}

// CallError means every generation try failed
type CallError struct {
	Message string
	Tries   int
	Cause   error
}

func (e *CallError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("generation failed after %d tries: %s: %v", e.Tries, e.Message, e.Cause)
	}
	return fmt.Sprintf("generation failed after %d tries: %s", e.Tries, e.Message)
}

func (e *CallError) Unwrap() error {
	return e.Cause
}

// ExtractionError means no JSON object could be recovered from backend output
type ExtractionError struct {
	Message string
	Cause   error
}

func (e *ExtractionError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("JSON extraction failed: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("JSON extraction failed: %s", e.Message)
}

func (e *ExtractionError) Unwrap() error {
	return e.Cause
}
