package llm

import (
	"encoding/json"
	"strings"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// ExtractJSON parses the text between the first '{' and the last '}' in raw.
// Surrounding prose and code fences are ignored. Several separate objects in
// one response are not told apart: the slice then spans all of them and fails
// to parse.
func ExtractJSON(raw string) (types.Document, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end < 0 {
		return nil, &ExtractionError{Message: "no JSON object found"}
	}
	if end <= start {
		return nil, &ExtractionError{Message: "closing brace before opening brace"}
	}

	slice := strings.TrimSpace(raw[start : end+1])
	if slice == "" {
		return nil, &ExtractionError{Message: "empty JSON slice"}
	}

	var doc types.Document
	if err := json.Unmarshal([]byte(slice), &doc); err != nil {
		return nil, &ExtractionError{Message: "invalid JSON object", Cause: err}
	}
	if doc == nil {
		return nil, &ExtractionError{Message: "JSON object is null"}
	}
	return doc, nil
}
