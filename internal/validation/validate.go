// Package validation checks resume documents against the resume schema and the
// business rules the schema cannot express.
package validation

import (
	"encoding/json"
	"errors"
	"slices"

	"github.com/ghanatheyakash/Resume-builder/internal/schemas"
	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// NotAnObjectMessage is the single violation reported for non-object input
const NotAnObjectMessage = "Resume data must be an object"

// Validate returns every violation found in doc, or an empty slice when doc is valid.
// doc may be a types.Document, a plain map or any value that marshals to a JSON object.
// Validate never mutates doc; repeated calls return identical results.
func Validate(doc any) []string {
	obj, ok := toObject(doc)
	if !ok {
		return []string{NotAnObjectMessage}
	}

	errs := schemaViolations(obj)
	errs = append(errs, ruleViolations(obj)...)
	return errs
}

// ValidateRecord validates a typed record. Nil sequences count as empty.
func ValidateRecord(r *types.ResumeRecord) []string {
	if r == nil {
		return []string{NotAnObjectMessage}
	}
	doc, err := r.Document()
	if err != nil {
		return []string{err.Error()}
	}
	return Validate(doc)
}

// toObject copies doc into a fresh generic JSON object so that checks never
// touch the caller's value and typed inputs are seen the way the schema sees them.
func toObject(doc any) (map[string]any, bool) {
	if doc == nil {
		return nil, false
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, false
	}
	var obj map[string]any
	if err := json.Unmarshal(data, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func schemaViolations(obj map[string]any) []string {
	err := schemas.ValidateResume(obj)
	if err == nil {
		return []string{}
	}

	var validationErr *schemas.ValidationError
	if errors.As(err, &validationErr) {
		msgs := validationErr.Messages()
		slices.Sort(msgs)
		return msgs
	}
	return []string{err.Error()}
}
