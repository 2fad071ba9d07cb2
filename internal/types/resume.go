// Package types provides type definitions for structured data used throughout the resume builder.
//
//nolint:revive // types is a standard Go package name pattern
package types

import (
	"encoding/json"
	"fmt"
)

// Document is the loosely shaped form of a resume as it arrives from a generative backend.
// Validation runs over documents so that wrongly shaped values are reported, not coerced.
type Document map[string]any

// ResumeRecord is the canonical resume shape consumed by renderers and exporters.
type ResumeRecord struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Phone    *string `json:"phone"`
	LinkedIn *string `json:"linkedin"`
	GitHub   *string `json:"github"`
	Website  *string `json:"website"`
	Location *string `json:"location"`
	JobTitle *string `json:"job_title"`
	Summary  *string `json:"summary"`

	Skills         []string          `json:"skills"`
	Experience     []ExperienceEntry `json:"experience"`
	Education      []EducationEntry  `json:"education"`
	Projects       []ProjectEntry    `json:"projects"`
	Certifications []string          `json:"certifications"`

	JobDescription string `json:"job_description"`
	Errors         string `json:"errors,omitempty"` // prior validation failures, only set when retrying
}

// ExperienceEntry is a single role held by the candidate
type ExperienceEntry struct {
	Role             string   `json:"role"`
	Company          string   `json:"company"`
	Dates            *string  `json:"dates"`
	Responsibilities []string `json:"responsibilities"`
}

// EducationEntry is a single degree
type EducationEntry struct {
	Degree string  `json:"degree"`
	School string  `json:"school"`
	Dates  *string `json:"dates"`
}

// ProjectEntry is a single project
type ProjectEntry struct {
	Name        string  `json:"name"`
	Tech        *string `json:"tech"`
	Description *string `json:"description"`
}

// NewResumeRecord returns an empty record whose sequences are all present.
func NewResumeRecord() *ResumeRecord {
	r := &ResumeRecord{}
	r.Normalize()
	return r
}

// Normalize replaces nil sequences with empty ones so they marshal as [] instead of null.
func (r *ResumeRecord) Normalize() {
	if r.Skills == nil {
		r.Skills = []string{}
	}
	if r.Experience == nil {
		r.Experience = []ExperienceEntry{}
	}
	for i := range r.Experience {
		if r.Experience[i].Responsibilities == nil {
			r.Experience[i].Responsibilities = []string{}
		}
	}
	if r.Education == nil {
		r.Education = []EducationEntry{}
	}
	if r.Projects == nil {
		r.Projects = []ProjectEntry{}
	}
	if r.Certifications == nil {
		r.Certifications = []string{}
	}
}

// Document converts the record into its loosely shaped form. Nil sequences
// come out as empty arrays; the receiver is left untouched.
func (r *ResumeRecord) Document() (Document, error) {
	c := *r
	if r.Experience != nil {
		c.Experience = make([]ExperienceEntry, len(r.Experience))
		copy(c.Experience, r.Experience)
	}
	c.Normalize()

	data, err := json.Marshal(&c)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal resume record: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert resume record to document: %w", err)
	}
	return doc, nil
}

// DecodeRecord converts a validated document into a typed record.
// Only the exact record keys are read, so extra keys that differ from a field
// name only by case never reach the decoder. Callers should validate the
// document first; a wrongly shaped document fails here with a decode error.
func DecodeRecord(doc Document) (*ResumeRecord, error) {
	known := make(Document, len(canonicalFields)+2)
	for _, f := range canonicalFields {
		if v, ok := doc[f.Name]; ok {
			known[f.Name] = v
		}
	}
	for _, key := range []string{"job_description", "errors"} {
		if v, ok := doc[key]; ok {
			known[key] = v
		}
	}

	data, err := json.Marshal(known)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	var r ResumeRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("failed to decode resume record: %w", err)
	}
	r.Normalize()
	return &r, nil
}

// FieldKind describes the empty default used when a canonical field is missing.
type FieldKind int

const (
	// KindString fields default to ""
	KindString FieldKind = iota
	// KindList fields default to []
	KindList
)

// Field is a recognised top-level resume field
type Field struct {
	Name string
	Kind FieldKind
}

// Empty returns a fresh empty default for the field.
func (f Field) Empty() any {
	if f.Kind == KindList {
		return []any{}
	}
	return ""
}

var canonicalFields = []Field{
	{Name: "name", Kind: KindString},
	{Name: "email", Kind: KindString},
	{Name: "phone", Kind: KindString},
	{Name: "linkedin", Kind: KindString},
	{Name: "github", Kind: KindString},
	{Name: "website", Kind: KindString},
	{Name: "location", Kind: KindString},
	{Name: "job_title", Kind: KindString},
	{Name: "summary", Kind: KindString},
	{Name: "skills", Kind: KindList},
	{Name: "experience", Kind: KindList},
	{Name: "education", Kind: KindList},
	{Name: "projects", Kind: KindList},
	{Name: "certifications", Kind: KindList},
}

// CanonicalFields returns the recognised top-level fields in their documented order.
// job_description and errors are attached by the caller, not gap-filled.
func CanonicalFields() []Field {
	out := make([]Field, len(canonicalFields))
	copy(out, canonicalFields)
	return out
}

// StringPtr returns a pointer to s
func StringPtr(s string) *string {
	return &s
}

// Deref returns the pointed-to string or "" for nil
func Deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
