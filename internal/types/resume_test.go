package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewResumeRecord_SequencesMarshalAsArrays(t *testing.T) {
	r := NewResumeRecord()

	data, err := json.Marshal(r)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))

	for _, key := range []string{"skills", "experience", "education", "projects", "certifications"} {
		assert.Equal(t, []any{}, raw[key], "field %s", key)
	}
	assert.Nil(t, raw["phone"])
	_, hasErrors := raw["errors"]
	assert.False(t, hasErrors, "errors is omitted when empty")
}

func TestResumeRecord_DocumentRoundTrip(t *testing.T) {
	r := &ResumeRecord{
		Name:     "Jane Doe",
		Email:    "jane@x.com",
		Location: StringPtr("Berlin"),
		Skills:   []string{"Go", "Go"},
		Experience: []ExperienceEntry{
			{Role: "Engineer", Company: "Acme", Dates: StringPtr("2020-2023"), Responsibilities: []string{"Built things"}},
		},
		JobDescription: "Backend role",
	}

	doc, err := r.Document()
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe", doc["name"])
	assert.Equal(t, []any{"Go", "Go"}, doc["skills"])
	assert.Equal(t, []any{}, doc["projects"])

	back, err := DecodeRecord(doc)
	require.NoError(t, err)
	assert.Equal(t, "Berlin", Deref(back.Location))
	assert.Equal(t, []string{"Go", "Go"}, back.Skills)
	require.Len(t, back.Experience, 1)
	assert.Equal(t, "2020-2023", Deref(back.Experience[0].Dates))
	assert.Equal(t, "Backend role", back.JobDescription)
}

func TestDecodeRecord_NormalizesMissingSequences(t *testing.T) {
	rec, err := DecodeRecord(Document{
		"name":       "Ann",
		"email":      "",
		"experience": []any{map[string]any{"role": "Dev", "company": "Co"}},
	})
	require.NoError(t, err)

	assert.Equal(t, []string{}, rec.Skills)
	assert.Equal(t, []string{}, rec.Certifications)
	assert.Equal(t, []EducationEntry{}, rec.Education)
	assert.Equal(t, []string{}, rec.Experience[0].Responsibilities)
}

func TestResumeRecord_DocumentNormalizesCopy(t *testing.T) {
	r := &ResumeRecord{
		Name:       "Ann",
		Email:      "a@x.com",
		Experience: []ExperienceEntry{{Role: "Dev", Company: "Co"}},
	}

	doc, err := r.Document()
	require.NoError(t, err)

	for _, key := range []string{"skills", "education", "projects", "certifications"} {
		assert.Equal(t, []any{}, doc[key], "field %s", key)
	}
	entry := doc["experience"].([]any)[0].(map[string]any)
	assert.Equal(t, []any{}, entry["responsibilities"])

	assert.Nil(t, r.Skills)
	assert.Nil(t, r.Experience[0].Responsibilities)
}

func TestDecodeRecord_ReadsOnlyExactKeys(t *testing.T) {
	rec, err := DecodeRecord(Document{
		"name":    "Ann",
		"email":   "a@x.com",
		"Summary": 5,
		"NAME":    "Other",
		"Skills":  "Go",
		"errors":  "prior",
	})
	require.NoError(t, err)

	assert.Equal(t, "Ann", rec.Name)
	assert.Nil(t, rec.Summary)
	assert.Equal(t, []string{}, rec.Skills)
	assert.Equal(t, "prior", rec.Errors)
}

func TestDecodeRecord_WrongShape(t *testing.T) {
	_, err := DecodeRecord(Document{"name": "Ann", "skills": "Go, Rust"})
	assert.Error(t, err)
}

func TestCanonicalFields(t *testing.T) {
	fields := CanonicalFields()
	require.Len(t, fields, 14)
	assert.Equal(t, "name", fields[0].Name)
	assert.Equal(t, "", fields[0].Empty())
	assert.Equal(t, []any{}, fields[len(fields)-1].Empty())

	// Callers cannot mutate the shared list
	fields[0].Name = "changed"
	assert.Equal(t, "name", CanonicalFields()[0].Name)
}

func TestDeref(t *testing.T) {
	assert.Equal(t, "", Deref(nil))
	assert.Equal(t, "x", Deref(StringPtr("x")))
}
