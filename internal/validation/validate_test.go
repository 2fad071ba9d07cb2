package validation

import (
	"testing"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validDocument() types.Document {
	return types.Document{
		"name":     "John Doe",
		"email":    "john@example.com",
		"phone":    "+1-555-0100",
		"linkedin": nil,
		"skills":   []any{"Python", "JavaScript", "Python"},
		"experience": []any{
			map[string]any{
				"role":             "Developer",
				"company":          "Tech Corp",
				"dates":            "2020-2023",
				"responsibilities": []any{"Built APIs"},
			},
		},
		"education":       []any{map[string]any{"degree": "CS", "school": "University"}},
		"projects":        []any{map[string]any{"name": "Portfolio", "tech": "Go"}},
		"certifications":  []any{"AWS"},
		"job_description": "Backend role",
	}
}

func TestValidate_ValidDocument(t *testing.T) {
	assert.Empty(t, Validate(validDocument()))
}

func TestValidate_NotAnObject(t *testing.T) {
	tests := []struct {
		name string
		doc  any
	}{
		{"nil", nil},
		{"string", "resume"},
		{"list", []any{"a"}},
		{"number", 42},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, []string{NotAnObjectMessage}, Validate(tt.doc))
		})
	}
}

func TestValidate_EmptyNameAndBadEmail(t *testing.T) {
	errs := Validate(map[string]any{"name": "", "email": "bad"})

	assert.Contains(t, errs, "Name cannot be empty")
	assert.Contains(t, errs, "Email must contain '@' symbol")
	assert.Len(t, errs, 2)
}

func TestValidate_BlankNameIsEmpty(t *testing.T) {
	errs := Validate(map[string]any{"name": "   ", "email": "a@b.c"})
	assert.Equal(t, []string{"Name cannot be empty"}, errs)
}

func TestValidate_EmptyEmailAllowed(t *testing.T) {
	assert.Empty(t, Validate(map[string]any{"name": "Ann", "email": ""}))
}

func TestValidate_MissingRequiredScalars(t *testing.T) {
	errs := Validate(map[string]any{})

	require.Len(t, errs, 2)
	assert.Contains(t, errs[0]+errs[1], "name is required")
	assert.Contains(t, errs[0]+errs[1], "email is required")
}

func TestValidate_WrongContainerShapes(t *testing.T) {
	doc := validDocument()
	doc["skills"] = "Python, Go"
	doc["experience"] = "Developer at Tech Corp"

	errs := Validate(doc)

	require.Len(t, errs, 2)
	joined := errs[0] + "\n" + errs[1]
	assert.Contains(t, joined, "skills")
	assert.Contains(t, joined, "experience")
}

func TestValidate_EntrySubFields(t *testing.T) {
	doc := validDocument()
	doc["experience"] = []any{
		map[string]any{"role": "Dev", "company": "A"},
		map[string]any{"role": "Lead"},
	}
	doc["education"] = []any{map[string]any{"degree": " ", "school": nil}}
	doc["projects"] = []any{map[string]any{"tech": "Go"}}

	errs := Validate(doc)

	assert.ElementsMatch(t, []string{
		"Experience entry 2 must have a company",
		"Education entry 1 must have a degree",
		"Education entry 1 must have a school",
		"Project entry 1 must have a name",
	}, errs)
}

func TestValidate_NonObjectEntryReportedOnce(t *testing.T) {
	doc := validDocument()
	doc["education"] = []any{"BSc CS"}

	errs := Validate(doc)

	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "education.0")
}

func TestValidate_CollectsEverything(t *testing.T) {
	errs := Validate(map[string]any{
		"name":       "",
		"email":      "nope",
		"skills":     []any{"Go", 3},
		"experience": []any{map[string]any{}},
	})

	assert.Contains(t, errs, "Name cannot be empty")
	assert.Contains(t, errs, "Email must contain '@' symbol")
	assert.Contains(t, errs, "Experience entry 1 must have a role")
	assert.Contains(t, errs, "Experience entry 1 must have a company")
	assert.Len(t, errs, 5)
}

func TestValidate_IsPure(t *testing.T) {
	doc := types.Document{
		"name":       "",
		"email":      "bad",
		"experience": []any{map[string]any{"role": "Dev"}},
	}
	before := types.Document{
		"name":       "",
		"email":      "bad",
		"experience": []any{map[string]any{"role": "Dev"}},
	}

	first := Validate(doc)
	second := Validate(doc)

	assert.Equal(t, first, second)
	assert.Equal(t, before, doc)
}

func TestValidateRecord(t *testing.T) {
	r := types.NewResumeRecord()
	r.Name = "Jane Doe"
	r.Email = "jane@x.com"
	r.Experience = []types.ExperienceEntry{{Role: "Engineer", Company: "Acme"}}

	assert.Empty(t, ValidateRecord(r))

	r.Experience[0].Company = ""
	assert.Equal(t, []string{"Experience entry 1 must have a company"}, ValidateRecord(r))

	assert.Equal(t, []string{NotAnObjectMessage}, ValidateRecord(nil))
}

func TestValidateRecord_NilSequences(t *testing.T) {
	r := &types.ResumeRecord{Name: "Ann", Email: "a@x.com"}

	assert.Empty(t, ValidateRecord(r))
	assert.Nil(t, r.Skills)
}
