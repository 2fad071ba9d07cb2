package acquisition

import (
	"testing"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestFillMissing_OnlyFillsGaps(t *testing.T) {
	doc := types.Document{"name": "Ann"}

	filled := FillMissing(doc)

	assert.Equal(t, "Ann", filled["name"])
	assert.Equal(t, "", filled["email"])
	assert.Equal(t, "", filled["summary"])
	assert.Equal(t, []any{}, filled["skills"])
	assert.Equal(t, []any{}, filled["experience"])
	assert.Equal(t, []any{}, filled["certifications"])
	assert.Len(t, filled, len(types.CanonicalFields()))
}

func TestFillMissing_NeverOverwrites(t *testing.T) {
	doc := types.Document{
		"name":   "Ann",
		"email":  nil,
		"skills": "Go, Rust",
		"extra":  42,
	}

	filled := FillMissing(doc)

	assert.Nil(t, filled["email"])
	assert.Equal(t, "Go, Rust", filled["skills"])
	assert.Equal(t, 42, filled["extra"])
}

func TestFillMissing_DoesNotMutateInput(t *testing.T) {
	doc := types.Document{"name": "Ann"}

	_ = FillMissing(doc)

	assert.Equal(t, types.Document{"name": "Ann"}, doc)
}

func TestFillMissing_FreshDefaults(t *testing.T) {
	a := FillMissing(types.Document{})
	b := FillMissing(types.Document{})

	a["skills"] = append(a["skills"].([]any), "Go")
	assert.Equal(t, []any{}, b["skills"])
}
