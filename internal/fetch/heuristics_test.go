package fetch

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

func TestExtractRequirements(t *testing.T) {
	tests := []struct {
		name        string
		description string
		want        []string
	}{
		{
			name:        "bullets until next heading",
			description: "About us\nRequirements:\n- Go\n• Kubernetes\n* SQL\nBenefits\n- Free lunch",
			want:        []string{"Go", "Kubernetes", "SQL"},
		},
		{
			name:        "inline requirement",
			description: "Must have: strong communication skills\n\nNice to have: Rust",
			want:        []string{"strong communication skills"},
		},
		{
			name:        "hyphenated words stay intact",
			description: "Qualifications:\n- 3-5 years of back-end work",
			want:        []string{"3-5 years of back-end work"},
		},
		{
			name:        "duplicates across markers dropped",
			description: "Requirements:\n- Go\n\nQualifications:\n- Go\n- Docker",
			want:        []string{"Go", "Docker"},
		},
		{
			name:        "no marker",
			description: "We build things.",
			want:        []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractRequirements(tt.description))
		})
	}
}

func TestExtractSkills(t *testing.T) {
	tests := []struct {
		description string
		want        []string
	}{
		{"Experience with Go, C++ and C# required.", []string{"C++", "C#", "Go"}},
		{"JavaScript and Node.js, not plain Java.", []string{"JavaScript", "Java", "Node.js"}},
		{"We use GitHub and Google Cloud", []string{}},
		{"machine learning on gcp", []string{"GCP", "Machine Learning"}},
		{"", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.description, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractSkills(tt.description))
		})
	}
}

func TestExtractExperienceLevel(t *testing.T) {
	assert.Equal(t, "Senior", ExtractExperienceLevel("Staff Engineer"))
	assert.Equal(t, "Senior", ExtractExperienceLevel("Lead a junior team"))
	assert.Equal(t, "Mid-level", ExtractExperienceLevel("3-5 years of experience"))
	assert.Equal(t, "Junior", ExtractExperienceLevel("Recent graduate welcome"))
	assert.Equal(t, types.NotSpecified, ExtractExperienceLevel("Engineer"))
}

func TestExtractJobType(t *testing.T) {
	assert.Equal(t, "Remote", ExtractJobType("Work from home anywhere"))
	assert.Equal(t, "Hybrid", ExtractJobType("Hybrid schedule"))
	assert.Equal(t, "On-site", ExtractJobType("Onsite in Paris"))
	assert.Equal(t, types.NotSpecified, ExtractJobType("Paris"))
}

func TestExtractSalaryRange(t *testing.T) {
	assert.Equal(t, "$100k - $120K", ExtractSalaryRange("Pay: $100k - $120K per year"))
	assert.Equal(t, "$90,000 to $110,000", ExtractSalaryRange("from $90,000 to $110,000"))
	assert.Equal(t, "Salary: up to $95k", ExtractSalaryRange("Salary: up to $95k"))
	assert.Equal(t, types.NotSpecified, ExtractSalaryRange("Competitive pay"))
}
