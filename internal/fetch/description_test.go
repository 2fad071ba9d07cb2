package fetch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

func sampleJob() *types.JobDetails {
	return &types.JobDetails{
		URL:             "https://jobs.lever.co/acme/1",
		Title:           "Backend Engineer",
		Company:         "Acme",
		Location:        "Remote",
		Description:     "Build APIs.",
		Requirements:    []string{"5 years Go"},
		Skills:          []string{"Go", "Docker"},
		ExperienceLevel: "Senior",
		JobType:         "Remote",
		SalaryRange:     "$100k - $120k",
	}
}

func TestJobDescriptionText(t *testing.T) {
	want := strings.Join([]string{
		"JOB DESCRIPTION: Backend Engineer",
		"COMPANY: Acme",
		"LOCATION: Remote",
		"EXPERIENCE LEVEL: Senior",
		"JOB TYPE: Remote",
		"SALARY: $100k - $120k",
		"",
		"REQUIRED SKILLS:",
		"• Go",
		"• Docker",
		"",
		"JOB REQUIREMENTS:",
		"• 5 years Go",
		"",
		"FULL JOB DESCRIPTION:",
		"Build APIs.",
	}, "\n")

	assert.Equal(t, want, JobDescriptionText(sampleJob()))
}

func TestJobDescriptionText_OmitsUnspecifiedSalary(t *testing.T) {
	job := sampleJob()
	job.SalaryRange = types.NotSpecified
	job.Description = ""

	text := JobDescriptionText(job)
	assert.NotContains(t, text, "SALARY:")
	assert.True(t, strings.HasSuffix(text, "FULL JOB DESCRIPTION:\nNo description available"))
}

func TestSummaryReport_Empty(t *testing.T) {
	assert.Equal(t, "No jobs were successfully parsed.", SummaryReport(nil))
}

func TestSummaryReport(t *testing.T) {
	second := sampleJob()
	second.Title = "Data Engineer"
	second.Skills = []string{"Python", "Docker", "SQL", "AWS", "Spark", "Kafka"}
	second.ExperienceLevel = "Junior"

	report := SummaryReport([]*types.JobDetails{sampleJob(), second})

	assert.Contains(t, report, "JOB PARSING SUMMARY REPORT")
	assert.Contains(t, report, "Total jobs parsed: 2")
	assert.Contains(t, report, "MOST REQUESTED SKILLS:\n  Docker: 2 jobs\n  Go: 1 jobs")
	assert.Contains(t, report, "EXPERIENCE LEVEL DISTRIBUTION:\n  Senior: 1 jobs\n  Junior: 1 jobs")
	assert.Contains(t, report, "JOB TYPE DISTRIBUTION:\n  Remote: 2 jobs")
	assert.Contains(t, report, "1. Backend Engineer\n   Company: Acme")
	assert.Contains(t, report, "   Skills: Python, Docker, SQL, AWS, Spark...")
	assert.Contains(t, report, "   Skills: Go, Docker\n")
	assert.False(t, strings.HasSuffix(report, "\n"))
}
