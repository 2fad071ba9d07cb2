package db

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// DefaultPostingTTL is how long a cached job posting stays fresh
const DefaultPostingTTL = 24 * time.Hour

// Run is one resume generation stored in resume_runs.
type Run struct {
	ID             uuid.UUID      `json:"id"`
	CreatedAt      time.Time      `json:"created_at"`
	JobTitle       string         `json:"job_title"`
	Company        string         `json:"company"`
	JobURL         string         `json:"job_url,omitempty"`
	Source         string         `json:"source"`
	Attempts       int            `json:"attempts"`
	Template       string         `json:"template"`
	Folder         string         `json:"folder"`
	Record         types.Document `json:"record"`
	JobDescription string         `json:"job_description"`
}

// JobPosting is a cached scrape of a job URL.
type JobPosting struct {
	URL       string           `json:"url"`
	Platform  string           `json:"platform"`
	Details   types.JobDetails `json:"details"`
	FetchedAt time.Time        `json:"fetched_at"`
	ExpiresAt time.Time        `json:"expires_at"`
}

// IsExpired reports whether the posting should be fetched again.
func (p *JobPosting) IsExpired(now time.Time) bool {
	return !now.Before(p.ExpiresAt)
}
