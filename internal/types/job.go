package types

// JobDetails holds the fields scraped from a single job posting
type JobDetails struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	Company         string   `json:"company"`
	Location        string   `json:"location"`
	Description     string   `json:"description"`
	Requirements    []string `json:"requirements"`
	Skills          []string `json:"skills"`
	ExperienceLevel string   `json:"experience_level"`
	JobType         string   `json:"job_type"`
	SalaryRange     string   `json:"salary_range"`
	ParsedAt        string   `json:"parsed_at"`
}

// Placeholder values used when a posting does not expose a field
const (
	UnknownTitle    = "Unknown Title"
	UnknownCompany  = "Unknown Company"
	UnknownLocation = "Unknown Location"
	NotSpecified    = "Not specified"
)
