package fetch

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

const reportRule = "============================================================"

// JobDescriptionText flattens scraped job details into the plain-text job
// description used for resume generation.
func JobDescriptionText(job *types.JobDetails) string {
	var lines []string
	lines = append(lines,
		"JOB DESCRIPTION: "+job.Title,
		"COMPANY: "+job.Company,
		"LOCATION: "+job.Location,
		"EXPERIENCE LEVEL: "+orDefault(job.ExperienceLevel, types.NotSpecified),
		"JOB TYPE: "+orDefault(job.JobType, types.NotSpecified),
	)
	if job.SalaryRange != "" && job.SalaryRange != types.NotSpecified {
		lines = append(lines, "SALARY: "+job.SalaryRange)
	}

	lines = append(lines, "\nREQUIRED SKILLS:")
	for _, skill := range job.Skills {
		lines = append(lines, "• "+skill)
	}

	lines = append(lines, "\nJOB REQUIREMENTS:")
	for _, req := range job.Requirements {
		lines = append(lines, "• "+req)
	}

	lines = append(lines, "\nFULL JOB DESCRIPTION:", orDefault(job.Description, "No description available"))
	return strings.Join(lines, "\n")
}

// counter keeps counts in first-seen order
type counter struct {
	keys   []string
	counts map[string]int
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) add(key string) {
	if _, ok := c.counts[key]; !ok {
		c.keys = append(c.keys, key)
	}
	c.counts[key]++
}

// SummaryReport describes a batch of parsed jobs: the most requested skills,
// distributions of experience level and job type, then one entry per job.
func SummaryReport(jobs []*types.JobDetails) string {
	if len(jobs) == 0 {
		return "No jobs were successfully parsed."
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nJOB PARSING SUMMARY REPORT\n%s\n", reportRule, reportRule)
	fmt.Fprintf(&b, "Total jobs parsed: %d\n\n", len(jobs))

	skills, levels, kinds := newCounter(), newCounter(), newCounter()
	for _, job := range jobs {
		for _, s := range job.Skills {
			skills.add(s)
		}
		levels.add(job.ExperienceLevel)
		kinds.add(job.JobType)
	}

	if len(skills.keys) > 0 {
		ranked := append([]string(nil), skills.keys...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return skills.counts[ranked[i]] > skills.counts[ranked[j]]
		})
		if len(ranked) > 10 {
			ranked = ranked[:10]
		}
		b.WriteString("MOST REQUESTED SKILLS:\n")
		for _, s := range ranked {
			fmt.Fprintf(&b, "  %s: %d jobs\n", s, skills.counts[s])
		}
		b.WriteString("\n")
	}

	b.WriteString("EXPERIENCE LEVEL DISTRIBUTION:\n")
	for _, l := range levels.keys {
		fmt.Fprintf(&b, "  %s: %d jobs\n", l, levels.counts[l])
	}
	b.WriteString("\nJOB TYPE DISTRIBUTION:\n")
	for _, k := range kinds.keys {
		fmt.Fprintf(&b, "  %s: %d jobs\n", k, kinds.counts[k])
	}

	b.WriteString("\nINDIVIDUAL JOB SUMMARIES:\n")
	b.WriteString(strings.Repeat("-", 60) + "\n")
	for i, job := range jobs {
		shown, more := job.Skills, ""
		if len(shown) > 5 {
			shown, more = shown[:5], "..."
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, job.Title)
		fmt.Fprintf(&b, "   Company: %s\n", job.Company)
		fmt.Fprintf(&b, "   Location: %s\n", job.Location)
		fmt.Fprintf(&b, "   Experience: %s\n", job.ExperienceLevel)
		fmt.Fprintf(&b, "   Type: %s\n", job.JobType)
		fmt.Fprintf(&b, "   Skills: %s%s\n", strings.Join(shown, ", "), more)
		fmt.Fprintf(&b, "   URL: %s\n\n", job.URL)
	}

	return strings.TrimRight(b.String(), "\n")
}
