package fetch

import (
	"regexp"
	"strings"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

var (
	requirementMarker = regexp.MustCompile(`(?i)(?:requirements?|qualifications?|must have|required)[:\s]+`)
	// a block ends at a blank line or a line starting with a letter
	requirementEnd = regexp.MustCompile(`\n\n|\n[A-Za-z]`)
	bulletSplit    = regexp.MustCompile(`(?m)^\s*[•\-*]\s*|\s[•*]\s+|\n`)

	salaryPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\$[\d,]+k?\s*-\s*\$[\d,]+k?`),
		regexp.MustCompile(`(?i)\$[\d,]+k?\s*to\s*\$[\d,]+k?`),
		regexp.MustCompile(`(?i)salary[:\s]+.*?\$[\d,]+k?`),
	}
)

// KnownSkills are the technologies looked for in a description.
var KnownSkills = []string{
	"Python", "JavaScript", "Java", "C++", "C#", "Ruby", "PHP", "Go", "Rust",
	"React", "Angular", "Vue", "Node.js", "Django", "Flask", "Spring",
	"AWS", "Azure", "GCP", "Docker", "Kubernetes", "Jenkins", "Git",
	"SQL", "MongoDB", "PostgreSQL", "MySQL", "Redis", "Elasticsearch",
	"Machine Learning", "AI", "Data Science", "DevOps", "Agile", "Scrum",
}

var skillPatterns = compileSkills(KnownSkills)

func compileSkills(skills []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, len(skills))
	for i, skill := range skills {
		// boundaries are spelled out because \b does not work next to + or #
		patterns[i] = regexp.MustCompile(`(?i)(?:^|[^\w+#.])` + regexp.QuoteMeta(skill) + `(?:$|[^\w+#])`)
	}
	return patterns
}

// ExtractRequirements collects the items listed after requirement markers
// such as "Requirements:" or "Must have:". Duplicates are dropped, first seen wins.
func ExtractRequirements(description string) []string {
	requirements := []string{}
	seen := map[string]bool{}

	for _, loc := range requirementMarker.FindAllStringIndex(description, -1) {
		block := description[loc[1]:]
		if end := requirementEnd.FindStringIndex(block); end != nil {
			block = block[:end[0]]
		}
		for _, item := range bulletSplit.Split(block, -1) {
			item = strings.TrimSpace(item)
			if item == "" || seen[item] {
				continue
			}
			seen[item] = true
			requirements = append(requirements, item)
		}
	}
	return requirements
}

// ExtractSkills returns the known skills mentioned in the description, in KnownSkills order.
func ExtractSkills(description string) []string {
	skills := []string{}
	for i, pattern := range skillPatterns {
		if pattern.MatchString(description) {
			skills = append(skills, KnownSkills[i])
		}
	}
	return skills
}

var experienceLevels = []struct {
	level    string
	keywords []string
}{
	{"Senior", []string{"senior", "lead", "principal", "staff"}},
	{"Mid-level", []string{"mid", "intermediate", "3-5 years"}},
	{"Junior", []string{"junior", "entry", "0-2 years", "recent graduate"}},
}

var jobTypes = []struct {
	kind     string
	keywords []string
}{
	{"Remote", []string{"remote", "work from home", "wfh"}},
	{"Hybrid", []string{"hybrid", "partially remote"}},
	{"On-site", []string{"on-site", "onsite", "in-office"}},
}

// ExtractExperienceLevel classifies seniority by keyword; the first matching level wins.
func ExtractExperienceLevel(description string) string {
	lower := strings.ToLower(description)
	for _, l := range experienceLevels {
		if containsAny(lower, l.keywords) {
			return l.level
		}
	}
	return types.NotSpecified
}

// ExtractJobType classifies the work arrangement by keyword.
func ExtractJobType(description string) string {
	lower := strings.ToLower(description)
	for _, t := range jobTypes {
		if containsAny(lower, t.keywords) {
			return t.kind
		}
	}
	return types.NotSpecified
}

// ExtractSalaryRange returns the first salary mention, or NotSpecified.
func ExtractSalaryRange(description string) string {
	for _, pattern := range salaryPatterns {
		if match := pattern.FindString(description); match != "" {
			return match
		}
	}
	return types.NotSpecified
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
