// Package parsing turns free-text candidate details into a resume record without
// calling any external service.
package parsing

import (
	"strings"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// section is the cursor that decides how list lines are interpreted
type section int

const (
	sectionNone section = iota
	sectionExperience
	sectionEducation
	sectionProjects
	sectionCertifications
)

var sectionHeaders = map[string]section{
	"experience":     sectionExperience,
	"education":      sectionEducation,
	"projects":       sectionProjects,
	"certifications": sectionCertifications,
}

// responsibilityMarker prefixes a bullet that belongs to the latest experience entry.
// It is matched against the untrimmed line.
const responsibilityMarker = "  *"

// state is the accumulator of the line fold
type state struct {
	cursor section
	record *types.ResumeRecord
}

// ParseDetails builds a best-effort record from free text. It never fails: unknown
// and malformed lines are skipped. jobDescription is copied verbatim onto the record,
// and errorContext is attached when non-empty.
func ParseDetails(freeText, jobDescription, errorContext string) *types.ResumeRecord {
	st := state{cursor: sectionNone, record: types.NewResumeRecord()}

	for _, line := range strings.Split(freeText, "\n") {
		st = step(st, strings.TrimRight(line, "\r"))
	}

	st.record.JobDescription = jobDescription
	if errorContext != "" {
		st.record.Errors = errorContext
	}
	return st.record
}

// step consumes one line and returns the next state.
func step(st state, raw string) state {
	if st.cursor == sectionExperience && strings.HasPrefix(raw, responsibilityMarker) {
		addResponsibility(st.record, strings.TrimSpace(raw[len(responsibilityMarker):]))
		return st
	}

	line := strings.TrimSpace(raw)
	if line == "" {
		return st
	}

	if st.cursor != sectionNone && strings.HasPrefix(line, "-") {
		addListItem(st, strings.TrimSpace(line[1:]))
		return st
	}

	key, value, ok := strings.Cut(line, ":")
	if !ok {
		return st
	}
	key = strings.ToLower(strings.TrimSpace(key))
	value = strings.TrimSpace(value)

	if next, isHeader := sectionHeaders[key]; isHeader && value == "" {
		st.cursor = next
		return st
	}

	setScalar(st.record, key, value)
	return st
}

func setScalar(r *types.ResumeRecord, key, value string) {
	switch key {
	case "name":
		r.Name = value
	case "email":
		r.Email = value
	case "phone":
		r.Phone = types.StringPtr(value)
	case "linkedin":
		r.LinkedIn = types.StringPtr(value)
	case "github":
		r.GitHub = types.StringPtr(value)
	case "website":
		r.Website = types.StringPtr(value)
	case "location":
		r.Location = types.StringPtr(value)
	case "job title":
		r.JobTitle = types.StringPtr(value)
	case "summary":
		r.Summary = types.StringPtr(value)
	case "skills":
		r.Skills = splitSkills(value)
	}
}

func splitSkills(value string) []string {
	skills := []string{}
	for _, s := range strings.Split(value, ",") {
		if s = strings.TrimSpace(s); s != "" {
			skills = append(skills, s)
		}
	}
	return skills
}

func addListItem(st state, item string) {
	if st.cursor == sectionCertifications {
		st.record.Certifications = append(st.record.Certifications, item)
		return
	}

	// the last field keeps any further pipes
	parts := strings.SplitN(item, "|", 3)
	if len(parts) < 3 {
		return
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	switch st.cursor {
	case sectionExperience:
		st.record.Experience = append(st.record.Experience, types.ExperienceEntry{
			Role:             parts[0],
			Company:          parts[1],
			Dates:            optional(parts[2]),
			Responsibilities: []string{},
		})
	case sectionEducation:
		st.record.Education = append(st.record.Education, types.EducationEntry{
			Degree: parts[0],
			School: parts[1],
			Dates:  optional(parts[2]),
		})
	case sectionProjects:
		st.record.Projects = append(st.record.Projects, types.ProjectEntry{
			Name:        parts[0],
			Tech:        optional(parts[1]),
			Description: optional(parts[2]),
		})
	}
}

func addResponsibility(r *types.ResumeRecord, text string) {
	if len(r.Experience) == 0 {
		return
	}
	last := &r.Experience[len(r.Experience)-1]
	last.Responsibilities = append(last.Responsibilities, text)
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return types.StringPtr(s)
}
