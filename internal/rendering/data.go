package rendering

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// TemplateData is the flattened view of a record handed to templates
type TemplateData struct {
	Name     string
	Email    string
	Phone    string
	LinkedIn string
	GitHub   string
	Website  string
	Location string
	JobTitle string
	Summary  string

	// Contacts holds the non-empty contact values in display order
	Contacts []string

	Skills         []string
	Experience     []ExperienceView
	Education      []EducationView
	Projects       []ProjectView
	Certifications []string
}

// ExperienceView is one experience entry with optional values resolved
type ExperienceView struct {
	Role             string
	Company          string
	Dates            string
	Responsibilities []string
}

// EducationView is one education entry with optional values resolved
type EducationView struct {
	Degree string
	School string
	Dates  string
}

// ProjectView is one project entry with optional values resolved
type ProjectView struct {
	Name        string
	Tech        string
	Description string
}

// NewTemplateData flattens r for template use
func NewTemplateData(r *types.ResumeRecord) TemplateData {
	data := TemplateData{
		Name:           r.Name,
		Email:          r.Email,
		Phone:          types.Deref(r.Phone),
		LinkedIn:       types.Deref(r.LinkedIn),
		GitHub:         types.Deref(r.GitHub),
		Website:        types.Deref(r.Website),
		Location:       types.Deref(r.Location),
		JobTitle:       types.Deref(r.JobTitle),
		Summary:        types.Deref(r.Summary),
		Skills:         r.Skills,
		Certifications: r.Certifications,
	}

	for _, c := range []string{data.Email, data.Phone, data.Location, data.LinkedIn, data.GitHub, data.Website} {
		if strings.TrimSpace(c) != "" {
			data.Contacts = append(data.Contacts, c)
		}
	}

	for _, e := range r.Experience {
		data.Experience = append(data.Experience, ExperienceView{
			Role:             e.Role,
			Company:          e.Company,
			Dates:            types.Deref(e.Dates),
			Responsibilities: e.Responsibilities,
		})
	}
	for _, e := range r.Education {
		data.Education = append(data.Education, EducationView{
			Degree: e.Degree,
			School: e.School,
			Dates:  types.Deref(e.Dates),
		})
	}
	for _, p := range r.Projects {
		data.Projects = append(data.Projects, ProjectView{
			Name:        p.Name,
			Tech:        types.Deref(p.Tech),
			Description: types.Deref(p.Description),
		})
	}

	return data
}

var boldPattern = regexp.MustCompile(`\*\*(.+?)\*\*`)

// Bold escapes text and turns **word** markers into <strong> elements
func Bold(text string) template.HTML {
	escaped := template.HTMLEscapeString(text)
	return template.HTML(boldPattern.ReplaceAllString(escaped, "<strong>$1</strong>")) //nolint:gosec // input is escaped above
}

var funcs = template.FuncMap{
	"bold": Bold,
	"join": strings.Join,
}
