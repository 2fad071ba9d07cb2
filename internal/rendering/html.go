package rendering

import (
	"embed"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// DefaultTemplate is used when no or an unknown template is requested
const DefaultTemplate = "harvard"

//go:embed templates/*.html
var templateFiles embed.FS

// TemplateNames returns the identifiers of the embedded templates, sorted
func TemplateNames() []string {
	entries, err := templateFiles.ReadDir("templates")
	if err != nil {
		return []string{DefaultTemplate}
	}

	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, strings.TrimSuffix(entry.Name(), filepath.Ext(entry.Name())))
	}
	slices.Sort(names)
	return names
}

// ResolveTemplate maps a requested template to an embedded one; unknown names
// resolve to DefaultTemplate.
func ResolveTemplate(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if slices.Contains(TemplateNames(), name) {
		return name
	}
	return DefaultTemplate
}

// RenderHTML renders r with the embedded template called templateName
func RenderHTML(r *types.ResumeRecord, templateName string) (string, error) {
	name := ResolveTemplate(templateName)

	content, err := templateFiles.ReadFile("templates/" + name + ".html")
	if err != nil {
		return "", &TemplateError{Template: name, Message: "embedded template missing", Cause: err}
	}
	return render(r, name, string(content))
}

// RenderHTMLFile renders r with a template read from path
func RenderHTMLFile(r *types.ResumeRecord, path string) (string, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", &TemplateError{Template: path, Message: "template file not found", Cause: err}
		}
		return "", &TemplateError{Template: path, Message: "failed to read template file", Cause: err}
	}
	return render(r, filepath.Base(path), string(content))
}

func render(r *types.ResumeRecord, name, content string) (string, error) {
	if r == nil {
		return "", &RenderError{Message: "resume record is nil"}
	}

	tmpl, err := template.New(name).Funcs(funcs).Parse(content)
	if err != nil {
		return "", &TemplateError{Template: name, Message: "failed to parse template", Cause: err}
	}

	var out strings.Builder
	if err := tmpl.Execute(&out, NewTemplateData(r)); err != nil {
		return "", &TemplateError{Template: name, Message: "failed to execute template", Cause: err}
	}
	return out.String(), nil
}

// OutputName returns the file name used for a rendered resume, e.g. resume_harvard.html.
// templateName is used as given; resolve it first for embedded templates.
func OutputName(templateName, ext string) string {
	return fmt.Sprintf("resume_%s.%s", templateName, strings.TrimPrefix(ext, "."))
}
