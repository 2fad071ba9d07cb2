package llm

import (
	"strings"

	"github.com/ghanatheyakash/Resume-builder/internal/prompts"
	"github.com/ghanatheyakash/Resume-builder/internal/schemas"
	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// BuildResumePrompt builds the generation prompt. The validation feedback section
// is only added when errorContext is non-empty.
func BuildResumePrompt(jobDescription, userDetails, errorContext string) string {
	var sb strings.Builder

	sb.WriteString(prompts.Format(prompts.MustGet(prompts.GenerationFile, "resume-generation"), map[string]string{
		"Fields":         fieldList(),
		"Schema":         schemas.ResumeSchema(),
		"JobDescription": jobDescription,
		"UserDetails":    userDetails,
	}))

	if errorContext != "" {
		sb.WriteString(prompts.Format(prompts.MustGet(prompts.GenerationFile, "error-context"), map[string]string{
			"Errors": errorContext,
		}))
	}

	sb.WriteString(prompts.MustGet(prompts.GenerationFile, "json-only-suffix"))
	return sb.String()
}

func fieldList() string {
	fields := types.CanonicalFields()
	names := make([]string, 0, len(fields))
	for _, f := range fields {
		names = append(names, f.Name)
	}
	return strings.Join(names, ", ")
}
