package validation

import (
	"fmt"
	"strings"
)

// entryRule names the sub-fields every element of a sequence must carry
type entryRule struct {
	field    string
	label    string
	required []string
}

var entryRules = []entryRule{
	{field: "experience", label: "Experience", required: []string{"role", "company"}},
	{field: "education", label: "Education", required: []string{"degree", "school"}},
	{field: "projects", label: "Project", required: []string{"name"}},
}

func ruleViolations(obj map[string]any) []string {
	var errs []string

	if name, ok := obj["name"].(string); ok && strings.TrimSpace(name) == "" {
		errs = append(errs, "Name cannot be empty")
	}

	if email, ok := obj["email"].(string); ok && email != "" && !strings.Contains(email, "@") {
		errs = append(errs, "Email must contain '@' symbol")
	}

	for _, rule := range entryRules {
		items, ok := obj[rule.field].([]any)
		if !ok {
			continue
		}
		for i, item := range items {
			entry, ok := item.(map[string]any)
			if !ok {
				// reported by the schema
				continue
			}
			for _, sub := range rule.required {
				if missing(entry, sub) {
					errs = append(errs, fmt.Sprintf("%s entry %d must have a %s", rule.label, i+1, sub))
				}
			}
		}
	}

	return errs
}

// missing reports absent, null and blank string values. Values of the wrong
// type are left to the schema.
func missing(entry map[string]any, key string) bool {
	v, ok := entry[key]
	if !ok || v == nil {
		return true
	}
	s, isString := v.(string)
	return isString && strings.TrimSpace(s) == ""
}
