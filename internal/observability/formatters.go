// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/ghanatheyakash/Resume-builder/internal/storage"
	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// Step prints a progress line.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) Step(format string, args ...any) {
	fmt.Fprintf(p.out, "→ "+format+"\n", args...)
}

// Success prints a completion line.
//
//nolint:errcheck
func (p *Printer) Success(format string, args ...any) {
	fmt.Fprintf(p.out, "✓ "+format+"\n", args...)
}

// Warn prints a non-fatal problem.
//
//nolint:errcheck
func (p *Printer) Warn(format string, args ...any) {
	fmt.Fprintf(p.out, "! "+format+"\n", args...)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(strings.TrimRight(content, "\n"), "\n") {
		if len([]rune(line)) > boxWidth-4 {
			line = string([]rune(line)[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes at most maxItemsToShow items and a count of the rest.
func writeList(sb *strings.Builder, heading string, items []string) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	for _, item := range items[:min(len(items), maxItemsToShow)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > maxItemsToShow {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-maxItemsToShow)
	}
	sb.WriteString("\n")
}

// PrintJobDetails outputs a summary of a scraped job posting.
func (p *Printer) PrintJobDetails(job *types.JobDetails) {
	if job == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Title:      %s\n", job.Title)
	fmt.Fprintf(&sb, "Company:    %s\n", job.Company)
	fmt.Fprintf(&sb, "Location:   %s\n", job.Location)
	fmt.Fprintf(&sb, "Experience: %s\n", job.ExperienceLevel)
	fmt.Fprintf(&sb, "Type:       %s\n", job.JobType)
	if job.SalaryRange != "" && job.SalaryRange != types.NotSpecified {
		fmt.Fprintf(&sb, "Salary:     %s\n", job.SalaryRange)
	}
	sb.WriteString("\n")
	writeList(&sb, "Skills", job.Skills)
	writeList(&sb, "Requirements", job.Requirements)

	p.printBox("JOB POSTING", sb.String())
}

// PrintResume outputs a summary of the structured resume.
func (p *Printer) PrintResume(record *types.ResumeRecord) {
	if record == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:  %s\n", record.Name)
	fmt.Fprintf(&sb, "Email: %s\n", record.Email)
	if title := types.Deref(record.JobTitle); title != "" {
		fmt.Fprintf(&sb, "Title: %s\n", title)
	}
	sb.WriteString("\n")

	writeList(&sb, "Skills", record.Skills)

	roles := make([]string, 0, len(record.Experience))
	for _, e := range record.Experience {
		roles = append(roles, fmt.Sprintf("%s at %s (%d bullets)", e.Role, e.Company, len(e.Responsibilities)))
	}
	writeList(&sb, "Experience", roles)

	schools := make([]string, 0, len(record.Education))
	for _, e := range record.Education {
		schools = append(schools, e.Degree+", "+e.School)
	}
	writeList(&sb, "Education", schools)

	projects := make([]string, 0, len(record.Projects))
	for _, pr := range record.Projects {
		projects = append(projects, pr.Name)
	}
	writeList(&sb, "Projects", projects)

	p.printBox("STRUCTURED RESUME", sb.String())
}

// PrintValidationErrors outputs the final errors of a failed generation.
func (p *Printer) PrintValidationErrors(errs []string) {
	if len(errs) == 0 {
		return
	}

	var sb strings.Builder
	for i, e := range errs {
		fmt.Fprintf(&sb, "%d. %s\n", i+1, e)
	}
	p.printBox(fmt.Sprintf("VALIDATION ERRORS (%d)", len(errs)), sb.String())
}

// RunSummary describes a finished generation.
type RunSummary struct {
	RunID    string
	Folder   string
	Template string
	Source   string
	Attempts int
	Files    []string
	Warnings []string
}

// PrintRunSummary outputs where a generated resume was written.
func (p *Printer) PrintRunSummary(s RunSummary) {
	var sb strings.Builder
	if s.RunID != "" {
		fmt.Fprintf(&sb, "Run:      %s\n", s.RunID)
	}
	fmt.Fprintf(&sb, "Folder:   %s\n", s.Folder)
	fmt.Fprintf(&sb, "Template: %s\n", s.Template)
	fmt.Fprintf(&sb, "Source:   %s (%d attempt(s))\n", s.Source, s.Attempts)
	sb.WriteString("\nFiles:\n")
	for _, f := range s.Files {
		fmt.Fprintf(&sb, "  • %s\n", f)
	}
	if len(s.Warnings) > 0 {
		sb.WriteString("\nWarnings:\n")
		for _, w := range s.Warnings {
			fmt.Fprintf(&sb, "  ⚠ %s\n", w)
		}
	}

	p.printBox("RESUME GENERATED", sb.String())
}

// PrintResumeList outputs one entry per resume folder.
//
//nolint:errcheck
func (p *Printer) PrintResumeList(resumes []storage.ResumeInfo, details bool) {
	if len(resumes) == 0 {
		fmt.Fprintln(p.out, "No resumes found.")
		return
	}

	for _, r := range resumes {
		if !details {
			fmt.Fprintf(p.out, "%s\n", r.Folder)
			fmt.Fprintf(p.out, "   Created:  %s\n", r.Created.Format("2006-01-02 15:04"))
			fmt.Fprintf(p.out, "   Template: %s\n", r.Template)
			fmt.Fprintf(p.out, "   Job:      %s at %s\n", r.JobTitle, r.Company)
			fmt.Fprintf(p.out, "   Method:   %s\n\n", r.Method)
			continue
		}

		var sb strings.Builder
		fmt.Fprintf(&sb, "Created:  %s\n", r.Created.Format(time.DateTime))
		fmt.Fprintf(&sb, "Template: %s\n", r.Template)
		fmt.Fprintf(&sb, "Job:      %s\n", r.JobTitle)
		fmt.Fprintf(&sb, "Company:  %s\n", r.Company)
		fmt.Fprintf(&sb, "Method:   %s\n", r.Method)
		if r.Source != "" {
			fmt.Fprintf(&sb, "Source:   %s\n", r.Source)
		}
		fmt.Fprintf(&sb, "Path:     %s\n\nFiles:\n", r.Path)
		for _, f := range r.Files {
			fmt.Fprintf(&sb, "  • %s\n", f)
		}
		p.printBox(r.Folder, sb.String())
	}
}

// PrintStats outputs aggregate resume statistics.
func (p *Printer) PrintStats(stats *storage.Stats) {
	if stats == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Total resumes:   %d\n", stats.Total)
	fmt.Fprintf(&sb, "Recent (7 days): %d\n", stats.Recent)
	if stats.Total > 0 {
		fmt.Fprintf(&sb, "Date range:      %s to %s\n", stats.Oldest.Format(time.DateOnly), stats.Newest.Format(time.DateOnly))
	}
	writeCounts(&sb, "Templates used", stats.Templates)
	writeCounts(&sb, "Methods used", stats.Methods)

	p.printBox("RESUME STATISTICS", sb.String())
}

func writeCounts(sb *strings.Builder, heading string, counts map[string]int) {
	if len(counts) == 0 {
		return
	}
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	fmt.Fprintf(sb, "\n%s:\n", heading)
	for _, k := range keys {
		fmt.Fprintf(sb, "  %s: %d\n", k, counts[k])
	}
}
