package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// Files written into every resume folder.
const (
	ResumeDataFile     = "resume_data.json"
	JobDescriptionFile = "job_description.txt"
	JobDetailsFile     = "job_details.json"
	GenerationInfoFile = "generation_info.txt"
	AnalysisReportFile = "job_analysis_report.txt"
)

// Generation methods recorded in generation_info.txt.
const (
	MethodDirect = "Direct Input"
	MethodJobURL = "Individual Job URL Processing"
)

// TimestampLayout formats dates inside text artifacts
const TimestampLayout = "2006-01-02 15:04:05"

const summaryLength = 500

// GenerationInfo describes how a resume was produced.
type GenerationInfo struct {
	RunID     uuid.UUID
	Template  string
	Method    string
	Source    string
	Attempts  int
	Generated time.Time
}

// Artifacts are the files saved next to a rendered resume. JobDetails is nil for
// resumes generated from a plain job description file.
type Artifacts struct {
	Resume         types.Document
	JobDescription string
	JobDetails     *types.JobDetails
	Info           GenerationInfo
}

// SaveArtifacts writes the artifacts into folder and returns the paths written.
func SaveArtifacts(folder string, a Artifacts) ([]string, error) {
	var written []string
	write := func(name string, data []byte) error {
		path := filepath.Join(folder, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return &Error{Path: path, Message: "failed to write", Cause: err}
		}
		written = append(written, path)
		return nil
	}

	resume, err := json.MarshalIndent(a.Resume, "", "  ")
	if err != nil {
		return written, fmt.Errorf("failed to marshal resume data: %w", err)
	}
	if err := write(ResumeDataFile, resume); err != nil {
		return written, err
	}
	if err := write(JobDescriptionFile, []byte(a.JobDescription)); err != nil {
		return written, err
	}

	if a.JobDetails != nil {
		// kept as a one-element array so batch and single outputs read the same way
		details, err := json.MarshalIndent([]*types.JobDetails{a.JobDetails}, "", "  ")
		if err != nil {
			return written, fmt.Errorf("failed to marshal job details: %w", err)
		}
		if err := write(JobDetailsFile, details); err != nil {
			return written, err
		}
		if err := write(AnalysisReportFile, []byte(AnalysisReport(a.JobDetails, a.Info.Generated))); err != nil {
			return written, err
		}
	}

	if err := write(GenerationInfoFile, []byte(generationInfo(a.JobDetails, a.Info))); err != nil {
		return written, err
	}
	return written, nil
}

func generationInfo(job *types.JobDetails, info GenerationInfo) string {
	var b strings.Builder
	if job != nil {
		fmt.Fprintf(&b, "Job Title: %s\n", job.Title)
		fmt.Fprintf(&b, "Company: %s\n", job.Company)
		fmt.Fprintf(&b, "Location: %s\n", job.Location)
		fmt.Fprintf(&b, "Experience Level: %s\n", job.ExperienceLevel)
		fmt.Fprintf(&b, "Job Type: %s\n", job.JobType)
	}
	fmt.Fprintf(&b, "Generated: %s\n", info.Generated.Format(TimestampLayout))
	fmt.Fprintf(&b, "Template: %s\n", info.Template)
	fmt.Fprintf(&b, "Method: %s\n", info.Method)
	if info.Source != "" {
		fmt.Fprintf(&b, "Source: %s\n", info.Source)
		fmt.Fprintf(&b, "Attempts: %d\n", info.Attempts)
	}
	if info.RunID != uuid.Nil {
		fmt.Fprintf(&b, "Run ID: %s\n", info.RunID)
	}
	return b.String()
}

// AnalysisReport summarizes a single scraped posting.
func AnalysisReport(job *types.JobDetails, now time.Time) string {
	rule := strings.Repeat("=", 60)
	lines := []string{
		rule,
		"INDIVIDUAL JOB ANALYSIS REPORT",
		rule,
		"Job Title: " + job.Title,
		"Company: " + job.Company,
		"Location: " + job.Location,
		"Experience Level: " + job.ExperienceLevel,
		"Job Type: " + job.JobType,
		"Analysis Date: " + now.Format(TimestampLayout),
		"",
	}

	if len(job.Skills) > 0 {
		lines = append(lines, "REQUIRED SKILLS:")
		for _, s := range job.Skills {
			lines = append(lines, "• "+s)
		}
		lines = append(lines, "")
	}
	if len(job.Requirements) > 0 {
		lines = append(lines, "JOB REQUIREMENTS:")
		for _, r := range job.Requirements {
			lines = append(lines, "• "+r)
		}
		lines = append(lines, "")
	}
	if job.SalaryRange != "" && job.SalaryRange != types.NotSpecified {
		lines = append(lines, "SALARY RANGE: "+job.SalaryRange, "")
	}
	if job.Description != "" {
		summary := job.Description
		if len(summary) > summaryLength {
			summary = truncate(summary, summaryLength) + "..."
		}
		lines = append(lines, "JOB DESCRIPTION SUMMARY:", summary, "")
	}

	return strings.Join(lines, "\n")
}
