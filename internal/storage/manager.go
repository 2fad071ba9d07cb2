package storage

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

const unknown = "Unknown"

// RecentWindow is how far back Stats counts a resume as recent
const RecentWindow = 7 * 24 * time.Hour

// ResumeInfo describes one resume folder.
type ResumeInfo struct {
	Folder   string
	Path     string
	Created  time.Time
	Files    []string
	Template string
	Method   string
	Source   string
	RunID    string
	JobTitle string
	Company  string
}

// Stats aggregates the resume folders.
type Stats struct {
	Total     int
	Templates map[string]int
	Methods   map[string]int
	Recent    int
	Oldest    time.Time
	Newest    time.Time
}

// Manager lists and removes resume folders under Root.
type Manager struct {
	Root string
}

// NewManager creates a manager for the given resumes directory.
func NewManager(root string) *Manager {
	return &Manager{Root: root}
}

// List returns every resume folder, newest first. A missing root yields no resumes.
func (m *Manager) List() ([]ResumeInfo, error) {
	entries, err := os.ReadDir(m.Root)
	if errors.Is(err, fs.ErrNotExist) {
		return []ResumeInfo{}, nil
	}
	if err != nil {
		return nil, &Error{Path: m.Root, Message: "failed to read", Cause: err}
	}

	resumes := []ResumeInfo{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := m.Info(entry.Name())
		if err != nil {
			return nil, err
		}
		resumes = append(resumes, *info)
	}

	sort.SliceStable(resumes, func(i, j int) bool {
		return resumes[i].Created.After(resumes[j].Created)
	})
	return resumes, nil
}

// Info reads the metadata of one resume folder.
func (m *Manager) Info(folder string) (*ResumeInfo, error) {
	path, err := m.folderPath(folder)
	if err != nil {
		return nil, err
	}
	stat, err := os.Stat(path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && !stat.IsDir()) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, folder)
	}
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to stat", Cause: err}
	}

	info := &ResumeInfo{
		Folder:   folder,
		Path:     path,
		Created:  stat.ModTime(),
		Files:    []string{},
		Template: unknown,
		Method:   unknown,
		JobTitle: unknown,
		Company:  unknown,
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, &Error{Path: path, Message: "failed to read", Cause: err}
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		info.Files = append(info.Files, name)

		if strings.HasPrefix(name, "resume_") && strings.HasSuffix(name, ".html") && info.Template == unknown {
			info.Template = strings.TrimSuffix(strings.TrimPrefix(name, "resume_"), ".html")
		}
	}

	// unreadable metadata files leave the defaults in place
	readGenerationInfo(filepath.Join(path, GenerationInfoFile), info)
	readJobDetails(filepath.Join(path, JobDetailsFile), info)
	return info, nil
}

// Stats aggregates all resume folders relative to now.
func (m *Manager) Stats(now time.Time) (*Stats, error) {
	resumes, err := m.List()
	if err != nil {
		return nil, err
	}

	stats := &Stats{
		Total:     len(resumes),
		Templates: map[string]int{},
		Methods:   map[string]int{},
	}
	for i, r := range resumes {
		stats.Templates[r.Template]++
		stats.Methods[r.Method]++
		if !r.Created.Before(now.Add(-RecentWindow)) {
			stats.Recent++
		}
		if i == 0 || r.Created.Before(stats.Oldest) {
			stats.Oldest = r.Created
		}
		if i == 0 || r.Created.After(stats.Newest) {
			stats.Newest = r.Created
		}
	}
	return stats, nil
}

// Delete removes a resume folder and everything in it.
func (m *Manager) Delete(folder string) error {
	info, err := m.Info(folder)
	if err != nil {
		return err
	}
	if err := os.RemoveAll(info.Path); err != nil {
		return &Error{Path: info.Path, Message: "failed to delete", Cause: err}
	}
	return nil
}

// FindFile returns the first resume_*.<ext> file in a folder.
func (m *Manager) FindFile(folder, ext string) (string, error) {
	path, err := m.folderPath(folder)
	if err != nil {
		return "", err
	}
	matches, err := filepath.Glob(filepath.Join(path, "resume_*."+ext))
	if err != nil {
		return "", err
	}
	// resume_data.json matches resume_*.json but is not a rendered resume
	for _, match := range matches {
		if filepath.Base(match) != ResumeDataFile {
			return match, nil
		}
	}
	return "", fmt.Errorf("no %s file in %s: %w", ext, folder, ErrNotFound)
}

// folderPath resolves a folder name under Root, rejecting anything that escapes it.
func (m *Manager) folderPath(folder string) (string, error) {
	if folder == "" || folder == "." || folder == ".." || strings.ContainsAny(folder, `/\`) {
		return "", fmt.Errorf("%w: invalid folder name %q", ErrNotFound, folder)
	}
	return filepath.Join(m.Root, folder), nil
}

func readGenerationInfo(path string, info *ResumeInfo) {
	f, err := os.Open(path)
	if err != nil {
		return
	}
	defer func() { _ = f.Close() }()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := strings.Cut(scanner.Text(), ":")
		if !ok {
			continue
		}
		value = strings.TrimSpace(value)
		switch key {
		case "Template":
			info.Template = value
		case "Method":
			info.Method = value
		case "Source":
			info.Source = value
		case "Run ID":
			info.RunID = value
		case "Job Title":
			info.JobTitle = value
		case "Company":
			info.Company = value
		}
	}
}

func readJobDetails(path string, info *ResumeInfo) {
	data, err := os.ReadFile(path)
	if err != nil {
		return
	}
	var jobs []types.JobDetails
	if err := json.Unmarshal(data, &jobs); err != nil || len(jobs) == 0 {
		return
	}
	info.JobTitle = orDefault(jobs[0].Title, unknown)
	info.Company = orDefault(jobs[0].Company, unknown)
}
