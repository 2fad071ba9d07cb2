// Package storage organizes generated resumes into one folder per job.
package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// MaxNameLength caps a sanitized name
const MaxNameLength = 50

// FolderTimeLayout is the timestamp suffix of a job folder
const FolderTimeLayout = "20060102_150405"

var (
	invalidChars = regexp.MustCompile(`[<>:"/\\|?*]`)
	underscores  = regexp.MustCompile(`_+`)
)

// SanitizeFilename makes s safe as a path element: reserved characters and
// spaces become underscores, runs of underscores collapse, and the result is
// trimmed to MaxNameLength bytes.
func SanitizeFilename(s string) string {
	s = invalidChars.ReplaceAllString(s, "_")
	s = strings.ReplaceAll(s, " ", "_")
	s = underscores.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > MaxNameLength {
		s = truncate(s, MaxNameLength)
	}
	return s
}

// truncate cuts s to at most n bytes without splitting a rune.
func truncate(s string, n int) string {
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

// FolderName returns Role_Company_YYYYMMDD_HHMMSS.
func FolderName(title, company string, now time.Time) string {
	role := orDefault(SanitizeFilename(title), "Unknown_Role")
	org := orDefault(SanitizeFilename(company), "Unknown_Company")
	return role + "_" + org + "_" + now.Format(FolderTimeLayout)
}

// CreateJobFolder creates root/FolderName(title, company, now) and returns its path.
// When that folder already exists a numeric suffix is added.
func CreateJobFolder(root, title, company string, now time.Time) (string, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return "", &Error{Path: root, Message: "failed to create folder", Cause: err}
	}

	base := filepath.Join(root, FolderName(title, company, now))
	path := base
	for i := 2; ; i++ {
		err := os.Mkdir(path, 0o755)
		if err == nil {
			return path, nil
		}
		if !errors.Is(err, fs.ErrExist) {
			return "", &Error{Path: path, Message: "failed to create folder", Cause: err}
		}
		path = fmt.Sprintf("%s_%d", base, i)
	}
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
