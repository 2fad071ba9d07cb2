package pipeline

import (
	"context"
	"errors"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ghanatheyakash/Resume-builder/internal/db"
	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// fileExporter writes the html as-is, standing in for both formats
type fileExporter struct {
	calls int
}

func (e *fileExporter) Export(_ context.Context, html, path string) error {
	e.calls++
	return os.WriteFile(path, []byte(html), 0o644)
}

type failingExporter struct{}

func (failingExporter) Export(context.Context, string, string) error {
	return errors.New("chrome not found")
}

type fakeStore struct {
	runs []*db.Run
	err  error
}

func (s *fakeStore) SaveRun(_ context.Context, run *db.Run) (uuid.UUID, error) {
	if s.err != nil {
		return uuid.Nil, s.err
	}
	s.runs = append(s.runs, run)
	return run.ID, nil
}

type fakeCache struct {
	postings map[string]*db.JobPosting
	upserts  []string
	getErr   error
}

func (c *fakeCache) GetFreshJobPosting(_ context.Context, url string) (*db.JobPosting, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.postings[url], nil
}

func (c *fakeCache) UpsertJobPosting(_ context.Context, _ string, details *types.JobDetails, _ time.Duration) error {
	c.upserts = append(c.upserts, details.URL)
	return nil
}
