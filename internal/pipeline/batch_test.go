package pipeline

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ghanatheyakash/Resume-builder/internal/db"
	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

func postingServer(t *testing.T, hits *int32) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusGone)
			return
		}
		_, _ = fmt.Fprintf(w, `<html><body><h1>Role %s</h1><div class="company">Co</div></body></html>`, r.URL.Path)
	}))
	t.Cleanup(server.Close)
	return server
}

func TestFetchJobs_UsesCache(t *testing.T) {
	var hits int32
	server := postingServer(t, &hits)

	cachedURL := server.URL + "/cached"
	cache := &fakeCache{postings: map[string]*db.JobPosting{
		cachedURL: {URL: cachedURL, Details: types.JobDetails{URL: cachedURL, Title: "From cache"}},
	}}

	urls := []string{server.URL + "/a", cachedURL, server.URL + "/gone"}
	result, err := FetchJobs(context.Background(), urls, nil, 2, cache)
	require.NoError(t, err)

	require.Len(t, result.Jobs, 2)
	assert.Equal(t, "Role /a", result.Jobs[0].Title)
	assert.Equal(t, "From cache", result.Jobs[1].Title)
	require.Len(t, result.Failures, 1)
	assert.Equal(t, server.URL+"/gone", result.Failures[0].URL)

	assert.Equal(t, int32(2), atomic.LoadInt32(&hits))
	assert.Equal(t, []string{server.URL + "/a"}, cache.upserts)
}

func TestFetchJobs_CacheErrorsFetchAnyway(t *testing.T) {
	var hits int32
	server := postingServer(t, &hits)
	cache := &fakeCache{getErr: errors.New("db down")}

	result, err := FetchJobs(context.Background(), []string{server.URL + "/x"}, nil, 1, cache)
	require.NoError(t, err)
	require.Len(t, result.Jobs, 1)
	assert.Equal(t, int32(1), atomic.LoadInt32(&hits))
}

func TestFetchJobs_NoCache(t *testing.T) {
	var hits int32
	server := postingServer(t, &hits)

	result, err := FetchJobs(context.Background(), []string{server.URL + "/x"}, nil, 1, nil)
	require.NoError(t, err)
	assert.Len(t, result.Jobs, 1)
}

func TestRunJobs(t *testing.T) {
	opts := baseOptions(t, &fileExporter{})
	opts.Formats = []string{"html"}

	jobs := []*types.JobDetails{
		{URL: "https://a.example/1", Title: "Dev", Company: "A"},
		{URL: "https://b.example/2", Title: "Ops", Company: "B"},
	}

	batch, err := RunJobs(context.Background(), jobs, opts)
	require.NoError(t, err)
	require.Len(t, batch.Outcomes, 2)
	assert.Empty(t, batch.Failures)
	assert.NotEqual(t, batch.Outcomes[0].Folder, batch.Outcomes[1].Folder)
	assert.Contains(t, batch.Outcomes[1].Folder, "Ops_B_")
}

func TestRunJobs_FailuresContinue(t *testing.T) {
	opts := baseOptions(t, &fileExporter{})
	opts.UserDetails = "no usable details"

	jobs := []*types.JobDetails{{Title: "Dev", Company: "A"}, {Title: "Ops", Company: "B"}}

	batch, err := RunJobs(context.Background(), jobs, opts)
	require.NoError(t, err)
	assert.Empty(t, batch.Outcomes)
	assert.Len(t, batch.Failures, 2)
}

func TestRunJobs_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	batch, err := RunJobs(ctx, []*types.JobDetails{{Title: "Dev"}}, baseOptions(t, &fileExporter{}))
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, batch.Outcomes)
}
