package pipeline

import (
	"context"
	"time"

	"github.com/ghanatheyakash/Resume-builder/internal/db"
	"github.com/ghanatheyakash/Resume-builder/internal/fetch"
	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// PostingCache stores parsed job postings between runs. *db.DB satisfies it.
type PostingCache interface {
	GetFreshJobPosting(ctx context.Context, url string) (*db.JobPosting, error)
	UpsertJobPosting(ctx context.Context, platform string, details *types.JobDetails, ttl time.Duration) error
}

// FetchJobs parses every URL, serving fresh postings from cache when one is given.
// Newly fetched postings are written back to the cache; cache errors only skip caching.
func FetchJobs(ctx context.Context, urls []string, opts *fetch.Options, limit int, cache PostingCache) (*fetch.BatchResult, error) {
	if opts == nil {
		opts = fetch.DefaultOptions()
	}

	cached := make(map[string]*types.JobDetails)
	var misses []string
	for _, u := range urls {
		if cache != nil {
			posting, err := cache.GetFreshJobPosting(ctx, u)
			if err != nil {
				opts.Logger.Warn().Err(err).Str("url", u).Msg("posting cache lookup failed")
			}
			if posting != nil {
				details := posting.Details
				cached[u] = &details
				continue
			}
		}
		misses = append(misses, u)
	}

	fetched, err := fetch.FetchAll(ctx, misses, opts, limit)
	if err != nil {
		return nil, err
	}

	byURL := make(map[string]*types.JobDetails, len(fetched.Jobs))
	for _, job := range fetched.Jobs {
		byURL[job.URL] = job
		if cache != nil {
			if err := cache.UpsertJobPosting(ctx, string(fetch.DetectPlatform(job.URL)), job, db.DefaultPostingTTL); err != nil {
				opts.Logger.Warn().Err(err).Str("url", job.URL).Msg("failed to cache posting")
			}
		}
	}

	result := &fetch.BatchResult{Jobs: []*types.JobDetails{}, Failures: fetched.Failures}
	for _, u := range urls {
		if job, ok := cached[u]; ok {
			result.Jobs = append(result.Jobs, job)
		} else if job, ok := byURL[u]; ok {
			result.Jobs = append(result.Jobs, job)
		}
	}
	return result, nil
}

// JobFailure records a job whose resume could not be generated.
type JobFailure struct {
	Job *types.JobDetails
	Err error
}

// BatchOutcome is the result of RunJobs.
type BatchOutcome struct {
	Outcomes []*Outcome
	Failures []JobFailure
}

// RunJobs generates one resume per job, one after another, each into its own folder.
// A failing job is recorded and the batch continues; cancellation stops it.
func RunJobs(ctx context.Context, jobs []*types.JobDetails, opts RunOptions) (*BatchOutcome, error) {
	batch := &BatchOutcome{Outcomes: []*Outcome{}}
	for i, job := range jobs {
		if err := ctx.Err(); err != nil {
			return batch, err
		}

		jobOpts := opts
		jobOpts.Job = job
		jobOpts.JobDescription = fetch.JobDescriptionText(job)

		if jobOpts.Printer != nil {
			jobOpts.Printer.Step("Job %d/%d: %s at %s", i+1, len(jobs), job.Title, job.Company)
		}
		outcome, err := Run(ctx, jobOpts)
		if err != nil {
			opts.Logger.Error().Err(err).Str("url", job.URL).Msg("resume generation failed")
			batch.Failures = append(batch.Failures, JobFailure{Job: job, Err: err})
			continue
		}
		batch.Outcomes = append(batch.Outcomes, outcome)
	}
	return batch, nil
}
