package fetch

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ghanatheyakash/Resume-builder/internal/types"
)

// DefaultConcurrency bounds FetchAll when no limit is given
const DefaultConcurrency = 4

// Failure records a URL that could not be parsed.
type Failure struct {
	URL string
	Err error
}

// BatchResult holds the outcome of FetchAll. Jobs keep the input order of the URLs
// that succeeded.
type BatchResult struct {
	Jobs     []*types.JobDetails
	Failures []Failure
}

// Err joins all failures, or returns nil when every URL succeeded.
func (r *BatchResult) Err() error {
	errs := make([]error, 0, len(r.Failures))
	for _, f := range r.Failures {
		errs = append(errs, fmt.Errorf("%s: %w", f.URL, f.Err))
	}
	return errors.Join(errs...)
}

// FetchAll parses every URL with at most limit requests in flight. A failing URL is
// recorded and skipped; only context cancellation stops the batch.
func FetchAll(ctx context.Context, urls []string, opts *Options, limit int) (*BatchResult, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if limit <= 0 {
		limit = DefaultConcurrency
	}

	jobs := make([]*types.JobDetails, len(urls))
	errs := make([]error, len(urls))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, u := range urls {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			opts.Logger.Info().Str("url", u).Msg("parsing job posting")
			job, err := ParseJob(gctx, u, opts)
			if err != nil {
				opts.Logger.Warn().Err(err).Str("url", u).Msg("skipping job posting")
				errs[i] = err
				return nil
			}
			jobs[i] = job
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	result := &BatchResult{Jobs: []*types.JobDetails{}}
	for i, u := range urls {
		if errs[i] != nil {
			result.Failures = append(result.Failures, Failure{URL: u, Err: errs[i]})
			continue
		}
		result.Jobs = append(result.Jobs, jobs[i])
	}
	return result, nil
}
