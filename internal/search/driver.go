// Package search orchestrates a full search run: building page queries,
// fetching them sequentially with cursor pagination, and aggregating the
// results into the final table.
package search

import (
	"context"
	"errors"
	"fmt"

	"github.com/h0rv/ghact/internal/domain"
	"github.com/h0rv/ghact/internal/gh"
	"github.com/h0rv/ghact/internal/store"
	"github.com/rs/zerolog"
)

// Defaults used when Options leaves a field zero.
const (
	DefaultPageSize = 50
	DefaultMaxPages = 100
)

var (
	// ErrPaginationExhausted indicates MaxPages was reached without the API
	// reporting a final page. Records aggregated so far are returned
	// alongside this error as partial data.
	ErrPaginationExhausted = errors.New("pagination exhausted before final page")

	// ErrCancelled indicates the caller aborted the run via its context.
	ErrCancelled = errors.New("run cancelled")
)

// ProgressSink receives pagination progress. The driver calls ExpectedPages
// once after the first page of a non-empty result, PageDone once per
// completed page, and Finished exactly once at the end of the run (err is
// nil on success).
type ProgressSink interface {
	ExpectedPages(n int)
	PageDone(index int)
	Finished(err error)
}

type noopSink struct{}

func (noopSink) ExpectedPages(int) {}
func (noopSink) PageDone(int)      {}
func (noopSink) Finished(error)    {}

// PageFetcher executes one search document. *gh.Fetcher is the production
// implementation.
type PageFetcher interface {
	Fetch(ctx context.Context, document string) (*gh.PageResult, error)
}

// Options configures a Driver.
type Options struct {
	PageSize int          // items per page, default 50, API max 100
	MaxPages int          // hard upper bound on fetches, default 100
	Progress ProgressSink // optional, default no-op
	Log      zerolog.Logger
}

// Driver runs the sequential fetch loop. Pages are fetched strictly one
// after another because each page's cursor comes from the previous result.
// A Driver holds no state across runs.
type Driver struct {
	fetcher  PageFetcher
	pageSize int
	maxPages int
	progress ProgressSink
	log      zerolog.Logger
}

// NewDriver creates a Driver for the given fetcher.
func NewDriver(fetcher PageFetcher, opts Options) *Driver {
	d := &Driver{
		fetcher:  fetcher,
		pageSize: opts.PageSize,
		maxPages: opts.MaxPages,
		progress: opts.Progress,
		log:      opts.Log,
	}
	if d.pageSize <= 0 {
		d.pageSize = DefaultPageSize
	}
	if d.maxPages <= 0 {
		d.maxPages = DefaultMaxPages
	}
	if d.progress == nil {
		d.progress = noopSink{}
	}
	return d
}

// ExpectedPages returns the number of fetches needed to cover totalCount
// items at pageSize items per fetch.
func ExpectedPages(totalCount, pageSize int) int {
	return (totalCount + pageSize - 1) / pageSize
}

// Run executes the search and returns the flattened table.
//
// A zero-match query is a success with an empty table. Fetch and
// normalization failures abort the run with no table. The one exception is
// ErrPaginationExhausted, which returns the partial table together with the
// error so callers can inspect what was collected before the bound was hit.
func (d *Driver) Run(ctx context.Context, query string) (*domain.Table, error) {
	agg := store.New()
	cursor := ""

	for page := 0; page < d.maxPages; page++ {
		document := gh.BuildSearchQuery(query, d.pageSize, cursor)

		result, err := d.fetcher.Fetch(ctx, document)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				err = fmt.Errorf("%w: %v", ErrCancelled, err)
			}
			d.progress.Finished(err)
			return nil, err
		}

		if page == 0 {
			if result.TotalCount == 0 {
				d.log.Debug().Str("query", query).Msg("query matched no items")
				d.progress.Finished(nil)
				return agg.Finalize()
			}
			expected := ExpectedPages(result.TotalCount, d.pageSize)
			d.log.Debug().
				Int("total", result.TotalCount).
				Int("expected_pages", expected).
				Msg("starting pagination")
			d.progress.ExpectedPages(expected)
		}

		agg.Append(result)
		d.progress.PageDone(page)

		if !result.HasNextPage {
			table, err := agg.Finalize()
			d.progress.Finished(err)
			if err != nil {
				return nil, err
			}
			return table, nil
		}

		// The expected page count is an estimate; the cursor is not. A
		// page that claims more results but carries no cursor cannot be
		// continued safely.
		if result.EndCursor == "" {
			qerr := &gh.RemoteQueryError{
				Document: document,
				Reason:   "hasNextPage is true but endCursor is absent",
			}
			d.progress.Finished(qerr)
			return nil, qerr
		}
		cursor = result.EndCursor
	}

	// MaxPages guards against a remote that never reports a final page.
	// Keep what was collected as documented partial data.
	table, ferr := agg.Finalize()
	if ferr != nil {
		d.progress.Finished(ferr)
		return nil, ferr
	}
	err := fmt.Errorf("%w: stopped after %d pages", ErrPaginationExhausted, d.maxPages)
	d.progress.Finished(err)
	return table, err
}
