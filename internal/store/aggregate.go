// Package store provides the in-memory aggregation layer for search results.
// It accumulates raw records across pages and flattens them into a tabular
// result once pagination ends, following the "deep modules" principle -
// simple interface hiding the normalization logic.
package store

import (
	"fmt"
	"strings"

	"github.com/h0rv/ghact/internal/domain"
	"github.com/h0rv/ghact/internal/gh"
)

// MalformedURLError indicates a record URL could not be decomposed into
// organization and repository segments.
type MalformedURLError struct {
	URL string
}

func (e *MalformedURLError) Error() string {
	return fmt.Sprintf("record URL %q has too few path segments", e.URL)
}

// Aggregator accumulates raw records page by page and produces the final
// flattened table. It is owned by a single run and is not safe for
// concurrent appends.
type Aggregator struct {
	records []domain.Record
	pages   int
}

// New creates an empty Aggregator.
func New() *Aggregator {
	return &Aggregator{}
}

// Append extends the record sequence with one page's records, preserving
// arrival order.
func (a *Aggregator) Append(page *gh.PageResult) {
	a.records = append(a.records, page.Records...)
	a.pages++
}

// Pages returns the number of pages appended so far.
func (a *Aggregator) Pages() int {
	return a.pages
}

// Count returns the number of raw records accumulated so far.
func (a *Aggregator) Count() int {
	return len(a.records)
}

// Finalize normalizes all accumulated records into a Table. Row order
// matches page arrival order, then within-page order. Zero appended pages
// yield an empty table, not an error.
func (a *Aggregator) Finalize() (*domain.Table, error) {
	table := &domain.Table{Rows: make([]domain.Row, 0, len(a.records))}

	for _, record := range a.records {
		row, err := normalize(record)
		if err != nil {
			return nil, err
		}
		table.Rows = append(table.Rows, row)
	}

	return table, nil
}

// normalize flattens one raw record into a table row.
func normalize(record domain.Record) (domain.Row, error) {
	org, repo, err := SplitRepoURL(record.URL)
	if err != nil {
		return domain.Row{}, err
	}

	row := domain.Row{
		Kind:         record.Kind,
		ID:           record.ID,
		Title:        record.Title,
		State:        record.State,
		URL:          record.URL,
		Number:       record.Number,
		CreatedAt:    record.CreatedAt,
		UpdatedAt:    record.UpdatedAt,
		ClosedAt:     record.ClosedAt,
		Labels:       record.Labels,
		Organization: org,
		Repository:   repo,
		Comments:     len(record.Comments),
		MergeCommit:  record.MergeCommit,
	}

	// Deleted accounts have no author mapping; the flat field stays empty
	// rather than failing the record.
	if record.Author != nil {
		row.Author = record.Author.Login
	}
	if record.MergedBy != nil {
		row.MergedBy = record.MergedBy.Login
	}

	return row, nil
}

// SplitRepoURL extracts the organization and repository from an item URL by
// positional parsing: segments 3 and 4 of the URL split on "/", e.g.
// https://github.com/jupyterhub/zero-to-jupyterhub-k8s/issues/1241.
func SplitRepoURL(url string) (org, repo string, err error) {
	parts := strings.Split(url, "/")
	if len(parts) < 5 {
		return "", "", &MalformedURLError{URL: url}
	}
	return parts[3], parts[4], nil
}
