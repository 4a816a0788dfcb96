package ui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/h0rv/ghact/internal/domain"
	"github.com/muesli/reflow/ansi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTable() *domain.Table {
	return &domain.Table{Rows: []domain.Row{
		{
			Kind:         domain.KindIssue,
			Number:       1,
			State:        "OPEN",
			Author:       "alice",
			Organization: "org",
			Repository:   "repo",
			Title:        "Broken build",
		},
		{
			Kind:         domain.KindPullRequest,
			Number:       2,
			State:        "MERGED",
			Author:       "bob",
			Organization: "org",
			Repository:   "repo",
			Title:        "Fix the build",
			MergedBy:     "alice",
		},
	}}
}

func TestRenderTable(t *testing.T) {
	out := RenderTable(sampleTable())

	assert.Contains(t, out, "TYPE")
	assert.Contains(t, out, "org/repo#1")
	assert.Contains(t, out, "org/repo#2")
	assert.Contains(t, out, "alice")
	assert.Contains(t, out, "PR")
	assert.Contains(t, out, "Issue")

	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	assert.Len(t, lines, 3, "header plus one line per row")
}

func TestRenderTable_Empty(t *testing.T) {
	out := RenderTable(&domain.Table{})

	assert.Contains(t, out, "No items matched")
}

func TestRenderTable_TruncatesLongTitles(t *testing.T) {
	table := &domain.Table{Rows: []domain.Row{
		{
			Kind:         domain.KindIssue,
			Organization: "org",
			Repository:   "repo",
			Title:        strings.Repeat("x", 200),
		},
	}}

	out := RenderTable(table)

	assert.NotContains(t, out, strings.Repeat("x", 100))
	assert.Contains(t, out, "…")
}

func TestRenderTable_AlignsMultibyteCells(t *testing.T) {
	// "tëst/repo#1" is 12 bytes but 11 cells wide; byte-based padding
	// would shift every column after it by one.
	table := &domain.Table{Rows: []domain.Row{
		{
			Kind:         domain.KindIssue,
			Number:       1,
			State:        "OPEN",
			Author:       "josé",
			Organization: "tëst",
			Repository:   "repo",
			Title:        "a",
		},
		{
			Kind:         domain.KindIssue,
			Number:       2,
			State:        "CLOSED",
			Author:       "anna",
			Organization: "test2",
			Repository:   "repo",
			Title:        "b",
		},
	}}

	out := RenderTable(table)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	require.Len(t, lines, 3)

	openAt := strings.Index(lines[1], "OPEN")
	closedAt := strings.Index(lines[2], "CLOSED")
	require.GreaterOrEqual(t, openAt, 0)
	require.GreaterOrEqual(t, closedAt, 0)
	assert.Equal(t,
		ansi.PrintableRuneWidth(lines[1][:openAt]),
		ansi.PrintableRuneWidth(lines[2][:closedAt]),
		"state column must start at the same display offset in every row")
}

func TestPad_MultibyteWidth(t *testing.T) {
	padded := pad("josé", 6)

	assert.Equal(t, 6, ansi.PrintableRuneWidth(padded))
	assert.Equal(t, "josé  ", padded)
}

func TestColumnWidths_DisplayWidth(t *testing.T) {
	widths := columnWidths([]string{"A"}, [][]string{{"josé"}, {"x…"}})

	assert.Equal(t, []int{4}, widths, "widths count cells, not bytes")
}

func TestSummary(t *testing.T) {
	out := Summary(sampleTable())

	assert.Contains(t, out, "2 items")
	assert.Contains(t, out, "1 issues")
	assert.Contains(t, out, "1 pull requests")
}

func TestConsoleProgress(t *testing.T) {
	var buf bytes.Buffer
	p := NewConsoleProgress(&buf)

	p.ExpectedPages(3)
	p.PageDone(0)
	p.PageDone(1)
	p.Finished(nil)

	out := buf.String()
	assert.Contains(t, out, "Downloading 3 page(s)")
	assert.Contains(t, out, "page 1/3")
	assert.Contains(t, out, "page 2/3")
	assert.Contains(t, out, "Download complete")
}

func TestConsoleProgress_Failure(t *testing.T) {
	var buf bytes.Buffer
	p := NewConsoleProgress(&buf)

	p.ExpectedPages(2)
	p.PageDone(0)
	p.Finished(errors.New("boom"))

	out := buf.String()
	require.Contains(t, out, "Download failed")
	assert.Contains(t, out, "boom")
	assert.NotContains(t, out, "Download complete")
}
