package ui

import (
	"fmt"
	"io"
)

// ConsoleProgress is a ProgressSink that writes one styled line per page to
// a writer, typically stderr so the table on stdout stays pipeable.
type ConsoleProgress struct {
	w        io.Writer
	expected int
}

// NewConsoleProgress creates a progress sink writing to w.
func NewConsoleProgress(w io.Writer) *ConsoleProgress {
	return &ConsoleProgress{w: w}
}

// ExpectedPages records the page estimate announced after the first page.
func (p *ConsoleProgress) ExpectedPages(n int) {
	p.expected = n
	fmt.Fprintln(p.w, DimStyle.Render(fmt.Sprintf("Downloading %d page(s)...", n)))
}

// PageDone prints progress for one completed page. The expected count is an
// estimate, so the actual page count may come in under it.
func (p *ConsoleProgress) PageDone(index int) {
	fmt.Fprintln(p.w, DimStyle.Render(fmt.Sprintf("  page %d/%d", index+1, p.expected)))
}

// Finished prints the terminal line for the run.
func (p *ConsoleProgress) Finished(err error) {
	if err != nil {
		fmt.Fprintln(p.w, ErrorStyle.Render(fmt.Sprintf("Download failed: %v", err)))
		return
	}
	fmt.Fprintln(p.w, SuccessStyle.Render("Download complete"))
}
