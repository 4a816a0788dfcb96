// Package ui renders search results and progress for the terminal.
package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/h0rv/ghact/internal/domain"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// maxTitleWidth caps the TITLE column so wide terminals stay readable.
const maxTitleWidth = 60

// Summary returns the one-line result summary shown above the table.
func Summary(table *domain.Table) string {
	issues, prs := 0, 0
	for _, row := range table.Rows {
		if row.Kind == domain.KindPullRequest {
			prs++
		} else {
			issues++
		}
	}
	return TitleStyle.Render(
		fmt.Sprintf("%d items (%d issues, %d pull requests)", table.Len(), issues, prs),
	)
}

// RenderTable renders the flattened result as a column-aligned text table.
// An empty table renders as a single placeholder line.
func RenderTable(table *domain.Table) string {
	if table.Len() == 0 {
		return DimStyle.Render("No items matched the query.")
	}

	headers := []string{"TYPE", "ITEM", "STATE", "AUTHOR", "COMMENTS", "TITLE"}
	rows := make([][]string, 0, table.Len())
	for _, row := range table.Rows {
		rows = append(rows, []string{
			kindLabel(row.Kind),
			fmt.Sprintf("%s/%s#%d", row.Organization, row.Repository, row.Number),
			row.State,
			row.Author,
			fmt.Sprintf("%d", row.Comments),
			truncate.StringWithTail(row.Title, maxTitleWidth, "…"),
		})
	}

	widths := columnWidths(headers, rows)

	var b strings.Builder
	b.WriteString(HeaderStyle.Render(renderLine(headers, widths)))
	b.WriteString("\n")
	for i, cells := range rows {
		// Style the state cell after padding so widths stay correct.
		line := renderLineStyled(cells, widths, 2, stateStyle(table.Rows[i].State))
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func kindLabel(kind domain.RecordKind) string {
	if kind == domain.KindPullRequest {
		return "PR"
	}
	return "Issue"
}

// columnWidths measures cells in display width, matching how truncation
// counts, so multibyte titles and logins keep the columns aligned.
func columnWidths(headers []string, rows [][]string) []int {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = ansi.PrintableRuneWidth(h)
	}
	for _, cells := range rows {
		for i, cell := range cells {
			if w := ansi.PrintableRuneWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	return widths
}

func renderLine(cells []string, widths []int) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		padded[i] = pad(cell, widths[i])
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

// renderLineStyled renders one row, applying style to the cell at styledCol.
func renderLineStyled(cells []string, widths []int, styledCol int, style lipgloss.Style) string {
	padded := make([]string, len(cells))
	for i, cell := range cells {
		p := pad(cell, widths[i])
		if i == styledCol {
			p = style.Render(p)
		}
		padded[i] = p
	}
	return strings.TrimRight(strings.Join(padded, "  "), " ")
}

func pad(s string, width int) string {
	w := ansi.PrintableRuneWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
