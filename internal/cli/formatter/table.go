package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mwinther/scoutline/internal/domain"
	"github.com/mwinther/scoutline/internal/score"
)

// RenderTable renders a simple aligned table with a header separator line.
// Headers are rendered with the Header style. Columns are padded to the
// maximum width found in each column across both headers and rows.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}

	cols := len(headers)

	// Measure visible width so styled cells align.
	widths := make([]int, cols)
	for i, h := range headers {
		if w := lipgloss.Width(h); w > widths[i] {
			widths[i] = w
		}
	}
	for _, row := range rows {
		for i := 0; i < cols && i < len(row); i++ {
			if w := lipgloss.Width(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	const colGap = 2

	var b strings.Builder

	for i, h := range headers {
		b.WriteString(StyleHeader.Render(h))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", widths[i]-lipgloss.Width(h)+colGap))
		}
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			pad := widths[i] - lipgloss.Width(cell)
			if pad < 0 {
				pad = 0
			}
			b.WriteString(cell)
			if i < cols-1 {
				b.WriteString(strings.Repeat(" ", pad+colGap))
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

// FormatFrame renders a display table, coloring fit-score cells by strength.
// At most limit rows are shown; a dim footer reports any truncation. A limit
// of 0 shows everything.
func FormatFrame(f *domain.Frame, limit int) string {
	headers := f.Columns()
	if len(headers) == 0 || f.Len() == 0 {
		return Dim("No players in view.") + "\n"
	}

	shown := f.Len()
	if limit > 0 && shown > limit {
		shown = limit
	}

	rows := make([][]string, 0, shown)
	for i := 0; i < shown; i++ {
		row := make([]string, len(headers))
		for j, col := range headers {
			v := f.Value(i, col)
			cell := v.Display()
			if score.IsFitScoreColumn(col) {
				if n, ok := v.AsNumber(); ok {
					cell = FitStyle(n).Render(cell)
				}
			}
			row[j] = cell
		}
		rows = append(rows, row)
	}

	out := RenderTable(headers, rows)
	if shown < f.Len() {
		out += Dim(fmt.Sprintf("… and %d more (showing %d of %d)", f.Len()-shown, shown, f.Len())) + "\n"
	}
	return out
}
