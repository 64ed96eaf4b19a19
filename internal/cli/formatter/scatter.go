package formatter

import (
	"fmt"
	"strings"

	"github.com/mwinther/scoutline/internal/chart"
)

// Default scatter canvas size in character cells.
const (
	scatterWidth  = 60
	scatterHeight = 18
)

// FormatScatter renders a chart as an ASCII scatter plot. The axis frame
// spans the chart's own ranges, so plots of a narrowed view keep the full
// dataset's proportions.
func FormatScatter(c *chart.Chart) string {
	return renderScatter(c, scatterWidth, scatterHeight)
}

func renderScatter(c *chart.Chart, width, height int) string {
	var b strings.Builder
	b.WriteString(Header(c.Title))
	b.WriteString("\n")

	if len(c.Points) == 0 {
		b.WriteString(Dim("No plottable rows in the current view.") + "\n")
		return b.String()
	}

	grid := make([][]rune, height)
	for y := range grid {
		grid[y] = make([]rune, width)
		for x := range grid[y] {
			grid[y][x] = ' '
		}
	}

	xSpan := c.XRange.Max - c.XRange.Min
	ySpan := c.YRange.Max - c.YRange.Min
	for _, p := range c.Points {
		x := int(float64(width-1) * (p.X - c.XRange.Min) / xSpan)
		y := int(float64(height-1) * (p.Y - c.YRange.Min) / ySpan)
		if x < 0 || x >= width || y < 0 || y >= height {
			continue
		}
		// Grid row 0 is the top; y grows upward.
		grid[height-1-y][x] = '●'
	}

	yMaxLabel := fmt.Sprintf("%.1f", c.YRange.Max)
	yMinLabel := fmt.Sprintf("%.1f", c.YRange.Min)
	gutter := len(yMaxLabel)
	if len(yMinLabel) > gutter {
		gutter = len(yMinLabel)
	}

	for i, row := range grid {
		label := strings.Repeat(" ", gutter)
		switch i {
		case 0:
			label = fmt.Sprintf("%*s", gutter, yMaxLabel)
		case height - 1:
			label = fmt.Sprintf("%*s", gutter, yMinLabel)
		}
		b.WriteString(Dim(label) + Dim(" │ "))
		b.WriteString(StyleBlue.Render(string(row)))
		b.WriteString("\n")
	}

	b.WriteString(Dim(strings.Repeat(" ", gutter) + " ╰─" + strings.Repeat("─", width)))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%*s%-*.1f%*.1f", gutter+3, "", width/2, c.XRange.Min, width-width/2, c.XRange.Max)))
	b.WriteString("\n")
	b.WriteString(Dim(fmt.Sprintf("%*s%s vs %s", gutter+3, "", c.YLabel, c.XLabel)))
	b.WriteString("\n")
	return b.String()
}
