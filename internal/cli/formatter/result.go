package formatter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mwinther/scoutline/internal/engine"
)

// resultRowLimit caps how many rows of a view a single turn prints.
const resultRowLimit = 25

// FormatResult renders one turn's outcome for the terminal: the summary
// line, then whichever payload the turn produced.
func FormatResult(res *engine.Result) string {
	if res.Err != nil {
		return StyleRed.Render(fmt.Sprintf("Error: %v", res.Err)) + "\n"
	}

	var b strings.Builder
	if res.Summary != "" {
		b.WriteString(StyleFg.Render(res.Summary) + "\n")
	}
	for _, d := range res.Diagnostics {
		b.WriteString(StyleYellow.Render("note: "+d) + "\n")
	}

	switch {
	case res.Chart != nil:
		b.WriteString("\n" + FormatScatter(res.Chart))
	case res.Table != nil:
		b.WriteString("\n" + FormatFrame(res.Table, resultRowLimit))
	case res.StoreUpdate != nil:
		b.WriteString(formatStoreUpdate(res))
	}
	return b.String()
}

func formatStoreUpdate(res *engine.Result) string {
	u := res.StoreUpdate
	var b strings.Builder
	cols := make([]string, 0, len(u.Row))
	for col := range u.Row {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	for _, col := range cols {
		b.WriteString(fmt.Sprintf("  %s: %s\n", Dim(col), u.Row[col]))
	}
	if len(u.MissingColumns) > 0 {
		b.WriteString(Dim(fmt.Sprintf("  left empty: %s", strings.Join(u.MissingColumns, ", "))) + "\n")
	}
	if len(u.IgnoredKeys) > 0 {
		b.WriteString(StyleYellow.Render(fmt.Sprintf("  ignored (not in schema): %s", strings.Join(u.IgnoredKeys, ", "))) + "\n")
	}
	return b.String()
}
