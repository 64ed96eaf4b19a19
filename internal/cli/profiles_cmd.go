package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mwinther/scoutline/internal/cli/formatter"
	"github.com/mwinther/scoutline/internal/profile"
)

func newProfilesCmd(app *App) *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List the available scoring profiles",
		RunE: func(cmd *cobra.Command, args []string) error {
			rows := make([][]string, 0, len(app.Registry.Names()))
			for _, name := range app.Registry.Names() {
				p, err := app.Registry.Lookup(name)
				if err != nil {
					return err
				}
				row := []string{name, categoryLabel(p)}
				if verbose {
					row = append(row, metricSummary(p))
				}
				rows = append(rows, row)
			}

			headers := []string{"profile", "category"}
			if verbose {
				headers = append(headers, "key metrics")
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable(headers, rows))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "show each profile's weighted metrics")
	return cmd
}

func categoryLabel(p profile.Profile) string {
	if p.CategoryGroup == "" {
		return "-"
	}
	return p.CategoryGroup
}

// metricSummary renders "metric:weight" pairs heaviest first.
func metricSummary(p profile.Profile) string {
	metrics := make([]string, 0, len(p.Metrics))
	for m := range p.Metrics {
		metrics = append(metrics, m)
	}
	sort.Slice(metrics, func(i, j int) bool {
		wi, wj := p.Metrics[metrics[i]], p.Metrics[metrics[j]]
		if wi != wj {
			return wi > wj
		}
		return metrics[i] < metrics[j]
	})
	parts := make([]string, len(metrics))
	for i, m := range metrics {
		parts[i] = fmt.Sprintf("%s:%.2g", m, p.Metrics[m])
	}
	return strings.Join(parts, " ")
}
