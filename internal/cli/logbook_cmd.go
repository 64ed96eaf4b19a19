package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/mwinther/scoutline/internal/cli/formatter"
	"github.com/mwinther/scoutline/internal/logbook"
)

func newLogbookCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logbook",
		Short: "Manage personal record stores",
	}
	cmd.AddCommand(
		newLogbookListCmd(app),
		newLogbookImportCmd(app),
		newLogbookShowCmd(app),
		newLogbookTemplateCmd(app),
	)
	return cmd
}

func newLogbookListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered logbooks and their columns",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := app.Logbooks.Names()
			if len(names) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), formatter.Dim("No logbooks yet. Import one with: scoutline logbook import <name> <file.csv>"))
				return nil
			}
			rows := make([][]string, 0, len(names))
			for _, name := range names {
				cols, err := app.Logbooks.Columns(name)
				if err != nil {
					return err
				}
				rows = append(rows, []string{name, strings.Join(cols, ", ")})
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.RenderTable([]string{"logbook", "columns"}, rows))
			return nil
		},
	}
}

func newLogbookImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <name> <file.csv>",
		Short: "Import a CSV as a new logbook",
		Long: `Register a new logbook whose schema is the CSV header and load every row.
The name becomes available to conversational append and query turns.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[1], err)
			}
			defer f.Close()

			n, err := app.Logbooks.ImportCSV(args[0], f)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d rows into logbook %q.\n", n, args[0])
			return nil
		},
	}
}

func newLogbookShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <name>",
		Short: "Print a logbook's contents",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			frame, err := app.Logbooks.Rows(args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatFrame(frame, 0))
			return nil
		},
	}
}

func newLogbookTemplateCmd(app *App) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Generate a starter CSV for a new logbook",
		Long: `Interactively pick a logbook name and the metrics you want to track, then
write an empty CSV template. A date column always comes first. Fill it in
and load it with: scoutline logbook import <name> <file.csv>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			name, metrics, err := runTemplateWizard(app)
			if err != nil {
				return err
			}

			if output == "" {
				output = name + "_template.csv"
			}
			if err := os.WriteFile(output, logbook.Template(metrics), 0644); err != nil {
				return fmt.Errorf("writing template: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Template written to %s (columns: date, %s).\n",
				output, strings.Join(metrics, ", "))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "template file path (default <name>_template.csv)")
	return cmd
}

// runTemplateWizard collects a logbook name and its tracked metrics.
func runTemplateWizard(app *App) (string, []string, error) {
	var name, rawMetrics string

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Logbook name").
				Description("Lowercase letters, digits and underscores, e.g. shortlist").
				Placeholder("shortlist").
				Value(&name),
			huh.NewInput().
				Title("Tracked metrics").
				Description("Comma-separated column names, e.g. name, opponent, rating").
				Placeholder("name, opponent, rating").
				Value(&rawMetrics),
		),
	).WithTheme(scoutlineHuhTheme()).WithShowHelp(false)

	if err := form.Run(); err != nil {
		return "", nil, err
	}

	var metrics []string
	for _, m := range strings.Split(rawMetrics, ",") {
		m = strings.ReplaceAll(strings.TrimSpace(strings.ToLower(m)), " ", "_")
		if m != "" && m != "date" {
			metrics = append(metrics, m)
		}
	}
	if name == "" || len(metrics) == 0 {
		return "", nil, fmt.Errorf("a logbook needs a name and at least one metric")
	}
	return strings.TrimSpace(strings.ToLower(name)), metrics, nil
}
