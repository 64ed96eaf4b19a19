package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwinther/scoutline/internal/cli/formatter"
	"github.com/mwinther/scoutline/internal/ingest"
)

func newNoteCmd(app *App) *cobra.Command {
	var profileName string

	cmd := &cobra.Command{
		Use:   "note <player>",
		Short: "Write an analyst note for one player",
		Long: `Compute a player's percentile strengths and weaknesses under a scoring
profile and narrate them as a short scouting note. The numbers are always
computed locally; only the prose comes from the language model, and a plain
fact sheet is printed when the model is unreachable.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Insight == nil {
				return fmt.Errorf("analyst notes need the language service. Enable with: SCOUTLINE_LLM_ENABLED=true")
			}
			p, err := app.Registry.Lookup(profileName)
			if err != nil {
				return err
			}
			dataset, err := ingest.ReadCSVFile(app.DatasetPath, app.Synonyms)
			if err != nil {
				return fmt.Errorf("loading dataset: %w", err)
			}

			note, err := app.Insight.Note(context.Background(), dataset, args[0], &p)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.Header(fmt.Sprintf("%s — %s", args[0], p.Name)))
			fmt.Fprintln(cmd.OutOrStdout(), note)
			return nil
		},
	}

	cmd.Flags().StringVarP(&profileName, "profile", "p", "", "scoring profile to judge the player against (required)")
	cmd.MarkFlagRequired("profile")
	return cmd
}
