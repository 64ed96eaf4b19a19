package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwinther/scoutline/internal/cli/formatter"
	"github.com/mwinther/scoutline/internal/llm"
)

func newAskCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   `ask "<natural language>"`,
		Short: "Run a single scouting query",
		Long: `Run one natural-language query against the dataset and print the result.
Session state does not survive between invocations; use "scoutline chat"
for multi-turn refinement.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			router, err := requireNLU(app)
			if err != nil {
				return err
			}
			sess, err := loadSession(app)
			if err != nil {
				return err
			}

			res := router.ProcessTurn(context.Background(), sess, args[0])
			if res.Err != nil {
				if errors.Is(res.Err, llm.ErrTimeout) {
					return fmt.Errorf("%w (set SCOUTLINE_LLM_SELECT_TIMEOUT_MS, e.g. 20000)", res.Err)
				}
				return res.Err
			}

			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatResult(res))
			return nil
		},
	}
}
