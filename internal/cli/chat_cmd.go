package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newChatCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "chat",
		Short: "Interactive scouting conversation",
		Long: `Start a multi-turn scouting session. Each message refines, plots, or logs
against the state built by the previous turns. Slash commands:

  /profiles        list the scoring profiles
  /logbooks        list registered logbooks
  /note <player>   analyst note under the active profile
  /quit            leave the session`,
		RunE: func(cmd *cobra.Command, args []string) error {
			router, err := requireNLU(app)
			if err != nil {
				return err
			}
			if !app.Interactive {
				return fmt.Errorf("chat needs a terminal; use: scoutline ask \"<query>\"")
			}
			sess, err := loadSession(app)
			if err != nil {
				return err
			}

			p := tea.NewProgram(newChatModel(app, router, sess))
			_, err = p.Run()
			return err
		},
	}
}
