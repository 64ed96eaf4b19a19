package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mwinther/scoutline/internal/engine"
	"github.com/mwinther/scoutline/internal/ingest"
	"github.com/mwinther/scoutline/internal/insight"
	"github.com/mwinther/scoutline/internal/intelligence"
	"github.com/mwinther/scoutline/internal/logbook"
	"github.com/mwinther/scoutline/internal/profile"
)

// App holds everything the CLI commands need. NLU and Insight are nil when
// the language service is disabled; commands that need them say so.
type App struct {
	Registry *profile.Registry
	Logbooks *logbook.Manager
	Synonyms *ingest.SynonymLibrary
	NLU      *intelligence.Service
	Insight  *insight.Engine

	// DatasetPath is bound to the root --dataset flag.
	DatasetPath string

	// Interactive is true when stdout is a terminal.
	Interactive bool
}

// NewRootCmd creates the top-level "scoutline" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:   "scoutline",
		Short: "Conversational scouting over player datasets",
	}

	root.PersistentFlags().StringVar(&app.DatasetPath, "dataset", app.DatasetPath,
		"path to the player dataset CSV")

	root.AddCommand(
		newAskCmd(app),
		newChatCmd(app),
		newProfilesCmd(app),
		newLogbookCmd(app),
		newNoteCmd(app),
	)

	return root
}

// loadSession ingests the dataset and opens a fresh session over it.
func loadSession(app *App) (*engine.Session, error) {
	dataset, err := ingest.ReadCSVFile(app.DatasetPath, app.Synonyms)
	if err != nil {
		return nil, fmt.Errorf("loading dataset: %w", err)
	}
	return engine.NewSession(dataset), nil
}

// requireNLU returns the router, or an actionable error when the language
// service is disabled.
func requireNLU(app *App) (*engine.Router, error) {
	if app.NLU == nil {
		return nil, fmt.Errorf("language features are disabled. Deterministic commands still work:\n" +
			"  scoutline profiles\n" +
			"  scoutline logbook list\n\n" +
			"Enable with: SCOUTLINE_LLM_ENABLED=true")
	}
	return engine.NewRouter(app.NLU, app.Logbooks, app.Registry), nil
}
