package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"

	"github.com/mwinther/scoutline/internal/cli"
	"github.com/mwinther/scoutline/internal/ingest"
	"github.com/mwinther/scoutline/internal/insight"
	"github.com/mwinther/scoutline/internal/intelligence"
	"github.com/mwinther/scoutline/internal/llm"
	"github.com/mwinther/scoutline/internal/logbook"
	"github.com/mwinther/scoutline/internal/profile"
)

const defaultPersona = "You are a seasoned football scout. Turn the given facts into a short, " +
	"direct scouting note. Never invent numbers; only restate the facts you were given."

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.scoutline/scoutline.db
	dbPath := os.Getenv("SCOUTLINE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".scoutline", "scoutline.db")
	}

	assetDir := os.Getenv("SCOUTLINE_ASSETS")
	if assetDir == "" {
		if stat, err := os.Stat("./assets"); err == nil && stat.IsDir() {
			assetDir = "./assets"
		} else {
			home, err := os.UserHomeDir()
			if err != nil {
				return fmt.Errorf("finding home directory: %w", err)
			}
			assetDir = filepath.Join(home, ".scoutline", "assets")
		}
	}

	// The profile registry is load-bearing: without it no scoring makes
	// sense, so any failure here aborts startup.
	registry, err := profile.LoadRegistry(filepath.Join(assetDir, "archetypes.json"))
	if err != nil {
		return err
	}

	synonyms, err := ingest.LoadSynonyms(filepath.Join(assetDir, "synonyms.json"))
	if err != nil {
		return err
	}

	database, err := logbook.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	logbooks, err := logbook.NewManager(database)
	if err != nil {
		return err
	}

	datasetPath := os.Getenv("SCOUTLINE_DATASET")
	if datasetPath == "" {
		datasetPath = "players.csv"
	}

	app := &cli.App{
		Registry:    registry,
		Logbooks:    logbooks,
		Synonyms:    synonyms,
		DatasetPath: datasetPath,
		Interactive: isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()),
	}

	// Wire the language services (only when the LLM is enabled).
	llmCfg := llm.LoadConfig()
	if llmCfg.Enabled {
		var observer llm.Observer = llm.NoopObserver{}
		if llmCfg.LogCalls {
			observer = llm.NewLogObserver(os.Stderr)
		}
		client := llm.NewOllamaClient(llmCfg, observer)

		app.NLU = intelligence.NewService(client, registry.Names())
		app.Insight = insight.NewEngine(client, registry, loadPersona(assetDir))
	}

	return cli.NewRootCmd(app).Execute()
}

// loadPersona reads the scout persona prompt, falling back to a built-in one.
func loadPersona(assetDir string) string {
	data, err := os.ReadFile(filepath.Join(assetDir, "persona.txt"))
	if err != nil || len(data) == 0 {
		return defaultPersona
	}
	return string(data)
}
