package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/lipgloss"
	"github.com/dkoval/hirepath/internal/cli"
	"github.com/dkoval/hirepath/internal/db"
	"github.com/dkoval/hirepath/internal/repository"
	"github.com/dkoval/hirepath/internal/service"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Determine DB path: env var or default ~/.hirepath/hirepath.db
	dbPath := os.Getenv("HIREPATH_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".hirepath", "hirepath.db")
	}

	// Plain output when piped.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		lipgloss.SetColorProfile(termenv.Ascii)
	}

	// Open database
	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	stageRepo := repository.NewSQLiteStageRepo(database)
	appRepo := repository.NewSQLiteApplicationRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Mutation events go to stderr so they never mix with command output.
	var events service.EventSink = service.NoopEventSink{}
	if os.Getenv("HIREPATH_LOG_EVENTS") != "" {
		events = service.NewLogEventSink(os.Stderr)
	}

	// Wire services
	app := &cli.App{
		Applications: service.NewApplicationService(appRepo, uow, events),
		Pipeline:     service.NewPipelineService(stageRepo, appRepo, uow, events),
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
