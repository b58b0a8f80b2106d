package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ontrack-app/ontrack/internal/config"
	"github.com/ontrack-app/ontrack/internal/kv"
	"github.com/ontrack-app/ontrack/internal/logging"
	"github.com/ontrack-app/ontrack/internal/store"
	"github.com/ontrack-app/ontrack/internal/ui"
)

// Version information set via ldflags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Handle version flag
	if len(os.Args) > 1 && (os.Args[1] == "--version" || os.Args[1] == "-v") {
		fmt.Printf("ontrack %s (commit: %s, built: %s)\n", version, commit, date)
		os.Exit(0)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	dbPath := cfg.DataDir
	if dbPath == "" {
		dbPath, err = kv.DefaultPath()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error resolving data directory: %v\n", err)
			os.Exit(1)
		}
	}

	// The TUI owns the terminal, so logs go to a file beside the database
	logger, closeLog, err := logging.Open(filepath.Join(filepath.Dir(dbPath), "ontrack.log"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
	defer closeLog()

	db, err := kv.Open(dbPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening database: %v\n", err)
		os.Exit(1)
	}
	defer db.Close()

	logger.Info("starting", "version", version, "db", dbPath)

	app := ui.NewApp(store.New(db, logger), logger, cfg.SessionMinutes)
	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running application: %v\n", err)
		os.Exit(1)
	}
}
