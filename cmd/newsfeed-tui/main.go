// Terminal reader for go-newsfeed
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/go-while/go-newsfeed/internal/config"
	"github.com/go-while/go-newsfeed/internal/platform/logger"
	"github.com/go-while/go-newsfeed/internal/store"
	"github.com/go-while/go-newsfeed/internal/tui"
)

var appVersion = "-unset-"

func main() {
	config.AppVersion = appVersion

	var (
		configPath  = flag.String("config", "", "config file or directory holding config.yaml")
		startPath   = flag.String("path", "/", "start page: / or /article/{id}")
		backendName = flag.String("backend", "", "article store backend: postgrest or sqlite")
		sqlitePath  = flag.String("sqlite", "", "path to the SQLite article database (sqlite backend)")
		logFile     = flag.String("logfile", "newsfeed-tui.log", "log file, the terminal belongs to the UI")
	)
	flag.Parse()

	cfg, err := config.LoadConfig(*configPath)
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}
	if *backendName != "" {
		cfg.Store.Backend = *backendName
	}
	if *sqlitePath != "" {
		cfg.Store.SQLitePath = *sqlitePath
	}
	cfg.Log.File = *logFile

	logg, err := logger.New(cfg.Log)
	if err != nil {
		log.Fatalf("Error creating logger: %v", err)
	}
	defer logg.Sync()

	var backend store.Backend
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		b, err := store.OpenSQLiteBackend(cfg.Store.SQLitePath, logg)
		if err != nil {
			log.Fatalf("Error opening %s: %v", cfg.Store.SQLitePath, err)
		}
		defer b.Close()
		backend = b
	case config.BackendPostgREST:
		backend = store.NewPostgRESTBackend(cfg.Store, nil, logg)
	default:
		log.Fatalf("Unknown store backend %q", cfg.Store.Backend)
	}

	logg.Info("Starting go-newsfeed TUI", zap.String("version", appVersion), zap.String("path", *startPath))
	app := tui.NewApp(store.New(backend, logg, nil), *startPath, cfg.Store.Timeout, logg)
	if _, err := tea.NewProgram(app, tea.WithAltScreen()).Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
