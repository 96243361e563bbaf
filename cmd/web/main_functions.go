package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/go-while/go-newsfeed/internal/config"
	"github.com/go-while/go-newsfeed/internal/store"
)

const updateFilePath = ".update"

// applyFlags overrides loaded settings with the command-line flags that were set.
func applyFlags(cfg *config.MainConfig) {
	if webport > 0 {
		cfg.Web.ListenPort = webport
	} else if webssl && cfg.Web.ListenPort == config.DefaultListenPort {
		cfg.Web.ListenPort = config.DefaultListenPortSSL
	}
	if webssl {
		cfg.Web.SSL = true
	}
	if webcertFile != "" {
		cfg.Web.CertFile = webcertFile
	}
	if webkeyFile != "" {
		cfg.Web.KeyFile = webkeyFile
	}
	if backendName != "" {
		cfg.Store.Backend = backendName
	}
	if sqlitePath != "" {
		cfg.Store.SQLitePath = sqlitePath
	}
	if logLevel != "" {
		cfg.Log.Level = logLevel
	}
	if pprofAddr != "" {
		cfg.Profiler.Addr = pprofAddr
	}
	if withTracing {
		cfg.Tracing.Enabled = true
	}
}

// openBackend builds the configured store backend and a function releasing it.
func openBackend(cfg config.StoreConfig, logger *zap.Logger) (store.Backend, func() error, error) {
	switch cfg.Backend {
	case config.BackendSQLite:
		b, err := store.OpenSQLiteBackend(cfg.SQLitePath, logger)
		if err != nil {
			return nil, nil, err
		}
		return b, b.Close, nil
	case config.BackendPostgREST:
		return store.NewPostgRESTBackend(cfg, nil, logger), func() error { return nil }, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Backend)
	}
}

// monitorUpdateFile checks for the existence of an update file every interval
// and signals for shutdown when found, after renaming the file to path+".todo".
func monitorUpdateFile(ctx context.Context, path string, interval time.Duration, logger *zap.Logger, shutdownChan chan<- bool) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	logger.Info("Update file monitor started", zap.String("file", path), zap.Duration("interval", interval))

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if _, err := os.Stat(path); err != nil {
			continue
		}
		logger.Info("Update file detected, triggering graceful shutdown", zap.String("file", path))
		if err := os.Rename(path, path+".todo"); err != nil {
			logger.Warn("Failed to rename update file", zap.String("file", path), zap.Error(err))
			continue
		}

		select {
		case shutdownChan <- true:
		default:
			logger.Info("Shutdown channel already signaled")
		}
		return
	}
}
