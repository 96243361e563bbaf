// Web server for go-newsfeed
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	prof "github.com/go-while/go-cpu-mem-profiler"
	"go.uber.org/zap"

	"github.com/go-while/go-newsfeed/internal/config"
	"github.com/go-while/go-newsfeed/internal/platform/logger"
	"github.com/go-while/go-newsfeed/internal/platform/metrics"
	"github.com/go-while/go-newsfeed/internal/platform/tracer"
	"github.com/go-while/go-newsfeed/internal/store"
	"github.com/go-while/go-newsfeed/internal/web"
)

var Prof *prof.Profiler

var appVersion = "-unset-"

var (
	// command-line flags
	configPath  string
	webport     int
	webssl      bool
	webcertFile string
	webkeyFile  string
	backendName string
	sqlitePath  string
	logLevel    string
	pprofAddr   string
	withTracing bool
)

func main() {
	config.AppVersion = appVersion

	flag.StringVar(&configPath, "config", "", "config file or directory holding config.yaml (default: ./config.yaml if present)")
	flag.IntVar(&webport, "webport", 0, "Web server port (default: 11980 (no ssl) or 19443 (webssl))")
	flag.BoolVar(&webssl, "webssl", false, "Enable SSL")
	flag.StringVar(&webcertFile, "websslcert", "", "SSL certificate file (/path/to/fullchain.pem)")
	flag.StringVar(&webkeyFile, "websslkey", "", "SSL key file (/path/to/privkey.pem)")
	flag.StringVar(&backendName, "backend", "", "article store backend: postgrest or sqlite")
	flag.StringVar(&sqlitePath, "sqlite", "", "path to the SQLite article database (sqlite backend)")
	flag.StringVar(&logLevel, "loglevel", "", "log level: debug, info, warn, error")
	flag.StringVar(&pprofAddr, "pprof", "", "serve pprof on this address, e.g. :51111")
	flag.BoolVar(&withTracing, "trace", false, "export OpenTelemetry spans to stdout")
	flag.Parse()

	mainConfig, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("[WEB]: Error loading config: %v", err)
	}
	applyFlags(mainConfig)
	if err := mainConfig.Validate(); err != nil {
		log.Fatalf("[WEB]: %v", err)
	}

	logg, err := logger.New(mainConfig.Log)
	if err != nil {
		log.Fatalf("[WEB]: Error creating logger: %v", err)
	}
	defer logg.Sync()
	logg.Info("Starting go-newsfeed web server",
		zap.String("version", appVersion),
		zap.String("backend", mainConfig.Store.Backend),
		zap.Int("port", mainConfig.Web.ListenPort),
		zap.Bool("ssl", mainConfig.Web.SSL))

	if mainConfig.Profiler.Addr != "" {
		Prof = prof.NewProf()
		go Prof.PprofWeb(mainConfig.Profiler.Addr)
		logg.Info("pprof enabled", zap.String("addr", mainConfig.Profiler.Addr))
	}

	ctx := context.Background()
	tp, err := tracer.Init(ctx, mainConfig.Tracing, os.Stdout, logg)
	if err != nil {
		logg.Fatal("Failed to initialize tracing", zap.Error(err))
	}

	backend, closeBackend, err := openBackend(mainConfig.Store, logg)
	if err != nil {
		logg.Fatal("Failed to open article store", zap.Error(err))
	}

	mtx := metrics.NewManager("newsfeed")
	articles := store.New(backend, logg, mtx).SetTimeout(mainConfig.Store.Timeout)
	server := web.NewServer(articles, &mainConfig.Web, mtx, logg)

	// Set up signal handling for graceful shutdown
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	// Start web server in goroutine to make it non-blocking
	webServerErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil {
			webServerErrChan <- err
		}
	}()

	monitorCtx, stopMonitor := context.WithCancel(ctx)
	defer stopMonitor()
	updateFileChan := make(chan bool, 1)
	go monitorUpdateFile(monitorCtx, updateFilePath, 60*time.Second, logg, updateFileChan)

	logg.Info("Server started. Press Ctrl+C to gracefully shutdown...")

	// Wait for either shutdown signal, server error, or update file
	select {
	case <-sigChan:
		logg.Info("Received shutdown signal, initiating graceful shutdown...")
	case err := <-webServerErrChan:
		logg.Fatal("Failed to start web server", zap.Error(err))
	case <-updateFileChan:
		logg.Info("Update file detected, initiating graceful shutdown for update...")
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logg.Error("Web server shutdown", zap.Error(err))
	}
	if err := closeBackend(); err != nil {
		logg.Error("Closing article store", zap.Error(err))
	}
	if err := tp.Shutdown(shutdownCtx); err != nil {
		logg.Error("Tracer shutdown", zap.Error(err))
	}
	logg.Info("Graceful shutdown completed")
} // end main
