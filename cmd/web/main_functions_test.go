package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/go-while/go-newsfeed/internal/config"
	"github.com/go-while/go-newsfeed/internal/store"
)

func TestOpenBackend(t *testing.T) {
	cfg := config.NewDefaultConfig().Store

	b, closeFn, err := openBackend(cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, config.BackendPostgREST, b.Name())
	assert.NoError(t, closeFn())

	cfg.Backend = config.BackendSQLite
	cfg.SQLitePath = filepath.Join(t.TempDir(), "a.sq3")
	b, closeFn, err = openBackend(cfg, nil)
	require.NoError(t, err)
	assert.IsType(t, &store.SQLiteBackend{}, b)
	assert.NoError(t, closeFn())

	cfg.Backend = "mongo"
	_, _, err = openBackend(cfg, nil)
	assert.Error(t, err)
}

func TestApplyFlagsSSLPort(t *testing.T) {
	defer func() { webssl, webport = false, 0 }()
	cfg := config.NewDefaultConfig()
	webssl = true

	applyFlags(cfg)

	assert.True(t, cfg.Web.SSL)
	assert.Equal(t, config.DefaultListenPortSSL, cfg.Web.ListenPort)

	webport = 18443
	applyFlags(cfg)
	assert.Equal(t, 18443, cfg.Web.ListenPort)
}

func TestMonitorUpdateFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".update")
	require.NoError(t, os.WriteFile(path, nil, 0o644))

	ch := make(chan bool, 1)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan struct{})
	go func() {
		monitorUpdateFile(ctx, path, 10*time.Millisecond, zap.NewNop(), ch)
		close(done)
	}()

	select {
	case <-ch:
	case <-ctx.Done():
		t.Fatal("no shutdown signal")
	}
	<-done
	_, err := os.Stat(path + ".todo")
	assert.NoError(t, err)
}
