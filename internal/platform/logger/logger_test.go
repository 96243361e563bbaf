package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-while/go-newsfeed/internal/config"
)

func TestNewLevels(t *testing.T) {
	l, err := New(config.LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.True(t, l.Core().Enabled(-1)) // debug

	l, err = New(config.LogConfig{Level: "WARN", Format: "json"})
	require.NoError(t, err)
	assert.False(t, l.Core().Enabled(0)) // info

	_, err = New(config.LogConfig{Level: "chatty"})
	assert.Error(t, err)
}

func TestNewWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "newsfeed.log")
	l, err := New(config.LogConfig{Level: "info", Format: "json", File: path})
	require.NoError(t, err)

	l.Info("hello file")
	_ = l.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hello file")
}
