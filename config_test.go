package rrcache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadConfigDecodesTOML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "rrcache.toml")
	contents := `
title = "test"
max-cache-size = 5000
queue-capacity = 32

[logger]
type = "logrus"
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	require.Equal(t, "test", cfg.Title)
	require.Equal(t, 5000, cfg.MaxCacheSize)
	require.Equal(t, 32, cfg.QueueCapacity)
	require.Equal(t, "logrus", cfg.Logger.Type)
}

func TestLoggerConfigBuildLoggerDefaultsToSilent(t *testing.T) {
	var cfg LoggerConfig
	l, err := cfg.BuildLogger()
	require.NoError(t, err)
	require.IsType(t, Silent{}, l)
}

func TestLoggerConfigBuildLoggerLogrus(t *testing.T) {
	cfg := LoggerConfig{Type: "logrus"}
	l, err := cfg.BuildLogger()
	require.NoError(t, err)
	require.IsType(t, &LogrusLogger{}, l)
}
