package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gauthierbraillon/folio/internal/config"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("debug"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("WARN"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
	assert.Equal(t, slog.LevelInfo, ParseLevel("verbose"))
}

func TestNew_WritesPlainTextToNonTerminal(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(config.Log{Level: "info"}, &buf)
	defer closer.Close()

	logger.Info("feed refreshed", "posts", 3)
	logger.Debug("hidden")

	out := buf.String()
	assert.Contains(t, out, "feed refreshed")
	assert.Contains(t, out, "posts=3")
	assert.NotContains(t, out, "hidden")
	assert.NotContains(t, out, "\x1b[", "no ANSI colours when writing to a buffer")
}

func TestNew_ErrorsAreLogged(t *testing.T) {
	var buf bytes.Buffer
	logger, closer := New(config.Log{Level: "error"}, &buf)
	defer closer.Close()

	logger.Error("fetch failed", "err", errors.New("boom"))

	assert.Contains(t, buf.String(), "boom")
}

func TestNew_AlsoWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "folio.log")
	var buf bytes.Buffer
	logger, closer := New(config.Log{Level: "info", File: path, MaxSizeMB: 1}, &buf)

	logger.Info("served", "route", "/healthz")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "served")
	assert.Contains(t, buf.String(), "served")
}
