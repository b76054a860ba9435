package logging

import (
	"bytes"
	"errors"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, ParseLevel("DEBUG"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warning"))
	assert.Equal(t, slog.LevelWarn, ParseLevel("warn"))
	assert.Equal(t, slog.LevelError, ParseLevel("error"))
	assert.Equal(t, slog.LevelInfo, ParseLevel("loud"))
	assert.Equal(t, slog.LevelInfo, ParseLevel(""))
}

func TestOptionsLevel(t *testing.T) {
	assert.Equal(t, slog.LevelError, Options{Level: "debug", Quiet: true, Debug: true}.level())
	assert.Equal(t, slog.LevelDebug, Options{Level: "warn", Debug: true}.level())
	assert.Equal(t, slog.LevelWarn, Options{Level: "warn"}.level())
}

func TestNewJSON(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Level: "info", Format: "JSON"})
	log.Debug("hidden")
	log.Info("process complete", "time", 7, "pid", 3, ErrAttr(errors.New("boom")))

	out := buf.String()
	assert.NotContains(t, out, "hidden")
	assert.Contains(t, out, `"wall":`)
	assert.Contains(t, out, `"msg":"process complete"`)
	assert.Contains(t, out, `"time":7`)
	assert.Contains(t, out, `"pid":3`)
	assert.Contains(t, out, `"error":"boom"`)
}

func TestNewTextQuiet(t *testing.T) {
	var buf bytes.Buffer
	log := New(&buf, Options{Format: "text", Quiet: true})
	log.Info("dropped")
	log.Error("simulation aborted", "time", 2)

	out := buf.String()
	assert.NotContains(t, out, "dropped")
	assert.Contains(t, out, "wall=")
	assert.Contains(t, out, `msg="simulation aborted" time=2`)
}
