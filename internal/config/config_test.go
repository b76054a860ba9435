package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpusched/internal/sched"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Nil(t, cfg.Preemptive)
	assert.Nil(t, cfg.Quantum)
}

func TestLoadOverrides(t *testing.T) {
	path := writeFile(t, `
policy: rr
quantum: 4
preemptive: false
tick_ms: -5
format: csv
gantt: true
log_level: debug
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "rr", cfg.Policy)
	require.NotNil(t, cfg.Quantum)
	assert.Equal(t, 4, *cfg.Quantum)
	require.NotNil(t, cfg.Preemptive)
	assert.False(t, *cfg.Preemptive)
	assert.Zero(t, cfg.TickMS, "negative pacing is clamped")
	assert.Equal(t, "csv", cfg.Format)
	assert.True(t, cfg.Gantt)
	assert.True(t, cfg.Summary, "unset keys keep defaults")
	assert.Equal(t, "input.data", cfg.Input)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejects(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "policy", body: "policy: lottery\n", field: "policy"},
		{name: "quantum", body: "quantum: 0\n", field: "quantum"},
		{name: "format", body: "format: xml\n", field: "format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeFile(t, tt.body))
			var cErr *sched.ConfigurationError
			require.True(t, errors.As(err, &cErr), "got %v", err)
			assert.Equal(t, tt.field, cErr.Field)
		})
	}
}

func TestLoadBadFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "policy: [unclosed\n"))
	assert.Error(t, err)
}
