package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cpusched/internal/report"
	"cpusched/internal/sched"
)

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func writeInput(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRunRoundRobin(t *testing.T) {
	in := writeInput(t, "rr.data", "2 0 2\n0 5 0\n2 3 0\n")

	stdout, _, err := execute(t, "run", "rr", "-i", in, "-s")
	require.NoError(t, err)
	assert.Empty(t, stdout, "quiet run prints nothing")

	out := filepath.Join(filepath.Dir(in), "rr_out.data")
	assert.Equal(t, "0   2   1\n2   4   2\n4   6   1\n6   7   2\n7   8   1\n", readFile(t, out))
}

func TestRunPreemptionOverride(t *testing.T) {
	in := writeInput(t, "sjf.data", "2 0 1\n0 8 1\n1 4 1\n")
	out := filepath.Join(t.TempDir(), "timeline.csv")

	stdout, _, err := execute(t, "run", "--policy", "sjf", "-P", "-i", in, "-o", out, "--format", "csv", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Policy: Preemptive SJF")
	assert.Contains(t, stdout, "Avg. wait time:     2\n")
	assert.Equal(t, "start,end,pid\n0,1,1\n1,5,2\n5,12,1\n", readFile(t, out))
}

func TestRunYAMLWithSettings(t *testing.T) {
	in := writeInput(t, "w.yaml", "preemptive: false\nquantum: 1\nprocesses:\n  - {arrival: 0, burst: 4, priority: 1}\n  - {arrival: 2, burst: 2, priority: 5}\n")
	settings := writeInput(t, "settings.yml", "policy: ph\npreemptive: true\ngantt: true\nsummary: false\n")

	stdout, _, err := execute(t, "run", "--config", settings, "-i", in, "-s=false", "--log-level", "error")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Gantt chart")
	assert.NotContains(t, stdout, "Avg. wait time")

	out := filepath.Join(filepath.Dir(in), "w_out.data")
	assert.Equal(t, "0   2   1\n2   4   2\n4   6   1\n", readFile(t, out))
}

func TestRunDebugLogsQueueOrder(t *testing.T) {
	in := writeInput(t, "d.data", "2 0 1\n0 3 2\n0 1 1\n")
	out := filepath.Join(t.TempDir(), "d_out.data")

	_, stderr, err := execute(t, "run", "pl", "-d", "-i", in, "-o", out, "--summary=false")
	require.NoError(t, err)
	assert.Contains(t, stderr, "process execution order")
	assert.Contains(t, stderr, "p2(0,1,1) p1(0,3,2)")
	assert.Contains(t, stderr, "run_id=")
}

func TestRunRejectsConfiguration(t *testing.T) {
	in := writeInput(t, "c.data", "1 0 1\n0 3 1\n")

	tests := []struct {
		name  string
		args  []string
		field string
	}{
		{name: "policy", args: []string{"run", "lottery", "-i", in}, field: "policy"},
		{name: "quantum", args: []string{"run", "rr", "--quantum", "0", "-i", in}, field: "quantum"},
		{name: "format", args: []string{"run", "--format", "xml", "-i", in}, field: "format"},
		{name: "preempt both", args: []string{"run", "-P", "-p", "-i", in}, field: "preemptive"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, tt.args...)
			var cErr *sched.ConfigurationError
			require.True(t, errors.As(err, &cErr), "got %v", err)
			assert.Equal(t, tt.field, cErr.Field)
		})
	}
}

func TestRunRejectsMalformedInput(t *testing.T) {
	in := writeInput(t, "bad.data", "2 0 1\n0 3 1\n")
	_, _, err := execute(t, "run", "-i", in, "-s")
	var mErr *sched.MalformedInputError
	assert.True(t, errors.As(err, &mErr), "got %v", err)
}

func TestPolicies(t *testing.T) {
	stdout, _, err := execute(t, "policies")
	require.NoError(t, err)
	for _, code := range []string{"sjf", "ph", "pl", "rr"} {
		assert.Contains(t, stdout, code)
	}
}

func TestConvert(t *testing.T) {
	in := writeInput(t, "w.yml", "preemptive: true\nquantum: 2\nprocesses:\n  - {arrival: 1, burst: 3, priority: 4}\n")
	out := filepath.Join(t.TempDir(), "w.data")

	_, _, err := execute(t, "convert", in, out, "-s")
	require.NoError(t, err)
	assert.Equal(t, "1 1 2\n1 3 4\n", readFile(t, out))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "output.data", outputPath("input.data", report.FormatText))
	assert.Equal(t, "input_out.csv", outputPath("input.data", report.FormatCSV))
	assert.Equal(t, "runs/a_out.data", outputPath("runs/a.data", report.FormatText))
	assert.Equal(t, "w_out.data", outputPath("w.yaml", report.FormatText))
	assert.Equal(t, "plain_out", outputPath("plain", report.FormatText))
}
