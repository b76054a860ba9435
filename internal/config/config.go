package config

import (
	"fmt"
	"os"

	yaml "github.com/goccy/go-yaml"

	"cpusched/internal/sched"
)

// File mirrors settings.yml. Pointer fields are "unset" when nil so the
// workload header can supply them.
type File struct {
	Policy     string `yaml:"policy"`     // sjf (by default)
	Preemptive *bool  `yaml:"preemptive"` // header value when unset
	Quantum    *int   `yaml:"quantum"`    // header value when unset
	TickMS     int    `yaml:"tick_ms"`    // 0 (by default)
	Input      string `yaml:"input"`      // input.data (by default)
	Output     string `yaml:"output"`     // derived from input when empty
	Format     string `yaml:"format"`     // text (by default) or csv
	Summary    bool   `yaml:"summary"`    // true (by default)
	Gantt      bool   `yaml:"gantt"`      // false (by default)
	Quiet      bool   `yaml:"quiet"`      // only errors on stderr
	Debug      bool   `yaml:"debug"`      // ready queue dumps on every switch
	LogLevel   string `yaml:"log_level"`  // info (by default)
	LogFormat  string `yaml:"log_format"` // text (by default)
}

// Default returns the settings used when no file is given.
func Default() File {
	return File{
		Policy:    "sjf",
		Input:     "input.data",
		Format:    "text",
		Summary:   true,
		LogLevel:  "info",
		LogFormat: "text",
	}
}

// Load reads YAML and overrides defaults; empty path = defaults only.
func Load(path string) (File, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("reading settings: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing settings %s: %w", path, err)
	}

	// sanity clamps
	if cfg.TickMS < 0 {
		cfg.TickMS = 0
	}
	if cfg.Format == "" {
		cfg.Format = "text"
	}
	if cfg.Input == "" {
		cfg.Input = "input.data"
	}
	return cfg, cfg.Validate()
}

// Validate rejects settings that cannot be clamped.
func (f File) Validate() error {
	if _, err := sched.ParsePolicy(f.Policy); err != nil {
		return err
	}
	if f.Quantum != nil && *f.Quantum < 1 {
		return &sched.ConfigurationError{Field: "quantum", Value: fmt.Sprint(*f.Quantum), Reason: "must be at least 1"}
	}
	switch f.Format {
	case "text", "csv":
	default:
		return &sched.ConfigurationError{Field: "format", Value: f.Format, Reason: "expected text or csv"}
	}
	return nil
}
