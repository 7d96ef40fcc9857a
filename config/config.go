// Package config loads the service configuration from JSON or YAML
// files with optional environment overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/kilianp07/jobshop/core/metrics"
	"github.com/kilianp07/jobshop/core/solver"
)

// Config is the root configuration of the jobshop service.
type Config struct {
	// Problem is the path to the problem definition file.
	Problem      string               `json:"problem"`
	Solver       SolverConfig         `json:"solver"`
	Genetic      solver.GeneticConfig `json:"genetic"`
	Backtracking BacktrackingConfig   `json:"backtracking"`
	Metrics      metrics.Config       `json:"metrics"`
	Export       ExportConfig         `json:"export"`
}

// SolverConfig selects the algorithm and the service-level budget.
type SolverConfig struct {
	// Algorithm is one of "list", "genetic" or "backtracking".
	Algorithm string `json:"algorithm"`
	// TimeoutSeconds bounds the wall-clock time of one solve. The
	// solvers have no mid-run cancellation, so the budget is enforced
	// around the call and an overrun is reported as a timeout outcome.
	TimeoutSeconds int `json:"timeout_seconds"`
}

// SetDefaults applies sane defaults.
func (c *SolverConfig) SetDefaults() {
	if c.Algorithm == "" {
		c.Algorithm = "list"
	}
	if c.TimeoutSeconds == 0 {
		c.TimeoutSeconds = 60
	}
}

// Validate checks mandatory fields.
func (c SolverConfig) Validate() error {
	switch c.Algorithm {
	case "list", "genetic", "backtracking":
	default:
		return fmt.Errorf("unknown algorithm %s", c.Algorithm)
	}
	if c.TimeoutSeconds <= 0 {
		return fmt.Errorf("timeout_seconds must be positive")
	}
	return nil
}

// BacktrackingConfig holds the exhaustive search parameters.
type BacktrackingConfig struct {
	// Horizon bounds completion times; the search tries start times in
	// [0, horizon - processing_time].
	Horizon int `json:"horizon"`
}

// SetDefaults applies sane defaults.
func (c *BacktrackingConfig) SetDefaults() {
	if c.Horizon == 0 {
		c.Horizon = 100
	}
}

// Validate checks mandatory fields.
func (c BacktrackingConfig) Validate() error {
	if c.Horizon <= 0 {
		return fmt.Errorf("horizon must be positive")
	}
	return nil
}

// ExportConfig controls how the computed schedule is rendered.
type ExportConfig struct {
	// Format is "json" or "csv".
	Format string `json:"format"`
	// Path is the output file; empty means stdout.
	Path string `json:"path"`
}

// SetDefaults applies sane defaults.
func (c *ExportConfig) SetDefaults() {
	if c.Format == "" {
		c.Format = "json"
	}
}

// Validate checks mandatory fields.
func (c ExportConfig) Validate() error {
	if c.Format != "json" && c.Format != "csv" {
		return fmt.Errorf("unknown export format %s", c.Format)
	}
	return nil
}

// Load reads the configuration file at path and applies JOBSHOP_
// environment overrides (JOBSHOP_SOLVER__ALGORITHM=genetic maps to
// solver.algorithm).
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	ext := strings.ToLower(filepath.Ext(path))
	var parser koanf.Parser
	switch ext {
	case ".yaml", ".yml":
		parser = yaml.Parser()
	case ".json":
		parser = json.Parser()
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, err
	}
	// Optional environment overrides
	if err := k.Load(env.Provider("JOBSHOP_", ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), "jobshop_")
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}
	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.Solver.SetDefaults()
	cfg.Genetic.SetDefaults()
	cfg.Backtracking.SetDefaults()
	cfg.Metrics.SetDefaults()
	cfg.Export.SetDefaults()
	if err := cfg.Solver.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Genetic.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Backtracking.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Export.Validate(); err != nil {
		return nil, err
	}
	if cfg.Problem == "" {
		return nil, fmt.Errorf("problem path is required")
	}
	return &cfg, nil
}
