package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
problem: problem.yaml
solver:
  algorithm: genetic
  timeout_seconds: 30
genetic:
  population_size: 40
  generations: 80
  mutation_rate: 0.2
  seed: 7
backtracking:
  horizon: 50
export:
  format: csv
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Solver.Algorithm != "genetic" || cfg.Solver.TimeoutSeconds != 30 {
		t.Fatalf("solver config wrong: %+v", cfg.Solver)
	}
	if cfg.Genetic.PopulationSize != 40 || cfg.Genetic.Seed != 7 {
		t.Fatalf("genetic config wrong: %+v", cfg.Genetic)
	}
	if cfg.Backtracking.Horizon != 50 {
		t.Fatalf("backtracking config wrong: %+v", cfg.Backtracking)
	}
	if cfg.Export.Format != "csv" {
		t.Fatalf("export config wrong: %+v", cfg.Export)
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "config.json", `{"problem":"p.yaml"}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Solver.Algorithm != "list" {
		t.Fatalf("default algorithm = %s", cfg.Solver.Algorithm)
	}
	if cfg.Genetic.PopulationSize != 50 || cfg.Genetic.Generations != 100 {
		t.Fatalf("genetic defaults wrong: %+v", cfg.Genetic)
	}
	if cfg.Backtracking.Horizon != 100 {
		t.Fatalf("horizon default = %d", cfg.Backtracking.Horizon)
	}
	if cfg.Metrics.PrometheusPort != "2112" {
		t.Fatalf("prometheus port default = %s", cfg.Metrics.PrometheusPort)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("JOBSHOP_SOLVER__ALGORITHM", "backtracking")
	t.Setenv("JOBSHOP_EXPORT__FORMAT", "csv")
	path := writeConfig(t, "config.yaml", "problem: p.yaml\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Solver.Algorithm != "backtracking" {
		t.Fatalf("env override ignored: %s", cfg.Solver.Algorithm)
	}
	if cfg.Export.Format != "csv" {
		t.Fatalf("nested env override ignored: %s", cfg.Export.Format)
	}
}

func TestLoadEnvOverrideBeatsFile(t *testing.T) {
	t.Setenv("JOBSHOP_SOLVER__ALGORITHM", "genetic")
	path := writeConfig(t, "config.yaml", "problem: p.yaml\nsolver:\n  algorithm: list\n")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Solver.Algorithm != "genetic" {
		t.Fatalf("file value not overridden: %s", cfg.Solver.Algorithm)
	}
}

func TestLoadRejectsInvalid(t *testing.T) {
	cases := map[string]string{
		"bad algorithm": "problem: p.yaml\nsolver:\n  algorithm: annealing\n",
		"bad format":    "problem: p.yaml\nexport:\n  format: xml\n",
		"missing input": "solver:\n  algorithm: list\n",
		"bad horizon":   "problem: p.yaml\nbacktracking:\n  horizon: -2\n",
	}
	for name, content := range cases {
		t.Run(name, func(t *testing.T) {
			path := writeConfig(t, "config.yaml", content)
			if _, err := Load(path); err == nil {
				t.Fatal("invalid config accepted")
			}
		})
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	path := writeConfig(t, "config.toml", "problem='x'\n")
	if _, err := Load(path); err == nil {
		t.Fatal("unsupported extension accepted")
	}
}
