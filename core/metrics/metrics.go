package metrics

import "time"

// SolveResult describes one completed (or failed) solver run.
type SolveResult struct {
	RunID    string
	Solver   string // "list", "genetic" or "backtracking"
	Jobs     int
	Machines int
	Makespan int
	Outcome  string // "ok", "infeasible", "cycle", "timeout" or "error"
	Duration time.Duration
}

// MetricsSink records solver runs for observability purposes.
type MetricsSink interface {
	RecordSolveResult(res SolveResult) error
}

// NopSink discards all records.
type NopSink struct{}

// RecordSolveResult implements MetricsSink.
func (NopSink) RecordSolveResult(SolveResult) error { return nil }

// Config defines settings for metrics sinks.
type Config struct {
	PrometheusEnabled bool   `json:"prometheus_enabled"`
	PrometheusPort    string `json:"prometheus_port"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.PrometheusPort == "" {
		c.PrometheusPort = "2112"
	}
}
