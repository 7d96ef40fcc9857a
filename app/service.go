// Package app wires configuration, problem input, solvers, metrics and
// export into a runnable service.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/jobshop/config"
	"github.com/kilianp07/jobshop/core/graph"
	coremetrics "github.com/kilianp07/jobshop/core/metrics"
	"github.com/kilianp07/jobshop/core/model"
	"github.com/kilianp07/jobshop/core/problem"
	"github.com/kilianp07/jobshop/core/solver"
	"github.com/kilianp07/jobshop/infra/logger"
	"github.com/kilianp07/jobshop/infra/metrics"
	"github.com/kilianp07/jobshop/pkg/export"
)

// ErrTimeout reports that a solve exceeded the configured wall-clock
// budget. The solvers have no mid-run cancellation, so the budget is
// enforced around the call; the abandoned goroutine finishes on its
// own and its result is discarded.
var ErrTimeout = errors.New("solve exceeded wall-clock budget")

// Service runs one scheduling request end to end.
type Service struct {
	cfg  *config.Config
	log  logger.Logger
	sink coremetrics.MetricsSink
	out  io.Writer // overrides Export.Path when set, for tests
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")
	var sink coremetrics.MetricsSink = coremetrics.NopSink{}
	if cfg.Metrics.PrometheusEnabled {
		s, err := metrics.NewPromSink(cfg.Metrics)
		if err != nil {
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sink = s
	}
	return &Service{cfg: cfg, log: logg, sink: sink}, nil
}

// Run loads the problem, runs the configured solver under the
// wall-clock budget and exports the resulting schedule.
func (s *Service) Run(ctx context.Context) error {
	if s.cfg.Metrics.PrometheusEnabled {
		go func() {
			if err := metrics.StartPromServer(ctx, s.cfg.Metrics.PrometheusPort); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}

	p, err := problem.Load(s.cfg.Problem)
	if err != nil {
		return fmt.Errorf("load problem: %w", err)
	}
	jobs, deps, machines := p.Entities()
	eng, err := solver.NewEngine(jobs, deps, machines, solver.WithLogger(s.log))
	if err != nil {
		return fmt.Errorf("build engine: %w", err)
	}

	runID := uuid.NewString()
	algorithm := s.cfg.Solver.Algorithm
	s.log.Infof("run %s: solving %d jobs on %d machines with %s",
		runID, eng.Jobs(), eng.Machines(), algorithm)

	started := time.Now()
	sched, solveErr := s.solve(ctx, eng)
	elapsed := time.Since(started)

	res := coremetrics.SolveResult{
		RunID:    runID,
		Solver:   algorithm,
		Jobs:     eng.Jobs(),
		Machines: eng.Machines(),
		Makespan: sched.Makespan,
		Outcome:  classify(solveErr),
		Duration: elapsed,
	}
	if err := s.sink.RecordSolveResult(res); err != nil {
		s.log.Warnf("record metrics: %v", err)
	}
	if solveErr != nil {
		return fmt.Errorf("%s solve: %w", algorithm, solveErr)
	}

	s.log.Infof("run %s: makespan %d in %s", runID, sched.Makespan, elapsed)
	return s.export(sched)
}

// solve dispatches to the configured solver and enforces the budget.
func (s *Service) solve(ctx context.Context, eng *solver.Engine) (model.Schedule, error) {
	budget := time.Duration(s.cfg.Solver.TimeoutSeconds) * time.Second
	ctx, cancel := context.WithTimeout(ctx, budget)
	defer cancel()

	type outcome struct {
		sched model.Schedule
		err   error
	}
	ch := make(chan outcome, 1)
	go func() {
		var o outcome
		switch s.cfg.Solver.Algorithm {
		case "list":
			o.sched, o.err = eng.ListSchedule()
		case "genetic":
			var res *solver.GeneticResult
			res, o.err = eng.Genetic(s.cfg.Genetic)
			if o.err == nil {
				o.sched = res.Schedule
			}
		case "backtracking":
			o.sched, o.err = eng.Backtracking(s.cfg.Backtracking.Horizon)
		default:
			o.err = fmt.Errorf("unknown algorithm %s", s.cfg.Solver.Algorithm)
		}
		ch <- o
	}()

	select {
	case o := <-ch:
		return o.sched, o.err
	case <-ctx.Done():
		return model.Schedule{}, fmt.Errorf("%w after %s", ErrTimeout, budget)
	}
}

func classify(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, solver.ErrInfeasible), errors.Is(err, solver.ErrAllInfeasible):
		return "infeasible"
	case errors.Is(err, graph.ErrCycleDetected):
		return "cycle"
	default:
		return "error"
	}
}

func (s *Service) export(sched model.Schedule) error {
	w := s.out
	if w == nil {
		if s.cfg.Export.Path == "" {
			w = os.Stdout
		} else {
			f, err := os.Create(s.cfg.Export.Path)
			if err != nil {
				return fmt.Errorf("create export file: %w", err)
			}
			defer f.Close()
			w = f
		}
	}
	switch s.cfg.Export.Format {
	case "csv":
		return export.WriteCSV(w, sched)
	default:
		return export.WriteJSON(w, sched)
	}
}
