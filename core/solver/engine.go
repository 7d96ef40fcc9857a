package solver

import (
	"fmt"

	"github.com/kilianp07/jobshop/core/graph"
	"github.com/kilianp07/jobshop/core/logger"
	"github.com/kilianp07/jobshop/core/model"
)

// Engine holds one validated scheduling problem and exposes one entry
// point per solver. The input entities are never mutated; every solve
// derives its own working state.
type Engine struct {
	jobs     []model.Job
	byID     map[string]model.Job
	machines map[string]model.Machine
	graph    *graph.Graph
	log      logger.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger used by the solvers.
func WithLogger(l logger.Logger) Option {
	return func(e *Engine) { e.log = l }
}

type nopLogger struct{}

func (nopLogger) Debugf(string, ...any)         {}
func (nopLogger) Debugw(string, map[string]any) {}
func (nopLogger) Infof(string, ...any)          {}
func (nopLogger) Warnf(string, ...any)          {}
func (nopLogger) Errorf(string, ...any)         {}

// NewEngine validates the problem definition and builds the dependency
// graph. It fails with a graph.UnknownJobError when a dependency names
// a missing job and with an UnknownMachineError when a job requires a
// missing machine.
func NewEngine(jobs []model.Job, deps []model.Dependency, machines []model.Machine, opts ...Option) (*Engine, error) {
	e := &Engine{
		jobs:     jobs,
		byID:     make(map[string]model.Job, len(jobs)),
		machines: make(map[string]model.Machine, len(machines)),
		log:      nopLogger{},
	}
	for _, opt := range opts {
		opt(e)
	}

	for _, m := range machines {
		if err := m.Validate(); err != nil {
			return nil, err
		}
		if _, dup := e.machines[m.ID]; dup {
			return nil, fmt.Errorf("duplicate machine id %s", m.ID)
		}
		e.machines[m.ID] = m
	}
	for _, j := range jobs {
		if err := j.Validate(); err != nil {
			return nil, err
		}
		if _, dup := e.byID[j.ID]; dup {
			return nil, fmt.Errorf("duplicate job id %s", j.ID)
		}
		for _, m := range j.Machines {
			if _, ok := e.machines[m]; !ok {
				return nil, UnknownMachineError{JobID: j.ID, MachineID: m}
			}
		}
		e.byID[j.ID] = j
	}

	g, err := graph.Build(jobs, deps)
	if err != nil {
		return nil, err
	}
	e.graph = g
	return e, nil
}

// Jobs returns the number of jobs in the problem.
func (e *Engine) Jobs() int { return len(e.jobs) }

// Machines returns the number of machines in the problem.
func (e *Engine) Machines() int { return len(e.machines) }

// TopologicalOrder exposes the graph's deterministic topological
// order, or graph.ErrCycleDetected.
func (e *Engine) TopologicalOrder() ([]string, error) {
	return e.graph.TopologicalOrder()
}

// ListSchedule runs the greedy list scheduler: the evaluator's
// placement logic over the single deterministic topological order.
// It is correct but not optimal; the makespan depends entirely on the
// topological tie-break. Returns ErrNoValidOrder (wrapping
// graph.ErrCycleDetected) when the dependency set is cyclic.
func (e *Engine) ListSchedule() (model.Schedule, error) {
	order, err := e.graph.TopologicalOrder()
	if err != nil {
		return model.Schedule{}, fmt.Errorf("%w: %w", ErrNoValidOrder, err)
	}
	starts, makespan, ok := Evaluate(e.byID, e.graph, order)
	if !ok {
		// Cannot happen on a topological order; guard anyway.
		return model.Schedule{}, ErrNoValidOrder
	}
	e.log.Debugw("list schedule computed", map[string]any{
		"jobs":     len(order),
		"makespan": makespan,
	})
	return e.buildSchedule(starts, makespan), nil
}

// buildSchedule converts evaluator start times into a Schedule.
func (e *Engine) buildSchedule(starts map[string]int, makespan int) model.Schedule {
	s := model.Schedule{
		Assignments: make(map[string]model.Assignment, len(starts)),
		Makespan:    makespan,
	}
	for id, start := range starts {
		job := e.byID[id]
		machines := make([]string, len(job.Machines))
		copy(machines, job.Machines)
		s.Assignments[id] = model.Assignment{
			JobID:    id,
			Start:    start,
			End:      start + job.ProcessingTime,
			Machines: machines,
		}
	}
	return s
}
