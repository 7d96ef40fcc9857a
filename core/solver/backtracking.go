package solver

import (
	"fmt"

	"github.com/kilianp07/jobshop/core/graph"
	"github.com/kilianp07/jobshop/core/model"
)

// interval is a half-open booking [start, end) on one machine.
type interval struct {
	start, end int
}

// bookings holds the committed intervals per machine during the
// backtracking search. Unlike the evaluator's next-free scalars, the
// search may place jobs out of time order, so arbitrary gaps must be
// testable.
type bookings map[string][]interval

// safe reports whether [start, end) overlaps no committed interval on
// the machine.
func (b bookings) safe(machine string, start, end int) bool {
	for _, iv := range b[machine] {
		if !(end <= iv.start || start >= iv.end) {
			return false
		}
	}
	return true
}

// commit books [start, end) on every machine atomically.
func (b bookings) commit(machines []string, start, end int) {
	for _, m := range machines {
		b[m] = append(b[m], interval{start: start, end: end})
	}
}

// rollback removes the most recent booking from every machine. It must
// mirror the preceding commit exactly.
func (b bookings) rollback(machines []string) {
	for _, m := range machines {
		b[m] = b[m][:len(b[m])-1]
	}
}

// Backtracking searches per-job start times in [0, horizon) along the
// deterministic topological order, committing each placement on every
// required machine and rolling it back when the remaining jobs cannot
// be placed. A job's candidate starts are floored at its predecessors'
// completion times, so the result respects full-completion precedence.
//
// The search is exhaustive within the horizon: ErrInfeasible is
// returned only after every candidate start of every job, and every
// ancestor's alternatives, have been tried. There is no pruning beyond
// the per-machine interval check, which makes the worst case
// exponential in the job count; keep horizons tight.
func (e *Engine) Backtracking(horizon int) (model.Schedule, error) {
	if horizon <= 0 {
		return model.Schedule{}, fmt.Errorf("horizon must be positive, got %d", horizon)
	}
	order, err := e.graph.TopologicalOrder()
	if err != nil {
		return model.Schedule{}, err
	}
	jobs := make([]model.Job, len(order))
	for i, id := range order {
		jobs[i] = e.byID[id]
	}

	bt := &backtracker{
		jobs:    jobs,
		byID:    e.byID,
		g:       e.graph,
		horizon: horizon,
		booked:  make(bookings),
		starts:  make(map[string]int, len(jobs)),
	}
	if !bt.place(0) {
		return model.Schedule{}, ErrInfeasible
	}

	makespan := 0
	for id, start := range bt.starts {
		if end := start + e.byID[id].ProcessingTime; end > makespan {
			makespan = end
		}
	}
	e.log.Debugw("backtracking schedule found", map[string]any{
		"jobs":     len(jobs),
		"horizon":  horizon,
		"makespan": makespan,
	})
	return e.buildSchedule(bt.starts, makespan), nil
}

// Backtrack runs the raw interval search over jobs in the given order,
// without consulting dependencies. Callers must pre-sort the jobs into
// a precedence-respecting order themselves; the engine's Backtracking
// method does that and additionally floors starts at predecessor
// completion.
func Backtrack(jobs []model.Job, horizon int) (map[string]int, error) {
	bt := &backtracker{
		jobs:    jobs,
		horizon: horizon,
		booked:  make(bookings),
		starts:  make(map[string]int, len(jobs)),
	}
	if !bt.place(0) {
		return nil, ErrInfeasible
	}
	return bt.starts, nil
}

type backtracker struct {
	jobs    []model.Job // search order
	byID    map[string]model.Job
	g       *graph.Graph // nil disables the precedence floor
	horizon int
	booked  bookings
	starts  map[string]int
}

// place recursively assigns a start time to jobs[i:]. Recursion depth
// is bounded by the job count.
func (b *backtracker) place(i int) bool {
	if i == len(b.jobs) {
		return true
	}
	job := b.jobs[i]

	floor := 0
	if b.g != nil {
		for _, p := range b.g.Predecessors(job.ID) {
			// Predecessors are placed already: the order is topological.
			if end := b.starts[p] + b.byID[p].ProcessingTime; end > floor {
				floor = end
			}
		}
	}

	for start := floor; start+job.ProcessingTime <= b.horizon; start++ {
		end := start + job.ProcessingTime
		if !b.safeAll(job.Machines, start, end) {
			continue
		}
		b.booked.commit(job.Machines, start, end)
		b.starts[job.ID] = start
		if b.place(i + 1) {
			return true
		}
		b.booked.rollback(job.Machines)
		delete(b.starts, job.ID)
	}
	return false
}

// safeAll reports whether the interval is free on every required
// machine simultaneously.
func (b *backtracker) safeAll(machines []string, start, end int) bool {
	for _, m := range machines {
		if !b.booked.safe(m, start, end) {
			return false
		}
	}
	return true
}
