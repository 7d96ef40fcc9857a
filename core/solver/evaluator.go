package solver

import (
	"github.com/kilianp07/jobshop/core/graph"
	"github.com/kilianp07/jobshop/core/model"
)

// Evaluate replays order once against machine availability and returns
// the per-job start times and the makespan. It is the single source of
// truth for how good an ordering is: the list scheduler runs it on the
// topological order and the genetic optimizer uses it as the fitness
// function.
//
// A job starts at the latest of its machines' free times and its
// predecessors' completion times; placing it advances the free time of
// every required machine. An order that positions a job before one of
// its predecessors is reported as infeasible (feasible=false).
//
// Machine state is built fresh on every call, so Evaluate can be
// invoked repeatedly and concurrently with different orders.
func Evaluate(jobs map[string]model.Job, g *graph.Graph, order []string) (starts map[string]int, makespan int, feasible bool) {
	free := make(map[string]int)
	ends := make(map[string]int, len(order))
	starts = make(map[string]int, len(order))

	for _, id := range order {
		job, ok := jobs[id]
		if !ok {
			return nil, 0, false
		}
		start := 0
		for _, p := range g.Predecessors(id) {
			end, placed := ends[p]
			if !placed {
				return nil, 0, false
			}
			if end > start {
				start = end
			}
		}
		for _, m := range job.Machines {
			if free[m] > start {
				start = free[m]
			}
		}
		end := start + job.ProcessingTime
		for _, m := range job.Machines {
			free[m] = end
		}
		starts[id] = start
		ends[id] = end
	}

	for _, t := range free {
		if t > makespan {
			makespan = t
		}
	}
	return starts, makespan, true
}
