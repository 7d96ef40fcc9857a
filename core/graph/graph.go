// Package graph builds the dependency DAG over a job set and derives
// deterministic topological orders from it using Kahn's algorithm.
package graph

import (
	"errors"
	"fmt"

	"github.com/kilianp07/jobshop/core/model"
)

// ErrCycleDetected is returned when the dependency set is not acyclic.
// No solver can run on a cyclic job set.
var ErrCycleDetected = errors.New("dependency cycle detected")

// UnknownJobError reports a dependency naming a job that was never
// supplied.
type UnknownJobError struct {
	JobID string
}

func (e UnknownJobError) Error() string {
	return fmt.Sprintf("dependency references unknown job %s", e.JobID)
}

// Graph is the derived adjacency structure over a job set. It is
// rebuilt on every scheduling request and never mutated afterwards.
type Graph struct {
	order      []string            // job ids in insertion order
	successors map[string][]string // predecessor -> successors
	preds      map[string][]string // successor -> predecessors
	inDegree   map[string]int
}

// Build derives the dependency graph from jobs and dependency pairs.
// Every job id referenced by a dependency must exist in jobs.
func Build(jobs []model.Job, deps []model.Dependency) (*Graph, error) {
	g := &Graph{
		order:      make([]string, 0, len(jobs)),
		successors: make(map[string][]string, len(jobs)),
		preds:      make(map[string][]string, len(jobs)),
		inDegree:   make(map[string]int, len(jobs)),
	}
	for _, j := range jobs {
		g.order = append(g.order, j.ID)
		g.inDegree[j.ID] = 0
	}
	for _, d := range deps {
		if _, ok := g.inDegree[d.Predecessor]; !ok {
			return nil, UnknownJobError{JobID: d.Predecessor}
		}
		if _, ok := g.inDegree[d.Successor]; !ok {
			return nil, UnknownJobError{JobID: d.Successor}
		}
		g.successors[d.Predecessor] = append(g.successors[d.Predecessor], d.Successor)
		g.preds[d.Successor] = append(g.preds[d.Successor], d.Predecessor)
		g.inDegree[d.Successor]++
	}
	return g, nil
}

// TopologicalOrder returns a linear order in which every predecessor
// precedes its successors, or ErrCycleDetected. Ties between
// zero-in-degree jobs are broken by job insertion order, so the result
// is deterministic for a given input.
func (g *Graph) TopologicalOrder() ([]string, error) {
	inDeg := make(map[string]int, len(g.inDegree))
	for id, d := range g.inDegree {
		inDeg[id] = d
	}

	queue := make([]string, 0, len(g.order))
	for _, id := range g.order {
		if inDeg[id] == 0 {
			queue = append(queue, id)
		}
	}

	out := make([]string, 0, len(g.order))
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		out = append(out, id)
		for _, succ := range g.successors[id] {
			inDeg[succ]--
			if inDeg[succ] == 0 {
				queue = append(queue, succ)
			}
		}
	}
	if len(out) != len(g.order) {
		return nil, ErrCycleDetected
	}
	return out, nil
}

// Predecessors returns the jobs that must complete before id may
// start. The returned slice must not be modified.
func (g *Graph) Predecessors(id string) []string {
	return g.preds[id]
}

// Successors returns the jobs waiting on id. The returned slice must
// not be modified.
func (g *Graph) Successors(id string) []string {
	return g.successors[id]
}

// Len returns the number of jobs in the graph.
func (g *Graph) Len() int { return len(g.order) }
