package solver

import (
	"testing"

	"github.com/kilianp07/jobshop/core/graph"
	"github.com/kilianp07/jobshop/core/model"
)

func scenarioJobs() ([]model.Job, []model.Dependency, []model.Machine) {
	jobs := []model.Job{
		{ID: "1", ProcessingTime: 5, Machines: []string{"A"}},
		{ID: "2", ProcessingTime: 8, Machines: []string{"B"}},
		{ID: "3", ProcessingTime: 3, Machines: []string{"C"}},
		{ID: "4", ProcessingTime: 6, Machines: []string{"A", "B"}},
		{ID: "5", ProcessingTime: 4, Machines: []string{"B", "C"}},
	}
	deps := []model.Dependency{
		{Predecessor: "1", Successor: "4"},
		{Predecessor: "2", Successor: "5"},
		{Predecessor: "3", Successor: "5"},
	}
	machines := []model.Machine{
		{ID: "A", Capacity: 100},
		{ID: "B", Capacity: 100},
		{ID: "C", Capacity: 100},
	}
	return jobs, deps, machines
}

func scenarioEngine(t *testing.T) *Engine {
	t.Helper()
	jobs, deps, machines := scenarioJobs()
	e, err := NewEngine(jobs, deps, machines)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	return e
}

func TestEvaluateScenario(t *testing.T) {
	e := scenarioEngine(t)
	starts, makespan, ok := Evaluate(e.byID, e.graph, []string{"1", "2", "3", "4", "5"})
	if !ok {
		t.Fatal("topological order reported infeasible")
	}
	want := map[string]int{"1": 0, "2": 0, "3": 0, "4": 8, "5": 14}
	for id, s := range want {
		if starts[id] != s {
			t.Errorf("job %s starts at %d, want %d", id, starts[id], s)
		}
	}
	if makespan != 18 {
		t.Errorf("makespan = %d, want 18", makespan)
	}
}

func TestEvaluateInfeasibleOrder(t *testing.T) {
	e := scenarioEngine(t)
	// Job 4 placed before its predecessor 1.
	if _, _, ok := Evaluate(e.byID, e.graph, []string{"4", "1", "2", "3", "5"}); ok {
		t.Fatal("order violating precedence reported feasible")
	}
}

func TestEvaluatePredecessorCompletion(t *testing.T) {
	// Successor shares no machine with its predecessor: it must still
	// wait for the predecessor to complete.
	jobs := []model.Job{
		{ID: "p", ProcessingTime: 5, Machines: []string{"A"}},
		{ID: "s", ProcessingTime: 2, Machines: []string{"B"}},
	}
	deps := []model.Dependency{{Predecessor: "p", Successor: "s"}}
	machines := []model.Machine{{ID: "A", Capacity: 1}, {ID: "B", Capacity: 1}}
	e, err := NewEngine(jobs, deps, machines)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}
	starts, makespan, ok := Evaluate(e.byID, e.graph, []string{"p", "s"})
	if !ok {
		t.Fatal("feasible order rejected")
	}
	if starts["s"] != 5 {
		t.Fatalf("successor starts at %d, want 5", starts["s"])
	}
	if makespan != 7 {
		t.Fatalf("makespan = %d, want 7", makespan)
	}
}

func TestEvaluateNoSharedState(t *testing.T) {
	e := scenarioEngine(t)
	order := []string{"1", "2", "3", "4", "5"}
	_, first, _ := Evaluate(e.byID, e.graph, order)
	_, second, _ := Evaluate(e.byID, e.graph, order)
	if first != second {
		t.Fatalf("repeated evaluation diverged: %d vs %d", first, second)
	}
	g, err := graph.Build([]model.Job{{ID: "x", ProcessingTime: 1, Machines: []string{"A"}}}, nil)
	if err != nil {
		t.Fatalf("build: %v", err)
	}
	jobs := map[string]model.Job{"x": {ID: "x", ProcessingTime: 1, Machines: []string{"A"}}}
	if _, ms, _ := Evaluate(jobs, g, []string{"x"}); ms != 1 {
		t.Fatalf("machine state leaked across calls: makespan %d", ms)
	}
}

func TestEvaluateUnknownJob(t *testing.T) {
	e := scenarioEngine(t)
	if _, _, ok := Evaluate(e.byID, e.graph, []string{"1", "ghost"}); ok {
		t.Fatal("order with unknown job reported feasible")
	}
}
