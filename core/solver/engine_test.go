package solver

import (
	"errors"
	"testing"

	"github.com/kilianp07/jobshop/core/graph"
	"github.com/kilianp07/jobshop/core/model"
)

func TestListScheduleScenario(t *testing.T) {
	e := scenarioEngine(t)
	s, err := e.ListSchedule()
	if err != nil {
		t.Fatalf("list schedule: %v", err)
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("invalid schedule: %v", err)
	}
	want := map[string]int{"1": 0, "2": 0, "3": 0, "4": 8, "5": 14}
	for id, start := range want {
		a, ok := s.Assignments[id]
		if !ok {
			t.Fatalf("job %s missing from schedule", id)
		}
		if a.Start != start {
			t.Errorf("job %s starts at %d, want %d", id, a.Start, start)
		}
	}
	if s.Makespan != 18 {
		t.Errorf("makespan = %d, want 18", s.Makespan)
	}
}

func TestListScheduleDeterministic(t *testing.T) {
	e := scenarioEngine(t)
	first, err := e.ListSchedule()
	if err != nil {
		t.Fatalf("first run: %v", err)
	}
	second, err := e.ListSchedule()
	if err != nil {
		t.Fatalf("second run: %v", err)
	}
	if first.Makespan != second.Makespan {
		t.Fatalf("makespans differ: %d vs %d", first.Makespan, second.Makespan)
	}
	for id, a := range first.Assignments {
		if b := second.Assignments[id]; b.Start != a.Start {
			t.Fatalf("job %s start differs: %d vs %d", id, a.Start, b.Start)
		}
	}
}

func TestListSchedulePrecedenceCompletion(t *testing.T) {
	e := scenarioEngine(t)
	s, err := e.ListSchedule()
	if err != nil {
		t.Fatalf("list schedule: %v", err)
	}
	deps := []model.Dependency{
		{Predecessor: "1", Successor: "4"},
		{Predecessor: "2", Successor: "5"},
		{Predecessor: "3", Successor: "5"},
	}
	for _, d := range deps {
		p, s1 := s.Assignments[d.Predecessor], s.Assignments[d.Successor]
		if s1.Start < p.End {
			t.Errorf("job %s starts at %d before %s completes at %d",
				d.Successor, s1.Start, d.Predecessor, p.End)
		}
	}
}

func TestCycleRefusesAllSolvers(t *testing.T) {
	jobs := []model.Job{
		{ID: "1", ProcessingTime: 1, Machines: []string{"A"}},
		{ID: "2", ProcessingTime: 1, Machines: []string{"A"}},
	}
	deps := []model.Dependency{
		{Predecessor: "1", Successor: "2"},
		{Predecessor: "2", Successor: "1"},
	}
	machines := []model.Machine{{ID: "A", Capacity: 1}}
	e, err := NewEngine(jobs, deps, machines)
	if err != nil {
		t.Fatalf("engine: %v", err)
	}

	if _, err := e.ListSchedule(); !errors.Is(err, ErrNoValidOrder) {
		t.Errorf("list: expected ErrNoValidOrder, got %v", err)
	}
	if _, err := e.ListSchedule(); !errors.Is(err, graph.ErrCycleDetected) {
		t.Errorf("list: cause should be ErrCycleDetected, got %v", err)
	}
	if _, err := e.Genetic(GeneticConfig{Seed: 1}); !errors.Is(err, graph.ErrCycleDetected) {
		t.Errorf("genetic: expected ErrCycleDetected, got %v", err)
	}
	if _, err := e.Backtracking(10); !errors.Is(err, graph.ErrCycleDetected) {
		t.Errorf("backtracking: expected ErrCycleDetected, got %v", err)
	}
}

func TestNewEngineValidation(t *testing.T) {
	machines := []model.Machine{{ID: "A", Capacity: 1}}

	_, err := NewEngine([]model.Job{{ID: "1", ProcessingTime: 1, Machines: []string{"X"}}}, nil, machines)
	var um UnknownMachineError
	if !errors.As(err, &um) {
		t.Fatalf("expected UnknownMachineError, got %v", err)
	}
	if um.JobID != "1" || um.MachineID != "X" {
		t.Fatalf("unexpected error detail: %+v", um)
	}

	_, err = NewEngine(
		[]model.Job{{ID: "1", ProcessingTime: 1, Machines: []string{"A"}}},
		[]model.Dependency{{Predecessor: "1", Successor: "missing"}},
		machines,
	)
	var uj graph.UnknownJobError
	if !errors.As(err, &uj) {
		t.Fatalf("expected UnknownJobError, got %v", err)
	}

	dup := []model.Job{
		{ID: "1", ProcessingTime: 1, Machines: []string{"A"}},
		{ID: "1", ProcessingTime: 2, Machines: []string{"A"}},
	}
	if _, err := NewEngine(dup, nil, machines); err == nil {
		t.Fatal("duplicate job id accepted")
	}
}
