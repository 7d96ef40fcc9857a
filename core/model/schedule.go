package model

import (
	"fmt"
	"sort"
)

// Assignment places one job on its machines for [Start, End).
type Assignment struct {
	JobID    string   `json:"job_id"`
	Start    int      `json:"start"`
	End      int      `json:"end"`
	Machines []string `json:"machines"`
}

// Schedule maps every job to its assignment. Makespan is the time at
// which the last machine finishes its last job.
type Schedule struct {
	Assignments map[string]Assignment `json:"assignments"`
	Makespan    int                   `json:"makespan"`
}

// Validate verifies the schedule invariants: per machine, assigned
// intervals are pairwise non-overlapping, and the makespan covers
// every assignment.
func (s Schedule) Validate() error {
	byMachine := make(map[string][]Assignment)
	for id, a := range s.Assignments {
		if a.JobID != id {
			return fmt.Errorf("assignment keyed %s carries job id %s", id, a.JobID)
		}
		if a.End <= a.Start {
			return fmt.Errorf("job %s: empty interval [%d,%d)", id, a.Start, a.End)
		}
		if a.End > s.Makespan {
			return fmt.Errorf("job %s ends at %d beyond makespan %d", id, a.End, s.Makespan)
		}
		for _, m := range a.Machines {
			byMachine[m] = append(byMachine[m], a)
		}
	}
	for m, as := range byMachine {
		sort.Slice(as, func(i, j int) bool { return as[i].Start < as[j].Start })
		for i := 1; i < len(as); i++ {
			if as[i].Start < as[i-1].End {
				return fmt.Errorf("machine %s: jobs %s and %s overlap", m, as[i-1].JobID, as[i].JobID)
			}
		}
	}
	return nil
}

// Sorted returns the assignments ordered by start time, then job id.
// Useful for stable rendering and export.
func (s Schedule) Sorted() []Assignment {
	out := make([]Assignment, 0, len(s.Assignments))
	for _, a := range s.Assignments {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Start != out[j].Start {
			return out[i].Start < out[j].Start
		}
		return out[i].JobID < out[j].JobID
	})
	return out
}
