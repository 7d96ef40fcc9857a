package model

import "fmt"

// Job is a unit of work occupying one or more machines for its whole
// processing time. Jobs are immutable once handed to the engine.
type Job struct {
	ID             string
	ProcessingTime int      // duration in abstract time units
	Machines       []string // machines occupied simultaneously, never empty
}

// Validate checks that the job definition is sound.
func (j Job) Validate() error {
	if j.ID == "" {
		return fmt.Errorf("job id must not be empty")
	}
	if j.ProcessingTime <= 0 {
		return fmt.Errorf("job %s: processing time must be positive", j.ID)
	}
	if len(j.Machines) == 0 {
		return fmt.Errorf("job %s: at least one machine is required", j.ID)
	}
	seen := make(map[string]struct{}, len(j.Machines))
	for _, m := range j.Machines {
		if m == "" {
			return fmt.Errorf("job %s: machine id must not be empty", j.ID)
		}
		if _, dup := seen[m]; dup {
			return fmt.Errorf("job %s: machine %s listed twice", j.ID, m)
		}
		seen[m] = struct{}{}
	}
	return nil
}

// Dependency orders two jobs: Successor cannot start before
// Predecessor has completed.
type Dependency struct {
	Predecessor string
	Successor   string
}
