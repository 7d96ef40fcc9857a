package solver

import (
	"errors"
	"fmt"
)

// ErrNoValidOrder is returned by the list scheduler when the
// dependency set admits no topological order.
var ErrNoValidOrder = errors.New("no valid topological order")

// ErrInfeasible is returned by the backtracking solver after the whole
// time horizon has been exhausted for some job. Retrying with a larger
// horizon may succeed.
var ErrInfeasible = errors.New("no feasible schedule within horizon")

// ErrAllInfeasible is returned by the genetic optimizer when every
// individual in the final population violates precedence.
var ErrAllInfeasible = errors.New("all individuals in final population are infeasible")

// UnknownMachineError reports a job requiring a machine that was never
// supplied.
type UnknownMachineError struct {
	JobID     string
	MachineID string
}

func (e UnknownMachineError) Error() string {
	return fmt.Sprintf("job %s requires unknown machine %s", e.JobID, e.MachineID)
}
