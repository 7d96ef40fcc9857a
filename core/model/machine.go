package model

import "fmt"

// Machine is a resource that processes at most one job interval at a
// time. Capacity is accepted for forward compatibility with multi-slot
// machines but is not enforced by any solver.
type Machine struct {
	ID       string
	Capacity int
}

// Validate checks that the machine definition is sound.
func (m Machine) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("machine id must not be empty")
	}
	if m.Capacity <= 0 {
		return fmt.Errorf("machine %s: capacity must be positive", m.ID)
	}
	return nil
}
