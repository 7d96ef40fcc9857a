// Package problem loads scheduling problem definitions from JSON or
// YAML documents supplied by the caller.
package problem

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kilianp07/jobshop/core/model"
)

// JobSpec describes one job in a problem document.
type JobSpec struct {
	ID             string   `json:"id" yaml:"id"`
	ProcessingTime int      `json:"processing_time" yaml:"processing_time"`
	Machines       []string `json:"machines" yaml:"machines"`
}

// MachineSpec describes one machine in a problem document.
type MachineSpec struct {
	ID       string `json:"id" yaml:"id"`
	Capacity int    `json:"capacity" yaml:"capacity"`
}

// DependencySpec orders two jobs: After cannot start before Before has
// completed.
type DependencySpec struct {
	Before string `json:"before" yaml:"before"`
	After  string `json:"after" yaml:"after"`
}

// Problem is a complete scheduling request.
type Problem struct {
	Jobs         []JobSpec        `json:"jobs" yaml:"jobs"`
	Machines     []MachineSpec    `json:"machines" yaml:"machines"`
	Dependencies []DependencySpec `json:"dependencies" yaml:"dependencies"`
}

// Load reads a Problem from a JSON or YAML file, by extension.
func Load(path string) (Problem, error) {
	f, err := os.Open(path)
	if err != nil {
		return Problem{}, err
	}
	defer f.Close()
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), ".")
	return Decode(f, ext)
}

// Decode reads from r to decode a Problem in the given format.
func Decode(r io.Reader, format string) (Problem, error) {
	var p Problem
	switch strings.ToLower(format) {
	case "yaml", "yml":
		dec := yaml.NewDecoder(r)
		if err := dec.Decode(&p); err != nil {
			return p, err
		}
	case "json":
		dec := json.NewDecoder(r)
		if err := dec.Decode(&p); err != nil {
			return p, err
		}
	default:
		return p, fmt.Errorf("unsupported format: %s", format)
	}
	return p, nil
}

// Entities converts the document into model records. Field-level
// validation happens in the engine; this only reshapes the input.
func (p Problem) Entities() ([]model.Job, []model.Dependency, []model.Machine) {
	jobs := make([]model.Job, 0, len(p.Jobs))
	for _, j := range p.Jobs {
		jobs = append(jobs, model.Job{
			ID:             j.ID,
			ProcessingTime: j.ProcessingTime,
			Machines:       j.Machines,
		})
	}
	deps := make([]model.Dependency, 0, len(p.Dependencies))
	for _, d := range p.Dependencies {
		deps = append(deps, model.Dependency{Predecessor: d.Before, Successor: d.After})
	}
	machines := make([]model.Machine, 0, len(p.Machines))
	for _, m := range p.Machines {
		machines = append(machines, model.Machine{ID: m.ID, Capacity: m.Capacity})
	}
	return jobs, deps, machines
}
