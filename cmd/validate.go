package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/jobshop/core/problem"
	"github.com/kilianp07/jobshop/core/solver"
)

var validateCmd = &cobra.Command{
	Use:   "validate [problem file]",
	Short: "Check a problem definition without solving it",
	Long: "Validates the entities of a problem file, verifies every reference " +
		"and checks that the dependency graph is acyclic.",
	Args: cobra.ExactArgs(1),
	RunE: runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	p, err := problem.Load(args[0])
	if err != nil {
		return fmt.Errorf("load problem: %w", err)
	}
	jobs, deps, machines := p.Entities()
	eng, err := solver.NewEngine(jobs, deps, machines)
	if err != nil {
		return err
	}
	order, err := eng.TopologicalOrder()
	if err != nil {
		return err
	}
	cmd.Printf("ok: %d jobs, %d machines, order %v\n", eng.Jobs(), eng.Machines(), order)
	return nil
}
