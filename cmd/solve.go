package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/kilianp07/jobshop/app"
	"github.com/kilianp07/jobshop/config"
)

var algorithm string

var solveCmd = &cobra.Command{
	Use:   "solve",
	Short: "Compute a schedule with the configured solver",
	RunE:  runSolve,
}

func init() {
	solveCmd.Flags().StringVarP(&algorithm, "algorithm", "a", "", "override the configured algorithm (list|genetic|backtracking)")
}

func runSolve(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if algorithm != "" {
		cfg.Solver.Algorithm = algorithm
		if err := cfg.Solver.Validate(); err != nil {
			return err
		}
	}
	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	return svc.Run(ctx)
}
