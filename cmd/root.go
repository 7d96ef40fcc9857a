// Package cmd implements the jobshop command line interface.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgPath string

var rootCmd = &cobra.Command{
	Use:   "jobshop",
	Short: "Machine-assignment scheduling under precedence and resource constraints",
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "config.yaml", "configuration file")
	rootCmd.AddCommand(solveCmd, validateCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }
