// Package cmd provides the command-line interface for running Gibbs sampling
// experiments on synthetic Ising models.
package cmd

import (
	"os"

	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use: "hogwild",
	Short: "Hogwild runs Gibbs sampling experiments on synthetic Ising " +
		"models.",
	Long: `Hogwild runs Gibbs sampling experiments on synthetic Ising ` +
		`models, either with a sequential scan or with unsynchronized ` +
		`parallel workers following the asynchronous scheme of ` +
		`arXiv:1602.07415.`,
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}
