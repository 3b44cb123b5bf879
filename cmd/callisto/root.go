package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "callisto",
	Short: "Callisto - HTTP metrics server with path-cardinality protection",
	Long: `Callisto is an HTTP metrics server that records per-route request counts
and latencies with Prometheus while keeping the metric label space bounded.

Route templates collapse path parameters into a single label, exclusion
rules keep operational endpoints out of the instruments, and a hard cap on
distinct path labels stops unmatched request floods from growing the
counter without bound.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
