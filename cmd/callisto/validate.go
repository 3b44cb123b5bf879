package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"mercator-hq/callisto/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a configuration file",
	Long: `Validate a configuration file without starting the server.

All validation failures are reported at once, with the offending field and
the reason for each.

Examples:
  # Validate the default config file
  callisto validate

  # Validate a specific file
  callisto validate --config /etc/callisto/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		var verr config.ValidationError
		if errors.As(err, &verr) {
			fmt.Printf("✗ Configuration invalid (%d problems):\n", len(verr.Errors))
			for _, fe := range verr.Errors {
				fmt.Printf("  - %s: %s\n", fe.Field, fe.Message)
			}
			return fmt.Errorf("configuration validation failed")
		}
		return fmt.Errorf("failed to load config: %w", err)
	}

	fmt.Println("✓ Configuration valid")
	fmt.Printf("  listen address:     %s\n", cfg.Server.ListenAddress)
	fmt.Printf("  metrics enabled:    %t\n", cfg.Metrics.Enabled)
	if cfg.Metrics.Enabled {
		fmt.Printf("  metrics path:       %s\n", cfg.Metrics.Path)
	}
	fmt.Printf("  max paths to count: %d\n", cfg.Metrics.MaxPaths())
	fmt.Printf("  storage backend:    %s\n", cfg.Storage.Backend)
	return nil
}
