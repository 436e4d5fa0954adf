package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tryfinity/resonance/internal/config"
)

func newConfigCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage resonance configuration",
		Long: `View resonance configuration settings.

Configuration is stored in ~/.resonance/config.yaml and may be
overridden with RESONANCE_* environment variables.

Examples:
  resonance config list          # Show all settings
  resonance config list --json`,
	}

	cmd.AddCommand(
		newConfigListCmd(),
	)

	return cmd
}

func newConfigListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all configuration settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			jsonOut, _ := cmd.Flags().GetBool("json")

			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}

			out := cmd.OutOrStdout()
			if jsonOut {
				return json.NewEncoder(out).Encode(cfg)
			}

			fmt.Fprintln(out, "Configuration (~/.resonance/config.yaml):")
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Simulation Settings:")
			fmt.Fprintf(out, "  simulation.dimensions:  %d\n", cfg.Simulation.Dimensions)
			fmt.Fprintf(out, "  simulation.factor:      %g\n", cfg.Simulation.Factor)
			fmt.Fprintf(out, "  simulation.steps:       %d\n", cfg.Simulation.Steps)
			fmt.Fprintf(out, "  simulation.nodes:       %d\n", cfg.Simulation.Nodes)
			if cfg.Simulation.RandSeed != 0 {
				fmt.Fprintf(out, "  simulation.rand_seed:   %d\n", cfg.Simulation.RandSeed)
			} else {
				fmt.Fprintf(out, "  simulation.rand_seed:   (time-derived)\n")
			}
			fmt.Fprintln(out)
			fmt.Fprintln(out, "Logging Settings:")
			fmt.Fprintf(out, "  logging.level:          %s\n", cfg.Logging.Level)

			return nil
		},
	}
}
