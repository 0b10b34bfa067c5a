package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

// NewRootCommand creates the root command for the CLI
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "starlane-supply",
		Short: "Starlane supply engine - compute empire supply networks per turn",
		Long: `starlane-supply computes, for every empire, which starlanes carry supply, which
are obstructed, where fleets can resupply and which systems share resources.

Galaxies are imported per turn from YAML files and stored together with the
computed supply snapshots.

Examples:
  starlane-supply galaxy import galaxy.yaml --turn 1
  starlane-supply supply update
  starlane-supply supply show --empire 1
  starlane-supply supply check --system 12 --empire 1
  starlane-supply supply export --empire 1 --output supply.dot
  starlane-supply supply watch galaxy.yaml`,
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"Path to config file (default: ./config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable debug logging")

	rootCmd.AddCommand(NewConfigCommand())
	rootCmd.AddCommand(NewGalaxyCommand())
	rootCmd.AddCommand(NewSupplyCommand())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	rootCmd := NewRootCommand()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
