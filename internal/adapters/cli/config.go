package cli

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starlane-supply/internal/infrastructure/config"
)

// NewConfigCommand creates the config command with subcommands
func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Inspect configuration settings",
		Long: `Inspect starlane-supply configuration settings.

Configuration is loaded from multiple sources with priority:
1. Environment variables (SUPPLY_* prefix, e.g. SUPPLY_SUPPLY_JUMP_LENGTH)
2. Config file (config.yaml)
3. Default values

Examples:
  starlane-supply config show
  starlane-supply config show --json`,
	}

	cmd.AddCommand(newConfigShowCommand())

	return cmd
}

// newConfigShowCommand creates the config show subcommand
func newConfigShowCommand() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()

			cfg, err := config.LoadConfig(configPath)
			if err != nil {
				fmt.Fprintf(out, "Warning: Failed to load config: %v\n", err)
				fmt.Fprintln(out, "Using default configuration.")
				cfg = config.LoadConfigOrDefault("")
			}

			masked := *cfg
			masked.Database.URL = maskPassword(cfg.Database.URL)
			if masked.Database.Password != "" {
				masked.Database.Password = "****"
			}

			if asJSON {
				fmt.Fprintln(out, prettyPrint(masked))
				return nil
			}

			fmt.Fprintln(out, "Starlane Supply Configuration")
			fmt.Fprintln(out, "=============================")

			fmt.Fprintln(out, "\nDatabase:")
			fmt.Fprintf(out, "  Type:             %s\n", masked.Database.Type)
			switch {
			case masked.Database.URL != "":
				fmt.Fprintf(out, "  URL:              %s\n", masked.Database.URL)
			case masked.Database.Type == "sqlite":
				fmt.Fprintf(out, "  Path:             %s\n", masked.Database.Path)
			default:
				fmt.Fprintf(out, "  Host:             %s\n", masked.Database.Host)
				fmt.Fprintf(out, "  Port:             %d\n", masked.Database.Port)
				fmt.Fprintf(out, "  Database:         %s\n", masked.Database.Name)
				fmt.Fprintf(out, "  User:             %s\n", masked.Database.User)
			}
			fmt.Fprintf(out, "  Max Connections:  %d\n", masked.Database.Pool.MaxOpen)

			fmt.Fprintln(out, "\nSupply:")
			fmt.Fprintf(out, "  Jump Length:      %g\n", masked.Supply.JumpLength)
			fmt.Fprintf(out, "  Parallelism:      %d\n", masked.Supply.Parallelism)

			fmt.Fprintln(out, "\nWatch:")
			fmt.Fprintf(out, "  Min Interval:     %s\n", masked.Watch.MinInterval)
			fmt.Fprintf(out, "  Debounce:         %s\n", masked.Watch.Debounce)
			fmt.Fprintf(out, "  PID File:         %s\n", masked.Watch.PIDFile)

			fmt.Fprintln(out, "\nMetrics:")
			if masked.Metrics.Enabled {
				fmt.Fprintf(out, "  Endpoint:         http://%s:%d%s\n", masked.Metrics.Host, masked.Metrics.Port, masked.Metrics.Path)
			} else {
				fmt.Fprintln(out, "  Endpoint:         (disabled)")
			}

			fmt.Fprintln(out, "\nLogging:")
			fmt.Fprintf(out, "  Level:            %s\n", masked.Logging.Level)
			fmt.Fprintf(out, "  Format:           %s\n", masked.Logging.Format)
			fmt.Fprintf(out, "  Output:           %s\n", masked.Logging.Output)

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the configuration as JSON")
	return cmd
}

// maskPassword masks passwords in connection strings for display
func maskPassword(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return raw
	}
	if _, ok := u.User.Password(); !ok {
		return raw
	}
	u.User = url.UserPassword(u.User.Username(), "xxxxx")
	return u.String()
}

// prettyPrint formats JSON for display
func prettyPrint(v interface{}) string {
	bytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", v)
	}
	return string(bytes)
}
