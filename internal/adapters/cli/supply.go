package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starlane-supply/internal/adapters/graph"
	"github.com/andrescamacho/starlane-supply/internal/application/supply/queries"
)

// NewSupplyCommand creates the supply command with subcommands
func NewSupplyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "supply",
		Short: "Compute and inspect supply networks",
		Long: `Compute and inspect empire supply networks.

Every subcommand works on the latest stored turn unless --turn is given.`,
	}

	cmd.AddCommand(newSupplyUpdateCommand())
	cmd.AddCommand(newSupplyShowCommand())
	cmd.AddCommand(newSupplyCheckCommand())
	cmd.AddCommand(newSupplyExportCommand())
	cmd.AddCommand(newSupplyWatchCommand())

	return cmd
}

func newSupplyUpdateCommand() *cobra.Command {
	var turn int

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Recompute supply for a stored turn",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := updateSupply(cmd.Context(), a, turn)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), NewReportFormatter().FormatUpdate(resp))
			return nil
		},
	}

	cmd.Flags().IntVar(&turn, "turn", 0, "Turn to update (default: latest)")
	return cmd
}

func newSupplyShowCommand() *cobra.Command {
	var (
		turn     int
		empireID int
		format   string
	)

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the stored supply snapshot",
		Long: `Show the supply snapshot stored for a turn.

Examples:
  starlane-supply supply show
  starlane-supply supply show --turn 4 --empire 2
  starlane-supply supply show --format json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "text" && format != "json" {
				return fmt.Errorf("unsupported format %q: use text or json", format)
			}

			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			query := &queries.GetSupplySnapshotQuery{Turn: turn}
			if cmd.Flags().Changed("empire") {
				query.EmpireID = &empireID
			}
			resp, err := a.send(cmd.Context(), query)
			if err != nil {
				return err
			}
			snap := resp.(*queries.GetSupplySnapshotResponse).Snapshot

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(snap)
			}
			fmt.Fprint(out, NewReportFormatter().FormatSnapshot(snap))
			return nil
		},
	}

	cmd.Flags().IntVar(&turn, "turn", 0, "Turn to show (default: latest)")
	cmd.Flags().IntVar(&empireID, "empire", 0, "Only show this empire")
	cmd.Flags().StringVar(&format, "format", "text", "Output format: text or json")
	return cmd
}

func newSupplyCheckCommand() *cobra.Command {
	var turn, systemID, empireID int

	cmd := &cobra.Command{
		Use:   "check",
		Short: "Check whether an empire's fleets can resupply at a system",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			resp, err := a.send(cmd.Context(), &queries.CheckFleetSupplyQuery{
				Turn:     turn,
				SystemID: systemID,
				EmpireID: empireID,
			})
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), NewReportFormatter().FormatCheck(resp.(*queries.CheckFleetSupplyResponse)))
			return nil
		},
	}

	cmd.Flags().IntVar(&turn, "turn", 0, "Turn to check (default: latest)")
	cmd.Flags().IntVar(&systemID, "system", 0, "System ID")
	cmd.Flags().IntVar(&empireID, "empire", 0, "Empire ID")
	_ = cmd.MarkFlagRequired("system")
	_ = cmd.MarkFlagRequired("empire")
	return cmd
}

func newSupplyExportCommand() *cobra.Command {
	var (
		turn     int
		empireID int
		output   string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export an empire's supply network as Graphviz DOT",
		Long: `Export an empire's supply network as Graphviz DOT.

Conducting traversals are drawn solid, obstructed traversals dashed.

Example:
  starlane-supply supply export --empire 1 --output supply.dot && dot -Tsvg supply.dot`,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			resp, err := a.send(ctx, &queries.GetSupplySnapshotQuery{Turn: turn, EmpireID: &empireID})
			if err != nil {
				return err
			}
			snap := resp.(*queries.GetSupplySnapshotResponse).Snapshot
			es := snap.Empire(empireID)
			if es == nil {
				return fmt.Errorf("empire %d has no supply in turn %d", empireID, snap.Turn)
			}

			g, err := a.galaxies.FindByTurn(ctx, snap.Turn)
			if err != nil {
				return err
			}

			var out io.Writer = cmd.OutOrStdout()
			if output != "" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("failed to create %s: %w", output, err)
				}
				defer f.Close()
				out = f
			}
			return graph.NewSupplyNetworkExporter(g).WriteDOT(out, es)
		},
	}

	cmd.Flags().IntVar(&turn, "turn", 0, "Turn to export (default: latest)")
	cmd.Flags().IntVar(&empireID, "empire", 0, "Empire ID")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write DOT to this file instead of stdout")
	_ = cmd.MarkFlagRequired("empire")
	return cmd
}
