package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/andrescamacho/starlane-supply/internal/adapters/galaxyfile"
	"github.com/andrescamacho/starlane-supply/internal/application/supply/commands"
)

// NewGalaxyCommand creates the galaxy command with subcommands
func NewGalaxyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "galaxy",
		Short: "Manage stored galaxies",
	}

	cmd.AddCommand(newGalaxyImportCommand())

	return cmd
}

func newGalaxyImportCommand() *cobra.Command {
	var (
		turn   int
		update bool
	)

	cmd := &cobra.Command{
		Use:   "import FILE",
		Short: "Import a galaxy file for a turn",
		Long: `Import a YAML galaxy file and store it for a turn.

Without --turn the galaxy is stored as the turn after the latest stored one.

Examples:
  starlane-supply galaxy import galaxy.yaml
  starlane-supply galaxy import galaxy.yaml --turn 12 --update`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			ctx := cmd.Context()
			resp, err := importGalaxyFile(ctx, a, args[0], turn)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Imported turn %d: %d systems, %d starlanes, %d blockades, %d empires\n",
				resp.Turn, resp.Systems, resp.Lanes, resp.Blockades, len(resp.Empires))

			if !update {
				return nil
			}
			updated, err := updateSupply(ctx, a, resp.Turn)
			if err != nil {
				return err
			}
			fmt.Fprint(out, NewReportFormatter().FormatUpdate(updated))
			return nil
		},
	}

	cmd.Flags().IntVar(&turn, "turn", 0, "Turn to store the galaxy as (default: latest + 1)")
	cmd.Flags().BoolVar(&update, "update", false, "Recompute supply right after importing")

	return cmd
}

// importGalaxyFile loads path and stores it as turn, or as the next turn when turn is 0
func importGalaxyFile(ctx context.Context, a *app, path string, turn int) (*commands.ImportGalaxyResponse, error) {
	g, err := galaxyfile.Load(path)
	if err != nil {
		return nil, err
	}

	if turn == 0 {
		latest, err := a.galaxies.LatestTurn(ctx)
		if err != nil {
			return nil, err
		}
		turn = latest + 1
	}

	resp, err := a.send(ctx, &commands.ImportGalaxyCommand{Turn: turn, Galaxy: g})
	if err != nil {
		return nil, err
	}
	return resp.(*commands.ImportGalaxyResponse), nil
}

func updateSupply(ctx context.Context, a *app, turn int) (*commands.UpdateSupplyResponse, error) {
	resp, err := a.send(ctx, &commands.UpdateSupplyCommand{Turn: turn})
	if err != nil {
		return nil, err
	}
	return resp.(*commands.UpdateSupplyResponse), nil
}
