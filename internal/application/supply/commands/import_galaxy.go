package commands

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starlane-supply/internal/application/logging"
	"github.com/andrescamacho/starlane-supply/internal/application/mediator"
	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
)

// ImportGalaxyCommand stores the galaxy state for a turn
type ImportGalaxyCommand struct {
	Turn   int            `validate:"gt=0"`
	Galaxy *galaxy.Galaxy `validate:"required"`
}

// ImportGalaxyResponse summarizes what was stored
type ImportGalaxyResponse struct {
	Turn      int
	Systems   int
	Lanes     int
	Blockades int
	Empires   []int
}

// ImportGalaxyHandler handles the ImportGalaxy command
type ImportGalaxyHandler struct {
	galaxies galaxy.Repository
}

// NewImportGalaxyHandler creates a new ImportGalaxyHandler
func NewImportGalaxyHandler(galaxies galaxy.Repository) *ImportGalaxyHandler {
	return &ImportGalaxyHandler{galaxies: galaxies}
}

// Handle validates the galaxy and stores it for the turn
func (h *ImportGalaxyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*ImportGalaxyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *ImportGalaxyCommand")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	if err := cmd.Galaxy.Validate(); err != nil {
		return nil, fmt.Errorf("galaxy for turn %d rejected: %w", cmd.Turn, err)
	}

	if err := h.galaxies.Save(ctx, cmd.Turn, cmd.Galaxy); err != nil {
		return nil, err
	}

	resp := &ImportGalaxyResponse{
		Turn:      cmd.Turn,
		Systems:   len(cmd.Galaxy.Systems),
		Lanes:     len(cmd.Galaxy.Lanes),
		Blockades: len(cmd.Galaxy.Blockades),
		Empires:   cmd.Galaxy.EmpireIDs(),
	}

	logging.LoggerFromContext(ctx).Log("INFO", "Galaxy imported", map[string]interface{}{
		"turn":      resp.Turn,
		"systems":   resp.Systems,
		"lanes":     resp.Lanes,
		"blockades": resp.Blockades,
	})

	return resp, nil
}
