package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starlane-supply/internal/application/mediator"
	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

// CheckFleetSupplyQuery asks whether an empire's fleets can resupply at a system
type CheckFleetSupplyQuery struct {
	Turn     int // 0 selects the latest turn
	SystemID int
	EmpireID int
}

// CheckFleetSupplyResponse represents the result of the check
type CheckFleetSupplyResponse struct {
	Turn       int
	SystemID   int
	EmpireID   int
	Supplyable bool
	Group      []int   // resource group holding the system, nil if none
	Range      float64 // remaining supply range, 0 if not reached
	Jumps      int
	Reached    bool
}

// CheckFleetSupplyHandler handles the CheckFleetSupply query
type CheckFleetSupplyHandler struct {
	galaxies  galaxy.Repository
	snapshots supply.SnapshotRepository
}

// NewCheckFleetSupplyHandler creates a new CheckFleetSupplyHandler
func NewCheckFleetSupplyHandler(galaxies galaxy.Repository, snapshots supply.SnapshotRepository) *CheckFleetSupplyHandler {
	return &CheckFleetSupplyHandler{
		galaxies:  galaxies,
		snapshots: snapshots,
	}
}

// Handle executes the CheckFleetSupply query. Unknown empires and systems are simply
// not supplyable.
func (h *CheckFleetSupplyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*CheckFleetSupplyQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *CheckFleetSupplyQuery")
	}

	snap, err := loadSnapshot(ctx, h.galaxies, h.snapshots, query.Turn)
	if err != nil {
		return nil, err
	}

	resp := &CheckFleetSupplyResponse{
		Turn:     snap.Turn,
		SystemID: query.SystemID,
		EmpireID: query.EmpireID,
	}

	empire := snap.Empire(query.EmpireID)
	if empire == nil {
		return resp, nil
	}

	resp.Supplyable = empire.HasFleetSupply(query.SystemID)
	resp.Group = supply.ResourceGroups(empire.ResourceGroups).GroupOf(query.SystemID)
	if r, ok := empire.RangeAt(query.SystemID); ok {
		resp.Reached = true
		resp.Range = r.Range
		resp.Jumps = r.Jumps
	}

	return resp, nil
}
