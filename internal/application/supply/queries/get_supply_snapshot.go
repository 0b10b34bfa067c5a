package queries

import (
	"context"
	"fmt"

	"github.com/andrescamacho/starlane-supply/internal/application/mediator"
	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

// GetSupplySnapshotQuery fetches the stored supply snapshot for a turn
type GetSupplySnapshotQuery struct {
	Turn     int  // 0 selects the latest turn
	EmpireID *int // Optional: restrict to one empire
}

// GetSupplySnapshotResponse represents the result of the query
type GetSupplySnapshotResponse struct {
	Snapshot *supply.Snapshot
}

// GetSupplySnapshotHandler handles the GetSupplySnapshot query
type GetSupplySnapshotHandler struct {
	galaxies  galaxy.Repository
	snapshots supply.SnapshotRepository
}

// NewGetSupplySnapshotHandler creates a new GetSupplySnapshotHandler
func NewGetSupplySnapshotHandler(galaxies galaxy.Repository, snapshots supply.SnapshotRepository) *GetSupplySnapshotHandler {
	return &GetSupplySnapshotHandler{
		galaxies:  galaxies,
		snapshots: snapshots,
	}
}

// Handle executes the GetSupplySnapshot query
func (h *GetSupplySnapshotHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	query, ok := request.(*GetSupplySnapshotQuery)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *GetSupplySnapshotQuery")
	}

	snap, err := loadSnapshot(ctx, h.galaxies, h.snapshots, query.Turn)
	if err != nil {
		return nil, err
	}

	if query.EmpireID != nil {
		filtered := &supply.Snapshot{Turn: snap.Turn, Empires: []supply.EmpireSupply{}}
		if e := snap.Empire(*query.EmpireID); e != nil {
			filtered.Empires = append(filtered.Empires, *e)
		}
		snap = filtered
	}

	return &GetSupplySnapshotResponse{Snapshot: snap}, nil
}

func loadSnapshot(ctx context.Context, galaxies galaxy.Repository, snapshots supply.SnapshotRepository, turn int) (*supply.Snapshot, error) {
	resolved, err := galaxy.ResolveTurn(ctx, galaxies, turn)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve turn: %w", err)
	}
	snap, err := snapshots.FindByTurn(ctx, resolved.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to load supply snapshot: %w", err)
	}
	return snap, nil
}
