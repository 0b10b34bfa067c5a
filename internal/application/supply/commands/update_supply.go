package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/andrescamacho/starlane-supply/internal/application/logging"
	"github.com/andrescamacho/starlane-supply/internal/application/mediator"
	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
	"github.com/andrescamacho/starlane-supply/internal/domain/shared"
	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

// UpdateSupplyCommand recomputes supply for a stored turn. Turn 0 selects the latest turn.
type UpdateSupplyCommand struct {
	Turn int `validate:"gte=0"`
}

// UpdateSupplyResponse carries the per-empire outcome of the update
type UpdateSupplyResponse struct {
	Turn     int
	Empires  []supply.EmpireSummary
	Duration time.Duration
}

// UpdateRecorder receives the outcome of every supply update
type UpdateRecorder interface {
	RecordUpdate(turn int, duration time.Duration, summaries []supply.EmpireSummary, err error)
}

// UpdateSupplyHandler handles the UpdateSupply command
type UpdateSupplyHandler struct {
	galaxies  galaxy.Repository
	snapshots supply.SnapshotRepository
	manager   *supply.Manager
	recorder  UpdateRecorder
	clock     shared.Clock
}

// NewUpdateSupplyHandler creates a new UpdateSupplyHandler. recorder may be nil; a nil
// clock uses the system time.
func NewUpdateSupplyHandler(
	galaxies galaxy.Repository,
	snapshots supply.SnapshotRepository,
	manager *supply.Manager,
	recorder UpdateRecorder,
	clock shared.Clock,
) *UpdateSupplyHandler {
	if clock == nil {
		clock = shared.NewRealClock()
	}
	return &UpdateSupplyHandler{
		galaxies:  galaxies,
		snapshots: snapshots,
		manager:   manager,
		recorder:  recorder,
		clock:     clock,
	}
}

// Handle loads the turn's galaxy, runs the supply update and stores the snapshot
func (h *UpdateSupplyHandler) Handle(ctx context.Context, request mediator.Request) (mediator.Response, error) {
	cmd, ok := request.(*UpdateSupplyCommand)
	if !ok {
		return nil, fmt.Errorf("invalid request type: expected *UpdateSupplyCommand")
	}
	if err := validateCommand(cmd); err != nil {
		return nil, err
	}

	logger := logging.LoggerFromContext(ctx)

	turn, err := galaxy.ResolveTurn(ctx, h.galaxies, cmd.Turn)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve turn: %w", err)
	}

	g, err := h.galaxies.FindByTurn(ctx, turn.Value())
	if err != nil {
		return nil, fmt.Errorf("failed to load galaxy: %w", err)
	}

	start := h.clock.Now()
	err = h.manager.Update(g)
	duration := h.clock.Now().Sub(start)
	if err != nil {
		h.record(turn.Value(), duration, nil, err)
		logger.Log("ERROR", "Supply update rejected", map[string]interface{}{
			"turn":  turn.Value(),
			"error": err.Error(),
		})
		return nil, fmt.Errorf("supply update for turn %s failed: %w", turn, err)
	}

	summaries := h.manager.Summary()
	if err := h.snapshots.Save(ctx, h.manager.Snapshot(turn.Value())); err != nil {
		h.record(turn.Value(), duration, summaries, err)
		return nil, err
	}
	h.record(turn.Value(), duration, summaries, nil)

	logger.Log("INFO", "Supply updated", map[string]interface{}{
		"turn":        turn.Value(),
		"empires":     len(summaries),
		"duration_ms": duration.Milliseconds(),
	})

	return &UpdateSupplyResponse{
		Turn:     turn.Value(),
		Empires:  summaries,
		Duration: duration,
	}, nil
}

func (h *UpdateSupplyHandler) record(turn int, duration time.Duration, summaries []supply.EmpireSummary, err error) {
	if h.recorder != nil {
		h.recorder.RecordUpdate(turn, duration, summaries, err)
	}
}
