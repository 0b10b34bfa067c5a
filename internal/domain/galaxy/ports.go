package galaxy

import (
	"context"

	"github.com/andrescamacho/starlane-supply/internal/domain/shared"
)

// Repository stores one galaxy per turn
type Repository interface {
	// Save stores the galaxy for a turn, replacing any galaxy already stored for it
	Save(ctx context.Context, turn int, g *Galaxy) error

	// FindByTurn returns the galaxy for a turn or a *shared.NotFoundError
	FindByTurn(ctx context.Context, turn int) (*Galaxy, error)

	// LatestTurn returns the highest stored turn, or 0 when nothing is stored
	LatestTurn(ctx context.Context) (int, error)
}

// ResolveTurn returns turn itself when positive and the latest stored turn when zero
func ResolveTurn(ctx context.Context, repo Repository, turn int) (shared.Turn, error) {
	if turn != 0 {
		return shared.NewTurn(turn)
	}
	latest, err := repo.LatestTurn(ctx)
	if err != nil {
		return shared.Turn{}, err
	}
	if latest == 0 {
		return shared.Turn{}, shared.NewNotFoundError("galaxy", "for any turn")
	}
	return shared.NewTurn(latest)
}
