package supply

import "context"

// SnapshotRepository stores computed supply snapshots by turn
type SnapshotRepository interface {
	Save(ctx context.Context, snap *Snapshot) error
	FindByTurn(ctx context.Context, turn int) (*Snapshot, error)
}
