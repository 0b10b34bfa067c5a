package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/starlane-supply/internal/domain/shared"
	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

// GormSnapshotRepository implements supply.SnapshotRepository using GORM
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository creates a new GORM-based snapshot repository
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Save persists a snapshot, replacing the one stored for the same turn
func (r *GormSnapshotRepository) Save(ctx context.Context, snap *supply.Snapshot) error {
	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("failed to marshal snapshot: %w", err)
	}

	now := time.Now()
	model := SupplySnapshotModel{
		ID:           uuid.New().String(),
		Turn:         snap.Turn,
		SnapshotData: string(data),
		EmpireCount:  len(snap.Empires),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "turn"}},
			DoUpdates: clause.AssignmentColumns([]string{"snapshot_data", "empire_count", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save supply snapshot for turn %d: %w", snap.Turn, err)
	}

	return nil
}

// FindByTurn loads the snapshot computed for a turn
func (r *GormSnapshotRepository) FindByTurn(ctx context.Context, turn int) (*supply.Snapshot, error) {
	var model SupplySnapshotModel
	err := r.db.WithContext(ctx).
		Where("turn = ?", turn).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("supply snapshot for turn", strconv.Itoa(turn))
		}
		return nil, fmt.Errorf("failed to find supply snapshot for turn %d: %w", turn, err)
	}

	var snap supply.Snapshot
	if err := json.Unmarshal([]byte(model.SnapshotData), &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal snapshot data: %w", err)
	}

	return &snap, nil
}
