package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
	"github.com/andrescamacho/starlane-supply/internal/domain/shared"
)

// GormGalaxyRepository implements galaxy.Repository using GORM
type GormGalaxyRepository struct {
	db *gorm.DB
}

// NewGormGalaxyRepository creates a new GORM-based galaxy repository
func NewGormGalaxyRepository(db *gorm.DB) *GormGalaxyRepository {
	return &GormGalaxyRepository{db: db}
}

// Save persists the galaxy for a turn (upsert)
func (r *GormGalaxyRepository) Save(ctx context.Context, turn int, g *galaxy.Galaxy) error {
	data, err := json.Marshal(g)
	if err != nil {
		return fmt.Errorf("failed to marshal galaxy: %w", err)
	}

	now := time.Now()
	model := GalaxyModel{
		Turn:        turn,
		GalaxyData:  string(data),
		SystemCount: len(g.Systems),
		LaneCount:   len(g.Lanes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "turn"}},
			DoUpdates: clause.AssignmentColumns([]string{"galaxy_data", "system_count", "lane_count", "updated_at"}),
		}).
		Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to save galaxy for turn %d: %w", turn, err)
	}

	return nil
}

// FindByTurn loads the galaxy stored for a turn
func (r *GormGalaxyRepository) FindByTurn(ctx context.Context, turn int) (*galaxy.Galaxy, error) {
	var model GalaxyModel
	err := r.db.WithContext(ctx).
		Where("turn = ?", turn).
		First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError("galaxy for turn", strconv.Itoa(turn))
		}
		return nil, fmt.Errorf("failed to find galaxy for turn %d: %w", turn, err)
	}

	g := &galaxy.Galaxy{}
	if err := json.Unmarshal([]byte(model.GalaxyData), g); err != nil {
		return nil, fmt.Errorf("failed to unmarshal galaxy data: %w", err)
	}
	g.Reindex()

	return g, nil
}

// LatestTurn returns the highest turn with a stored galaxy, 0 if none
func (r *GormGalaxyRepository) LatestTurn(ctx context.Context) (int, error) {
	var latest *int
	err := r.db.WithContext(ctx).
		Model(&GalaxyModel{}).
		Select("MAX(turn)").
		Scan(&latest).Error
	if err != nil {
		return 0, fmt.Errorf("failed to find latest turn: %w", err)
	}
	if latest == nil {
		return 0, nil
	}
	return *latest, nil
}
