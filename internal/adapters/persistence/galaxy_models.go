package persistence

import "time"

// GalaxyModel represents the galaxies table, one row per turn
type GalaxyModel struct {
	Turn        int       `gorm:"column:turn;primaryKey;autoIncrement:false"`
	GalaxyData  string    `gorm:"column:galaxy_data;type:jsonb;not null"` // JSONB on PostgreSQL, TEXT on SQLite
	SystemCount int       `gorm:"column:system_count;not null"`
	LaneCount   int       `gorm:"column:lane_count;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (GalaxyModel) TableName() string {
	return "galaxies"
}

// SupplySnapshotModel represents the supply_snapshots table
type SupplySnapshotModel struct {
	ID           string    `gorm:"column:id;primaryKey;size:36"`
	Turn         int       `gorm:"column:turn;uniqueIndex;not null"`
	SnapshotData string    `gorm:"column:snapshot_data;type:jsonb;not null"`
	EmpireCount  int       `gorm:"column:empire_count;not null"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;autoCreateTime"`
	UpdatedAt    time.Time `gorm:"column:updated_at;not null;autoUpdateTime"`
}

func (SupplySnapshotModel) TableName() string {
	return "supply_snapshots"
}
