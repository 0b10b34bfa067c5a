package config

import "time"

// SupplyConfig tunes the supply propagation engine
type SupplyConfig struct {
	// Straight-line length covered by one unit of range on a partial final jump
	JumpLength float64 `mapstructure:"jump_length" validate:"gt=0"`

	// Maximum number of empires propagated concurrently
	Parallelism int `mapstructure:"parallelism" validate:"min=1,max=256"`
}

// WatchConfig holds settings for the galaxy file watcher
type WatchConfig struct {
	// Minimum time between two recomputations
	MinInterval time.Duration `mapstructure:"min_interval" validate:"required"`

	// Quiet period after the last file event before reloading
	Debounce time.Duration `mapstructure:"debounce" validate:"required"`

	// PID file location
	PIDFile string `mapstructure:"pid_file" validate:"required"`
}
