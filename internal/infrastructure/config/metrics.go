package config

// MetricsConfig controls the Prometheus endpoint. Collectors record every supply update
// while enabled; the endpoint itself is only served by the long-running `supply watch`.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`

	// Address the watcher's metrics server listens on
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port" validate:"omitempty,min=1024,max=65535"`

	// Scrape path, e.g. /metrics
	Path string `mapstructure:"path" validate:"omitempty,urlpath"`
}
