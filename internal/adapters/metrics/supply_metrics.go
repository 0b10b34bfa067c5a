package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

// SupplyMetricsCollector records the outcome of every supply update
type SupplyMetricsCollector struct {
	updateDuration *prometheus.HistogramVec
	updatesTotal   *prometheus.CounterVec
	lastTurn       prometheus.Gauge

	// Per-empire network shape, reset on every successful update
	supplyableSystems    *prometheus.GaugeVec
	traversals           *prometheus.GaugeVec
	obstructedTraversals *prometheus.GaugeVec
	resourceGroups       *prometheus.GaugeVec
	largestGroup         *prometheus.GaugeVec
}

// NewSupplyMetricsCollector creates a new supply metrics collector
func NewSupplyMetricsCollector() *SupplyMetricsCollector {
	empireGauge := func(name, help string) *prometheus.GaugeVec {
		return prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      name,
				Help:      help,
			},
			[]string{"empire_id"},
		)
	}

	return &SupplyMetricsCollector{
		updateDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "update_duration_seconds",
				Help:      "Supply update duration distribution",
				Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
			},
			[]string{"status"},
		),
		updatesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "updates_total",
				Help:      "Total number of supply updates by status",
			},
			[]string{"status"},
		),
		lastTurn: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "last_turn",
			Help:      "Turn of the last successful supply update",
		}),
		supplyableSystems:    empireGauge("supplyable_systems", "Fleet-supplyable systems per empire"),
		traversals:           empireGauge("traversals", "Conducting starlane traversals per empire"),
		obstructedTraversals: empireGauge("obstructed_traversals", "Obstructed starlane traversals per empire"),
		resourceGroups:       empireGauge("resource_groups", "Resource sharing groups per empire"),
		largestGroup:         empireGauge("largest_resource_group_systems", "Systems in the largest resource group per empire"),
	}
}

// Register registers all supply metrics with the Prometheus registry
func (c *SupplyMetricsCollector) Register() error {
	if Registry == nil {
		return nil
	}

	for _, metric := range []prometheus.Collector{
		c.updateDuration,
		c.updatesTotal,
		c.lastTurn,
		c.supplyableSystems,
		c.traversals,
		c.obstructedTraversals,
		c.resourceGroups,
		c.largestGroup,
	} {
		if err := Registry.Register(metric); err != nil {
			return err
		}
	}

	return nil
}

// RecordUpdate records one supply update. Failed updates leave the per-empire gauges
// describing the results still being served.
func (c *SupplyMetricsCollector) RecordUpdate(turn int, duration time.Duration, summaries []supply.EmpireSummary, err error) {
	status := statusLabel(err == nil)
	c.updateDuration.WithLabelValues(status).Observe(duration.Seconds())
	c.updatesTotal.WithLabelValues(status).Inc()
	if err != nil {
		return
	}

	c.lastTurn.Set(float64(turn))

	for _, g := range []*prometheus.GaugeVec{
		c.supplyableSystems, c.traversals, c.obstructedTraversals, c.resourceGroups, c.largestGroup,
	} {
		g.Reset()
	}
	for _, s := range summaries {
		empire := strconv.Itoa(s.EmpireID)
		c.supplyableSystems.WithLabelValues(empire).Set(float64(s.SupplyableSystems))
		c.traversals.WithLabelValues(empire).Set(float64(s.Traversals))
		c.obstructedTraversals.WithLabelValues(empire).Set(float64(s.ObstructedTraversals))
		c.resourceGroups.WithLabelValues(empire).Set(float64(s.ResourceGroups))
		c.largestGroup.WithLabelValues(empire).Set(float64(s.LargestGroup))
	}
}
