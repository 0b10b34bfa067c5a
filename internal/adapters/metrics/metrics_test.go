package metrics

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane-supply/internal/application/mediator"
	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

func withRegistry(t *testing.T) {
	InitRegistry()
	t.Cleanup(func() { Registry = nil })
}

func TestSupplyMetricsCollector_RecordUpdate(t *testing.T) {
	// Arrange
	withRegistry(t)
	c := NewSupplyMetricsCollector()
	require.NoError(t, c.Register())

	// Act
	c.RecordUpdate(4, 3*time.Millisecond, []supply.EmpireSummary{
		{EmpireID: 1, SupplyableSystems: 5, Traversals: 8, ObstructedTraversals: 2, ResourceGroups: 1, LargestGroup: 5},
		{EmpireID: 2, SupplyableSystems: 1, ResourceGroups: 1, LargestGroup: 1},
	}, nil)
	c.RecordUpdate(5, time.Millisecond, nil, errors.New("invalid galaxy"))

	// Assert
	assert.Equal(t, 4.0, testutil.ToFloat64(c.lastTurn))
	assert.Equal(t, 5.0, testutil.ToFloat64(c.supplyableSystems.WithLabelValues("1")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.obstructedTraversals.WithLabelValues("1")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.updatesTotal.WithLabelValues("success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.updatesTotal.WithLabelValues("error")))
}

func TestSupplyMetricsCollector_DropsVanishedEmpires(t *testing.T) {
	c := NewSupplyMetricsCollector()

	c.RecordUpdate(1, 0, []supply.EmpireSummary{{EmpireID: 1}, {EmpireID: 2}}, nil)
	c.RecordUpdate(2, 0, []supply.EmpireSummary{{EmpireID: 2}}, nil)

	assert.Equal(t, 1, testutil.CollectAndCount(c.traversals))
}

func TestPrometheusMiddleware(t *testing.T) {
	// Arrange
	collector := NewCommandMetricsCollector()
	mw := PrometheusMiddleware(collector)
	type probeCommand struct{}
	failing := func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return nil, errors.New("boom")
	}

	// Act
	_, err := mw(context.Background(), &probeCommand{}, failing)

	// Assert
	assert.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(collector.commandsTotal.WithLabelValues("probeCommand", "error")))
}

func TestPrometheusMiddleware_NilCollectorPassesThrough(t *testing.T) {
	mw := PrometheusMiddleware(nil)

	resp, err := mw(context.Background(), struct{}{}, func(ctx context.Context, request mediator.Request) (mediator.Response, error) {
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", resp)
}

func TestHandler_ServesRegistry(t *testing.T) {
	withRegistry(t)
	c := NewSupplyMetricsCollector()
	require.NoError(t, c.Register())
	c.RecordUpdate(9, time.Millisecond, nil, nil)

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	assert.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "starlane_supply_last_turn 9")
}
