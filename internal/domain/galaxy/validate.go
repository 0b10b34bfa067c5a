package galaxy

import (
	"fmt"
	"math"

	"github.com/andrescamacho/starlane-supply/internal/domain/shared"
)

// TopologyError reports malformed galaxy input. These are caller bugs, not runtime conditions.
type TopologyError struct {
	*shared.DomainError
	SystemID int
}

func newTopologyError(systemID int, format string, args ...interface{}) *TopologyError {
	return &TopologyError{
		DomainError: shared.NewDomainError(fmt.Sprintf(format, args...)),
		SystemID:    systemID,
	}
}

// Validate checks the galaxy for malformed topology and meters and prepares the
// adjacency index. A galaxy that passed Validate is safe for concurrent reads.
func (g *Galaxy) Validate() error {
	g.ensureIndexes()

	for _, id := range g.SystemIDs() {
		s := g.Systems[id]
		if s == nil {
			return newTopologyError(id, "system %d is nil", id)
		}
		if s.ID != id {
			return newTopologyError(id, "system keyed as %d carries id %d", id, s.ID)
		}
		if math.IsNaN(s.SupplyMeter) || math.IsInf(s.SupplyMeter, 0) {
			return newTopologyError(id, "system %d has non-finite supply meter %v", id, s.SupplyMeter)
		}
	}

	for _, l := range g.Lanes {
		if l.A == l.B {
			return newTopologyError(l.A, "starlane %d-%d loops onto itself", l.A, l.B)
		}
		if _, ok := g.Systems[l.A]; !ok {
			return newTopologyError(l.A, "starlane %d-%d references unknown system %d", l.A, l.B, l.A)
		}
		if _, ok := g.Systems[l.B]; !ok {
			return newTopologyError(l.B, "starlane %d-%d references unknown system %d", l.A, l.B, l.B)
		}
		if math.IsNaN(l.Length) || math.IsInf(l.Length, 0) || l.Length < 0 {
			return newTopologyError(l.A, "starlane %d-%d has invalid length %v", l.A, l.B, l.Length)
		}
	}

	for _, b := range g.Blockades {
		if _, ok := g.Systems[b.SystemID]; !ok {
			return newTopologyError(b.SystemID, "blockade for empire %d references unknown system %d", b.EmpireID, b.SystemID)
		}
	}

	if g.adjacency == nil {
		g.buildAdjacency()
	}
	return nil
}
