package helpers

import (
	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
)

// ChainGalaxy builds unowned systems 1..n at unit spacing, joined in a line by unit-length starlanes
func ChainGalaxy(n int) *galaxy.Galaxy {
	g := galaxy.NewGalaxy()
	for id := 1; id <= n; id++ {
		g.AddSystem(&galaxy.System{ID: id, X: float64(id - 1), Owner: galaxy.NoOwner})
	}
	for id := 1; id < n; id++ {
		g.AddStarlane(id, id+1, 1)
	}
	return g
}

// Own makes empireID the owner of a system with the given supply meter
func Own(g *galaxy.Galaxy, systemID, empireID int, meter float64) {
	s := g.System(systemID)
	s.Owner = empireID
	s.SupplyMeter = meter
}
