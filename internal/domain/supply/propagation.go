package supply

import (
	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
)

// Propagation is one empire's supply expansion before obstruction is applied
type Propagation struct {
	EmpireID int

	// Ranges holds the remaining range at every system the empire's supply reached
	Ranges map[int]float64

	// Jumps holds the starlane jumps from the nearest contributing source
	Jumps map[int]int

	// Candidates are the directed traversals that conduct supply unless obstructed
	Candidates TraversalSet

	// Contested are crossable traversals into systems won by another empire
	Contested TraversalSet
}

// Reached reports whether the empire's supply reached the system
func (p *Propagation) Reached(systemID int) bool {
	_, ok := p.Ranges[systemID]
	return ok
}

// Propagate expands an empire's supply within the globally resolved ranges.
//
// Supply never enters a system claimed by another empire; a lane that could have been
// crossed into such a system is reported as contested. A lane crossable from a reached
// system records that direction, and also the reverse one when the far side was reached
// too, since supply can then flow either way.
func Propagate(g *galaxy.Galaxy, empireID int, ranges *Ranges, rule JumpRule) *Propagation {
	exp := expand(g, empireID, ranges.Sources[empireID], rule, func(systemID int) bool {
		return !ranges.ClaimedByOther(systemID, empireID)
	})

	p := &Propagation{
		EmpireID:   empireID,
		Ranges:     exp.remaining,
		Jumps:      exp.jumps,
		Candidates: make(TraversalSet),
		Contested:  make(TraversalSet),
	}

	for _, u := range exp.order {
		for _, n := range g.Neighbors(u) {
			if _, ok := rule.Next(p.Ranges[u], n.Length); !ok {
				continue
			}
			t := Traversal{From: u, To: n.SystemID}
			if ranges.ClaimedByOther(n.SystemID, empireID) {
				p.Contested.Add(t)
				continue
			}
			p.Candidates.Add(t)
			if p.Reached(n.SystemID) {
				p.Candidates.Add(t.Reverse())
			}
		}
	}

	return p
}
