package supply

import (
	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
)

// Classification splits an empire's crossable traversals into those that conduct supply
// and those blocked by something other than range
type Classification struct {
	Conducting TraversalSet
	Obstructed TraversalSet
}

// ClassifyObstructions moves every candidate traversal leaving a system obstructed for
// the empire into the obstructed set, together with the contested traversals.
//
// Direction matters: supply may still arrive at a blockaded system along (a→b) while
// (b→a) is obstructed. Range-limited lanes never show up in either set.
func ClassifyObstructions(g *galaxy.Galaxy, p *Propagation) Classification {
	c := Classification{
		Conducting: make(TraversalSet, len(p.Candidates)),
		Obstructed: make(TraversalSet, len(p.Contested)),
	}

	for t := range p.Candidates {
		if g.Obstructed(t.From, p.EmpireID) {
			c.Obstructed.Add(t)
			continue
		}
		c.Conducting.Add(t)
	}

	for t := range p.Contested {
		c.Obstructed.Add(t)
	}

	return c
}
