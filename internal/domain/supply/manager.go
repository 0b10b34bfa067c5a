package supply

import (
	"fmt"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
)

// Manager computes and holds every empire's supply network for the current turn.
//
// One Manager is owned per game session by whoever processes turns and is handed to
// consumers explicitly. Update replaces all results at once; readers always observe the
// last completed Update, never a partial one.
type Manager struct {
	rule        JumpRule
	parallelism int
	current     atomic.Pointer[results]
}

// Option configures a Manager
type Option func(*Manager)

// WithJumpLength sets the straight-line length one unit of supply range covers on a
// partial final jump
func WithJumpLength(length float64) Option {
	return func(m *Manager) {
		if length > 0 {
			m.rule.JumpLength = length
		}
	}
}

// WithParallelism bounds how many empires are propagated concurrently
func WithParallelism(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.parallelism = n
		}
	}
}

// NewManager creates a manager with empty results
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		rule:        JumpRule{JumpLength: DefaultJumpLength},
		parallelism: 1,
	}
	for _, opt := range opts {
		opt(m)
	}
	m.current.Store(newResults())
	return m
}

// results is one immutable generation of supply data
type results struct {
	traversals      map[int]TraversalSet
	obstructed      map[int]TraversalSet
	fleetSupplyable map[int]SystemSet
	groups          map[int]ResourceGroups
	ranges          map[int]map[int]float64
	jumps           map[int]map[int]int
}

func newResults() *results {
	return &results{
		traversals:      make(map[int]TraversalSet),
		obstructed:      make(map[int]TraversalSet),
		fleetSupplyable: make(map[int]SystemSet),
		groups:          make(map[int]ResourceGroups),
		ranges:          make(map[int]map[int]float64),
		jumps:           make(map[int]map[int]int),
	}
}

// empireSupply is the complete outcome for one empire
type empireSupply struct {
	empireID        int
	conducting      TraversalSet
	obstructed      TraversalSet
	fleetSupplyable SystemSet
	groups          ResourceGroups
	ranges          map[int]float64
	jumps           map[int]int
}

// Update recomputes supply for every empire owning at least one supply source.
//
// Ranges are contested globally first; each empire's propagation then only depends on
// that shared picture, so empires may be processed concurrently before a single-writer
// merge. A malformed galaxy is rejected and the previous results stay in place.
func (m *Manager) Update(g *galaxy.Galaxy) error {
	if g == nil {
		g = galaxy.NewGalaxy()
	}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("invalid galaxy: %w", err)
	}

	ranges := ResolveRanges(g, m.rule)
	empires := g.EmpireIDs()
	outcomes := make([]*empireSupply, len(empires))

	var eg errgroup.Group
	eg.SetLimit(m.parallelism)
	for i, empireID := range empires {
		eg.Go(func() error {
			outcomes[i] = computeEmpireSupply(g, empireID, ranges, m.rule)
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	next := newResults()
	for _, o := range outcomes {
		next.traversals[o.empireID] = o.conducting
		next.obstructed[o.empireID] = o.obstructed
		next.fleetSupplyable[o.empireID] = o.fleetSupplyable
		next.groups[o.empireID] = o.groups
		next.ranges[o.empireID] = o.ranges
		next.jumps[o.empireID] = o.jumps
	}
	m.current.Store(next)
	return nil
}

func computeEmpireSupply(g *galaxy.Galaxy, empireID int, ranges *Ranges, rule JumpRule) *empireSupply {
	p := Propagate(g, empireID, ranges, rule)
	c := ClassifyObstructions(g, p)

	sources := ranges.Sources[empireID]
	fleet := FleetSupplyableSystems(sources, c.Conducting)

	members := make(SystemSet, len(fleet))
	for id := range fleet {
		members.Add(id)
	}
	for id := range sources {
		members.Add(id)
	}

	return &empireSupply{
		empireID:        empireID,
		conducting:      c.Conducting,
		obstructed:      c.Obstructed,
		fleetSupplyable: fleet,
		groups:          PartitionResourceGroups(members, c.Conducting),
		ranges:          p.Ranges,
		jumps:           p.Jumps,
	}
}

// The accessors below return read-only views of the last completed Update.
// Callers must not modify the returned containers.

// SupplyStarlaneTraversals returns, per empire, the directed starlane traversals along
// which supply flows
func (m *Manager) SupplyStarlaneTraversals() map[int]TraversalSet {
	return m.current.Load().traversals
}

// SupplyStarlaneTraversalsFor returns one empire's conducting traversals
func (m *Manager) SupplyStarlaneTraversalsFor(empireID int) TraversalSet {
	if s, ok := m.current.Load().traversals[empireID]; ok {
		return s
	}
	return emptyTraversals
}

// SupplyObstructedStarlaneTraversals returns, per empire, the traversals supply could
// use if nothing obstructed it
func (m *Manager) SupplyObstructedStarlaneTraversals() map[int]TraversalSet {
	return m.current.Load().obstructed
}

// SupplyObstructedStarlaneTraversalsFor returns one empire's obstructed traversals
func (m *Manager) SupplyObstructedStarlaneTraversalsFor(empireID int) TraversalSet {
	if s, ok := m.current.Load().obstructed[empireID]; ok {
		return s
	}
	return emptyTraversals
}

// FleetSupplyableSystemIDs returns, per empire, the systems where its fleets resupply
func (m *Manager) FleetSupplyableSystemIDs() map[int]SystemSet {
	return m.current.Load().fleetSupplyable
}

// FleetSupplyableSystemIDsFor returns one empire's fleet-supplyable systems
func (m *Manager) FleetSupplyableSystemIDsFor(empireID int) SystemSet {
	if s, ok := m.current.Load().fleetSupplyable[empireID]; ok {
		return s
	}
	return emptySystems
}

// ResourceSupplyGroups returns, per empire, the groups of systems that share resources
func (m *Manager) ResourceSupplyGroups() map[int]ResourceGroups {
	return m.current.Load().groups
}

// ResourceSupplyGroupsFor returns one empire's resource sharing groups
func (m *Manager) ResourceSupplyGroupsFor(empireID int) ResourceGroups {
	if g, ok := m.current.Load().groups[empireID]; ok {
		return g
	}
	return emptyGroups
}

// SupplyRanges returns, per empire, the remaining supply range at each reached system
func (m *Manager) SupplyRanges() map[int]map[int]float64 {
	return m.current.Load().ranges
}

// SystemHasFleetSupply reports whether the system is fleet-supplyable for the empire or
// belongs to one of its resource groups
func (m *Manager) SystemHasFleetSupply(systemID, empireID int) bool {
	r := m.current.Load()
	if r.fleetSupplyable[empireID].Contains(systemID) {
		return true
	}
	return r.groups[empireID].Contains(systemID)
}
