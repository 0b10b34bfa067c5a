package galaxy

import (
	"math"
	"sort"
)

// NoOwner marks a system that no empire owns
const NoOwner = -1

// System is a star system as seen by supply propagation
type System struct {
	ID          int     `json:"id" yaml:"id"`
	Name        string  `json:"name,omitempty" yaml:"name"`
	X           float64 `json:"x" yaml:"x"`
	Y           float64 `json:"y" yaml:"y"`
	Owner       int     `json:"owner" yaml:"owner"`
	SupplyMeter float64 `json:"supply_meter" yaml:"supply"`
}

// IsOwned reports whether an empire owns the system
func (s *System) IsOwned() bool {
	return s.Owner != NoOwner
}

// IsSupplySource reports whether the system projects supply for its owner
func (s *System) IsSupplySource() bool {
	return s.IsOwned() && s.SupplyMeter > 0
}

// Starlane is an unordered connection between two systems
type Starlane struct {
	A      int     `json:"a"`
	B      int     `json:"b"`
	Length float64 `json:"length"`
}

// Other returns the endpoint opposite to systemID
func (l Starlane) Other(systemID int) int {
	if l.A == systemID {
		return l.B
	}
	return l.A
}

func (l Starlane) key() laneKey {
	if l.A < l.B {
		return laneKey{l.A, l.B}
	}
	return laneKey{l.B, l.A}
}

type laneKey struct{ lo, hi int }

// Blockade marks a system as obstructed for one empire
type Blockade struct {
	SystemID int `json:"system_id"`
	EmpireID int `json:"empire_id"`
}

// Neighbor is one adjacency entry of a system
type Neighbor struct {
	SystemID int
	Length   float64
}

// Galaxy is the per-turn input of supply propagation: topology, meters and blockades.
// It is built once by the caller and treated as read-only afterwards.
type Galaxy struct {
	Systems   map[int]*System `json:"systems"`
	Lanes     []Starlane      `json:"lanes"`
	Blockades []Blockade      `json:"blockades,omitempty"`

	lanes     map[laneKey]int
	blockades map[Blockade]struct{}
	adjacency map[int][]Neighbor
}

// NewGalaxy creates an empty galaxy
func NewGalaxy() *Galaxy {
	return &Galaxy{
		Systems:   make(map[int]*System),
		Lanes:     []Starlane{},
		Blockades: []Blockade{},
		lanes:     make(map[laneKey]int),
		blockades: make(map[Blockade]struct{}),
	}
}

// AddSystem adds or replaces a system
func (g *Galaxy) AddSystem(system *System) {
	g.Systems[system.ID] = system
	g.adjacency = nil
}

// AddStarlane adds an unordered starlane. Adding the same pair twice keeps the first length.
func (g *Galaxy) AddStarlane(a, b int, length float64) {
	g.ensureIndexes()
	lane := Starlane{A: a, B: b, Length: length}
	if _, exists := g.lanes[lane.key()]; exists {
		return
	}
	g.lanes[lane.key()] = len(g.Lanes)
	g.Lanes = append(g.Lanes, lane)
	g.adjacency = nil
}

// AddBlockade marks systemID as obstructed for empireID
func (g *Galaxy) AddBlockade(systemID, empireID int) {
	g.ensureIndexes()
	b := Blockade{SystemID: systemID, EmpireID: empireID}
	if _, exists := g.blockades[b]; exists {
		return
	}
	g.blockades[b] = struct{}{}
	g.Blockades = append(g.Blockades, b)
}

// System returns the system with the given id, or nil
func (g *Galaxy) System(id int) *System {
	return g.Systems[id]
}

// HasStarlane reports whether a starlane joins a and b
func (g *Galaxy) HasStarlane(a, b int) bool {
	g.ensureIndexes()
	_, ok := g.lanes[Starlane{A: a, B: b}.key()]
	return ok
}

// Obstructed reports whether systemID is blockaded from empireID's perspective
func (g *Galaxy) Obstructed(systemID, empireID int) bool {
	g.ensureIndexes()
	_, ok := g.blockades[Blockade{SystemID: systemID, EmpireID: empireID}]
	return ok
}

// SystemIDs returns all system ids in ascending order
func (g *Galaxy) SystemIDs() []int {
	ids := make([]int, 0, len(g.Systems))
	for id := range g.Systems {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// EmpireIDs returns, in ascending order, the empires owning at least one supply source
func (g *Galaxy) EmpireIDs() []int {
	seen := make(map[int]struct{})
	for _, s := range g.Systems {
		if s.IsSupplySource() {
			seen[s.Owner] = struct{}{}
		}
	}
	ids := make([]int, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

// Neighbors returns the starlane neighbors of a system ordered by neighbor id
func (g *Galaxy) Neighbors(systemID int) []Neighbor {
	if g.adjacency == nil {
		g.buildAdjacency()
	}
	return g.adjacency[systemID]
}

// Reindex rebuilds lookup tables after the exported fields were filled directly,
// e.g. by a decoder.
func (g *Galaxy) Reindex() {
	if g.Systems == nil {
		g.Systems = make(map[int]*System)
	}
	lanes := g.Lanes
	blockades := g.Blockades
	g.Lanes = []Starlane{}
	g.Blockades = []Blockade{}
	g.lanes = make(map[laneKey]int)
	g.blockades = make(map[Blockade]struct{})
	g.adjacency = nil
	for _, l := range lanes {
		g.AddStarlane(l.A, l.B, l.Length)
	}
	for _, b := range blockades {
		g.AddBlockade(b.SystemID, b.EmpireID)
	}
}

func (g *Galaxy) ensureIndexes() {
	if g.lanes == nil || g.blockades == nil {
		g.Reindex()
	}
}

func (g *Galaxy) buildAdjacency() {
	g.ensureIndexes()
	adjacency := make(map[int][]Neighbor, len(g.Systems))
	for _, l := range g.Lanes {
		adjacency[l.A] = append(adjacency[l.A], Neighbor{SystemID: l.B, Length: l.Length})
		adjacency[l.B] = append(adjacency[l.B], Neighbor{SystemID: l.A, Length: l.Length})
	}
	for id := range adjacency {
		neighbors := adjacency[id]
		sort.Slice(neighbors, func(i, j int) bool {
			return neighbors[i].SystemID < neighbors[j].SystemID
		})
	}
	g.adjacency = adjacency
}

// DistanceTo returns the straight-line distance to another system
func (s *System) DistanceTo(other *System) float64 {
	dx := other.X - s.X
	dy := other.Y - s.Y
	return math.Sqrt(dx*dx + dy*dy)
}
