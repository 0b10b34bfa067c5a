package supply

import (
	"sort"
)

// Snapshot is the serializable form of a Manager's results. Slices are sorted so the
// same inputs always encode to the same bytes.
type Snapshot struct {
	Turn    int            `json:"turn"`
	Empires []EmpireSupply `json:"empires"`
}

// EmpireSupply is one empire's part of a Snapshot
type EmpireSupply struct {
	EmpireID             int           `json:"empire_id"`
	Traversals           []Traversal   `json:"traversals"`
	ObstructedTraversals []Traversal   `json:"obstructed_traversals"`
	FleetSupplyable      []int         `json:"fleet_supplyable"`
	ResourceGroups       [][]int       `json:"resource_groups"`
	Ranges               []SystemRange `json:"ranges"`
}

// SystemRange is the supply range an empire has left at one system
type SystemRange struct {
	SystemID int     `json:"system_id"`
	Range    float64 `json:"range"`
	Jumps    int     `json:"jumps"`
}

// Empire returns the entry for an empire, or nil
func (s *Snapshot) Empire(empireID int) *EmpireSupply {
	for i := range s.Empires {
		if s.Empires[i].EmpireID == empireID {
			return &s.Empires[i]
		}
	}
	return nil
}

// Snapshot captures the current results for the given turn
func (m *Manager) Snapshot(turn int) *Snapshot {
	r := m.current.Load()

	snap := &Snapshot{Turn: turn, Empires: []EmpireSupply{}}
	for _, empireID := range r.empireIDs() {
		entry := EmpireSupply{
			EmpireID:             empireID,
			Traversals:           r.traversals[empireID].Sorted(),
			ObstructedTraversals: r.obstructed[empireID].Sorted(),
			FleetSupplyable:      r.fleetSupplyable[empireID].Sorted(),
			ResourceGroups:       copyGroups(r.groups[empireID]),
			Ranges:               []SystemRange{},
		}
		for _, systemID := range sortedKeys(r.ranges[empireID]) {
			entry.Ranges = append(entry.Ranges, SystemRange{
				SystemID: systemID,
				Range:    r.ranges[empireID][systemID],
				Jumps:    r.jumps[empireID][systemID],
			})
		}
		snap.Empires = append(snap.Empires, entry)
	}
	return snap
}

// Restore publishes the results held by a snapshot, replacing the current ones
func (m *Manager) Restore(snap *Snapshot) {
	next := newResults()
	if snap != nil {
		for _, e := range snap.Empires {
			traversals := make(TraversalSet, len(e.Traversals))
			for _, t := range e.Traversals {
				traversals.Add(t)
			}
			obstructed := make(TraversalSet, len(e.ObstructedTraversals))
			for _, t := range e.ObstructedTraversals {
				obstructed.Add(t)
			}
			fleet := make(SystemSet, len(e.FleetSupplyable))
			for _, id := range e.FleetSupplyable {
				fleet.Add(id)
			}
			ranges := make(map[int]float64, len(e.Ranges))
			jumps := make(map[int]int, len(e.Ranges))
			for _, sr := range e.Ranges {
				ranges[sr.SystemID] = sr.Range
				jumps[sr.SystemID] = sr.Jumps
			}

			next.traversals[e.EmpireID] = traversals
			next.obstructed[e.EmpireID] = obstructed
			next.fleetSupplyable[e.EmpireID] = fleet
			next.groups[e.EmpireID] = normalizeGroups(copyGroups(e.ResourceGroups))
			next.ranges[e.EmpireID] = ranges
			next.jumps[e.EmpireID] = jumps
		}
	}
	m.current.Store(next)
}

// EmpireSummary condenses one empire's supply network into counts
type EmpireSummary struct {
	EmpireID             int `json:"empire_id"`
	SupplyableSystems    int `json:"supplyable_systems"`
	Traversals           int `json:"traversals"`
	ObstructedTraversals int `json:"obstructed_traversals"`
	ResourceGroups       int `json:"resource_groups"`
	LargestGroup         int `json:"largest_group"`
}

// Summary returns one summary per empire, ordered by empire id
func (m *Manager) Summary() []EmpireSummary {
	r := m.current.Load()
	out := make([]EmpireSummary, 0, len(r.traversals))
	for _, empireID := range r.empireIDs() {
		largest := 0
		for _, group := range r.groups[empireID] {
			if len(group) > largest {
				largest = len(group)
			}
		}
		out = append(out, EmpireSummary{
			EmpireID:             empireID,
			SupplyableSystems:    len(r.fleetSupplyable[empireID]),
			Traversals:           len(r.traversals[empireID]),
			ObstructedTraversals: len(r.obstructed[empireID]),
			ResourceGroups:       len(r.groups[empireID]),
			LargestGroup:         largest,
		})
	}
	return out
}

func (r *results) empireIDs() []int {
	ids := make([]int, 0, len(r.traversals))
	for id := range r.traversals {
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return ids
}

func copyGroups(groups ResourceGroups) [][]int {
	out := make([][]int, 0, len(groups))
	for _, g := range groups {
		out = append(out, append([]int(nil), g...))
	}
	return out
}

// normalizeGroups sorts each group and orders groups by their smallest member, the order
// ResourceGroups lookups depend on
func normalizeGroups(groups [][]int) ResourceGroups {
	for _, g := range groups {
		sort.Ints(g)
	}
	out := make(ResourceGroups, 0, len(groups))
	for _, g := range groups {
		if len(g) > 0 {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i][0] < out[j][0]
	})
	return out
}

func sortedKeys(m map[int]float64) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

// HasFleetSupply reports whether the empire's fleets can resupply at the system
func (e *EmpireSupply) HasFleetSupply(systemID int) bool {
	for _, id := range e.FleetSupplyable {
		if id == systemID {
			return true
		}
	}
	return ResourceGroups(e.ResourceGroups).Contains(systemID)
}

// RangeAt returns the remaining supply range at a system and whether it was reached
func (e *EmpireSupply) RangeAt(systemID int) (SystemRange, bool) {
	for _, r := range e.Ranges {
		if r.SystemID == systemID {
			return r, true
		}
	}
	return SystemRange{}, false
}
