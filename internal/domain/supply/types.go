package supply

import "sort"

// Traversal is a directed use of a starlane, From and To being system ids
type Traversal struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// Reverse returns the traversal in the opposite direction
func (t Traversal) Reverse() Traversal {
	return Traversal{From: t.To, To: t.From}
}

// TraversalSet is a set of directed traversals
type TraversalSet map[Traversal]struct{}

// Add inserts a traversal
func (s TraversalSet) Add(t Traversal) {
	s[t] = struct{}{}
}

// Contains reports whether the traversal is in the set
func (s TraversalSet) Contains(t Traversal) bool {
	_, ok := s[t]
	return ok
}

// Sorted returns the traversals ordered by From then To
func (s TraversalSet) Sorted() []Traversal {
	out := make([]Traversal, 0, len(s))
	for t := range s {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].From != out[j].From {
			return out[i].From < out[j].From
		}
		return out[i].To < out[j].To
	})
	return out
}

// SystemSet is a set of system ids
type SystemSet map[int]struct{}

// Add inserts a system id
func (s SystemSet) Add(id int) {
	s[id] = struct{}{}
}

// Contains reports whether the id is in the set
func (s SystemSet) Contains(id int) bool {
	_, ok := s[id]
	return ok
}

// Sorted returns the ids in ascending order
func (s SystemSet) Sorted() []int {
	out := make([]int, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Ints(out)
	return out
}

// ResourceGroups is a partition of systems into groups able to pool resources.
// Each group is sorted ascending and groups are ordered by their smallest member.
type ResourceGroups [][]int

// Contains reports whether any group holds the system
func (g ResourceGroups) Contains(systemID int) bool {
	return g.GroupOf(systemID) != nil
}

// GroupOf returns the group holding the system, or nil
func (g ResourceGroups) GroupOf(systemID int) []int {
	for _, group := range g {
		i := sort.SearchInts(group, systemID)
		if i < len(group) && group[i] == systemID {
			return group
		}
	}
	return nil
}

// Size returns the number of systems across all groups
func (g ResourceGroups) Size() int {
	n := 0
	for _, group := range g {
		n += len(group)
	}
	return n
}

var (
	emptyTraversals = TraversalSet{}
	emptySystems    = SystemSet{}
	emptyGroups     = ResourceGroups{}
)
