package supply

import "sort"

// FleetSupplyableSystems returns every system touched by a conducting traversal plus the
// empire's own supply sources.
//
// Not derived from the resource groups: a system may be fleet-supplyable without
// sharing resources with anything else.
func FleetSupplyableSystems(sources map[int]float64, conducting TraversalSet) SystemSet {
	out := make(SystemSet, len(sources))
	for id := range sources {
		out.Add(id)
	}
	for t := range conducting {
		out.Add(t.From)
		out.Add(t.To)
	}
	return out
}

// PartitionResourceGroups returns the connected components of the undirected graph
// formed by the conducting traversals. Every member appears in exactly one group;
// members without conducting traversals become singleton groups.
func PartitionResourceGroups(members SystemSet, conducting TraversalSet) ResourceGroups {
	ds := newDisjointSet()
	for id := range members {
		ds.add(id)
	}
	for t := range conducting {
		ds.union(t.From, t.To)
	}
	return ds.partition()
}

// disjointSet is a union-find over system ids
type disjointSet struct {
	parent map[int]int
	rank   map[int]int
}

func newDisjointSet() *disjointSet {
	return &disjointSet{
		parent: make(map[int]int),
		rank:   make(map[int]int),
	}
}

func (d *disjointSet) add(id int) {
	if _, ok := d.parent[id]; !ok {
		d.parent[id] = id
	}
}

func (d *disjointSet) find(id int) int {
	d.add(id)
	root := id
	for d.parent[root] != root {
		root = d.parent[root]
	}
	for d.parent[id] != root {
		next := d.parent[id]
		d.parent[id] = root
		id = next
	}
	return root
}

func (d *disjointSet) union(a, b int) {
	ra, rb := d.find(a), d.find(b)
	if ra == rb {
		return
	}
	switch {
	case d.rank[ra] < d.rank[rb]:
		d.parent[ra] = rb
	case d.rank[ra] > d.rank[rb]:
		d.parent[rb] = ra
	default:
		d.parent[rb] = ra
		d.rank[ra]++
	}
}

// partition materializes the components, sorted within and across groups
func (d *disjointSet) partition() ResourceGroups {
	byRoot := make(map[int][]int)
	for id := range d.parent {
		root := d.find(id)
		byRoot[root] = append(byRoot[root], id)
	}

	groups := make(ResourceGroups, 0, len(byRoot))
	for _, group := range byRoot {
		sort.Ints(group)
		groups = append(groups, group)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i][0] < groups[j][0]
	})
	return groups
}
