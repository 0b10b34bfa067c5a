package supply

import (
	"container/heap"
	"fmt"
	"math"

	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
)

// rangeEpsilon absorbs floating point noise when comparing ranges
const rangeEpsilon = 1e-9

// DefaultJumpLength is the straight-line length that one unit of supply range covers
const DefaultJumpLength = 1.0

// JumpRule decides whether supply with a given remaining range can cross a starlane.
//
// A remaining range of at least one pays a full jump regardless of lane length.
// A fractional remainder allows one last partial jump when the lane is no longer than
// remainder × JumpLength, leaving nothing to propagate further.
type JumpRule struct {
	JumpLength float64
}

// Next returns the range left after crossing a lane of the given length and whether
// the crossing is possible at all
func (r JumpRule) Next(remaining, length float64) (float64, bool) {
	switch {
	case remaining+rangeEpsilon >= 1:
		return normalizeRange(remaining - 1), true
	case remaining > rangeEpsilon && length <= remaining*r.JumpLength+rangeEpsilon:
		return 0, true
	default:
		return 0, false
	}
}

func normalizeRange(r float64) float64 {
	if math.Abs(r) < rangeEpsilon {
		return 0
	}
	if r < 0 {
		panic(fmt.Sprintf("supply range arithmetic produced negative range %v", r))
	}
	return r
}

// Ranges is the globally resolved range picture every empire's propagation is bound by
type Ranges struct {
	// Sources holds, per empire, the meter of each system it supplies from
	Sources map[int]map[int]float64

	// Reach holds, per empire, the remaining range at each system it won, measured along
	// routes that only cross systems the empire itself won
	Reach map[int]map[int]float64

	// Claims maps each system reached by any empire to the empire that wins it
	Claims map[int]int
}

// ClaimedByOther reports whether systemID is won by an empire other than empireID
func (r *Ranges) ClaimedByOther(systemID, empireID int) bool {
	owner, ok := r.Claims[systemID]
	return ok && owner != empireID
}

// ResolveRanges computes every empire's supply sources and the winner of every system
// any empire can reach.
//
// All empires expand together, best remaining range first. The first empire to settle a
// system wins it and no other empire may enter or pass through it afterwards, so a claim
// always rests on a route the winner can use. Contest rules, in order: a supply source
// belongs to its owner; otherwise the highest remaining range wins; equal ranges go to
// the lower empire id.
func ResolveRanges(g *galaxy.Galaxy, rule JumpRule) *Ranges {
	r := &Ranges{
		Sources: make(map[int]map[int]float64),
		Reach:   make(map[int]map[int]float64),
		Claims:  make(map[int]int),
	}

	for _, id := range g.SystemIDs() {
		s := g.System(id)
		if !s.IsSupplySource() {
			continue
		}
		if r.Sources[s.Owner] == nil {
			r.Sources[s.Owner] = make(map[int]float64)
		}
		r.Sources[s.Owner][id] = s.SupplyMeter
		r.Claims[id] = s.Owner
	}

	tentative := make(map[int]map[int]float64)
	frontier := &rangeQueue{}
	for _, empireID := range g.EmpireIDs() {
		r.Reach[empireID] = make(map[int]float64)
		tentative[empireID] = make(map[int]float64)
		for systemID, meter := range r.Sources[empireID] {
			tentative[empireID][systemID] = meter
			heap.Push(frontier, rangeItem{empireID: empireID, systemID: systemID, remaining: meter})
		}
	}

	settled := make(map[int]bool)
	for frontier.Len() > 0 {
		item := heap.Pop(frontier).(rangeItem)
		u, empireID := item.systemID, item.empireID
		if settled[u] || r.ClaimedByOther(u, empireID) {
			continue
		}
		settled[u] = true
		r.Claims[u] = empireID
		r.Reach[empireID][u] = item.remaining

		if g.Obstructed(u, empireID) {
			continue
		}

		for _, n := range g.Neighbors(u) {
			v := n.SystemID
			if settled[v] || r.ClaimedByOther(v, empireID) {
				continue
			}
			next, ok := rule.Next(item.remaining, n.Length)
			if !ok {
				continue
			}
			if current, seen := tentative[empireID][v]; seen && current >= next {
				continue
			}
			tentative[empireID][v] = next
			heap.Push(frontier, rangeItem{empireID: empireID, systemID: v, remaining: next})
		}
	}

	return r
}

// expansion is the result of a best-first supply expansion for one empire
type expansion struct {
	remaining map[int]float64
	jumps     map[int]int
	order     []int
}

// expand spreads one empire's supply from its sources outward, always finalizing the
// system with the highest remaining range first so each system is settled once with its
// best range. Supply entering a system obstructed for the empire stops there, and
// systems rejected by enterable are never entered.
func expand(g *galaxy.Galaxy, empireID int, sources map[int]float64, rule JumpRule, enterable func(systemID int) bool) *expansion {
	exp := &expansion{
		remaining: make(map[int]float64),
		jumps:     make(map[int]int),
	}
	finalized := make(map[int]bool)

	frontier := &rangeQueue{}
	for systemID, meter := range sources {
		exp.remaining[systemID] = meter
		exp.jumps[systemID] = 0
		heap.Push(frontier, rangeItem{empireID: empireID, systemID: systemID, remaining: meter})
	}

	for frontier.Len() > 0 {
		item := heap.Pop(frontier).(rangeItem)
		u := item.systemID
		if finalized[u] {
			continue
		}
		finalized[u] = true
		exp.order = append(exp.order, u)

		if g.Obstructed(u, empireID) {
			continue
		}

		for _, n := range g.Neighbors(u) {
			v := n.SystemID
			if finalized[v] || !enterable(v) {
				continue
			}
			next, ok := rule.Next(exp.remaining[u], n.Length)
			if !ok {
				continue
			}
			if current, seen := exp.remaining[v]; seen && current >= next {
				continue
			}
			exp.remaining[v] = next
			exp.jumps[v] = exp.jumps[u] + 1
			heap.Push(frontier, rangeItem{empireID: empireID, systemID: v, remaining: next})
		}
	}

	return exp
}

type rangeItem struct {
	empireID  int
	systemID  int
	remaining float64
}

// rangeQueue is a max-heap on remaining range; ties go to the lower empire id, then the
// lower system id
type rangeQueue []rangeItem

func (q rangeQueue) Len() int { return len(q) }

func (q rangeQueue) Less(i, j int) bool {
	if math.Abs(q[i].remaining-q[j].remaining) > rangeEpsilon {
		return q[i].remaining > q[j].remaining
	}
	if q[i].empireID != q[j].empireID {
		return q[i].empireID < q[j].empireID
	}
	return q[i].systemID < q[j].systemID
}

func (q rangeQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *rangeQueue) Push(x interface{}) { *q = append(*q, x.(rangeItem)) }

func (q *rangeQueue) Pop() interface{} {
	old := *q
	item := old[len(old)-1]
	*q = old[:len(old)-1]
	return item
}
