package graph

import (
	"errors"
	"fmt"
	"io"
	"strconv"

	graphlib "github.com/dominikbraun/graph"
	"github.com/dominikbraun/graph/draw"

	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

// SupplyNetworkExporter turns one empire's supply results into a directed graph and
// renders it as Graphviz DOT
type SupplyNetworkExporter struct {
	galaxy *galaxy.Galaxy
}

// NewSupplyNetworkExporter creates an exporter; g supplies names and may be nil
func NewSupplyNetworkExporter(g *galaxy.Galaxy) *SupplyNetworkExporter {
	return &SupplyNetworkExporter{galaxy: g}
}

// Build returns the empire's supply network. Vertices are the fleet-supplyable systems
// plus the endpoints of obstructed traversals; conducting and obstructed traversals
// become edges distinguished by their "kind" attribute.
func (e *SupplyNetworkExporter) Build(es *supply.EmpireSupply) (graphlib.Graph[int, int], error) {
	g := graphlib.New(graphlib.IntHash, graphlib.Directed())

	supplied := make(map[int]bool, len(es.FleetSupplyable))
	for _, id := range es.FleetSupplyable {
		supplied[id] = true
	}
	ranges := make(map[int]supply.SystemRange, len(es.Ranges))
	for _, r := range es.Ranges {
		ranges[r.SystemID] = r
	}

	addVertex := func(id int) error {
		attrs := []func(*graphlib.VertexProperties){
			graphlib.VertexAttribute("label", e.label(id, ranges)),
		}
		if !supplied[id] {
			attrs = append(attrs, graphlib.VertexAttribute("style", "dashed"))
		}
		if err := g.AddVertex(id, attrs...); err != nil && !errors.Is(err, graphlib.ErrVertexAlreadyExists) {
			return err
		}
		return nil
	}

	for _, id := range es.FleetSupplyable {
		if err := addVertex(id); err != nil {
			return nil, err
		}
	}

	for _, t := range es.Traversals {
		if err := addEdge(g, t, "conducting", "darkgreen", "solid"); err != nil {
			return nil, err
		}
	}
	for _, t := range es.ObstructedTraversals {
		for _, id := range []int{t.From, t.To} {
			if err := addVertex(id); err != nil {
				return nil, err
			}
		}
		if err := addEdge(g, t, "obstructed", "red", "dashed"); err != nil {
			return nil, err
		}
	}

	return g, nil
}

func addEdge(g graphlib.Graph[int, int], t supply.Traversal, kind, color, style string) error {
	err := g.AddEdge(t.From, t.To,
		graphlib.EdgeAttribute("kind", kind),
		graphlib.EdgeAttribute("color", color),
		graphlib.EdgeAttribute("style", style),
	)
	if err != nil && !errors.Is(err, graphlib.ErrEdgeAlreadyExists) {
		return fmt.Errorf("failed to add %s traversal %d->%d: %w", kind, t.From, t.To, err)
	}
	return nil
}

func (e *SupplyNetworkExporter) label(id int, ranges map[int]supply.SystemRange) string {
	name := strconv.Itoa(id)
	if e.galaxy != nil {
		if s := e.galaxy.System(id); s != nil && s.Name != "" {
			name = fmt.Sprintf("%s (%d)", s.Name, id)
		}
	}
	if r, ok := ranges[id]; ok {
		return fmt.Sprintf("%s\\nrange %.2f", name, r.Range)
	}
	return name
}

// WriteDOT renders the empire's supply network to w
func (e *SupplyNetworkExporter) WriteDOT(w io.Writer, es *supply.EmpireSupply) error {
	g, err := e.Build(es)
	if err != nil {
		return err
	}
	return draw.DOT(g, w,
		draw.GraphAttribute("label", fmt.Sprintf("empire %d supply", es.EmpireID)),
		draw.GraphAttribute("rankdir", "LR"),
	)
}
