package galaxyfile

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
)

// document is the on-disk layout of a galaxy file
type document struct {
	Systems   []systemEntry   `yaml:"systems"`
	Lanes     []laneEntry     `yaml:"lanes"`
	Blockades []blockadeEntry `yaml:"blockades,omitempty"`
}

type systemEntry struct {
	ID     int     `yaml:"id"`
	Name   string  `yaml:"name,omitempty"`
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Owner  *int    `yaml:"owner,omitempty"`
	Supply float64 `yaml:"supply,omitempty"`
}

// laneEntry omits Length to mean the straight-line distance between the two systems
type laneEntry struct {
	A      int      `yaml:"a"`
	B      int      `yaml:"b"`
	Length *float64 `yaml:"length,omitempty"`
}

type blockadeEntry struct {
	System int `yaml:"system"`
	Empire int `yaml:"empire"`
}

// Load reads a galaxy from a YAML file
func Load(path string) (*galaxy.Galaxy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read galaxy file: %w", err)
	}
	g, err := Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Decode parses a galaxy document. Unknown keys are rejected; topology is not
// validated here.
func Decode(r io.Reader) (*galaxy.Galaxy, error) {
	var doc document
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse galaxy: %w", err)
	}

	g := galaxy.NewGalaxy()
	for _, s := range doc.Systems {
		if g.System(s.ID) != nil {
			return nil, fmt.Errorf("system %d is declared twice", s.ID)
		}
		owner := galaxy.NoOwner
		if s.Owner != nil {
			owner = *s.Owner
		}
		g.AddSystem(&galaxy.System{
			ID:          s.ID,
			Name:        s.Name,
			X:           s.X,
			Y:           s.Y,
			Owner:       owner,
			SupplyMeter: s.Supply,
		})
	}

	for _, l := range doc.Lanes {
		length, err := laneLength(g, l)
		if err != nil {
			return nil, err
		}
		g.AddStarlane(l.A, l.B, length)
	}

	for _, b := range doc.Blockades {
		g.AddBlockade(b.System, b.Empire)
	}

	return g, nil
}

func laneLength(g *galaxy.Galaxy, l laneEntry) (float64, error) {
	if l.Length != nil {
		return *l.Length, nil
	}
	a, b := g.System(l.A), g.System(l.B)
	if a == nil || b == nil {
		return 0, fmt.Errorf("starlane %d-%d has no length and references an unknown system", l.A, l.B)
	}
	return a.DistanceTo(b), nil
}

// Encode writes a galaxy in the same layout Decode reads, with explicit lane lengths
func Encode(w io.Writer, g *galaxy.Galaxy) error {
	doc := document{
		Systems: make([]systemEntry, 0, len(g.Systems)),
		Lanes:   make([]laneEntry, 0, len(g.Lanes)),
	}
	for _, id := range g.SystemIDs() {
		s := g.System(id)
		entry := systemEntry{ID: s.ID, Name: s.Name, X: s.X, Y: s.Y, Supply: s.SupplyMeter}
		if s.IsOwned() {
			owner := s.Owner
			entry.Owner = &owner
		}
		doc.Systems = append(doc.Systems, entry)
	}
	for _, l := range g.Lanes {
		length := l.Length
		doc.Lanes = append(doc.Lanes, laneEntry{A: l.A, B: l.B, Length: &length})
	}
	for _, b := range g.Blockades {
		doc.Blockades = append(doc.Blockades, blockadeEntry{System: b.SystemID, Empire: b.EmpireID})
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode galaxy: %w", err)
	}
	return enc.Close()
}
