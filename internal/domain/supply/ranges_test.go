package supply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

func TestJumpRule_Next(t *testing.T) {
	rule := supply.JumpRule{JumpLength: 1}

	for _, tc := range []struct {
		name      string
		remaining float64
		length    float64
		want      float64
		ok        bool
	}{
		{name: "full jump ignores length", remaining: 2, length: 40, want: 1, ok: true},
		{name: "exactly one unit", remaining: 1, length: 1, want: 0, ok: true},
		{name: "partial jump within remainder", remaining: 0.5, length: 0.5, want: 0, ok: true},
		{name: "partial jump too long", remaining: 0.5, length: 0.75, ok: false},
		{name: "zero length lane with remainder", remaining: 0.1, length: 0, want: 0, ok: true},
		{name: "exhausted range", remaining: 0, length: 0, ok: false},
	} {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := rule.Next(tc.remaining, tc.length)

			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.InDelta(t, tc.want, got, 1e-9)
			}
		})
	}
}

func TestResolveRanges_ClaimsAndSources(t *testing.T) {
	// Arrange - 1 (X, meter 2) - 2 - 3 - 4 (Y, meter 3), both reach 2 with range 1
	g := newChain(4)
	own(g, 1, empireX, 2)
	own(g, 4, empireY, 3)

	// Act
	ranges := supply.ResolveRanges(g, supply.JumpRule{JumpLength: supply.DefaultJumpLength})

	// Assert
	assert.Equal(t, map[int]float64{1: 2}, ranges.Sources[empireX])
	assert.Equal(t, map[int]float64{4: 3}, ranges.Sources[empireY])
	assert.Equal(t, map[int]int{1: empireX, 2: empireX, 3: empireY, 4: empireY}, ranges.Claims)
	assert.False(t, ranges.ClaimedByOther(2, empireX))
	assert.True(t, ranges.ClaimedByOther(2, empireY))
}

func TestResolveRanges_ObstructionStopsReach(t *testing.T) {
	g := newChain(4)
	own(g, 1, empireX, 3)
	g.AddBlockade(2, empireX)

	ranges := supply.ResolveRanges(g, supply.JumpRule{JumpLength: 1})

	assert.Equal(t, map[int]float64{1: 3, 2: 2}, ranges.Reach[empireX])
	assert.NotContains(t, ranges.Claims, 3)
}

func TestResolveRanges_ClaimsNeverPassThroughForeignSystems(t *testing.T) {
	// Arrange - X outranges Y everywhere but must cross Y's home to get east
	g := newChain(4)
	own(g, 1, empireX, 5)
	own(g, 2, empireY, 1)

	// Act
	ranges := supply.ResolveRanges(g, supply.JumpRule{JumpLength: supply.DefaultJumpLength})

	// Assert
	assert.Equal(t, map[int]int{1: empireX, 2: empireY, 3: empireY}, ranges.Claims)
	assert.Equal(t, map[int]float64{1: 5}, ranges.Reach[empireX])
	assert.Equal(t, map[int]float64{2: 1, 3: 0}, ranges.Reach[empireY])
}
