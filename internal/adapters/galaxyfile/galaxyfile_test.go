package galaxyfile_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/starlane-supply/internal/adapters/galaxyfile"
	"github.com/andrescamacho/starlane-supply/internal/domain/galaxy"
)

func TestLoad(t *testing.T) {
	// Act
	g, err := galaxyfile.Load("testdata/three_empires.yaml")

	// Assert
	require.NoError(t, err)
	require.NoError(t, g.Validate())
	assert.Equal(t, []int{1, 2, 3, 4, 5}, g.SystemIDs())
	assert.Equal(t, []int{1, 2, 3}, g.EmpireIDs())
	assert.Equal(t, galaxy.NoOwner, g.System(2).Owner)
	assert.Equal(t, "Cinder", g.System(3).Name)
	assert.True(t, g.Obstructed(4, 1))
	assert.Equal(t, []galaxy.Neighbor{{SystemID: 2, Length: 0.5}}, g.Neighbors(4))
}

func TestDecode_DefaultsLaneLengthToDistance(t *testing.T) {
	g, err := galaxyfile.Decode(strings.NewReader(`
systems:
  - {id: 1, x: 0, y: 0}
  - {id: 2, x: 3, y: 4}
lanes:
  - {a: 1, b: 2}
`))

	require.NoError(t, err)
	require.Len(t, g.Neighbors(1), 1)
	assert.InDelta(t, 5, g.Neighbors(1)[0].Length, 1e-9)
}

func TestDecode_Errors(t *testing.T) {
	for name, doc := range map[string]string{
		"unknown key":          "systems:\n  - {id: 1, colour: red}\n",
		"duplicate system":     "systems:\n  - {id: 1}\n  - {id: 1}\n",
		"implicit lane length": "systems:\n  - {id: 1}\nlanes:\n  - {a: 1, b: 2}\n",
		"malformed":            "systems: [\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := galaxyfile.Decode(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}

func TestDecode_EmptyDocument(t *testing.T) {
	g, err := galaxyfile.Decode(strings.NewReader(""))

	require.NoError(t, err)
	assert.Empty(t, g.Systems)
}

func TestEncode_RoundTrip(t *testing.T) {
	// Arrange
	original, err := galaxyfile.Load("testdata/three_empires.yaml")
	require.NoError(t, err)

	// Act
	var buf bytes.Buffer
	require.NoError(t, galaxyfile.Encode(&buf, original))
	decoded, err := galaxyfile.Decode(&buf)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, original.Systems, decoded.Systems)
	assert.Equal(t, original.Lanes, decoded.Lanes)
	assert.Equal(t, original.Blockades, decoded.Blockades)
}
