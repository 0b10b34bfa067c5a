package supply_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/andrescamacho/starlane-supply/internal/domain/supply"
)

func TestPartitionResourceGroups(t *testing.T) {
	// Arrange - two chains and a loner
	conducting := traversals([2]int{1, 2}, [2]int{2, 3}, [2]int{7, 5}, [2]int{5, 7})
	members := systems(1, 2, 3, 5, 7, 9)

	// Act
	groups := supply.PartitionResourceGroups(members, conducting)

	// Assert
	assert.Equal(t, supply.ResourceGroups{{1, 2, 3}, {5, 7}, {9}}, groups)
	assert.Equal(t, []int{5, 7}, groups.GroupOf(7))
	assert.Nil(t, groups.GroupOf(4))
	assert.Equal(t, 6, groups.Size())
}

func TestFleetSupplyableSystems(t *testing.T) {
	sources := map[int]float64{1: 2, 8: 0.5}
	conducting := traversals([2]int{1, 2}, [2]int{3, 2})

	got := supply.FleetSupplyableSystems(sources, conducting)

	assert.Equal(t, []int{1, 2, 3, 8}, got.Sorted())
}

func TestTraversalSet_Sorted(t *testing.T) {
	set := traversals([2]int{3, 1}, [2]int{1, 4}, [2]int{1, 2})

	assert.Equal(t, []supply.Traversal{{From: 1, To: 2}, {From: 1, To: 4}, {From: 3, To: 1}}, set.Sorted())
}
