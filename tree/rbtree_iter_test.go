package tree

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRBTreeInOrder_LazyAndRestartable(t *testing.T) {
	tree := NewRBTree[uint64]()
	for _, key := range []uint64{52, 47, 3, 35, 24} {
		require.NoError(t, tree.Insert(key))
	}

	firstThree := make([]uint64, 0, 3)
	for key := range tree.InOrder() {
		firstThree = append(firstThree, key)
		if len(firstThree) == 3 {
			break
		}
	}
	require.Equal(t, []uint64{3, 24, 35}, firstThree)

	// breaking out above must not exhaust the sequence
	all := slices.Collect(tree.InOrder())
	require.Equal(t, []uint64{3, 24, 35, 47, 52}, all)
}

func TestRBTreeInOrder_Ascending(t *testing.T) {
	tree := NewRBTree[int]()
	for _, key := range []int{88, 12, 4, 57, 33, 60, 5, 71, 6, 29} {
		require.NoError(t, tree.Insert(key))
	}

	keys := slices.Collect(tree.InOrder())
	require.True(t, slices.IsSorted(keys))
	require.Equal(t, []int{4, 5, 6, 12, 29, 33, 57, 60, 71, 88}, keys)
}

func TestRBTreeInOrder_Empty(t *testing.T) {
	tree := NewRBTree[uint64]()
	for range tree.InOrder() {
		require.FailNow(t, "empty tree must not yield")
	}
}

func TestRBTreeForeach_EarlyStop(t *testing.T) {
	tree := NewRBTree[uint64]()
	for _, key := range []uint64{52, 47, 3, 35, 24} {
		require.NoError(t, tree.Insert(key))
	}

	visited := int64(0)
	tree.Foreach(func(idx int64, color RBColor, key uint64) bool {
		visited++
		return idx < 2
	})
	require.Equal(t, int64(3), visited)
}

func TestRBTreeWalk_DepthAndDirection(t *testing.T) {
	type visit struct {
		key   uint64
		color RBColor
		depth int
		dir   RBDirection
	}

	tree := NewRBTree[uint64]()
	for _, key := range []uint64{52, 47, 3, 35, 24} {
		require.NoError(t, tree.Insert(key))
	}

	visits := make([]visit, 0, 5)
	tree.Walk(func(key uint64, color RBColor, depth int, dir RBDirection) bool {
		visits = append(visits, visit{key: key, color: color, depth: depth, dir: dir})
		return true
	})
	// pre-order, right subtree before left
	expected := []visit{
		{key: 47, color: Black, depth: 0, dir: Root},
		{key: 52, color: Black, depth: 1, dir: Right},
		{key: 24, color: Black, depth: 1, dir: Left},
		{key: 35, color: Red, depth: 2, dir: Right},
		{key: 3, color: Red, depth: 2, dir: Left},
	}
	require.Equal(t, expected, visits)

	stopped := 0
	tree.Walk(func(key uint64, color RBColor, depth int, dir RBDirection) bool {
		stopped++
		return stopped < 2
	})
	require.Equal(t, 2, stopped)
}

func TestRBTreeWalk_Empty(t *testing.T) {
	tree := NewRBTree[uint64]()
	tree.Walk(func(key uint64, color RBColor, depth int, dir RBDirection) bool {
		require.FailNow(t, "empty tree must not be visited")
		return false
	})
}
