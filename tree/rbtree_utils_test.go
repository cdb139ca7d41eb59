package tree

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestValidate_RedViolation(t *testing.T) {
	tree := &rbTree[uint64]{
		root: &rbNode[uint64]{
			key:   10,
			color: Black,
			right: &rbNode[uint64]{
				key:   20,
				color: Red,
				right: &rbNode[uint64]{key: 30, color: Red},
			},
		},
		count: 3,
	}

	err := RedViolationValidate[uint64](tree)
	require.Error(t, err)
	require.ErrorContains(t, err, "red violation")
	require.False(t, tree.IsValid())
}

func TestValidate_BlackViolation(t *testing.T) {
	tree := &rbTree[uint64]{
		root: &rbNode[uint64]{
			key:   10,
			color: Black,
			left:  &rbNode[uint64]{key: 5, color: Black},
		},
		count: 2,
	}

	err := BlackViolationValidate[uint64](tree)
	require.Error(t, err)
	require.ErrorContains(t, err, "black violation")
	require.False(t, tree.IsValid())
}

func TestValidate_OrderViolation(t *testing.T) {
	tree := &rbTree[uint64]{
		root: &rbNode[uint64]{
			key:   10,
			color: Black,
			left:  &rbNode[uint64]{key: 20, color: Red},
		},
		count: 2,
	}

	err := OrderViolationValidate[uint64](tree)
	require.Error(t, err)
	require.ErrorContains(t, err, "order violation")
}

func TestValidate_CountMismatch(t *testing.T) {
	tree := &rbTree[uint64]{
		root:  &rbNode[uint64]{key: 10, color: Black},
		count: 5,
	}

	err := OrderViolationValidate[uint64](tree)
	require.Error(t, err)
	require.ErrorContains(t, err, "order violation")
}

func TestValidate_RootViolation(t *testing.T) {
	tree := &rbTree[uint64]{
		root:  &rbNode[uint64]{key: 10, color: Red},
		count: 1,
	}

	err := Validate[uint64](tree)
	require.Error(t, err)
	require.ErrorContains(t, err, "root violation")
}

func TestValidate_CombinesViolations(t *testing.T) {
	// red root with a red child breaks the root rule and the red rule
	tree := &rbTree[uint64]{
		root: &rbNode[uint64]{
			key:   10,
			color: Red,
			right: &rbNode[uint64]{key: 20, color: Red},
		},
		count: 2,
	}

	err := Validate[uint64](tree)
	require.Error(t, err)
	require.GreaterOrEqual(t, len(multierr.Errors(err)), 2)
}

func TestValidate_EmptyAndValidTrees(t *testing.T) {
	tree := &rbTree[uint64]{}
	require.NoError(t, Validate[uint64](tree))
	require.True(t, tree.IsValid())

	for _, key := range []uint64{52, 47, 3, 35, 24} {
		require.NoError(t, tree.Insert(key))
	}
	require.NoError(t, Validate[uint64](tree))
	require.True(t, tree.IsValid())
}
