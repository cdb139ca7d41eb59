package tree

import (
	"fmt"

	"go.uber.org/multierr"
)

func isBlack[K OrderedKey](node RBNode[K]) bool {
	return node == nil || node.Color() == Black
}

func isRed[K OrderedKey](node RBNode[K]) bool {
	return node != nil && node.Color() == Red
}

// rbtree rule validation utilities.

// Inorder traversal to validate the red rule p3. Every red pair is a
// parent-child pair, so checking each node against its children covers
// all of them.
func RedViolationValidate[K OrderedKey](tree RBTree[K]) error {
	size := tree.Len()
	aux := tree.Root()
	if size < 0 || aux == nil {
		return nil
	}

	stack := make([]RBNode[K], 0, size>>1)
	for ; aux != nil; aux = aux.Left() {
		stack = append(stack, aux)
	}

	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; isRed[K](aux) &&
			(isRed[K](aux.Left()) || isRed[K](aux.Right())) {
			return fmt.Errorf("[rbtree] red violation: key %v and its child are both red", aux.Key())
		}

		stack = stack[:size-1]
		if aux.Right() != nil {
			for aux = aux.Right(); aux != nil; aux = aux.Left() {
				stack = append(stack, aux)
			}
		}
	}
	return nil
}

// blackDepthOf counts the black nodes on the paths from node down to its
// NIL leaves and reports the first subtree whose two sides disagree.
func blackDepthOf[K OrderedKey](node RBNode[K], level int) (int64, error) {
	if node == nil {
		return 0, nil
	}

	ld, err := blackDepthOf[K](node.Left(), level+1)
	if err != nil {
		return 0, err
	}
	rd, err := blackDepthOf[K](node.Right(), level+1)
	if err != nil {
		return 0, err
	}
	if ld != rd {
		return 0, fmt.Errorf("[rbtree] black violation: key %v at level %d, left depth %d, right depth %d",
			node.Key(), level, ld, rd)
	}
	if isBlack[K](node) {
		ld++
	}
	return ld, nil
}

// Each node to its NIL leaves black depths are equal. (p4)
func BlackViolationValidate[K OrderedKey](tree RBTree[K]) error {
	_, err := blackDepthOf[K](tree.Root(), 1)
	return err
}

// Inorder traversal yields strictly ascending keys, and exactly as many
// as the tree counts.
func OrderViolationValidate[K OrderedKey](tree RBTree[K]) error {
	var prev K
	idx := int64(0)
	for key := range tree.InOrder() {
		if idx > 0 && keyCompare(key, prev) <= 0 {
			return fmt.Errorf("[rbtree] order violation: key %v is not above its predecessor %v", key, prev)
		}
		prev = key
		idx++
	}
	if idx != tree.Len() {
		return fmt.Errorf("[rbtree] order violation: %d keys by traversal, %d by count", idx, tree.Len())
	}
	return nil
}

// Validate combines every rbtree rule check, including the black root
// rule p5.
func Validate[K OrderedKey](tree RBTree[K]) error {
	var rootErr error
	if root := tree.Root(); root != nil && root.Color() != Black {
		rootErr = fmt.Errorf("[rbtree] root violation: root key %v is red", root.Key())
	}
	return multierr.Combine(
		rootErr,
		RedViolationValidate[K](tree),
		BlackViolationValidate[K](tree),
		OrderViolationValidate[K](tree),
	)
}

func (tree *rbTree[K]) IsValid() bool {
	return Validate[K](tree) == nil
}
