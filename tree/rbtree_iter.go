package tree

import "iter"

// InOrder returns a lazy ascending iterator over the keys. The sequence
// is restartable, every range starts a fresh descent.
func (tree *rbTree[K]) InOrder() iter.Seq[K] {
	return func(yield func(K) bool) {
		stack := make([]*rbNode[K], 0, pathCapacity(tree.count))
		for aux := tree.root; ; aux = aux.right {
			for ; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
			if len(stack) == 0 {
				return
			}
			aux = stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(aux.key) {
				return
			}
		}
	}
}

// Inorder traversal to implement the DFS.
func (tree *rbTree[K]) Foreach(action func(idx int64, color RBColor, key K) bool) {
	size := tree.count
	aux := tree.root
	if size < 0 || aux == nil {
		return
	}

	stack := make([]*rbNode[K], 0, size>>1)
	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	idx := int64(0)
	for size = int64(len(stack)); size > 0; size = int64(len(stack)) {
		if aux = stack[size-1]; !action(idx, aux.color, aux.key) {
			return
		}
		idx++
		stack = stack[:size-1]
		if aux.right != nil {
			for aux = aux.right; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
}

// Walk visits the nodes in pre-order, right subtree before left, which
// is the order a rendered tree prints in. depth is the distance from
// the root, dir the slot of the node in its parent. Returning false
// stops the walk.
func (tree *rbTree[K]) Walk(action func(key K, color RBColor, depth int, dir RBDirection) bool) {
	var walk func(node *rbNode[K], depth int, dir RBDirection) bool
	walk = func(node *rbNode[K], depth int, dir RBDirection) bool {
		if node == nil {
			return true
		}
		if !action(node.key, node.color, depth, dir) {
			return false
		}
		if !walk(node.right, depth+1, Right) {
			return false
		}
		return walk(node.left, depth+1, Left)
	}
	walk(tree.root, 0, Root)
}
