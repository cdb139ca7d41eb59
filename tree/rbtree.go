package tree

import (
	"math/bits"
)

type rbNode[K OrderedKey] struct {
	left  *rbNode[K]
	right *rbNode[K]
	key   K
	color RBColor
}

func (node *rbNode[K]) Color() RBColor {
	return node.color
}

func (node *rbNode[K]) Key() K {
	return node.key
}

func (node *rbNode[K]) Left() RBNode[K] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *rbNode[K]) Right() RBNode[K] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *rbNode[K]) isRed() bool {
	return node != nil && node.color == Red
}

func (node *rbNode[K]) isBlack() bool {
	return node == nil || node.color == Black
}

func (node *rbNode[K]) child(dir RBDirection) *rbNode[K] {
	if dir == Left {
		return node.left
	}
	return node.right
}

func (node *rbNode[K]) setChild(dir RBDirection, child *rbNode[K]) {
	if dir == Left {
		node.left = child
	} else {
		node.right = child
	}
}

func (node *rbNode[K]) minimum() *rbNode[K] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *rbNode[K]) maximum() *rbNode[K] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

func (dir RBDirection) opposite() RBDirection {
	return -dir
}

// pathEntry is one step of a root-to-node descent. dir is the slot the
// node occupies in its parent, Root for the tree root itself.
type pathEntry[K OrderedKey] struct {
	node *rbNode[K]
	dir  RBDirection
}

// The tree height is bounded by 2*log2(n+1), so a path stack with that
// capacity never regrows during a descent.
func pathCapacity(count int64) int {
	return 2*bits.Len64(uint64(count)+1) + 2
}

// rbTree keeps no parent pointers inside the nodes. Every mutation
// descends from the root and records the visited nodes in a pathEntry
// stack, then the rebalance walks that stack upwards instead of
// following back-references. Single goroutine access only.
type rbTree[K OrderedKey] struct {
	root  *rbNode[K]
	count int64
	stats *rbTreeStats
}

func keyCompare[K OrderedKey](k1, k2 K) int64 {
	if k1 == k2 {
		return 0
	} else if k1 < k2 {
		return -1
	}
	return 1
}

func (tree *rbTree[K]) Len() int64 {
	return tree.count
}

func (tree *rbTree[K]) Root() RBNode[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root
}

// descendTo walks from the root towards key and records every visited
// node together with the slot it occupies in its parent. The last entry
// holds the matched node (res == 0) or the node at which the search fell
// off the tree, with res the compare result against that node.
// The caller must ensure the tree is not empty.
func (tree *rbTree[K]) descendTo(key K) ([]pathEntry[K], int64) {
	path := make([]pathEntry[K], 0, pathCapacity(tree.count))
	path = append(path, pathEntry[K]{node: tree.root, dir: Root})
	for {
		aux := path[len(path)-1].node
		res := keyCompare(key, aux.key)
		if /* equal */ res == 0 {
			return path, 0
		}
		var next *rbNode[K]
		dir := Left
		if /* less */ res < 0 {
			next = aux.left
		} else /* greater */ {
			next, dir = aux.right, Right
		}
		if next == nil {
			return path, res
		}
		path = append(path, pathEntry[K]{node: next, dir: dir})
	}
}

// References:
// https://en.wikipedia.org/wiki/Red%E2%80%93black_tree#Properties
// rbtree properties:
// p1. Every node is either red or black.
// p2. All NIL nodes are considered black.
// p3. A red node does not have a red child. (red-violation)
// p4. Every path from a given node to any of its descendant
//   NIL nodes goes through the same number of black nodes. (black-violation)
// p5. The root is black.
// (Conclusion) If a node X has exactly one child, it must be a red child,
//   because if it were black, its NIL descendants would sit at a different
//   black depth than X's NIL child, violating p4.
// So the shortest path nodes are black nodes. Otherwise,
// the path must contain red node.
// The longest path nodes' number is 2 * shortest path nodes' number.

/*
	     |                         |
	     X                         S
	    / \     leftRotate(X)     / \
	   L   S    ============>    X   Sd
	      / \                   / \
	    Sc   Sd                L   Sc

The rotation subject X is the last entry of path. S takes over X's slot
in the node one entry above (or becomes the new root) and replaces X as
the last path entry, inheriting X's direction.
*/
func (tree *rbTree[K]) leftRotate(path []pathEntry[K]) {
	last := len(path) - 1
	x := path[last].node
	if x == nil || x.right == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] left rotate node x is nil or x.right is nil")
	}

	y := x.right
	x.right, y.left = y.left, x

	if last == 0 {
		tree.root = y
	} else {
		path[last-1].node.setChild(path[last].dir, y)
	}
	path[last].node = y
	tree.stats.IncreaseRotationCount(Left)
}

/*
	     |                         |
	     X                         S
	    / \     rightRotate(S)    / \
	   L   S    <============    X   R
	      / \                   / \
	    Sc   Sd               Sc   Sd
*/
func (tree *rbTree[K]) rightRotate(path []pathEntry[K]) {
	last := len(path) - 1
	x := path[last].node
	if x == nil || x.left == nil {
		// impossible run to here
		panic( /* debug assertion */ "[rbtree] right rotate node x is nil or x.left is nil")
	}

	y := x.left
	x.left, y.right = y.right, x

	if last == 0 {
		tree.root = y
	} else {
		path[last-1].node.setChild(path[last].dir, y)
	}
	path[last].node = y
	tree.stats.IncreaseRotationCount(Right)
}

// i1: Empty rbtree, insert directly, but root node is painted to black.
// A key that is already present is rejected without touching the tree.
func (tree *rbTree[K]) Insert(key K) error {
	if /* i1 */ tree.root == nil {
		tree.root = &rbNode[K]{key: key}
		tree.count++
		tree.stats.IncreaseInsertedCount()
		tree.stats.RecordKeyCount(1)
		return nil
	}

	path, res := tree.descendTo(key)
	if /* equal */ res == 0 {
		return ErrKeyAlreadyPresent
	}

	y := path[len(path)-1].node
	z := &rbNode[K]{key: key, color: Red}
	dir := Left
	if res > 0 {
		dir = Right
	}
	y.setChild(dir, z)
	path = append(path, pathEntry[K]{node: z, dir: dir})

	tree.count++
	tree.insertRebalance(path)
	tree.root.color = Black
	tree.stats.IncreaseInsertedCount()
	tree.stats.RecordKeyCount(1)
	return nil
}

/*
New node X is red by default.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

im1: Current node X's parent P is black, nothing to fix.

im2: Both the parent P and the uncle U are red, grandpa G is black.
(red-violation)
After repainting, G may be in red-violation itself. Drop X and P from
the path and fix G.

	    [G]             <G>
	    / \             / \
	  <P> <U>  ====>  [P] [U]
	  /               /
	<X>             <X>

im3: The parent P is red but the uncle U is black and X is the opposite
direction to P. (red-violation)
Repaint X into black and G into red, then rotate P so that X takes P's
place. Still unbalanced. Here must enter im4 to fix.

	  [G]                 <G>
	  / \    rotate(P)    / \
	<P> [U]  ========>  [X] [U]
	  \                 /
	  <X>             <P>

im4: The parent P is red, the uncle U is black and X is the same
direction as P. Repaint P into black and G into red, then rotate G.
The subtree root is black again, so the loop terminates.

	    [G]                 [P]
	    / \    rotate(G)    / \
	  <P> [U]  ========>  <X> <G>
	  /                         \
	<X>                         [U]

A red-violation left at the root is repaired by the caller, which always
repaints the root black.
*/
func (tree *rbTree[K]) insertRebalance(path []pathEntry[K]) {
	for len(path) > 2 {
		x, p, g := path[len(path)-1], path[len(path)-2], path[len(path)-3]

		if /* im1 */ p.node.isBlack() {
			return
		}

		uncle := g.node.child(p.dir.opposite())
		if /* im2 */ uncle.isRed() {
			p.node.color = Black
			uncle.color = Black
			g.node.color = Red
			path = path[:len(path)-2]
			continue
		}

		if /* im3 */ x.dir != p.dir {
			x.node.color = Black
			g.node.color = Red
			switch x.dir {
			case Left:
				tree.rightRotate(path[:len(path)-1])
			case Right:
				tree.leftRotate(path[:len(path)-1])
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] insert rebalance violate (im3)")
			}
		} else /* im4 */ {
			p.node.color = Black
			g.node.color = Red
		}

		switch /* im4 */ p.dir {
		case Left:
			tree.rightRotate(path[:len(path)-2])
		case Right:
			tree.leftRotate(path[:len(path)-2])
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] insert rebalance violate (im4)")
		}
		return
	}
}

/*
r1: The path holds only the root, unlink it directly. A lone child takes
its place and is painted black.

r2: Target node X has both children. Extend the path to the in-order
succ of X, the leftmost node of the right subtree, copy its key into X
and remove the succ instead. The succ has no left child, so the removal
falls through to r3.

	    {X}                  {S}
	    / \                  / \
	  {L} {R}   copy key   {L} {R}
	      /     ========>      /
	    {S}                  {S} <- unlink
	      \                    \
	      <c>                  <c>

r3: The bottom node Y has at most one child.
(1) Y is red, then both children are NIL, unlink directly.
(2) Y is black with a red child, the child takes Y's slot and is
repainted black.
(3) Y is black with no child. Unlinking it leaves one path short of a
black node. (black-violation) Enter removeRebalance.
*/
func (tree *rbTree[K]) removeAt(path []pathEntry[K]) {
	z := path[len(path)-1].node
	if /* r2 */ z.left != nil && z.right != nil {
		path = append(path, pathEntry[K]{node: z.right, dir: Right})
		for aux := z.right; aux.left != nil; aux = aux.left {
			path = append(path, pathEntry[K]{node: aux.left, dir: Left})
		}
		z.key = path[len(path)-1].node.key
	}
	tree.extractBottom(path)
}

// extractBottom unlinks the last path node, which has at most one child,
// and restores the black depth when a black node leaves the tree.
func (tree *rbTree[K]) extractBottom(path []pathEntry[K]) {
	last := len(path) - 1
	y := path[last].node
	child := y.left
	if child == nil {
		child = y.right
	}

	if /* r1 */ last == 0 {
		tree.root = child
		if child != nil {
			child.color = Black
		}
		y.left, y.right = nil, nil
		return
	}

	path[last-1].node.setChild(path[last].dir, child)

	if y.isBlack() {
		if /* r3 (2) */ child.isRed() {
			child.color = Black
		} else /* r3 (3) */ {
			tree.removeRebalance(path[:last], path[last].dir)
		}
	}
	y.left, y.right = nil, nil
}

func (tree *rbTree[K]) Remove(key K) error {
	if tree.count <= 0 {
		return ErrKeyNotFound
	}
	path, res := tree.descendTo(key)
	if res != 0 {
		return ErrKeyNotFound
	}
	tree.removeAt(path)
	tree.count--
	tree.stats.IncreaseRemovedCount()
	tree.stats.RecordKeyCount(-1)
	return nil
}

// RemoveMin unlinks the leftmost node and reports its key.
func (tree *rbTree[K]) RemoveMin() (K, error) {
	if tree.count <= 0 {
		var zero K
		return zero, ErrKeyNotFound
	}
	path := make([]pathEntry[K], 0, pathCapacity(tree.count))
	path = append(path, pathEntry[K]{node: tree.root, dir: Root})
	for aux := tree.root; aux.left != nil; aux = aux.left {
		path = append(path, pathEntry[K]{node: aux.left, dir: Left})
	}
	key := path[len(path)-1].node.key

	tree.extractBottom(path)
	tree.count--
	tree.stats.IncreaseRemovedCount()
	tree.stats.RecordKeyCount(-1)
	return key, nil
}

/*
The deficit side dir is the slot the lost black node occupied. The last
path entry holds its parent P. The sibling S sits on the other side of
P and is never NIL, otherwise the tree was already in black-violation
before the removal.

<X> is a RED node.
[X] is a BLACK node (or NIL).
{X} is either a RED node or a BLACK node.

Sc is the nephew on the deficit side, Sd the nephew on the far side.

rm1: The sibling S is red, so P, Sc and Sd must be black. Rotate P
towards the deficit and swap the colors of P and S. The deficit is not
fixed yet, but its new sibling (the old Sc) is black, so one of rm2-rm5
applies next. P joins the path below the risen S.

	  [P]                   <S>               [S]
	  / \    l-rotate(P)    / \    repaint    / \
	[*] <S>  ==========>  [P] [Sd]  ======>  <P> [Sd]
	    / \               / \                / \
	 [Sc] [Sd]          [*] [Sc]           [*] [Sc]

rm2: The parent P is red, S, Sc and Sd are black. Swapping the colors of
P and S pays the missing black depth back. Done.

	  <P>             [P]
	  / \             / \
	[*] [S]  ====>  [*] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm3: All of P, S, Sc and Sd are black. Repaint S into red to fix the
deficit locally, then the whole subtree of P is one black node short.
Pop P from the path and continue with P as the deficit side.

	  [P]             [P]
	  / \             / \
	[*] [S]  ====>  [*] <S>
	    / \             / \
	 [Sc] [Sd]       [Sc] [Sd]

rm4: The near nephew Sc is red, the far one Sd is black. P's color does
not matter. Rotate S away from the deficit and swap the colors of S and
Sc. Enter into rm5 to fix.

	                        {P}                {P}
	  {P}                   / \                / \
	  / \    r-rotate(S)  [*] <Sc>   repaint  [*] [Sc]
	[*] [S]  ==========>        \    ======>       \
	    / \                     [S]                <S>
	  <Sc> [Sd]                   \                  \
	                              [Sd]               [Sd]

rm5: The far nephew Sd is red. Rotate P towards the deficit: S rises
into P's slot and takes P's color, while P and Sd are painted black.
The deficit side gains one black node and the far side keeps its count.
Done.

	  {P}                   [S]                {S}
	  / \    l-rotate(P)    / \     repaint    / \
	[*] [S]  ==========>  {P} <Sd>  ======>  [P] [Sd]
	    / \               / \                / \
	 [Sc] <Sd>          [*] [Sc]           [*] [Sc]

A deficit that climbs above the root means the whole tree lost one
black level uniformly, which is fine.
*/
func (tree *rbTree[K]) removeRebalance(path []pathEntry[K], dir RBDirection) {
	for {
		if len(path) == 0 {
			return
		}

		p := path[len(path)-1].node
		sibling := p.child(dir.opposite())
		if sibling == nil {
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove rebalance without a sibling")
		}

		if /* rm1 */ sibling.isRed() {
			sibling.color = Black
			p.color = Red
			switch dir {
			case Left:
				tree.leftRotate(path)
			case Right:
				tree.rightRotate(path)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm1)")
			}
			path = append(path, pathEntry[K]{node: p, dir: dir})
			continue
		}

		sc, sd := sibling.child(dir), sibling.child(dir.opposite())
		if sc.isBlack() && sd.isBlack() {
			if /* rm2 */ p.isRed() {
				sibling.color = Red
				p.color = Black
				return
			}
			/* rm3 */
			sibling.color = Red
			dir = path[len(path)-1].dir
			path = path[:len(path)-1]
			continue
		}

		if /* rm4 */ sc.isRed() && sd.isBlack() {
			sub := append(path, pathEntry[K]{node: sibling, dir: dir.opposite()})
			switch dir {
			case Left:
				tree.rightRotate(sub)
			case Right:
				tree.leftRotate(sub)
			default:
				// impossible run to here
				panic( /* debug assertion */ "[rbtree] remove violate (rm4)")
			}
			sc.color = Black
			sibling.color = Red
			sibling = p.child(dir.opposite())
			sd = sibling.child(dir.opposite())
		}

		/* rm5 */
		pColor := p.color
		switch dir {
		case Left:
			tree.leftRotate(path)
		case Right:
			tree.rightRotate(path)
		default:
			// impossible run to here
			panic( /* debug assertion */ "[rbtree] remove violate (rm5)")
		}
		sibling.color = pColor
		p.color = Black
		sd.color = Black
		return
	}
}

func (tree *rbTree[K]) Search(key K) RBNode[K] {
	for aux := tree.root; aux != nil; {
		res := keyCompare(key, aux.key)
		if res == 0 {
			tree.stats.IncreaseSearchCount(true)
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	tree.stats.IncreaseSearchCount(false)
	return nil
}

func (tree *rbTree[K]) Contains(key K) bool {
	return tree.Search(key) != nil
}

func (tree *rbTree[K]) Min() RBNode[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root.minimum()
}

func (tree *rbTree[K]) Max() RBNode[K] {
	if tree.root == nil {
		return nil
	}
	return tree.root.maximum()
}

func (tree *rbTree[K]) Release() {
	size := tree.count
	aux := tree.root
	tree.root = nil
	tree.count = 0
	if aux == nil {
		return
	}

	stack := make([]*rbNode[K], 0, size>>1)
	for ; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}

	for len(stack) > 0 {
		aux = stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		r := aux.right
		aux.left, aux.right = nil, nil
		if r != nil {
			for aux = r; aux != nil; aux = aux.left {
				stack = append(stack, aux)
			}
		}
	}
	tree.stats.RecordKeyCount(-size)
}

type RBTreeOpt[K OrderedKey] func(*rbTree[K])

// WithRBTreeStats publishes tree counters through the global
// OpenTelemetry meter provider.
func WithRBTreeStats[K OrderedKey]() RBTreeOpt[K] {
	return func(tree *rbTree[K]) {
		tree.stats = newRBTreeStats()
	}
}

func NewRBTree[K OrderedKey](opts ...RBTreeOpt[K]) RBTree[K] {
	tree := &rbTree[K]{
		count: 0,
	}

	for _, o := range opts {
		o(tree)
	}
	return tree
}

var _ RBTree[uint64] = (*rbTree[uint64])(nil)
