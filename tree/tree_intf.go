package tree

import "iter"

// go install golang.org/x/tools/cmd/stringer@latest

//go:generate stringer -type=RBColor
type RBColor uint8

const (
	Black RBColor = iota
	Red
)

//go:generate stringer -type=RBDirection
type RBDirection int8

const (
	Left RBDirection = -1 + iota
	Root
	Right
)

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
// If future releases of Go add new predeclared unsigned integer types,
// this constraint will be modified to include them.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Integer is a constraint that permits any integer type.
// If future releases of Go add new predeclared integer types,
// this constraint will be modified to include them.
type Integer interface {
	Signed | Unsigned
}

// Float is a constraint that permits any floating-point type.
// If future releases of Go add new predeclared floating-point types,
// this constraint will be modified to include them.
type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// RBNode is the read-only view of a tree node. The key doubles as the
// stored value, so there is no separate payload accessor.
type RBNode[K OrderedKey] interface {
	Key() K
	Color() RBColor
	Left() RBNode[K]
	Right() RBNode[K]
}

// RBTree keeps no parent back-references inside the nodes. Every mutation
// rebuilds the ancestor path on the way down instead, which keeps each
// node at two links and one color byte. Not safe for concurrent use.
type RBTree[K OrderedKey] interface {
	Len() int64
	Root() RBNode[K]
	Insert(key K) error
	Remove(key K) error
	RemoveMin() (K, error)
	Search(key K) RBNode[K]
	Contains(key K) bool
	Min() RBNode[K]
	Max() RBNode[K]
	InOrder() iter.Seq[K]
	Foreach(action func(idx int64, color RBColor, key K) bool)
	Walk(action func(key K, color RBColor, depth int, dir RBDirection) bool)
	Render() string
	IsValid() bool
	Release()
}

type RBTreeErr string

const (
	ErrKeyAlreadyPresent RBTreeErr = "[rbtree] key already present"
	ErrKeyNotFound       RBTreeErr = "[rbtree] key not found"
)

func (err RBTreeErr) Error() string {
	return string(err)
}
