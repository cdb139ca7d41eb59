package tree

import (
	"fmt"
	"strings"
)

// Render draws the tree sideways with box characters, right subtree
// above its parent, left below, every key suffixed with its color
// letter. An empty tree renders to an empty string.
//
//	└─47b
//	  ├─52b
//	  └─24b
//	    ├─35r
//	    └─3r
//
// A right child keeps the branch of its parent level open with "│ ",
// the root and left children close it with plain indent.
func (tree *rbTree[K]) Render() string {
	var sb strings.Builder
	prefixes := make([]string, 1, 8)
	tree.Walk(func(key K, color RBColor, depth int, dir RBDirection) bool {
		branch, indent := "└─", "  "
		if dir == Right {
			branch, indent = "├─", "│ "
		}
		letter := byte('b')
		if color == Red {
			letter = 'r'
		}
		fmt.Fprintf(&sb, "%s%s%v%c\n", prefixes[depth], branch, key, letter)

		if child := prefixes[depth] + indent; len(prefixes) == depth+1 {
			prefixes = append(prefixes, child)
		} else {
			prefixes[depth+1] = child
		}
		return true
	})
	return sb.String()
}
