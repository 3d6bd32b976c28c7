package bst

// IsLeaf reports whether x is a node without children. Nil is not a leaf.
func IsLeaf[P comparable](b Branches[P], x P) bool {
	if b.IsNil(x) {
		return false
	}
	return b.IsNil(b.Left(x)) && b.IsNil(b.Right(x))
}

// Minimum returns the leftmost position of the subtree at x.
func Minimum[P comparable](b Branches[P], x P) P {
	if b.IsNil(x) {
		return x
	}
	for l := b.Left(x); !b.IsNil(l); l = b.Left(x) {
		x = l
	}
	return x
}

// Maximum returns the rightmost position of the subtree at x.
func Maximum[P comparable](b Branches[P], x P) P {
	if b.IsNil(x) {
		return x
	}
	for r := b.Right(x); !b.IsNil(r); r = b.Right(x) {
		x = r
	}
	return x
}

// Parent returns the parent of x, or nil for the root.
func Parent[P comparable](l Links[P], x P) P {
	if l.IsNil(x) {
		return x
	}
	return l.Parent(x)
}

// Root walks up from x to the topmost non-nil ancestor.
func Root[P comparable](l Links[P], x P) P {
	if l.IsNil(x) {
		return x
	}
	for p := l.Parent(x); !l.IsNil(p); p = l.Parent(x) {
		x = p
	}
	return x
}

// Sibling returns the other child of x's parent. The sibling of the root is
// nil.
func Sibling[P comparable](l Links[P], x P) P {
	if l.IsNil(x) {
		return x
	}
	p := l.Parent(x)
	if l.IsNil(p) {
		return p
	}
	if l.Left(p) == x {
		return l.Right(p)
	}
	return l.Left(p)
}

// IsLeftChild reports whether x is the left child of its parent.
func IsLeftChild[P comparable](l Links[P], x P) bool {
	if l.IsNil(x) {
		return false
	}
	p := l.Parent(x)
	return !l.IsNil(p) && l.Left(p) == x
}

// Successor returns the in-order successor of x, nil if x is the last
// position.
func Successor[P comparable](l Links[P], x P) P {
	if l.IsNil(x) {
		return x
	}
	if r := l.Right(x); !l.IsNil(r) {
		return Minimum[P](l, r)
	}
	p := l.Parent(x)
	for !l.IsNil(p) && x == l.Right(p) {
		x = p
		p = l.Parent(p)
	}
	return p
}

// Predecessor returns the in-order predecessor of x, nil if x is the first
// position.
func Predecessor[P comparable](l Links[P], x P) P {
	if l.IsNil(x) {
		return x
	}
	if lc := l.Left(x); !l.IsNil(lc) {
		return Maximum[P](l, lc)
	}
	p := l.Parent(x)
	for !l.IsNil(p) && x == l.Left(p) {
		x = p
		p = l.Parent(p)
	}
	return p
}

// RollDownLeft descends from x to a leaf, preferring left children. It
// returns the first position of a post-order traversal of x's subtree.
func RollDownLeft[P comparable](b Branches[P], x P) P {
	if b.IsNil(x) {
		return x
	}
	for !IsLeaf(b, x) {
		if l := b.Left(x); !b.IsNil(l) {
			x = l
		} else {
			x = b.Right(x)
		}
	}
	return x
}

// RollDownRight descends from x to a leaf, preferring right children.
func RollDownRight[P comparable](b Branches[P], x P) P {
	if b.IsNil(x) {
		return x
	}
	for !IsLeaf(b, x) {
		if r := b.Right(x); !b.IsNil(r) {
			x = r
		} else {
			x = b.Left(x)
		}
	}
	return x
}

// Depth counts the edges between x and the root. The depth of nil is -1.
func Depth[P comparable](l Links[P], x P) int {
	d := -1
	for ; !l.IsNil(x); x = l.Parent(x) {
		d++
	}
	return d
}

// Height returns the number of nodes on the longest downward path starting
// at x. The height of nil is 0, the height of a leaf is 1.
//
// Height is recursive.
func Height[P comparable](b Branches[P], x P) int {
	if b.IsNil(x) {
		return 0
	}
	return 1 + max(Height(b, b.Left(x)), Height(b, b.Right(x)))
}

// TopologicallyEqual reports whether the subtrees at x and y have the same
// shape and pairwise equal values. The two subtrees may live in different
// kinds of trees.
//
// TopologicallyEqual is recursive.
func TopologicallyEqual[P, Q comparable](a Branches[P], x P, b Branches[Q], y Q, eq func(P, Q) bool) bool {
	xnil, ynil := a.IsNil(x), b.IsNil(y)
	if xnil || ynil {
		return xnil && ynil
	}
	return eq(x, y) &&
		TopologicallyEqual(a, a.Left(x), b, b.Left(y), eq) &&
		TopologicallyEqual(a, a.Right(x), b, b.Right(y), eq)
}

// Size counts the positions in the subtree at x.
func Size[P comparable](b Branches[P], x P) int {
	if b.IsNil(x) {
		return 0
	}
	return 1 + Size(b, b.Left(x)) + Size(b, b.Right(x))
}
