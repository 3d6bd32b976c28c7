package bst

import "iter"

// InOrder iterates the subtree at root in in-order (left, self, right).
//
// The tree must not be modified during iteration.
func InOrder[P comparable](l Links[P], root P) iter.Seq[P] {
	return func(yield func(P) bool) {
		if l.IsNil(root) {
			return
		}
		last := Maximum[P](l, root)
		for x := Minimum[P](l, root); ; x = Successor(l, x) {
			if !yield(x) || x == last {
				return
			}
		}
	}
}

// InOrderBackward iterates the subtree at root in reverse in-order.
//
// The tree must not be modified during iteration.
func InOrderBackward[P comparable](l Links[P], root P) iter.Seq[P] {
	return func(yield func(P) bool) {
		if l.IsNil(root) {
			return
		}
		first := Minimum[P](l, root)
		for x := Maximum[P](l, root); ; x = Predecessor(l, x) {
			if !yield(x) || x == first {
				return
			}
		}
	}
}

// PostOrder iterates the subtree at root in post-order (left, right, self).
//
// The successor of a position is determined before the position is yielded,
// so the consumer may destroy the yielded node. Children are always visited
// before their parent, which makes PostOrder suitable for tearing down trees.
func PostOrder[P comparable](l Links[P], root P) iter.Seq[P] {
	return func(yield func(P) bool) {
		if l.IsNil(root) {
			return
		}
		x := RollDownLeft[P](l, root)
		for {
			var next P
			done := x == root
			if !done {
				p := l.Parent(x)
				if r := l.Right(p); x == r || l.IsNil(r) {
					next = p
				} else {
					next = RollDownLeft[P](l, r)
				}
			}
			if !yield(x) || done {
				return
			}
			x = next
		}
	}
}

// PreOrder iterates the subtree at root in pre-order (self, left, right).
//
// PreOrder uses an explicit stack and works on Branches only.
func PreOrder[P comparable](b Branches[P], root P) iter.Seq[P] {
	return func(yield func(P) bool) {
		if b.IsNil(root) {
			return
		}
		stack := []P{root}
		for len(stack) > 0 {
			x := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !yield(x) {
				return
			}
			if r := b.Right(x); !b.IsNil(r) {
				stack = append(stack, r)
			}
			if lc := b.Left(x); !b.IsNil(lc) {
				stack = append(stack, lc)
			}
		}
	}
}
