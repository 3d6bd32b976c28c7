/*
Package literal provides tree literals: read-only binary tree shapes used to
seed trees with a given topology in one pass.

	// in-order 1 2 3 4 5, perfectly balanced
	shape := literal.New(
	    literal.New(literal.Leaf(1), 2, nil),
	    3,
	    literal.New(literal.Leaf(4), 5, nil))

A nil *Shape is the empty tree. Shapes are immutable; sub-shapes may be shared
between several literals.
*/
package literal

import (
	"fmt"
	"strings"
)

// Shape is a node of a tree literal.
type Shape[T any] struct {
	left, right *Shape[T]
	value       T
	size        int
}

// New creates a literal node with the given subtrees.
func New[T any](left *Shape[T], v T, right *Shape[T]) *Shape[T] {
	return &Shape[T]{
		left:  left,
		right: right,
		value: v,
		size:  1 + left.Size() + right.Size(),
	}
}

// Leaf creates a literal node without children.
func Leaf[T any](v T) *Shape[T] {
	return New(nil, v, nil)
}

// Balanced creates a literal from values in in-order, as balanced as
// possible (the middle element becomes the root).
func Balanced[T any](values ...T) *Shape[T] {
	if len(values) == 0 {
		return nil
	}
	mid := len(values) / 2
	return New(Balanced(values[:mid]...), values[mid], Balanced(values[mid+1:]...))
}

// Size returns the number of nodes in the literal.
func (s *Shape[T]) Size() int {
	if s == nil {
		return 0
	}
	return s.size
}

// Value returns the value of a literal node.
func (s *Shape[T]) Value() T {
	if s == nil {
		var zero T
		return zero
	}
	return s.value
}

// Left returns the left sub-literal.
func (s *Shape[T]) Left() *Shape[T] {
	if s == nil {
		return nil
	}
	return s.left
}

// Right returns the right sub-literal.
func (s *Shape[T]) Right() *Shape[T] {
	if s == nil {
		return nil
	}
	return s.right
}

// Values returns the in-order sequence of values.
func (s *Shape[T]) Values() []T {
	out := make([]T, 0, s.Size())
	var walk func(*Shape[T])
	walk = func(n *Shape[T]) {
		if n == nil {
			return
		}
		walk(n.left)
		out = append(out, n.value)
		walk(n.right)
	}
	walk(s)
	return out
}

// String renders a literal in parenthesized form, e.g. "((1) 2 (3))".
func (s *Shape[T]) String() string {
	var b strings.Builder
	var walk func(*Shape[T])
	walk = func(n *Shape[T]) {
		if n == nil {
			b.WriteString("()")
			return
		}
		b.WriteByte('(')
		if n.left != nil {
			walk(n.left)
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%v", n.value)
		if n.right != nil {
			b.WriteByte(' ')
			walk(n.right)
		}
		b.WriteByte(')')
	}
	walk(s)
	return b.String()
}

// Branches adapts literals to the link contract of package bst.
type Branches[T any] struct{}

// IsNil reports whether s is the empty literal.
func (Branches[T]) IsNil(s *Shape[T]) bool { return s == nil }

// Left returns the left sub-literal.
func (Branches[T]) Left(s *Shape[T]) *Shape[T] { return s.Left() }

// Right returns the right sub-literal.
func (Branches[T]) Right(s *Shape[T]) *Shape[T] { return s.Right() }
