package bintree

import (
	"iter"

	"github.com/npillmayer/bintree/bst"
)

// Iter is a value iterator: a position which moves in in-order sequence.
// The end of the sequence is the nil position. Iterators are small values
// and may be compared with ==.
type Iter[T any] struct {
	tree *Tree[T]
	pos  Pos
}

// Begin returns an iterator at the first node, or End for an empty tree.
func (t *Tree[T]) Begin() Iter[T] {
	return Iter[T]{tree: t, pos: bst.Minimum[Pos](t.chain, t.Root())}
}

// End returns the iterator past the last node.
func (t *Tree[T]) End() Iter[T] {
	return Iter[T]{tree: t, pos: t.Nil()}
}

// IterAt returns an iterator at position x.
func (t *Tree[T]) IterAt(x Pos) Iter[T] {
	return Iter[T]{tree: t, pos: x}
}

// Next moves to the next node. Next of End is End.
func (it Iter[T]) Next() Iter[T] {
	if it.AtEnd() {
		return it
	}
	it.pos = bst.Successor[Pos](it.tree.chain, it.pos)
	return it
}

// Prev moves to the previous node. Prev of End is the last node, Prev of the
// first node is End.
func (it Iter[T]) Prev() Iter[T] {
	t := it.tree
	if it.AtEnd() {
		it.pos = bst.Maximum[Pos](t.chain, t.Root())
		return it
	}
	it.pos = bst.Predecessor[Pos](t.chain, it.pos)
	return it
}

// AtEnd reports whether it is past the last node.
func (it Iter[T]) AtEnd() bool {
	return it.tree.IsNil(it.pos)
}

// Pos returns the position of it.
func (it Iter[T]) Pos() Pos {
	return it.pos
}

// Value returns the value at it, or the zero value at the end.
func (it Iter[T]) Value() T {
	return it.tree.Value(it.pos)
}

// All yields the values of t in in-order sequence.
func (t *Tree[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range bst.InOrder[Pos](t.chain, t.Root()) {
			if !yield(t.Value(x)) {
				return
			}
		}
	}
}

// Backward yields the values of t in reverse in-order sequence.
func (t *Tree[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		for x := range bst.InOrderBackward[Pos](t.chain, t.Root()) {
			if !yield(t.Value(x)) {
				return
			}
		}
	}
}

// Positions yields the positions of t in in-order sequence.
func (t *Tree[T]) Positions() iter.Seq[Pos] {
	return bst.InOrder[Pos](t.chain, t.Root())
}

// Values returns the values of t in in-order sequence.
func (t *Tree[T]) Values() []T {
	values := make([]T, 0, t.Len())
	for v := range t.All() {
		values = append(values, v)
	}
	return values
}
