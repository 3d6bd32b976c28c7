package bintree

import (
	"fmt"
	"iter"
	"slices"

	"github.com/npillmayer/bintree/bst"
	"github.com/npillmayer/bintree/literal"
)

// List is a sequence container on a balanced, indexed tree. Insertion and
// erasure at any iterator as well as access by index take O(log n).
type List[T any] struct {
	tree *Tree[T]
}

// NewList creates an empty list. Balancing and Indexing are stacked
// automatically; further augmentations may be given as options.
func NewList[T any](opts ...Option) (*List[T], error) {
	t, err := newTree[T](listConfig(opts...))
	if err != nil {
		return nil, err
	}
	return &List[T]{tree: t}, nil
}

// ListOf creates a list holding values.
func ListOf[T any](values ...T) (*List[T], error) {
	t, err := newTree[T](listConfig())
	if err != nil {
		return nil, err
	}
	if err := t.graft(literal.Branches[T]{}, literal.Balanced(values...), (*literal.Shape[T]).Value); err != nil {
		t.Release()
		return nil, err
	}
	return &List[T]{tree: t}, nil
}

func listConfig(opts ...Option) Config {
	cfg := Config{}.apply(opts...)
	has := func(name string) bool {
		return slices.ContainsFunc(cfg.Augmentations, func(a Augmentation) bool { return a.name == name })
	}
	if !has("avl") {
		cfg.Augmentations = append(cfg.Augmentations, Balancing())
	}
	if !has("indexing") {
		cfg.Augmentations = append(cfg.Augmentations, Indexing())
	}
	return cfg
}

// Tree returns the tree holding the list's values. Clients must not change
// the tree's structure.
func (l *List[T]) Tree() *Tree[T] {
	return l.tree
}

// Len returns the number of values.
func (l *List[T]) Len() int {
	return l.tree.Len()
}

// Begin returns an iterator at the first value.
func (l *List[T]) Begin() Iter[T] {
	return l.tree.Begin()
}

// End returns the iterator past the last value.
func (l *List[T]) End() Iter[T] {
	return l.tree.End()
}

// All yields the values in sequence.
func (l *List[T]) All() iter.Seq[T] {
	return l.tree.All()
}

// Values returns the values in sequence.
func (l *List[T]) Values() []T {
	return l.tree.Values()
}

// At returns the value at index i.
func (l *List[T]) At(i int) (T, error) {
	return l.tree.At(i)
}

// Set replaces the value at index i.
func (l *List[T]) Set(i int, v T) error {
	x, err := l.tree.ElementAt(i)
	if err != nil {
		return err
	}
	return l.tree.Set(x, v)
}

// IterAt returns an iterator at index i. Index Len() yields End.
func (l *List[T]) IterAt(i int) (Iter[T], error) {
	if i == l.Len() {
		return l.End(), nil
	}
	x, err := l.tree.ElementAt(i)
	if err != nil {
		return l.End(), err
	}
	return l.tree.IterAt(x), nil
}

// Front returns the first value.
func (l *List[T]) Front() (T, error) {
	return l.tree.At(0)
}

// Back returns the last value.
func (l *List[T]) Back() (T, error) {
	return l.tree.At(l.Len() - 1)
}

func (l *List[T]) check(it Iter[T]) error {
	if it.tree != l.tree {
		return fmt.Errorf("%w: iterator does not belong to this list", ErrInvalidOperation)
	}
	return nil
}

// InsertBefore inserts v before it and returns an iterator at the new value.
// Inserting before End appends.
func (l *List[T]) InsertBefore(it Iter[T], v T) (Iter[T], error) {
	if err := l.check(it); err != nil {
		return it, err
	}
	t := l.tree
	var x Pos
	var err error
	switch pos := it.Pos(); {
	case t.IsNil(pos) && t.IsEmpty():
		x, err = t.InsertRight(t.Nil(), v)
	case t.IsNil(pos):
		x, err = t.InsertRight(bst.Maximum[Pos](t.chain, t.Root()), v)
	case t.IsNil(t.Left(pos)):
		x, err = t.InsertLeft(pos, v)
	default:
		x, err = t.InsertRight(bst.Maximum[Pos](t.chain, t.Left(pos)), v)
	}
	if err != nil {
		return it, err
	}
	return t.IterAt(x), nil
}

// InsertAfter inserts v after it and returns an iterator at the new value.
// it must not be End.
func (l *List[T]) InsertAfter(it Iter[T], v T) (Iter[T], error) {
	if err := l.check(it); err != nil {
		return it, err
	}
	t := l.tree
	pos := it.Pos()
	if t.IsNil(pos) {
		return it, fmt.Errorf("%w: cannot insert after the end", ErrInvalidOperation)
	}
	var x Pos
	var err error
	if t.IsNil(t.Right(pos)) {
		x, err = t.InsertRight(pos, v)
	} else {
		x, err = t.InsertLeft(bst.Minimum[Pos](t.chain, t.Right(pos)), v)
	}
	if err != nil {
		return it, err
	}
	return t.IterAt(x), nil
}

// PushBack appends v.
func (l *List[T]) PushBack(v T) error {
	_, err := l.InsertBefore(l.End(), v)
	return err
}

// PushFront prepends v.
func (l *List[T]) PushFront(v T) error {
	_, err := l.InsertBefore(l.Begin(), v)
	return err
}

// PopBack removes and returns the last value.
func (l *List[T]) PopBack() (T, error) {
	return l.pop(l.End().Prev())
}

// PopFront removes and returns the first value.
func (l *List[T]) PopFront() (T, error) {
	return l.pop(l.Begin())
}

func (l *List[T]) pop(it Iter[T]) (T, error) {
	if it.AtEnd() {
		var zero T
		return zero, fmt.Errorf("%w: list is empty", ErrInvalidOperation)
	}
	v := it.Value()
	if _, err := l.tree.Erase(it.Pos()); err != nil {
		return v, err
	}
	return v, nil
}

// Erase removes the value at it and returns an iterator at the value
// following it.
func (l *List[T]) Erase(it Iter[T]) (Iter[T], error) {
	if err := l.check(it); err != nil {
		return it, err
	}
	next, err := l.tree.Erase(it.Pos())
	if err != nil {
		return it, err
	}
	return l.tree.IterAt(next), nil
}

// EraseRange removes the values from 'from' up to, but excluding, 'to' and
// returns 'to'.
func (l *List[T]) EraseRange(from, to Iter[T]) (Iter[T], error) {
	if err := l.check(from); err != nil {
		return to, err
	}
	if err := l.check(to); err != nil {
		return to, err
	}
	i, _ := l.tree.IndexOf(from.Pos())
	j, _ := l.tree.IndexOf(to.Pos())
	if i > j {
		return to, fmt.Errorf("%w: range [%d, %d) is reversed", ErrInvalidOperation, i, j)
	}
	it := from
	for n := j - i; n > 0; n-- {
		var err error
		if it, err = l.Erase(it); err != nil {
			return it, err
		}
	}
	return it, nil
}
