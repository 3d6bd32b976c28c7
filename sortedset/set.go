package sortedset

import (
	"fmt"
	"iter"

	"github.com/npillmayer/bintree"
	"golang.org/x/exp/constraints"
)

// Set is an ordered set of values.
type Set[T constraints.Ordered] struct {
	tree *bintree.Tree[T]
}

// New creates an empty set. The set's tree is balanced and indexed; opts may
// configure an allocator, tracing or further augmentations.
func New[T constraints.Ordered](opts ...bintree.Option) (*Set[T], error) {
	opts = append([]bintree.Option{bintree.With(bintree.Balancing(), bintree.Indexing())}, opts...)
	t, err := bintree.New[T](opts...)
	if err != nil {
		return nil, err
	}
	return &Set[T]{tree: t}, nil
}

// Of creates a set holding values. Duplicates are dropped.
func Of[T constraints.Ordered](values ...T) (*Set[T], error) {
	s, err := New[T]()
	if err != nil {
		return nil, err
	}
	for _, v := range values {
		if _, err := s.Insert(v); err != nil {
			s.tree.Release()
			return nil, err
		}
	}
	return s, nil
}

// Tree returns the tree holding the set's values. Clients must not change
// the tree's structure or values.
func (s *Set[T]) Tree() *bintree.Tree[T] {
	return s.tree
}

// Len returns the number of values in s.
func (s *Set[T]) Len() int {
	return s.tree.Len()
}

// find returns the node holding v. If v is not in s, it returns nil and the
// node below which v would have to be inserted.
func (s *Set[T]) find(v T) (x, parent bintree.Pos, right bool) {
	t := s.tree
	x, parent = t.Root(), t.Nil()
	for !t.IsNil(x) {
		switch w := t.Value(x); {
		case v == w:
			return
		case v < w:
			parent, x, right = x, t.Left(x), false
		default:
			parent, x, right = x, t.Right(x), true
		}
	}
	return
}

// Insert adds v to s and reports whether it was missing. It fails only if
// the allocator is exhausted.
func (s *Set[T]) Insert(v T) (bool, error) {
	x, parent, right := s.find(v)
	if !s.tree.IsNil(x) {
		return false, nil
	}
	var err error
	if right {
		_, err = s.tree.InsertRight(parent, v)
	} else {
		_, err = s.tree.InsertLeft(parent, v)
	}
	if err != nil {
		tracer().Errorf("sortedset: insert of %v failed: %v", v, err)
		return false, err
	}
	return true, nil
}

// Remove deletes v from s and reports whether it was present.
func (s *Set[T]) Remove(v T) bool {
	x, _, _ := s.find(v)
	if s.tree.IsNil(x) {
		return false
	}
	_, err := s.tree.Erase(x)
	assert(err == nil, "sortedset: erase of a member failed")
	return true
}

// Has reports whether v is in s.
func (s *Set[T]) Has(v T) bool {
	x, _, _ := s.find(v)
	return !s.tree.IsNil(x)
}

// Min returns the smallest value. The second return value is false for an
// empty set.
func (s *Set[T]) Min() (T, bool) {
	it := s.tree.Begin()
	if it.AtEnd() {
		var zero T
		return zero, false
	}
	return it.Value(), true
}

// Max returns the largest value. The second return value is false for an
// empty set.
func (s *Set[T]) Max() (T, bool) {
	it := s.tree.End().Prev()
	if it.AtEnd() {
		var zero T
		return zero, false
	}
	return it.Value(), true
}

// Floor returns the largest value less than or equal to v.
func (s *Set[T]) Floor(v T) (T, bool) {
	t := s.tree
	var floor T
	found := false
	for x := t.Root(); !t.IsNil(x); {
		switch w := t.Value(x); {
		case w == v:
			return w, true
		case w < v:
			floor, found = w, true
			x = t.Right(x)
		default:
			x = t.Left(x)
		}
	}
	return floor, found
}

// Ceil returns the smallest value greater than or equal to v.
func (s *Set[T]) Ceil(v T) (T, bool) {
	t := s.tree
	var ceil T
	found := false
	for x := t.Root(); !t.IsNil(x); {
		switch w := t.Value(x); {
		case w == v:
			return w, true
		case w > v:
			ceil, found = w, true
			x = t.Left(x)
		default:
			x = t.Right(x)
		}
	}
	return ceil, found
}

// Rank returns the number of values in s which are less than v. v need not
// be in s.
func (s *Set[T]) Rank(v T) int {
	t := s.tree
	rank := 0
	for x := t.Root(); !t.IsNil(x); {
		if v <= t.Value(x) {
			x = t.Left(x)
			continue
		}
		rank += s.size(t.Left(x)) + 1
		x = t.Right(x)
	}
	return rank
}

// Select returns the value of rank i, i.e. the (i+1)-th smallest value. It
// fails with bintree.ErrIndexOutOfRange if i is not in [0, Len()).
func (s *Set[T]) Select(i int) (T, error) {
	return s.tree.At(i)
}

func (s *Set[T]) size(x bintree.Pos) int {
	n, err := s.tree.SubtreeSize(x)
	assert(err == nil, "sortedset: tree is not indexed")
	return n
}

// All yields the values in ascending order.
func (s *Set[T]) All() iter.Seq[T] {
	return s.tree.All()
}

// Backward yields the values in descending order.
func (s *Set[T]) Backward() iter.Seq[T] {
	return s.tree.Backward()
}

// Values returns the values in ascending order.
func (s *Set[T]) Values() []T {
	return s.tree.Values()
}

// Clear removes all values.
func (s *Set[T]) Clear() {
	s.tree.Clear()
}

// Check verifies the tree's invariants and the ordering of the values.
func (s *Set[T]) Check() error {
	if err := s.tree.Check(); err != nil {
		return err
	}
	first := true
	var prev T
	for v := range s.All() {
		if !first && prev >= v {
			return fmt.Errorf("%w: values %v and %v out of order", bintree.ErrInvariantViolated, prev, v)
		}
		prev, first = v, false
	}
	return nil
}
