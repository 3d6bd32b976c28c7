package bintree

import (
	"fmt"
	"iter"

	"github.com/npillmayer/bintree/augment"
)

// Flag selects one of the independent marks of a tree with Marking.
type Flag = augment.Flag

func unavailable(name string) error {
	return fmt.Errorf("%w: tree has no %s augmentation", ErrAugmentationUnavailable, name)
}

// BalanceFactor returns height(right(x)) - height(left(x)), as maintained by
// Balancing.
func (t *Tree[T]) BalanceFactor(x Pos) (int, error) {
	if t.avl == nil {
		return 0, unavailable("balancing")
	}
	if err := t.owned(x); err != nil {
		return 0, err
	}
	return t.avl.BalanceFactor(x), nil
}

// SubtreeSize returns the number of nodes in the subtree of x, as maintained
// by Indexing.
func (t *Tree[T]) SubtreeSize(x Pos) (int, error) {
	if t.ix == nil {
		return 0, unavailable("indexing")
	}
	if err := t.owned(x); err != nil {
		return 0, err
	}
	return t.ix.Size(x), nil
}

// ElementAt returns the position with in-order index i. It fails with
// ErrIndexOutOfRange if i is not in [0, Len()).
func (t *Tree[T]) ElementAt(i int) (Pos, error) {
	if t.ix == nil {
		return t.Nil(), unavailable("indexing")
	}
	return t.ix.At(i)
}

// At returns the value with in-order index i.
func (t *Tree[T]) At(i int) (T, error) {
	x, err := t.ElementAt(i)
	if err != nil {
		var zero T
		return zero, err
	}
	return t.Value(x), nil
}

// IndexOf returns the in-order index of x. The index of nil is Len().
func (t *Tree[T]) IndexOf(x Pos) (int, error) {
	if t.ix == nil {
		return 0, unavailable("indexing")
	}
	if err := t.owned(x); err != nil {
		return 0, err
	}
	return t.ix.IndexOf(x), nil
}

// Mark marks x with flag f and reports whether x was unmarked before.
func (t *Tree[T]) Mark(x Pos, f Flag) (bool, error) {
	if t.mark == nil {
		return false, unavailable("marking")
	}
	return t.mark.Mark(x, f)
}

// Unmark removes flag f from x and reports whether x was marked before.
func (t *Tree[T]) Unmark(x Pos, f Flag) (bool, error) {
	if t.mark == nil {
		return false, unavailable("marking")
	}
	return t.mark.Unmark(x, f)
}

// Marked reports whether x is marked with f.
func (t *Tree[T]) Marked(x Pos, f Flag) (bool, error) {
	if t.mark == nil {
		return false, unavailable("marking")
	}
	return t.mark.Marked(x, f)
}

// MarkedCount returns the number of nodes marked with f.
func (t *Tree[T]) MarkedCount(f Flag) (int, error) {
	if t.mark == nil {
		return 0, unavailable("marking")
	}
	return t.mark.Count(t.Root(), f)
}

// MarkedMinimum returns the first node marked with f, or nil.
func (t *Tree[T]) MarkedMinimum(f Flag) (Pos, error) {
	if t.mark == nil {
		return t.Nil(), unavailable("marking")
	}
	return t.mark.Minimum(t.Root(), f)
}

// MarkedMaximum returns the last node marked with f, or nil.
func (t *Tree[T]) MarkedMaximum(f Flag) (Pos, error) {
	if t.mark == nil {
		return t.Nil(), unavailable("marking")
	}
	return t.mark.Maximum(t.Root(), f)
}

// NextMarked returns the first node after x which is marked with f, or nil.
func (t *Tree[T]) NextMarked(x Pos, f Flag) (Pos, error) {
	if t.mark == nil {
		return t.Nil(), unavailable("marking")
	}
	return t.mark.Next(x, f)
}

// PrevMarked returns the last node before x which is marked with f, or nil.
// PrevMarked of nil is the last marked node.
func (t *Tree[T]) PrevMarked(x Pos, f Flag) (Pos, error) {
	if t.mark == nil {
		return t.Nil(), unavailable("marking")
	}
	return t.mark.Prev(x, f)
}

// MarkedPositions yields the positions marked with f in in-order sequence.
// Marks must not be changed during the iteration.
func (t *Tree[T]) MarkedPositions(f Flag) (iter.Seq[Pos], error) {
	first, err := t.MarkedMinimum(f)
	if err != nil {
		return nil, err
	}
	return func(yield func(Pos) bool) {
		for x := first; !t.IsNil(x); x, _ = t.mark.Next(x, f) {
			if !yield(x) {
				return
			}
		}
	}, nil
}

// MarkedValues returns the values marked with f in in-order sequence.
func (t *Tree[T]) MarkedValues(f Flag) ([]T, error) {
	seq, err := t.MarkedPositions(f)
	if err != nil {
		return nil, err
	}
	var values []T
	for x := range seq {
		values = append(values, t.Value(x))
	}
	return values, nil
}

// Order reports whether x comes before y in in-order sequence. Nil counts
// as the end of the sequence.
func (t *Tree[T]) Order(x, y Pos) (bool, error) {
	if t.ord == nil {
		return false, unavailable("ordering")
	}
	if err := t.owned(x); err != nil {
		return false, err
	}
	if err := t.owned(y); err != nil {
		return false, err
	}
	return t.ord.Order(x, y), nil
}
