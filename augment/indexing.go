package augment

import (
	"fmt"

	"github.com/npillmayer/bintree/node"
)

// Indexing maintains the size of every subtree. This makes positional
// access by in-order index and the reverse O(depth).
type Indexing struct {
	Base
}

// NewIndexing creates an order-statistics layer.
func NewIndexing() *Indexing {
	return &Indexing{}
}

func (ix *Indexing) Name() string { return "indexing" }

func (ix *Indexing) Slots() int { return 1 }

// Size returns the number of nodes in the subtree rooted at x.
func (ix *Indexing) Size(x node.Pos) int {
	return ix.slot(x, 0)
}

func (ix *Indexing) Fresh(x node.Pos) {
	ix.setSlot(x, 0, 1)
}

// Insert counts the new node on the path from its parent to the root before
// the node is linked.
func (ix *Indexing) Insert(x node.Pos, side node.Side, inner func() (node.Pos, error)) (node.Pos, error) {
	ix.addPath(x, 1)
	n, err := inner()
	if err != nil {
		ix.addPath(x, -1)
	}
	return n, err
}

func (ix *Indexing) Erase(x node.Pos, inner func() error) error {
	p := ix.host.Parent(x)
	ix.addPath(p, -1)
	if err := inner(); err != nil {
		ix.addPath(p, 1)
		return err
	}
	return nil
}

// EraseReplace uncounts one node on the path from hint's parent up. This
// includes x, whose size hint inherits.
func (ix *Indexing) EraseReplace(x, hint node.Pos, inner func() error) error {
	p := ix.host.Parent(hint)
	ix.addPath(p, -1)
	if err := inner(); err != nil {
		ix.addPath(p, 1)
		return err
	}
	return nil
}

func (ix *Indexing) Rotate(x node.Pos, dir node.Side, inner func() (node.Pos, error)) (node.Pos, error) {
	y, err := inner()
	if err != nil {
		return y, err
	}
	ix.recompute(x) // x is now a child of y
	ix.recompute(y)
	return y, nil
}

func (ix *Indexing) recompute(x node.Pos) {
	h := ix.host
	ix.setSlot(x, 0, ix.Size(h.Left(x))+ix.Size(h.Right(x))+1)
}

func (ix *Indexing) addPath(x node.Pos, d int) {
	h := ix.host
	for ; !h.IsNil(x); x = h.Parent(x) {
		ix.addSlot(x, 0, d)
	}
}

// At returns the node at in-order index i.
func (ix *Indexing) At(i int) (node.Pos, error) {
	h := ix.host
	if i < 0 || i >= ix.Size(h.Root()) {
		return h.Nil(), fmt.Errorf("%w: index %d, size %d", node.ErrIndexOutOfRange, i, ix.Size(h.Root()))
	}
	x := h.Root()
	for {
		l := ix.Size(h.Left(x))
		switch {
		case i < l:
			x = h.Left(x)
		case i == l:
			return x, nil
		default:
			i -= l + 1
			x = h.Right(x)
		}
	}
}

// IndexOf returns the in-order index of x. The index of nil is the number
// of nodes, i.e. the position past the last one.
func (ix *Indexing) IndexOf(x node.Pos) int {
	h := ix.host
	if h.IsNil(x) {
		return ix.Size(h.Root())
	}
	i := ix.Size(h.Left(x))
	for p := h.Parent(x); !h.IsNil(p); x, p = p, h.Parent(p) {
		if h.Right(p) == x {
			i += ix.Size(h.Left(p)) + 1
		}
	}
	return i
}

func (ix *Indexing) Rebuild() error {
	ix.rebuild(ix.host.Root())
	return nil
}

func (ix *Indexing) rebuild(x node.Pos) int {
	h := ix.host
	if h.IsNil(x) {
		return 0
	}
	n := ix.rebuild(h.Left(x)) + ix.rebuild(h.Right(x)) + 1
	ix.setSlot(x, 0, n)
	return n
}

func (ix *Indexing) Verify() error {
	_, err := ix.verify(ix.host.Root())
	return err
}

func (ix *Indexing) verify(x node.Pos) (int, error) {
	h := ix.host
	if h.IsNil(x) {
		if ix.Size(x) != 0 {
			return 0, fmt.Errorf("%w: size of nil is %d", ErrInvariantViolated, ix.Size(x))
		}
		return 0, nil
	}
	l, err := ix.verify(h.Left(x))
	if err != nil {
		return 0, err
	}
	r, err := ix.verify(h.Right(x))
	if err != nil {
		return 0, err
	}
	if ix.Size(x) != l+r+1 {
		return 0, fmt.Errorf("%w: subtree size of %d is %d, should be %d",
			ErrInvariantViolated, x, ix.Size(x), l+r+1)
	}
	return l + r + 1, nil
}
