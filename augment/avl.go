package augment

import (
	"fmt"

	"github.com/npillmayer/bintree/node"
)

// AVL keeps a tree height-balanced. Every node stores its balance factor,
// height(right) - height(left), which is kept in {-1, 0, 1} by rotations
// after insertions and erasures.
type AVL struct {
	Base
}

// NewAVL creates a balancing layer.
func NewAVL() *AVL {
	return &AVL{}
}

func (a *AVL) Name() string { return "avl" }

func (a *AVL) Slots() int { return 1 }

// BalanceFactor returns height(right(x)) - height(left(x)). It is 0 for nil.
func (a *AVL) BalanceFactor(x node.Pos) int {
	return a.slot(x, 0)
}

func (a *AVL) Fresh(x node.Pos) {
	a.setSlot(x, 0, 0)
}

// Insert retraces from the parent of the new leaf. The subtree of an
// ancestor grew if its factor moved away from 0; a factor of 0 means the
// height is unchanged, and a rotation restores the height from before the
// insertion. Either ends the retracement.
func (a *AVL) Insert(x node.Pos, side node.Side, inner func() (node.Pos, error)) (node.Pos, error) {
	n, err := inner()
	if err != nil {
		return n, err
	}
	h := a.host
	child := n
	for p := h.Parent(child); !h.IsNil(p); p = h.Parent(child) {
		if h.SideOf(child) == node.Left {
			a.addSlot(p, 0, -1)
		} else {
			a.addSlot(p, 0, 1)
		}
		switch a.slot(p, 0) {
		case 0:
			return n, nil
		case -2, 2:
			if _, err := a.rebalance(p); err != nil {
				return n, err
			}
			return n, nil
		}
		child = p
	}
	return n, nil
}

func (a *AVL) Erase(x node.Pos, inner func() error) error {
	h := a.host
	p, side := h.Parent(x), h.SideOf(x)
	if err := inner(); err != nil {
		return err
	}
	return a.retraceShrink(p, side)
}

// EraseReplace retraces from the former parent of hint, which lost a node
// on hint's side. If that parent is x itself, hint has taken over x's slot
// and the retracement starts there.
func (a *AVL) EraseReplace(x, hint node.Pos, inner func() error) error {
	h := a.host
	p, side := h.Parent(hint), h.SideOf(hint)
	if p == x {
		p = hint
	}
	if err := inner(); err != nil {
		return err
	}
	return a.retraceShrink(p, side)
}

// retraceShrink walks up from p, whose subtree at side lost one level of
// height, as long as the height of the visited subtree decreases.
func (a *AVL) retraceShrink(p node.Pos, side node.Side) error {
	h := a.host
	for !h.IsNil(p) {
		if side == node.Left {
			a.addSlot(p, 0, 1)
		} else {
			a.addSlot(p, 0, -1)
		}
		switch bf := a.slot(p, 0); bf {
		case -1, 1:
			return nil // height unchanged
		case -2, 2:
			heavy := h.Child(p, node.Right)
			if bf < 0 {
				heavy = h.Child(p, node.Left)
			}
			balanced := a.slot(heavy, 0) == 0
			var err error
			if p, err = a.rebalance(p); err != nil {
				return err
			}
			if balanced {
				return nil // single rotation keeps the height
			}
		}
		side = h.SideOf(p)
		p = h.Parent(p)
	}
	return nil
}

// rebalance rotates p, which has a balance factor of ±2, and returns the new
// root of the subtree. If the heavy child leans to the other side, it is
// rotated first.
func (a *AVL) rebalance(p node.Pos) (node.Pos, error) {
	h := a.host
	dir := node.Left // direction of the rotation at p
	if a.slot(p, 0) < 0 {
		dir = node.Right
	}
	heavy := h.Child(p, dir.Opposite())
	cbf := a.slot(heavy, 0)
	if (dir == node.Left && cbf < 0) || (dir == node.Right && cbf > 0) {
		tracer().Debugf("avl: double rotation at %d", p)
		if _, err := h.Rotate(heavy, dir.Opposite()); err != nil {
			return p, err
		}
	} else {
		tracer().Debugf("avl: single rotation at %d", p)
	}
	return h.Rotate(p, dir)
}

// Rotate recomputes the balance factors of x and its child y, which changes
// places with x, from their values before the rotation.
func (a *AVL) Rotate(x node.Pos, dir node.Side, inner func() (node.Pos, error)) (node.Pos, error) {
	bx := a.slot(x, 0)
	by := a.slot(a.host.Child(x, dir.Opposite()), 0)
	y, err := inner()
	if err != nil {
		return y, err
	}
	if dir == node.Left {
		bx = bx - 1 - max(by, 0)
		by = by - 1 + min(bx, 0)
	} else {
		bx = bx + 1 - min(by, 0)
		by = by + 1 + max(bx, 0)
	}
	a.setSlot(x, 0, bx)
	a.setSlot(y, 0, by)
	return y, nil
}

// Rebuild computes all balance factors from subtree heights. It fails with
// node.ErrInvalidOperation if the tree is not height-balanced.
func (a *AVL) Rebuild() error {
	_, err := a.heights(a.host.Root(), func(x node.Pos, bf int) error {
		if bf < -1 || bf > 1 {
			return fmt.Errorf("%w: tree is not height-balanced at %d (balance %d)",
				node.ErrInvalidOperation, x, bf)
		}
		a.setSlot(x, 0, bf)
		return nil
	})
	return err
}

// Verify checks that every stored balance factor matches the subtree heights
// and lies in {-1, 0, 1}.
func (a *AVL) Verify() error {
	_, err := a.heights(a.host.Root(), func(x node.Pos, bf int) error {
		if stored := a.slot(x, 0); stored != bf {
			return fmt.Errorf("%w: balance factor of %d is %d, should be %d",
				ErrInvariantViolated, x, stored, bf)
		}
		if bf < -1 || bf > 1 {
			return fmt.Errorf("%w: node %d is out of balance (%d)", ErrInvariantViolated, x, bf)
		}
		return nil
	})
	return err
}

// heights computes subtree heights bottom-up and calls visit with the actual
// balance factor of every node.
func (a *AVL) heights(x node.Pos, visit func(node.Pos, int) error) (int, error) {
	h := a.host
	if h.IsNil(x) {
		return 0, nil
	}
	hl, err := a.heights(h.Left(x), visit)
	if err != nil {
		return 0, err
	}
	hr, err := a.heights(h.Right(x), visit)
	if err != nil {
		return 0, err
	}
	if err := visit(x, hr-hl); err != nil {
		return 0, err
	}
	return 1 + max(hl, hr), nil
}
