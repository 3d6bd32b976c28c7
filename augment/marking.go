package augment

import (
	"fmt"

	"github.com/npillmayer/bintree/node"
)

// Flag selects one of the independent marks of a Marking layer.
type Flag int

// Marking lets clients mark nodes with up to k independent flags and walk
// the marked nodes of a flag in order, skipping unmarked subtrees.
//
// For every flag, a node stores the number of marked nodes in its subtree.
// A node is marked iff its count exceeds the sum of its children's counts.
type Marking struct {
	Base
	k       int
	scratch []bool // marks of a rotated pair, per flag
}

// NewMarking creates a marking layer with k flags, k >= 1.
func NewMarking(k int) (*Marking, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: marking needs at least one flag, have %d", node.ErrInvalidOperation, k)
	}
	return &Marking{k: k}, nil
}

func (m *Marking) Name() string { return "marking" }

func (m *Marking) Slots() int { return m.k }

// Flags returns the number of flags.
func (m *Marking) Flags() int { return m.k }

func (m *Marking) check(f Flag) error {
	if f < 0 || int(f) >= m.k {
		return fmt.Errorf("%w: flag %d, have %d flags", node.ErrInvalidOperation, f, m.k)
	}
	return nil
}

// checkPos rejects flags out of range and positions not in the host tree.
func (m *Marking) checkPos(x node.Pos, f Flag) error {
	if err := m.check(f); err != nil {
		return err
	}
	if !m.host.Owns(x) {
		return fmt.Errorf("%w: position %d does not belong to this tree", node.ErrInvalidOperation, x)
	}
	return nil
}

func (m *Marking) count(x node.Pos, f Flag) int {
	return m.slot(x, int(f))
}

func (m *Marking) marked(x node.Pos, f Flag) bool {
	h := m.host
	return m.count(x, f) > m.count(h.Left(x), f)+m.count(h.Right(x), f)
}

func (m *Marking) addPath(x node.Pos, f Flag, d int) {
	h := m.host
	for ; !h.IsNil(x); x = h.Parent(x) {
		m.addSlot(x, int(f), d)
	}
}

// Count returns the number of marked nodes in the subtree of x.
func (m *Marking) Count(x node.Pos, f Flag) (int, error) {
	if err := m.checkPos(x, f); err != nil {
		return 0, err
	}
	return m.count(x, f), nil
}

// Marked reports whether x is marked with f. Nil is never marked.
func (m *Marking) Marked(x node.Pos, f Flag) (bool, error) {
	if err := m.checkPos(x, f); err != nil {
		return false, err
	}
	return !m.host.IsNil(x) && m.marked(x, f), nil
}

// Mark marks x with f. It reports whether x has not been marked before.
func (m *Marking) Mark(x node.Pos, f Flag) (bool, error) {
	if err := m.checkPos(x, f); err != nil {
		return false, err
	}
	if m.host.IsNil(x) {
		return false, fmt.Errorf("%w: cannot mark nil", node.ErrInvalidOperation)
	}
	if m.marked(x, f) {
		return false, nil
	}
	m.addPath(x, f, 1)
	return true, nil
}

// Unmark removes mark f from x. It reports whether x has been marked.
func (m *Marking) Unmark(x node.Pos, f Flag) (bool, error) {
	if err := m.checkPos(x, f); err != nil {
		return false, err
	}
	if m.host.IsNil(x) {
		return false, fmt.Errorf("%w: cannot unmark nil", node.ErrInvalidOperation)
	}
	if !m.marked(x, f) {
		return false, nil
	}
	m.addPath(x, f, -1)
	return true, nil
}

func (m *Marking) Fresh(x node.Pos) {
	for f := 0; f < m.k; f++ {
		m.setSlot(x, f, 0)
	}
}

func (m *Marking) Erase(x node.Pos, inner func() error) error {
	for f := Flag(0); int(f) < m.k; f++ {
		if m.marked(x, f) {
			m.addPath(x, f, -1)
		}
	}
	return inner()
}

// EraseReplace unmarks x for good, and hint for the duration of the move.
// Hint is marked again in its new slot.
func (m *Marking) EraseReplace(x, hint node.Pos, inner func() error) error {
	var remark []Flag
	for f := Flag(0); int(f) < m.k; f++ {
		if m.marked(x, f) {
			m.addPath(x, f, -1)
		}
		if m.marked(hint, f) {
			m.addPath(hint, f, -1)
			remark = append(remark, f)
		}
	}
	if err := inner(); err != nil {
		return err
	}
	for _, f := range remark {
		m.addPath(hint, f, 1)
	}
	return nil
}

func (m *Marking) Rotate(x node.Pos, dir node.Side, inner func() (node.Pos, error)) (node.Pos, error) {
	y := m.host.Child(x, dir.Opposite())
	m.scratch = m.scratch[:0]
	for f := Flag(0); int(f) < m.k; f++ {
		m.scratch = append(m.scratch, m.marked(x, f), m.marked(y, f))
	}
	top, err := inner()
	if err != nil {
		return top, err
	}
	assert(top == y, "rotation returned unexpected subtree root")
	for f := Flag(0); int(f) < m.k; f++ {
		m.recompute(x, f, m.scratch[2*f]) // x is now a child of y
		m.recompute(y, f, m.scratch[2*f+1])
	}
	return y, nil
}

func (m *Marking) recompute(x node.Pos, f Flag, marked bool) {
	h := m.host
	c := m.count(h.Left(x), f) + m.count(h.Right(x), f)
	if marked {
		c++
	}
	m.setSlot(x, int(f), c)
}

// Rebuild clears all marks.
func (m *Marking) Rebuild() error {
	h := m.host
	var reset func(node.Pos)
	reset = func(x node.Pos) {
		if h.IsNil(x) {
			return
		}
		m.Fresh(x)
		reset(h.Left(x))
		reset(h.Right(x))
	}
	reset(h.Root())
	return nil
}

func (m *Marking) Verify() error {
	h := m.host
	var verify func(node.Pos) error
	verify = func(x node.Pos) error {
		if h.IsNil(x) {
			return nil
		}
		if err := verify(h.Left(x)); err != nil {
			return err
		}
		if err := verify(h.Right(x)); err != nil {
			return err
		}
		for f := Flag(0); int(f) < m.k; f++ {
			d := m.count(x, f) - m.count(h.Left(x), f) - m.count(h.Right(x), f)
			if d != 0 && d != 1 {
				return fmt.Errorf("%w: mark count of %d for flag %d is off by %d",
					ErrInvariantViolated, x, f, d)
			}
		}
		return nil
	}
	for f := Flag(0); int(f) < m.k; f++ {
		if c := m.count(h.Nil(), f); c != 0 {
			return fmt.Errorf("%w: mark count of nil is %d", ErrInvariantViolated, c)
		}
	}
	return verify(h.Root())
}

// --- Marked navigation -----------------------------------------------------

// Minimum returns the first marked node in the subtree of x, or nil.
func (m *Marking) Minimum(x node.Pos, f Flag) (node.Pos, error) {
	if err := m.checkPos(x, f); err != nil {
		return 0, err
	}
	return m.minimum(x, f), nil
}

// Maximum returns the last marked node in the subtree of x, or nil.
func (m *Marking) Maximum(x node.Pos, f Flag) (node.Pos, error) {
	if err := m.checkPos(x, f); err != nil {
		return 0, err
	}
	return m.maximum(x, f), nil
}

// Next returns the first marked node after x in in-order, or nil.
func (m *Marking) Next(x node.Pos, f Flag) (node.Pos, error) {
	if err := m.checkPos(x, f); err != nil {
		return 0, err
	}
	h := m.host
	if h.IsNil(x) {
		return h.Nil(), nil
	}
	if r := h.Right(x); m.count(r, f) > 0 {
		return m.minimum(r, f), nil
	}
	// ascend until we come from a left subtree whose parent has more marks
	p := h.Parent(x)
	for !h.IsNil(p) && (h.Right(p) == x || m.count(x, f) == m.count(p, f)) {
		x, p = p, h.Parent(p)
	}
	if h.IsNil(p) {
		return p, nil
	}
	if m.marked(p, f) {
		return p, nil
	}
	return m.minimum(h.Right(p), f), nil
}

// Prev returns the last marked node before x in in-order, or nil. The
// predecessor of nil is the last marked node of the tree.
func (m *Marking) Prev(x node.Pos, f Flag) (node.Pos, error) {
	if err := m.checkPos(x, f); err != nil {
		return 0, err
	}
	h := m.host
	if h.IsNil(x) {
		return m.maximum(h.Root(), f), nil
	}
	if l := h.Left(x); m.count(l, f) > 0 {
		return m.maximum(l, f), nil
	}
	p := h.Parent(x)
	for !h.IsNil(p) && (h.Left(p) == x || m.count(x, f) == m.count(p, f)) {
		x, p = p, h.Parent(p)
	}
	if h.IsNil(p) {
		return p, nil
	}
	if m.marked(p, f) {
		return p, nil
	}
	return m.maximum(h.Left(p), f), nil
}

func (m *Marking) minimum(x node.Pos, f Flag) node.Pos {
	h := m.host
	if m.count(x, f) == 0 {
		return h.Nil()
	}
	for {
		l, r := h.Left(x), h.Right(x)
		switch {
		case m.count(l, f) > 0:
			x = l
		case m.count(r, f) == m.count(x, f):
			x = r
		default:
			return x
		}
	}
}

func (m *Marking) maximum(x node.Pos, f Flag) node.Pos {
	h := m.host
	if m.count(x, f) == 0 {
		return h.Nil()
	}
	for {
		l, r := h.Left(x), h.Right(x)
		switch {
		case m.count(r, f) > 0:
			x = r
		case m.count(x, f) > m.count(l, f):
			return x
		default:
			x = l
		}
	}
}
