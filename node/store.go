package node

import (
	"fmt"

	"github.com/npillmayer/bintree/alloc"
	"github.com/npillmayer/bintree/bst"
)

// Pos is a tree position: a reference to a node or to the sentinel.
type Pos = alloc.Ref

// Side selects a child slot, or the direction of a rotation.
type Side uint8

const (
	Left Side = iota
	Right
)

// Opposite returns the other side.
func (s Side) Opposite() Side {
	return 1 - s
}

func (s Side) String() string {
	if s == Left {
		return "left"
	}
	return "right"
}

// Node is the record stored for every node, and for the sentinel.
type Node[T any] struct {
	Value               T
	parent, left, right Pos
	meta                []int
}

// Store holds the nodes of one tree.
//
// All structural primitives check their preconditions before touching any
// link and return ErrInvalidOperation on violation.
type Store[T any] struct {
	mem      alloc.Allocator[Node[T]]
	sentinel Pos
	size     int
	slots    int
}

var _ bst.Links[Pos] = (*Store[int])(nil)

// New creates an empty store. Every node will carry slots metadata values.
// The sentinel is allocated immediately, so New may fail with
// alloc.ErrOutOfMemory.
func New[T any](mem alloc.Allocator[Node[T]], slots int) (*Store[T], error) {
	if mem == nil {
		return nil, fmt.Errorf("%w: allocator is nil", ErrInvalidOperation)
	}
	if slots < 0 {
		return nil, fmt.Errorf("%w: negative number of metadata slots", ErrInvalidOperation)
	}
	r, err := mem.Allocate()
	if err != nil {
		return nil, err
	}
	n := mem.Deref(r)
	n.parent, n.left, n.right = r, r, r
	n.meta = make([]int, slots)
	return &Store[T]{
		mem:      mem,
		sentinel: r,
		slots:    slots,
	}, nil
}

func (s *Store[T]) node(x Pos) *Node[T] {
	return s.mem.Deref(x)
}

// Allocator returns the allocator of the store.
func (s *Store[T]) Allocator() alloc.Allocator[Node[T]] {
	return s.mem
}

// Nil returns the sentinel position.
func (s *Store[T]) Nil() Pos {
	return s.sentinel
}

// Root returns the root position, which is nil for an empty store.
func (s *Store[T]) Root() Pos {
	return s.node(s.sentinel).right
}

// Len returns the number of nodes, not counting the sentinel.
func (s *Store[T]) Len() int {
	return s.size
}

// Slots returns the number of metadata slots per node.
func (s *Store[T]) Slots() int {
	return s.slots
}

// IsNil reports whether x is a sentinel. The zero position counts as nil.
func (s *Store[T]) IsNil(x Pos) bool {
	return x == 0 || s.node(x).left == x
}

// Parent returns the parent of x. The parent of the root is nil.
func (s *Store[T]) Parent(x Pos) Pos {
	return s.node(x).parent
}

// Left returns the left child of x.
func (s *Store[T]) Left(x Pos) Pos {
	return s.node(x).left
}

// Right returns the right child of x.
func (s *Store[T]) Right(x Pos) Pos {
	return s.node(x).right
}

// Child returns the child of x at side.
func (s *Store[T]) Child(x Pos, side Side) Pos {
	if side == Left {
		return s.node(x).left
	}
	return s.node(x).right
}

// SideOf tells on which side of its parent x hangs. The root hangs on the
// right side of the sentinel.
func (s *Store[T]) SideOf(x Pos) Side {
	if s.node(s.node(x).parent).left == x {
		return Left
	}
	return Right
}

// Value returns the value at x. The sentinel holds the zero value.
func (s *Store[T]) Value(x Pos) T {
	return s.node(x).Value
}

// ValuePtr returns a pointer to the value at x.
func (s *Store[T]) ValuePtr(x Pos) *T {
	return &s.node(x).Value
}

// SetValue replaces the value at x. The sentinel's value cannot be set.
func (s *Store[T]) SetValue(x Pos, v T) error {
	if !s.Owns(x) {
		return fmt.Errorf("%w: position %d does not belong to this tree", ErrInvalidOperation, x)
	}
	if s.IsNil(x) {
		return fmt.Errorf("%w: cannot set the value of nil", ErrInvalidOperation)
	}
	s.node(x).Value = v
	return nil
}

// Meta returns the metadata slots of x. The sentinel's slots are all zero
// and must not be written to.
func (s *Store[T]) Meta(x Pos) []int {
	return s.node(x).meta
}

// Owns reports whether x is the sentinel or a node reachable from the root.
// Positions of erased nodes and of other trees sharing the allocator are not
// owned. Owns takes time proportional to the depth of x.
//
// All other read accessors expect owned positions and panic on erased ones.
func (s *Store[T]) Owns(x Pos) bool {
	for {
		if !s.mem.Contains(x) {
			return false
		}
		if s.IsNil(x) {
			return x == s.sentinel
		}
		x = s.node(x).parent
	}
}

// --- Attaching -------------------------------------------------------------

// ValidateAttach checks whether a new node may be attached at side of x.
// A nil x means "attach as root", valid for an empty store only.
func (s *Store[T]) ValidateAttach(x Pos, side Side) error {
	if !s.Owns(x) {
		return fmt.Errorf("%w: position %d does not belong to this tree", ErrInvalidOperation, x)
	}
	if s.IsNil(x) {
		if !s.IsNil(s.Root()) {
			return fmt.Errorf("%w: cannot attach a root to a non-empty tree", ErrInvalidOperation)
		}
		return nil
	}
	if !s.IsNil(s.Child(x, side)) {
		return fmt.Errorf("%w: %s child of position %d is occupied", ErrInvalidOperation, side, x)
	}
	return nil
}

// NewNode allocates a detached node and constructs its value with mk. If mk
// fails, the node is released before the error is returned.
func (s *Store[T]) NewNode(mk func() (T, error)) (Pos, error) {
	if mk == nil {
		return 0, fmt.Errorf("%w: no value constructor", ErrInvalidOperation)
	}
	r, err := s.mem.Allocate()
	if err != nil {
		tracer().Errorf("node store: cannot allocate node: %v", err)
		return 0, err
	}
	v, err := mk()
	if err != nil {
		s.mem.Deallocate(r)
		return 0, err
	}
	n := s.node(r)
	n.Value = v
	n.parent, n.left, n.right = s.sentinel, s.sentinel, s.sentinel
	n.meta = make([]int, s.slots)
	return r, nil
}

// Discard releases a detached node created by NewNode.
func (s *Store[T]) Discard(n Pos) {
	assert(!s.IsNil(n), "discarding nil")
	s.mem.Deallocate(n)
}

// Link attaches the detached node n at side of x (or as the root if x is
// nil).
func (s *Store[T]) Link(x Pos, side Side, n Pos) error {
	if err := s.ValidateAttach(x, side); err != nil {
		return err
	}
	if s.IsNil(x) {
		s.node(x).right = n
	} else if side == Left {
		s.node(x).left = n
	} else {
		s.node(x).right = n
	}
	s.node(n).parent = x
	s.size++
	return nil
}

// Attach creates a node holding v at side of x.
func (s *Store[T]) Attach(x Pos, side Side, v T) (Pos, error) {
	if err := s.ValidateAttach(x, side); err != nil {
		return 0, err
	}
	n, err := s.NewNode(func() (T, error) { return v, nil })
	if err != nil {
		return 0, err
	}
	err = s.Link(x, side, n)
	assert(err == nil, "link failed after validation")
	return n, nil
}

// AttachLeft creates a node holding v as the left child of x.
func (s *Store[T]) AttachLeft(x Pos, v T) (Pos, error) {
	return s.Attach(x, Left, v)
}

// AttachRight creates a node holding v as the right child of x.
func (s *Store[T]) AttachRight(x Pos, v T) (Pos, error) {
	return s.Attach(x, Right, v)
}

// --- Splicing --------------------------------------------------------------

// ValidateSplice checks whether x may be spliced out directly, i.e. whether
// it is a node with at most one child.
func (s *Store[T]) ValidateSplice(x Pos) error {
	if !s.Owns(x) {
		return fmt.Errorf("%w: position %d does not belong to this tree", ErrInvalidOperation, x)
	}
	if s.IsNil(x) {
		return fmt.Errorf("%w: cannot erase nil", ErrInvalidOperation)
	}
	if !s.IsNil(s.Left(x)) && !s.IsNil(s.Right(x)) {
		return fmt.Errorf("%w: position %d has two children", ErrInvalidOperation, x)
	}
	return nil
}

// SpliceSingleChild removes a node with at most one child. The child, if
// any, takes the node's place.
func (s *Store[T]) SpliceSingleChild(x Pos) error {
	if err := s.ValidateSplice(x); err != nil {
		return err
	}
	n := s.node(x)
	child := n.left
	if s.IsNil(child) {
		child = n.right
	}
	s.replaceChild(n.parent, x, child)
	if !s.IsNil(child) {
		s.node(child).parent = n.parent
	}
	s.mem.Deallocate(x)
	s.size--
	return nil
}

// ValidateReplace checks whether x may be erased by relocating hint: hint
// must be the in-order successor or predecessor of x inside x's subtree.
func (s *Store[T]) ValidateReplace(x, hint Pos) error {
	if !s.Owns(x) {
		return fmt.Errorf("%w: position %d does not belong to this tree", ErrInvalidOperation, x)
	}
	if s.IsNil(x) {
		return fmt.Errorf("%w: cannot erase nil", ErrInvalidOperation)
	}
	if !s.mem.Contains(hint) || s.IsNil(hint) {
		return fmt.Errorf("%w: replacement hint %d is nil or erased", ErrInvalidOperation, hint)
	}
	if r := s.Right(x); !s.IsNil(r) && bst.Minimum[Pos](s, r) == hint {
		return nil
	}
	if l := s.Left(x); !s.IsNil(l) && bst.Maximum[Pos](s, l) == hint {
		return nil
	}
	return fmt.Errorf("%w: position %d is not a replacement for %d", ErrInvalidOperation, hint, x)
}

// SpliceWithReplacement removes x by moving hint into x's structural slot.
// The metadata of x and hint are swapped, i.e. hint inherits the bookkeeping
// of x's slot. The record of x is released.
func (s *Store[T]) SpliceWithReplacement(x, hint Pos) error {
	if err := s.ValidateReplace(x, hint); err != nil {
		return err
	}
	nx, ny := s.node(x), s.node(hint)
	// unlink hint from its current slot; it has at most one child
	child := ny.left
	if s.IsNil(child) {
		child = ny.right
	}
	s.replaceChild(ny.parent, hint, child)
	if !s.IsNil(child) {
		s.node(child).parent = ny.parent
	}
	// move hint into x's slot
	ny.parent, ny.left, ny.right = nx.parent, nx.left, nx.right
	s.replaceChild(nx.parent, x, hint)
	if !s.IsNil(ny.left) {
		s.node(ny.left).parent = hint
	}
	if !s.IsNil(ny.right) {
		s.node(ny.right).parent = hint
	}
	nx.meta, ny.meta = ny.meta, nx.meta
	s.mem.Deallocate(x)
	s.size--
	return nil
}

// replaceChild makes n take the place of child old of p. p may be the
// sentinel, whose right link is the root.
func (s *Store[T]) replaceChild(p, old, n Pos) {
	pn := s.node(p)
	if pn.left == old {
		pn.left = n
	} else {
		assert(pn.right == old, "replaceChild: not a child of its parent")
		pn.right = n
	}
}

// --- Rotations -------------------------------------------------------------

// ValidateRotate checks whether x may be rotated in direction dir. A left
// rotation needs a right child and vice versa.
func (s *Store[T]) ValidateRotate(x Pos, dir Side) error {
	if !s.Owns(x) {
		return fmt.Errorf("%w: position %d does not belong to this tree", ErrInvalidOperation, x)
	}
	if s.IsNil(x) {
		return fmt.Errorf("%w: cannot rotate nil", ErrInvalidOperation)
	}
	if s.IsNil(s.Child(x, dir.Opposite())) {
		return fmt.Errorf("%w: %s rotation of %d needs a %s child", ErrInvalidOperation,
			dir, x, dir.Opposite())
	}
	return nil
}

// Rotate performs a rotation of x in direction dir and returns the new root
// of the rotated subtree.
func (s *Store[T]) Rotate(x Pos, dir Side) (Pos, error) {
	if dir == Left {
		return s.RotateLeft(x)
	}
	return s.RotateRight(x)
}

// RotateLeft rotates x with its right child y:
//
//	  |            |
//	  x            y
//	 / \          / \
//	a   y   =>   x   c
//	   / \      / \
//	  b   c    a   b
func (s *Store[T]) RotateLeft(x Pos) (Pos, error) {
	if err := s.ValidateRotate(x, Left); err != nil {
		return 0, err
	}
	nx := s.node(x)
	y := nx.right
	ny := s.node(y)
	nx.right = ny.left
	if !s.IsNil(ny.left) {
		s.node(ny.left).parent = x
	}
	ny.parent = nx.parent
	s.replaceChild(nx.parent, x, y)
	ny.left = x
	nx.parent = y
	return y, nil
}

// RotateRight rotates x with its left child y:
//
//	    |        |
//	    x        y
//	   / \      / \
//	  y   c => a   x
//	 / \          / \
//	a   b        b   c
func (s *Store[T]) RotateRight(x Pos) (Pos, error) {
	if err := s.ValidateRotate(x, Right); err != nil {
		return 0, err
	}
	nx := s.node(x)
	y := nx.left
	ny := s.node(y)
	nx.left = ny.right
	if !s.IsNil(ny.right) {
		s.node(ny.right).parent = x
	}
	ny.parent = nx.parent
	s.replaceChild(nx.parent, x, y)
	ny.right = x
	nx.parent = y
	return y, nil
}
