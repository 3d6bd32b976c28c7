package bintree

import (
	"fmt"

	"github.com/npillmayer/bintree/alloc"
	"github.com/npillmayer/bintree/augment"
	"github.com/npillmayer/bintree/bst"
	"github.com/npillmayer/bintree/literal"
	"github.com/npillmayer/bintree/node"
	"github.com/npillmayer/schuko/tracing"
)

// Pos is a tree position: a reference to a node of a tree or to the tree's
// nil sentinel. Positions stay valid until their node is erased; rotations
// change the links around a position, but not the position itself.
//
// Mutations and augmentation queries reject positions of erased nodes and of
// other trees with ErrInvalidOperation. The plain accessors (IsNil, Parent,
// Left, Right, Value) and iterators expect live positions and panic on
// erased ones. A position of an erased node may be recycled for a node
// inserted later.
type Pos = node.Pos

// Tree is a binary tree with a stack of augmentations. Trees have to be
// created with New, FromLiteral, Clone or Move.
type Tree[T any] struct {
	chain *augment.Chain[T]
	cfg   Config
	avl   *augment.AVL
	ix    *augment.Indexing
	mark  *augment.Marking
	ord   *augment.Ordering
}

// New creates an empty tree.
//
// Without an allocator option, the tree creates a slab allocator of its own,
// which is shared with clones of the tree and trees moved from it.
func New[T any](opts ...Option) (*Tree[T], error) {
	return newTree[T](Config{}.apply(opts...))
}

func newTree[T any](cfg Config) (*Tree[T], error) {
	cfg = cfg.normalized()
	if err := validate[T](cfg); err != nil {
		return nil, err
	}
	if cfg.Allocator == nil {
		cfg.Allocator = allocator[T](cfg)
	}
	t := &Tree[T]{cfg: cfg}
	layers := make([]augment.Layer, 0, len(cfg.Augmentations))
	for _, a := range cfg.Augmentations {
		l, err := a.make()
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		switch l := l.(type) {
		case *augment.AVL:
			t.avl = l
		case *augment.Indexing:
			t.ix = l
		case *augment.Marking:
			t.mark = l
		case *augment.Ordering:
			t.ord = l
		}
		layers = append(layers, l)
	}
	chain, err := augment.NewChain(allocator[T](cfg), layers...)
	if err != nil {
		return nil, err
	}
	t.chain = chain
	return t, nil
}

// FromLiteral creates a tree with the values and the topology of shape. If
// the tree is balanced, the shape has to be height-balanced, otherwise
// ErrInvalidOperation is returned. Marks are initially clear.
func FromLiteral[T any](shape *literal.Shape[T], opts ...Option) (*Tree[T], error) {
	t, err := New[T](opts...)
	if err != nil {
		return nil, err
	}
	if err := t.graft(literal.Branches[T]{}, shape, (*literal.Shape[T]).Value); err != nil {
		t.Release()
		return nil, err
	}
	return t, nil
}

func (t *Tree[T]) graft(b bst.Branches[*literal.Shape[T]], shape *literal.Shape[T],
	value func(*literal.Shape[T]) T) error {
	//
	if err := node.Graft(t.chain.Store, b, shape, value); err != nil {
		return err
	}
	if err := t.chain.Rebuild(); err != nil {
		t.chain.Clear()
		return err
	}
	return nil
}

// Literal returns a literal with the values and the topology of t.
func (t *Tree[T]) Literal() *literal.Shape[T] {
	var shape func(Pos) *literal.Shape[T]
	shape = func(x Pos) *literal.Shape[T] {
		if t.IsNil(x) {
			return nil
		}
		return literal.New(shape(t.Left(x)), t.Value(x), shape(t.Right(x)))
	}
	return shape(t.Root())
}

// Clone creates a deep copy of t. Options are applied on top of t's
// configuration, e.g. to give the clone another allocator. If the clone has
// the same augmentations as t, all metadata (including marks) is copied;
// otherwise it is recomputed and marks are clear.
//
// If an allocation fails, nothing is left behind and ErrOutOfMemory is
// returned.
func (t *Tree[T]) Clone(opts ...Option) (*Tree[T], error) {
	if err := released(t); err != nil {
		return nil, err
	}
	return copyTree(t, t.cfg.apply(opts...))
}

func copyTree[T any](src *Tree[T], cfg Config) (*Tree[T], error) {
	c, err := newTree[T](cfg)
	if err != nil {
		return nil, err
	}
	if c.chain.Layout() == src.chain.Layout() {
		err = c.chain.CopyFrom(src.chain)
	} else {
		c.trace().Debugf("bintree: copying between layouts %q and %q, recomputing metadata",
			src.chain.Layout(), c.chain.Layout())
		err = node.Graft[T, Pos](c.chain.Store, src.chain, src.Root(), src.Value)
		if err == nil {
			if err = c.chain.Rebuild(); err != nil {
				c.chain.Clear()
			}
		}
	}
	if err != nil {
		c.Release()
		return nil, err
	}
	return c, nil
}

// Move creates a tree with the contents of from. If the resulting
// configuration uses from's allocator and the same augmentations, the nodes
// are taken over in O(1) and from is left empty. Otherwise the contents are
// deep-copied and from stays unchanged.
func Move[T any](from *Tree[T], opts ...Option) (*Tree[T], error) {
	if err := released(from); err != nil {
		return nil, err
	}
	return moveTree(from, from.cfg.apply(opts...))
}

func moveTree[T any](from *Tree[T], cfg Config) (*Tree[T], error) {
	t, err := newTree[T](cfg)
	if err != nil {
		return nil, err
	}
	if !from.compatible(t) || t.chain.Layout() != from.chain.Layout() {
		t.Release()
		from.trace().Debugf("bintree: move between incompatible trees, copying")
		return copyTree(from, cfg)
	}
	// t is empty and compatible: exchanging contents moves from's nodes to t
	t.swapContents(from)
	assert(from.IsEmpty(), "bintree: tree not empty after move")
	return t, nil
}

// Assign replaces the contents of t by a deep copy of o, keeping t's
// configuration. If the copy fails, t is left unchanged.
func (t *Tree[T]) Assign(o *Tree[T]) error {
	if err := released(t, o); err != nil {
		return err
	}
	if t == o {
		return nil
	}
	tmp, err := copyTree(o, t.cfg)
	if err != nil {
		return err
	}
	t.swap(tmp)
	tmp.Release()
	return nil
}

// MoveFrom replaces the contents of t by the contents of o, keeping t's
// configuration. The nodes of o are taken over if possible, leaving o
// empty; otherwise they are copied. If copying fails, t is left unchanged.
func (t *Tree[T]) MoveFrom(o *Tree[T]) error {
	if err := released(t, o); err != nil {
		return err
	}
	if t == o {
		return nil
	}
	tmp, err := moveTree(o, t.cfg)
	if err != nil {
		return err
	}
	t.swap(tmp)
	tmp.Release()
	return nil
}

// Swap exchanges the contents of t and o in O(1). Both trees must use the
// same allocator, otherwise ErrAllocatorMismatch is returned.
func (t *Tree[T]) Swap(o *Tree[T]) error {
	if err := released(t, o); err != nil {
		return err
	}
	if !t.compatible(o) {
		return fmt.Errorf("%w: cannot swap trees", ErrAllocatorMismatch)
	}
	t.swap(o)
	return nil
}

func (t *Tree[T]) swap(o *Tree[T]) {
	*t, *o = *o, *t
}

// swapContents exchanges the nodes of trees with equal layouts, but keeps
// their configurations.
func (t *Tree[T]) swapContents(o *Tree[T]) {
	t.chain, o.chain = o.chain, t.chain
	t.avl, o.avl = o.avl, t.avl
	t.ix, o.ix = o.ix, t.ix
	t.mark, o.mark = o.mark, t.mark
	t.ord, o.ord = o.ord, t.ord
}

func (t *Tree[T]) compatible(o *Tree[T]) bool {
	return alloc.Compatible(t.chain.Allocator(), o.chain.Allocator())
}

// Release destroys all nodes and the sentinel of t. Afterwards, Clone,
// Move, Assign, MoveFrom and Swap fail with ErrInvalidOperation; any other
// use of t panics. Releasing twice is a no-op.
func (t *Tree[T]) Release() {
	if t.chain != nil {
		t.chain.Release()
		t.chain = nil
	}
}

// owned rejects positions which are not part of t, among them positions of
// erased nodes and of other trees sharing t's allocator.
func (t *Tree[T]) owned(x Pos) error {
	if !t.chain.Owns(x) {
		return fmt.Errorf("%w: position %d does not belong to this tree", ErrInvalidOperation, x)
	}
	return nil
}

// released rejects trees which have been released.
func released[T any](trees ...*Tree[T]) error {
	for _, t := range trees {
		if t.chain == nil {
			return fmt.Errorf("%w: tree has been released", ErrInvalidOperation)
		}
	}
	return nil
}

func (t *Tree[T]) trace() tracing.Trace {
	return t.cfg.Trace
}

// --- Positions --------------------------------------------------------------

// Root returns the position of the root, which is nil for an empty tree.
func (t *Tree[T]) Root() Pos { return t.chain.Root() }

// Nil returns the nil position of t, which is also the end position of
// in-order iteration.
func (t *Tree[T]) Nil() Pos { return t.chain.Nil() }

// IsNil reports whether x is a nil position.
func (t *Tree[T]) IsNil(x Pos) bool { return t.chain.IsNil(x) }

// Parent returns the parent of x. The parent of the root is nil.
func (t *Tree[T]) Parent(x Pos) Pos { return t.chain.Parent(x) }

// Left returns the left child of x.
func (t *Tree[T]) Left(x Pos) Pos { return t.chain.Left(x) }

// Right returns the right child of x.
func (t *Tree[T]) Right(x Pos) Pos { return t.chain.Right(x) }

// Value returns the value at x. The value at nil is the zero value.
func (t *Tree[T]) Value(x Pos) T { return t.chain.Value(x) }

// Set replaces the value at x.
func (t *Tree[T]) Set(x Pos, v T) error { return t.chain.SetValue(x, v) }

// Len returns the number of nodes.
func (t *Tree[T]) Len() int { return t.chain.Len() }

// IsEmpty reports whether t has no nodes.
func (t *Tree[T]) IsEmpty() bool { return t.chain.Len() == 0 }

// Augmentations returns the names of the augmentations stacked on t,
// innermost first.
func (t *Tree[T]) Augmentations() []string {
	var names []string
	for _, l := range t.chain.Layers() {
		names = append(names, l.Name())
	}
	return names
}

// --- Mutation ---------------------------------------------------------------

// InsertLeft creates a node holding v as the left child of x. If x is nil,
// the node becomes the root of an empty tree.
func (t *Tree[T]) InsertLeft(x Pos, v T) (Pos, error) {
	return t.EmplaceLeft(x, func() (T, error) { return v, nil })
}

// InsertRight creates a node holding v as the right child of x. If x is
// nil, the node becomes the root of an empty tree.
func (t *Tree[T]) InsertRight(x Pos, v T) (Pos, error) {
	return t.EmplaceRight(x, func() (T, error) { return v, nil })
}

// EmplaceLeft is like InsertLeft, with the value produced by mk. If mk
// fails, its error is returned and t is unchanged.
func (t *Tree[T]) EmplaceLeft(x Pos, mk func() (T, error)) (Pos, error) {
	return t.insert(x, node.Left, mk)
}

// EmplaceRight is like InsertRight, with the value produced by mk.
func (t *Tree[T]) EmplaceRight(x Pos, mk func() (T, error)) (Pos, error) {
	return t.insert(x, node.Right, mk)
}

func (t *Tree[T]) insert(x Pos, side node.Side, mk func() (T, error)) (Pos, error) {
	n, err := t.chain.Insert(x, side, mk)
	if err != nil {
		t.trace().Debugf("bintree: insert at %d (%s) failed: %v", x, side, err)
		return t.Nil(), err
	}
	return n, nil
}

// Erase removes the node at x and returns the position following x in
// in-order sequence. A node with two children is replaced by its in-order
// successor.
func (t *Tree[T]) Erase(x Pos) (Pos, error) {
	if err := t.owned(x); err != nil {
		return t.Nil(), err
	}
	if t.IsNil(x) {
		return t.Nil(), fmt.Errorf("%w: cannot erase nil", ErrInvalidOperation)
	}
	if !t.IsNil(t.Left(x)) && !t.IsNil(t.Right(x)) {
		next := bst.Minimum[Pos](t.chain, t.Right(x))
		if err := t.chain.EraseReplace(x, next); err != nil {
			return t.Nil(), err
		}
		return next, nil
	}
	next := bst.Successor[Pos](t.chain, x)
	if err := t.chain.Erase(x); err != nil {
		return t.Nil(), err
	}
	return next, nil
}

// EraseWith removes the node at x by moving hint into its place. hint has to
// be the in-order successor or predecessor of x within x's subtree.
func (t *Tree[T]) EraseWith(x, hint Pos) error {
	return t.chain.EraseReplace(x, hint)
}

// RotateLeft rotates x with its right child and returns the new root of the
// subtree. Balanced trees reject rotations.
func (t *Tree[T]) RotateLeft(x Pos) (Pos, error) {
	return t.rotate(x, node.Left)
}

// RotateRight rotates x with its left child and returns the new root of the
// subtree. Balanced trees reject rotations.
func (t *Tree[T]) RotateRight(x Pos) (Pos, error) {
	return t.rotate(x, node.Right)
}

func (t *Tree[T]) rotate(x Pos, dir node.Side) (Pos, error) {
	if t.avl != nil {
		return t.Nil(), fmt.Errorf("%w: rotations would unbalance a balanced tree", ErrInvalidOperation)
	}
	return t.chain.Rotate(x, dir)
}

// Clear removes all nodes.
func (t *Tree[T]) Clear() {
	t.chain.Clear()
}

// Check verifies the links of t and the invariants of all augmentations.
// It returns an error wrapping ErrInvariantViolated for a corrupt tree.
func (t *Tree[T]) Check() error {
	return t.chain.Verify()
}

// Equal reports whether a and b hold equal values in the same in-order
// sequence. Topology and augmentations are not compared.
func Equal[T comparable](a, b *Tree[T]) bool {
	return EqualFunc(a, b, func(x, y T) bool { return x == y })
}

// EqualFunc is like Equal, comparing values with eq.
func EqualFunc[T, U any](a *Tree[T], b *Tree[U], eq func(T, U) bool) bool {
	if a.Len() != b.Len() {
		return false
	}
	ia, ib := a.Begin(), b.Begin()
	for ; !ia.AtEnd(); ia, ib = ia.Next(), ib.Next() {
		if !eq(ia.Value(), ib.Value()) {
			return false
		}
	}
	return true
}
