package augment

import (
	"fmt"
	"strings"

	"github.com/npillmayer/bintree/alloc"
	"github.com/npillmayer/bintree/bst"
	"github.com/npillmayer/bintree/node"
)

// Chain is a node store with a linear stack of layers. Layer 0 is the
// innermost one.
//
// All mutations of a chained store must go through the chain's Insert,
// Erase, EraseReplace and Rotate, never through the embedded store.
type Chain[T any] struct {
	*node.Store[T]
	layers []Layer
}

// NewChain creates an empty store with the given layers. Each layer instance
// may be used in one chain only, and there may be at most one layer with a
// given name.
func NewChain[T any](mem alloc.Allocator[node.Node[T]], layers ...Layer) (*Chain[T], error) {
	slots := 0
	seen := make(map[string]bool, len(layers))
	for _, l := range layers {
		if l == nil {
			return nil, fmt.Errorf("%w: nil layer", node.ErrInvalidOperation)
		}
		if seen[l.Name()] {
			return nil, fmt.Errorf("%w: layer %q stacked twice", node.ErrInvalidOperation, l.Name())
		}
		seen[l.Name()] = true
		slots += l.Slots()
	}
	store, err := node.New(mem, slots)
	if err != nil {
		return nil, err
	}
	c := &Chain[T]{Store: store, layers: layers}
	base := 0
	for _, l := range layers {
		l.Bind(c, base)
		base += l.Slots()
	}
	return c, nil
}

// Layers returns the layers, innermost first.
func (c *Chain[T]) Layers() []Layer {
	return append([]Layer(nil), c.layers...)
}

// Layout describes the layer stack and its metadata layout. Two chains with
// equal layouts may copy metadata from one another.
func (c *Chain[T]) Layout() string {
	var b strings.Builder
	for i, l := range c.layers {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s:%d", l.Name(), l.Slots())
	}
	return b.String()
}

// Find returns the layer of type L stacked on c, if any.
func Find[L Layer, T any](c *Chain[T]) (L, bool) {
	for _, l := range c.layers {
		if found, ok := l.(L); ok {
			return found, true
		}
	}
	var zero L
	return zero, false
}

// Insert creates a node with the value produced by mk and attaches it at
// side of x (x nil: as the root of an empty tree).
func (c *Chain[T]) Insert(x node.Pos, side node.Side, mk func() (T, error)) (node.Pos, error) {
	if err := c.Store.ValidateAttach(x, side); err != nil {
		return 0, err
	}
	// allocate up front: a failing allocation leaves every layer untouched
	n, err := c.Store.NewNode(mk)
	if err != nil {
		return 0, err
	}
	var call func(i int) (node.Pos, error)
	call = func(i int) (node.Pos, error) {
		if i < 0 {
			if err := c.Store.Link(x, side, n); err != nil {
				c.Store.Discard(n)
				return 0, err
			}
			for _, l := range c.layers {
				l.Fresh(n)
			}
			return n, nil
		}
		return c.layers[i].Insert(x, side, func() (node.Pos, error) { return call(i - 1) })
	}
	return call(len(c.layers) - 1)
}

// Erase removes a node with at most one child.
func (c *Chain[T]) Erase(x node.Pos) error {
	if err := c.Store.ValidateSplice(x); err != nil {
		return err
	}
	var call func(i int) error
	call = func(i int) error {
		if i < 0 {
			return c.Store.SpliceSingleChild(x)
		}
		return c.layers[i].Erase(x, func() error { return call(i - 1) })
	}
	return call(len(c.layers) - 1)
}

// EraseReplace removes x by moving hint, its in-order successor or
// predecessor within x's subtree, into x's slot.
func (c *Chain[T]) EraseReplace(x, hint node.Pos) error {
	if err := c.Store.ValidateReplace(x, hint); err != nil {
		return err
	}
	var call func(i int) error
	call = func(i int) error {
		if i < 0 {
			return c.Store.SpliceWithReplacement(x, hint)
		}
		return c.layers[i].EraseReplace(x, hint, func() error { return call(i - 1) })
	}
	return call(len(c.layers) - 1)
}

// Rotate rotates x in direction dir and returns the new root of the rotated
// subtree.
func (c *Chain[T]) Rotate(x node.Pos, dir node.Side) (node.Pos, error) {
	if err := c.Store.ValidateRotate(x, dir); err != nil {
		return 0, err
	}
	var call func(i int) (node.Pos, error)
	call = func(i int) (node.Pos, error) {
		if i < 0 {
			return c.Store.Rotate(x, dir)
		}
		return c.layers[i].Rotate(x, dir, func() (node.Pos, error) { return call(i - 1) })
	}
	return call(len(c.layers) - 1)
}

// RotateLeft rotates x with its right child.
func (c *Chain[T]) RotateLeft(x node.Pos) (node.Pos, error) {
	return c.Rotate(x, node.Left)
}

// RotateRight rotates x with its left child.
func (c *Chain[T]) RotateRight(x node.Pos) (node.Pos, error) {
	return c.Rotate(x, node.Right)
}

// CopyFrom fills the empty chain c with a deep copy of src. Both chains must
// have the same layout.
func (c *Chain[T]) CopyFrom(src *Chain[T]) error {
	if c.Layout() != src.Layout() {
		return fmt.Errorf("%w: copy between chains with layouts %q and %q",
			node.ErrInvalidOperation, src.Layout(), c.Layout())
	}
	return c.Store.CopyFrom(src.Store)
}

// Rebuild recomputes the metadata of all layers, e.g. after the store has
// been filled by node.Graft. If a layer rejects the tree, the error is
// returned and the tree is left as it is.
func (c *Chain[T]) Rebuild() error {
	for _, l := range c.layers {
		if err := l.Rebuild(); err != nil {
			return err
		}
	}
	return nil
}

// Verify checks the links of the tree and the invariants of all layers.
func (c *Chain[T]) Verify() error {
	root := c.Root()
	if !c.IsNil(root) && c.Parent(root) != c.Nil() {
		return fmt.Errorf("%w: parent of root is not nil", ErrInvariantViolated)
	}
	n := 0
	for x := range bst.PreOrder[node.Pos](c, root) {
		n++
		for _, side := range []node.Side{node.Left, node.Right} {
			if ch := c.Child(x, side); !c.IsNil(ch) && c.Parent(ch) != x {
				return fmt.Errorf("%w: %s child of %d does not link back", ErrInvariantViolated, side, x)
			}
		}
	}
	if n != c.Len() {
		return fmt.Errorf("%w: tree has %d nodes, store counts %d", ErrInvariantViolated, n, c.Len())
	}
	for _, l := range c.layers {
		if err := l.Verify(); err != nil {
			tracer().Errorf("%s layer: %v", l.Name(), err)
			return err
		}
	}
	return nil
}
