package augment

import (
	"errors"

	"github.com/npillmayer/bintree/bst"
	"github.com/npillmayer/bintree/node"
)

// ErrInvariantViolated is returned by Verify if a tree's bookkeeping is
// inconsistent. It always indicates a bug.
var ErrInvariantViolated = errors.New("bintree: invariant violated")

// Host is the view a layer has of the tree it is stacked on.
//
// Rotate performs a rotation through the complete chain of layers, including
// the calling one.
type Host interface {
	bst.Links[node.Pos]
	Nil() node.Pos
	Root() node.Pos
	Child(x node.Pos, side node.Side) node.Pos
	SideOf(x node.Pos) node.Side
	Meta(x node.Pos) []int
	Len() int
	Owns(x node.Pos) bool
	Rotate(x node.Pos, dir node.Side) (node.Pos, error)
}

// Layer is an augmentation which maintains per-node metadata.
//
// The mutating hooks receive a function inner, which performs the operation
// on the layers further in and finally on the node store. A hook must call
// inner exactly once. Preconditions have been checked before any hook is
// called, so hooks may update metadata before calling inner.
//
// Insert receives the attach point x and side; the new node is returned from
// inner. Erase is called for nodes with at most one child. EraseReplace is
// called when x is replaced by hint (its in-order neighbour within x's
// subtree): hint moves into x's slot and inherits x's metadata.
//
// Fresh is called for every layer right after a new node has been linked,
// before any layer continues after its call to inner.
type Layer interface {
	Name() string
	Slots() int
	Bind(h Host, base int)
	Fresh(x node.Pos)
	Insert(x node.Pos, side node.Side, inner func() (node.Pos, error)) (node.Pos, error)
	Erase(x node.Pos, inner func() error) error
	EraseReplace(x, hint node.Pos, inner func() error) error
	Rotate(x node.Pos, dir node.Side, inner func() (node.Pos, error)) (node.Pos, error)
	Rebuild() error
	Verify() error
}

// Base gives layers access to their metadata slots and provides hooks which
// just call inward. Layers embed Base and override what they need.
type Base struct {
	host Host
	base int
}

// Bind attaches the layer to a host, using slots starting at base.
func (b *Base) Bind(h Host, base int) {
	b.host, b.base = h, base
}

// Host returns the tree the layer is bound to.
func (b *Base) Host() Host {
	return b.host
}

func (b *Base) slot(x node.Pos, i int) int {
	return b.host.Meta(x)[b.base+i]
}

func (b *Base) setSlot(x node.Pos, i int, v int) {
	assert(!b.host.IsNil(x), "writing metadata of nil")
	b.host.Meta(x)[b.base+i] = v
}

func (b *Base) addSlot(x node.Pos, i int, d int) {
	assert(!b.host.IsNil(x), "writing metadata of nil")
	b.host.Meta(x)[b.base+i] += d
}

func (b *Base) Fresh(x node.Pos) {}

func (b *Base) Insert(x node.Pos, side node.Side, inner func() (node.Pos, error)) (node.Pos, error) {
	return inner()
}

func (b *Base) Erase(x node.Pos, inner func() error) error {
	return inner()
}

func (b *Base) EraseReplace(x, hint node.Pos, inner func() error) error {
	return inner()
}

func (b *Base) Rotate(x node.Pos, dir node.Side, inner func() (node.Pos, error)) (node.Pos, error) {
	return inner()
}

func (b *Base) Rebuild() error { return nil }

func (b *Base) Verify() error { return nil }
