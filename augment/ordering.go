package augment

import (
	"github.com/npillmayer/bintree/bst"
	"github.com/npillmayer/bintree/node"
)

// Ordering compares positions by their in-order sequence. It stores no
// metadata; it owns the scratch buffers for the comparison, so repeated
// comparisons do not allocate.
type Ordering struct {
	Base
	ctx bst.OrderContext[node.Pos]
}

// NewOrdering creates an ordering layer.
func NewOrdering() *Ordering {
	return &Ordering{}
}

func (o *Ordering) Name() string { return "ordering" }

func (o *Ordering) Slots() int { return 0 }

// Order reports whether x comes before y in in-order sequence. Nil is
// treated as the position past the last node.
func (o *Ordering) Order(x, y node.Pos) bool {
	return o.ctx.Order(o.host, x, y)
}
