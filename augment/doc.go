/*
Package augment stacks augmentation layers on top of a node store.

A layer keeps some per-node bookkeeping (a balance factor, a subtree size,
counts of marked nodes) consistent while the tree is mutated. Layers are
composed into a Chain, a strict linear pipeline: every mutating primitive
(insert, erase, erase with replacement, rotate) enters the outermost layer,
which calls inward, and finally reaches the node store. Each layer runs its
own logic before or after calling inward.

Every layer is given a private range of metadata slots in each node. Layers
never look at each other's slots. Rotations requested by a layer (e.g. for
rebalancing) are routed through the whole chain again, so each layer observes
every structural change, no matter where in the chain it sits.

	chain, err := augment.NewChain[int](mem, augment.NewAVL(), augment.NewIndexing())
	x, err := chain.Insert(chain.Nil(), node.Right, func() (int, error) { return 7, nil })

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package augment

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bintree'
func tracer() tracing.Trace {
	return tracing.Select("bintree")
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
