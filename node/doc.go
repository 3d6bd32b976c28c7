/*
Package node implements the node store of binary trees: node records in an
arena, their parent/left/right links and a sentinel.

Every store owns one sentinel record ("nil"). The sentinel's left and right
links point to itself, which is how nil is recognized, and its right link
doubles as the root pointer: an empty store has a sentinel whose right link
is the sentinel itself.

The store exposes raw structural primitives only (attach, splice, rotate,
copy, destroy). It does not know about balance or any other per-node
bookkeeping; every node merely carries a vector of metadata slots, which
upper layers interpret (see package augment).

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package node

import (
	"errors"
	"fmt"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bintree'
func tracer() tracing.Trace {
	return tracing.Select("bintree")
}

var (
	// ErrInvalidOperation signals the violation of an operation's
	// precondition. The store is left unchanged.
	ErrInvalidOperation = errors.New("bintree: invalid operation")
	// ErrIndexOutOfRange signals an index beyond the number of nodes.
	ErrIndexOutOfRange = fmt.Errorf("%w: index out of range", ErrInvalidOperation)
)

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
