/*
Package bst implements navigation algorithms for binary trees.

The algorithms are stateless and generic over the position type. They only
rely on a link contract: a source of links tells for a position whether it is
nil, and which positions are its children (Branches) and its parent (Links).
Trees with a sentinel node implement "nil" as a test on the sentinel, literal
shapes may simply use nil pointers.

Functions which need a non-nil position return the nil position they got if
called with one, instead of panicking. This makes them composable without
checks at every call site, in the same manner as walking off a tree's border
ends at nil.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package bst

// Branches gives access to the children of positions.
type Branches[P comparable] interface {
	IsNil(P) bool
	Left(P) P
	Right(P) P
}

// Links gives access to children and to the parent of positions.
type Links[P comparable] interface {
	Branches[P]
	Parent(P) P
}
