/*
Package bintree implements binary trees with composable augmentations.

A Tree is an unbalanced binary tree skeleton with a sentinel node, on which
any subset of four independent augmentations can be stacked:

  - Balancing keeps the tree height-balanced (AVL).
  - Indexing maintains subtree sizes, for access by in-order index.
  - Marking lets clients flag nodes and walk the flagged nodes only.
  - Ordering compares positions by their in-order sequence.

Each augmentation maintains its own bookkeeping through insertions, erasures
and rotations, without knowing about the others:

	t, err := bintree.New[string](bintree.With(bintree.Balancing(), bintree.Indexing()))
	x, err := t.InsertRight(t.Nil(), "root")
	...
	pos, err := t.ElementAt(3)

Clients address nodes by tree positions (Pos). A tree does not impose an
order on its values: clients decide where to insert new nodes, relative to
existing positions. Packages built on top, like sortedset or the List type of
this package, derive positions from keys or indices.

Trees are not safe for concurrent use.

_________________________________________________________________________

BSD 3-Clause License

Copyright (c) 2020–26, Norbert Pillmayer

All rights reserved.

Redistribution and use in source and binary forms, with or without
modification, are permitted provided that the following conditions are met:

1. Redistributions of source code must retain the above copyright notice, this
list of conditions and the following disclaimer.

2. Redistributions in binary form must reproduce the above copyright notice,
this list of conditions and the following disclaimer in the documentation
and/or other materials provided with the distribution.

3. Neither the name of the copyright holder nor the names of its
contributors may be used to endorse or promote products derived from
this software without specific prior written permission.

THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS"
AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE
IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE
DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE
FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL
DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR
SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER
CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY,
OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE
OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

*/
package bintree

import (
	"github.com/npillmayer/schuko/gtrace"
	"github.com/npillmayer/schuko/tracing"
)

// T traces to a global core-tracer.
func T() tracing.Trace {
	return gtrace.CoreTracer
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
