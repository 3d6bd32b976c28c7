/*
Package alloc provides node storage for binary trees.

Trees never create node records on their own. They obtain them from an
Allocator, which hands out stable references (type Ref) into an arena of
records. Two trees may share one allocator; moving and swapping nodes between
such trees is then a matter of exchanging references.

Slab is the default allocator. Counter wraps any allocator and keeps
allocation statistics, which is handy for detecting leaks in tests.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package alloc

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'bintree'
func tracer() tracing.Trace {
	return tracing.Select("bintree")
}

var (
	// ErrOutOfMemory signals that an allocator cannot provide another record.
	ErrOutOfMemory = errors.New("alloc: out of memory")
)

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
