/*
Package sortedset implements an ordered set of values on a balanced,
indexed tree.

Besides membership tests, a Set answers order-statistic queries in
logarithmic time: the rank of a value and the value of a given rank.

	s, err := sortedset.New[int]()
	s.Insert(5)
	s.Insert(2)
	r := s.Rank(5)       // 1
	v, err := s.Select(0) // 2

Sets are not safe for concurrent use.

# BSD License

Copyright (c) Norbert Pillmayer <norbert@pillmayer.com>

Please refer to the License file for details.
*/
package sortedset

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
