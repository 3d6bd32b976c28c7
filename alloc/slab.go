package alloc

import "math"

const (
	pageBits = 8
	pageSize = 1 << pageBits
	pageMask = pageSize - 1
)

// Slab is an arena allocator. Records are kept in fixed-size pages, so a
// record never moves while it is live. Released references are recycled
// through a free list.
//
// A Slab is not safe for concurrent use.
type Slab[N any] struct {
	pages [][]N
	live  []uint64 // bitmap of live references
	free  []Ref    // recycled references, used LIFO
	next  Ref      // next never-used reference
	count int
	limit int
}

type slabConfig struct {
	limit int
}

// SlabOption configures a Slab.
type SlabOption func(*slabConfig)

// WithLimit restricts the number of simultaneously live records. Allocate
// fails with ErrOutOfMemory once the limit is reached. n <= 0 means
// unlimited.
func WithLimit(n int) SlabOption {
	return func(cfg *slabConfig) {
		cfg.limit = n
	}
}

// NewSlab creates an empty slab allocator.
func NewSlab[N any](opts ...SlabOption) *Slab[N] {
	cfg := slabConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Slab[N]{
		next:  1,
		limit: cfg.limit,
	}
}

// Allocate reserves a zero-valued record.
func (s *Slab[N]) Allocate() (Ref, error) {
	if s.limit > 0 && s.count >= s.limit {
		tracer().Errorf("slab: limit of %d live records reached", s.limit)
		return 0, ErrOutOfMemory
	}
	var r Ref
	if n := len(s.free); n > 0 {
		r = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		if s.next == math.MaxUint32 {
			tracer().Errorf("slab: reference space exhausted")
			return 0, ErrOutOfMemory
		}
		r = s.next
		s.next++
		if int(r>>pageBits) >= len(s.pages) {
			s.pages = append(s.pages, make([]N, pageSize))
		}
	}
	s.mark(r, true)
	s.count++
	return r, nil
}

// Deallocate releases a record and clears it.
func (s *Slab[N]) Deallocate(r Ref) {
	assert(s.Contains(r), "slab: deallocating a record which is not live")
	var zero N
	s.pages[r>>pageBits][r&pageMask] = zero
	s.mark(r, false)
	s.free = append(s.free, r)
	s.count--
}

// Deref returns the record for a live reference.
func (s *Slab[N]) Deref(r Ref) *N {
	assert(s.Contains(r), "slab: dereferencing a record which is not live")
	return &s.pages[r>>pageBits][r&pageMask]
}

// Live returns the number of records currently allocated.
func (s *Slab[N]) Live() int {
	return s.count
}

// Limit returns the configured limit of live records, 0 meaning unlimited.
func (s *Slab[N]) Limit() int {
	return s.limit
}

// SetLimit changes the limit of live records. It does not release records
// if the new limit is below the current count; further allocations will fail
// until enough records are released.
func (s *Slab[N]) SetLimit(n int) {
	if n < 0 {
		n = 0
	}
	s.limit = n
}

// Equal reports whether other is this very slab, possibly behind wrappers.
func (s *Slab[N]) Equal(other Allocator[N]) bool {
	if other == nil {
		return false
	}
	return Base(other) == Allocator[N](s)
}

// Contains reports whether r is live. The zero reference never is.
func (s *Slab[N]) Contains(r Ref) bool {
	if r == 0 || r >= s.next {
		return false
	}
	return s.live[r>>6]&(1<<(r&63)) != 0
}

func (s *Slab[N]) mark(r Ref, on bool) {
	for int(r>>6) >= len(s.live) {
		s.live = append(s.live, 0)
	}
	if on {
		s.live[r>>6] |= 1 << (r & 63)
	} else {
		s.live[r>>6] &^= 1 << (r & 63)
	}
}
