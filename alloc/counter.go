package alloc

// Counter wraps an allocator and counts allocations and deallocations.
type Counter[N any] struct {
	inner    Allocator[N]
	allocs   int
	deallocs int
	failures int
}

// NewCounter wraps inner. A nil inner allocator is replaced by a fresh Slab.
func NewCounter[N any](inner Allocator[N]) *Counter[N] {
	if inner == nil {
		inner = NewSlab[N]()
	}
	return &Counter[N]{inner: inner}
}

// Allocate delegates to the wrapped allocator.
func (c *Counter[N]) Allocate() (Ref, error) {
	r, err := c.inner.Allocate()
	if err != nil {
		c.failures++
		return r, err
	}
	c.allocs++
	return r, nil
}

// Deallocate delegates to the wrapped allocator.
func (c *Counter[N]) Deallocate(r Ref) {
	c.deallocs++
	c.inner.Deallocate(r)
}

// Deref delegates to the wrapped allocator.
func (c *Counter[N]) Deref(r Ref) *N {
	return c.inner.Deref(r)
}

// Contains delegates to the wrapped allocator.
func (c *Counter[N]) Contains(r Ref) bool {
	return c.inner.Contains(r)
}

// Live delegates to the wrapped allocator. Note that the wrapped allocator
// may be shared, so Live may differ from Outstanding.
func (c *Counter[N]) Live() int {
	return c.inner.Live()
}

// Equal compares the underlying allocators.
func (c *Counter[N]) Equal(other Allocator[N]) bool {
	if other == nil {
		return false
	}
	return Base[N](c).Equal(other)
}

// Unwrap returns the wrapped allocator.
func (c *Counter[N]) Unwrap() Allocator[N] {
	return c.inner
}

// Allocations returns the number of successful allocations.
func (c *Counter[N]) Allocations() int {
	return c.allocs
}

// Deallocations returns the number of deallocations.
func (c *Counter[N]) Deallocations() int {
	return c.deallocs
}

// Failures returns the number of failed allocations.
func (c *Counter[N]) Failures() int {
	return c.failures
}

// Outstanding returns the number of records allocated through c and not yet
// released.
func (c *Counter[N]) Outstanding() int {
	return c.allocs - c.deallocs
}
