package alloc

// Ref references a record inside an allocator's arena. The zero value is
// never handed out by an allocator and may be used as "no record".
type Ref uint32

// Allocator provides storage for records of type N.
//
// References stay valid until they are passed to Deallocate. Pointers
// returned by Deref stay valid for the same period, i.e. allocators must not
// move records around.
type Allocator[N any] interface {
	// Allocate reserves a zero-valued record.
	Allocate() (Ref, error)
	// Deallocate releases a record. Releasing a record twice is a programming
	// error.
	Deallocate(Ref)
	// Deref returns the record for a live reference.
	Deref(Ref) *N
	// Contains reports whether r is a live reference of this allocator.
	Contains(r Ref) bool
	// Live returns the number of records currently allocated.
	Live() int
	// Equal reports whether records allocated by one allocator may be
	// released through the other one.
	Equal(Allocator[N]) bool
}

// Wrapper is implemented by allocators which delegate to another allocator.
type Wrapper[N any] interface {
	Unwrap() Allocator[N]
}

// Base strips all wrappers from an allocator.
func Base[N any](a Allocator[N]) Allocator[N] {
	for {
		w, ok := a.(Wrapper[N])
		if !ok {
			return a
		}
		a = w.Unwrap()
	}
}

// Compatible reports whether storage may be exchanged between two allocators.
// Nil allocators are never compatible.
func Compatible[N any](a, b Allocator[N]) bool {
	if a == nil || b == nil {
		return false
	}
	return a.Equal(b)
}
