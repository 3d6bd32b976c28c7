package alloc

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/require"
)

type record struct {
	value int
	next  Ref
}

func TestSlabAllocate(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s := NewSlab[record]()
	seen := map[Ref]bool{}
	for i := 0; i < 3*pageSize; i++ {
		r, err := s.Allocate()
		require.NoError(t, err)
		require.NotZero(t, r, "reference 0 must never be handed out")
		require.False(t, seen[r], "reference %d handed out twice", r)
		seen[r] = true
		s.Deref(r).value = i
	}
	require.Equal(t, 3*pageSize, s.Live())
	require.Equal(t, 7, s.Deref(8).value)
}

func TestSlabPointerStability(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s := NewSlab[record]()
	r, err := s.Allocate()
	require.NoError(t, err)
	p := s.Deref(r)
	p.value = 42
	for i := 0; i < 2*pageSize; i++ {
		_, err := s.Allocate()
		require.NoError(t, err)
	}
	require.Same(t, p, s.Deref(r))
	require.Equal(t, 42, s.Deref(r).value)
}

func TestSlabFreeList(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s := NewSlab[record]()
	a, _ := s.Allocate()
	b, _ := s.Allocate()
	s.Deref(b).value = 7
	s.Deallocate(b)
	require.Equal(t, 1, s.Live())
	c, err := s.Allocate()
	require.NoError(t, err)
	require.Equal(t, b, c, "released references are recycled")
	require.Zero(t, s.Deref(c).value, "recycled records are cleared")
	require.NotEqual(t, a, c)
	require.Panics(t, func() { s.Deallocate(0) })
	require.True(t, s.Contains(a))
	require.True(t, NewCounter[record](s).Contains(c))
	s.Deallocate(a)
	require.False(t, s.Contains(a))
	require.False(t, s.Contains(0))
	require.False(t, s.Contains(1000))
	require.Panics(t, func() { s.Deallocate(a) })
	require.Panics(t, func() { s.Deref(a) })
}

func TestSlabLimit(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s := NewSlab[record](WithLimit(2))
	require.Equal(t, 2, s.Limit())
	a, err := s.Allocate()
	require.NoError(t, err)
	_, err = s.Allocate()
	require.NoError(t, err)
	_, err = s.Allocate()
	require.ErrorIs(t, err, ErrOutOfMemory)
	s.Deallocate(a)
	_, err = s.Allocate()
	require.NoError(t, err)
	s.SetLimit(1)
	_, err = s.Allocate()
	require.ErrorIs(t, err, ErrOutOfMemory)
	s.SetLimit(-5)
	require.Zero(t, s.Limit())
	_, err = s.Allocate()
	require.NoError(t, err)
	require.Equal(t, 3, s.Live())
}

func TestCounter(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	slab := NewSlab[record](WithLimit(3))
	c := NewCounter[record](slab)
	var refs []Ref
	for i := 0; i < 4; i++ {
		if r, err := c.Allocate(); err == nil {
			refs = append(refs, r)
		}
	}
	require.Len(t, refs, 3)
	require.Equal(t, 3, c.Allocations())
	require.Equal(t, 1, c.Failures())
	c.Deallocate(refs[0])
	require.Equal(t, 1, c.Deallocations())
	require.Equal(t, 2, c.Outstanding())
	require.Equal(t, 2, c.Live())
	c.Deref(refs[1]).value = 5
	require.Equal(t, 5, slab.Deref(refs[1]).value)
	//
	// records allocated through the slab directly do not count
	_, err := slab.Allocate()
	require.NoError(t, err)
	require.Equal(t, 3, c.Live())
	require.Equal(t, 2, c.Outstanding())
	require.Same(t, Allocator[record](slab), c.Unwrap())
}

func TestCounterDefaultSlab(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	c := NewCounter[record](nil)
	r, err := c.Allocate()
	require.NoError(t, err)
	require.NotZero(t, r)
	_, ok := Base[record](c).(*Slab[record])
	require.True(t, ok, "counter without an inner allocator should wrap a slab")
}

func TestCompatible(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	a, b := NewSlab[record](), NewSlab[record]()
	ca := NewCounter[record](a)
	cca := NewCounter[record](ca)
	require.True(t, Compatible[record](a, a))
	require.False(t, Compatible[record](a, b))
	require.True(t, Compatible[record](a, ca))
	require.True(t, Compatible[record](ca, a))
	require.True(t, Compatible[record](cca, ca))
	require.False(t, Compatible[record](cca, b))
	require.False(t, Compatible[record](nil, a))
	require.False(t, Compatible[record](a, nil))
	require.Equal(t, Allocator[record](a), Base[record](cca))
}
