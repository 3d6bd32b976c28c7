package node

import (
	"fmt"

	"github.com/npillmayer/bintree/bst"
)

// CopyFrom fills an empty store with a deep copy of src, metadata included.
// The copy has the same topology as src. If an allocation fails, every node
// copied so far is released and s is left empty.
func (s *Store[T]) CopyFrom(src *Store[T]) error {
	if !s.IsNil(s.Root()) {
		return fmt.Errorf("%w: copy target is not empty", ErrInvalidOperation)
	}
	if src.slots != s.slots {
		return fmt.Errorf("%w: copy between stores with different metadata layout", ErrInvalidOperation)
	}
	root, err := s.copyNode(src, src.Root(), s.sentinel)
	s.node(s.sentinel).right = root
	if err != nil {
		s.Clear()
		return err
	}
	return nil
}

func (s *Store[T]) copyNode(src *Store[T], x, parent Pos) (Pos, error) {
	if src.IsNil(x) {
		return s.sentinel, nil
	}
	n, err := s.NewNode(func() (T, error) { return src.Value(x), nil })
	if err != nil {
		return s.sentinel, err
	}
	s.size++
	nn := s.node(n)
	nn.parent = parent
	copy(nn.meta, src.Meta(x))
	if nn.left, err = s.copyNode(src, src.Left(x), n); err != nil {
		return n, err
	}
	nn.right, err = s.copyNode(src, src.Right(x), n)
	return n, err
}

// Graft fills an empty store with the shape rooted at root, reading the
// shape through b and the node values through value. Metadata slots of the
// new nodes are zero. If an allocation fails, every node created so far is
// released and s is left empty.
func Graft[T any, P comparable](s *Store[T], b bst.Branches[P], root P, value func(P) T) error {
	if !s.IsNil(s.Root()) {
		return fmt.Errorf("%w: graft target is not empty", ErrInvalidOperation)
	}
	var graft func(x P, parent Pos) (Pos, error)
	graft = func(x P, parent Pos) (Pos, error) {
		if b.IsNil(x) {
			return s.sentinel, nil
		}
		n, err := s.NewNode(func() (T, error) { return value(x), nil })
		if err != nil {
			return s.sentinel, err
		}
		s.size++
		nn := s.node(n)
		nn.parent = parent
		if nn.left, err = graft(b.Left(x), n); err != nil {
			return n, err
		}
		nn.right, err = graft(b.Right(x), n)
		return n, err
	}
	r, err := graft(root, s.sentinel)
	s.node(s.sentinel).right = r
	if err != nil {
		tracer().Errorf("node store: graft failed, %d nodes rolled back", s.size)
		s.Clear()
		return err
	}
	return nil
}

// Clear releases all nodes. The sentinel stays, so the store remains usable.
func (s *Store[T]) Clear() {
	for x := range bst.PostOrder[Pos](s, s.Root()) {
		s.mem.Deallocate(x)
	}
	s.node(s.sentinel).right = s.sentinel
	s.size = 0
}

// Release releases all nodes and the sentinel. The store must not be used
// afterwards.
func (s *Store[T]) Release() {
	if s.sentinel == 0 {
		return
	}
	s.Clear()
	s.mem.Deallocate(s.sentinel)
	s.sentinel = 0
}
