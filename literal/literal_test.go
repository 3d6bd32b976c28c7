package literal

import (
	"slices"
	"testing"
)

func TestShapeSizeAndValues(t *testing.T) {
	s := New(New(Leaf(1), 2, nil), 3, New(Leaf(4), 5, nil))
	if s.Size() != 5 {
		t.Fatalf("expected size 5, got %d", s.Size())
	}
	if got := s.Values(); !slices.Equal(got, []int{1, 2, 3, 4, 5}) {
		t.Fatalf("unexpected in-order values %v", got)
	}
	if s.Left().Value() != 2 || s.Right().Left().Value() != 4 {
		t.Errorf("unexpected topology %s", s)
	}
}

func TestEmptyShape(t *testing.T) {
	var s *Shape[string]
	if s.Size() != 0 || len(s.Values()) != 0 {
		t.Fatalf("nil shape should be empty")
	}
	if s.Left() != nil || s.Right() != nil || s.Value() != "" {
		t.Errorf("accessors on nil shape should return zero values")
	}
	if s.String() != "()" {
		t.Errorf("unexpected rendering %q", s.String())
	}
}

func TestBalanced(t *testing.T) {
	s := Balanced(10, 20, 30, 40, 50)
	if s.Value() != 30 {
		t.Errorf("expected 30 at the root, got %d", s.Value())
	}
	if got := s.Values(); !slices.Equal(got, []int{10, 20, 30, 40, 50}) {
		t.Errorf("unexpected in-order values %v", got)
	}
	if s.String() != "(((10) 20) 30 ((40) 50))" {
		t.Errorf("unexpected rendering %q", s.String())
	}
}
