package augment

import (
	"fmt"
	"math/rand"
	"slices"
	"strconv"
	"strings"
	"testing"

	"github.com/npillmayer/bintree/alloc"
	"github.com/npillmayer/bintree/node"
)

// How to run:
//   - Deterministic randomized property test:
//     go test ./augment -run TestLayersRandomizedProperty -count=1
//   - Fuzz test:
//     go test ./augment -run '^$' -fuzz FuzzLayersRandomizedProperty -fuzztime=10s

const flags = 2

type stack struct {
	chain *Chain[int]
	avl   *AVL
	ix    *Indexing
	mark  *Marking
	ord   *Ordering
}

// newStack creates a chain with all four layers, stacked in the order given
// by perm (indices into avl, indexing, marking, ordering).
func newStack(t *testing.T, perm []int) *stack {
	t.Helper()
	m, err := NewMarking(flags)
	if err != nil {
		t.Fatal(err)
	}
	s := &stack{avl: NewAVL(), ix: NewIndexing(), mark: m, ord: NewOrdering()}
	all := []Layer{s.avl, s.ix, s.mark, s.ord}
	layers := make([]Layer, len(perm))
	for i, p := range perm {
		layers[i] = all[p]
	}
	s.chain, err = NewChain(alloc.NewCounter[node.Node[int]](nil), layers...)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

type model struct {
	values []int // sorted
	marks  map[int][flags]bool
}

func (s *stack) assertMatches(t *testing.T, md *model) {
	t.Helper()
	c := s.chain
	if err := c.Verify(); err != nil {
		t.Fatalf("tree is corrupt: %v", err)
	}
	if got := inorder(c); !slices.Equal(got, md.values) {
		t.Fatalf("sequence mismatch: got=%v want=%v", got, md.values)
	}
	for i, v := range md.values {
		x, err := s.ix.At(i)
		if err != nil {
			t.Fatalf("At(%d) failed: %v", i, err)
		}
		if c.Value(x) != v || s.ix.IndexOf(x) != i {
			t.Fatalf("index mismatch at %d: value=%d index=%d", i, c.Value(x), s.ix.IndexOf(x))
		}
	}
	for f := Flag(0); f < flags; f++ {
		want := []int{}
		for _, v := range md.values {
			if md.marks[v][f] {
				want = append(want, v)
			}
		}
		if got := markedValues(c, s.mark, f); !slices.Equal(got, want) {
			t.Fatalf("marked sequence for flag %d: got=%v want=%v", f, got, want)
		}
		slices.Reverse(want)
		if got := markedValuesBackward(c, s.mark, f); !slices.Equal(got, want) {
			t.Fatalf("backward marked sequence for flag %d: got=%v want=%v", f, got, want)
		}
	}
	n := len(md.values)
	order := func(i, j int) {
		x, _ := s.ix.At(i)
		y, _ := s.ix.At(j)
		if got := s.ord.Order(x, y); got != (i < j) {
			t.Fatalf("order(At(%d), At(%d)): got=%v want=%v", i, j, got, i < j)
		}
	}
	for i := 0; i+1 < n; i++ {
		order(i, i+1)
		order(i+1, i)
	}
	if n > 0 {
		r := rand.New(rand.NewSource(int64(n)))
		for k := 0; k < 32; k++ {
			order(r.Intn(n), r.Intn(n))
		}
		x, _ := s.ix.At(n - 1)
		if !s.ord.Order(x, c.Nil()) || s.ord.Order(c.Nil(), x) {
			t.Fatalf("last position and nil are not ordered")
		}
	}
}

func runRandomLayerSequence(t *testing.T, perm []int, seed int64, steps int) *stack {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	s := newStack(t, perm)
	md := &model{marks: map[int][flags]bool{}}
	for i := 0; i < steps; i++ {
		switch op := r.Intn(6); {
		case op < 3:
			v := r.Intn(200)
			if _, found := slices.BinarySearch(md.values, v); found {
				continue
			}
			insertValue(t, s.chain, v)
			k, _ := slices.BinarySearch(md.values, v)
			md.values = slices.Insert(md.values, k, v)
		case op == 3:
			if len(md.values) == 0 {
				continue
			}
			k := r.Intn(len(md.values))
			v := md.values[k]
			eraseValue(t, s.chain, v)
			md.values = slices.Delete(md.values, k, k+1)
			delete(md.marks, v)
		default:
			if len(md.values) == 0 {
				continue
			}
			k := r.Intn(len(md.values))
			v, f := md.values[k], Flag(r.Intn(flags))
			x, _ := s.ix.At(k)
			marks := md.marks[v]
			var changed bool
			var err error
			if op == 4 {
				changed, err = s.mark.Mark(x, f)
			} else {
				changed, err = s.mark.Unmark(x, f)
			}
			if err != nil {
				t.Fatalf("marking failed: %v", err)
			}
			if changed != (marks[f] != (op == 4)) {
				t.Fatalf("mark change reported wrongly for %d", v)
			}
			marks[f] = op == 4
			md.marks[v] = marks
		}
		s.assertMatches(t, md)
	}
	return s
}

func TestLayersRandomizedProperty(t *testing.T) {
	seeds := []int64{1, 2, 3, 7, 42, 99, 31337}
	for _, seed := range seeds {
		t.Run("seed_"+strconv.FormatInt(seed, 10), func(t *testing.T) {
			runRandomLayerSequence(t, []int{0, 1, 2, 3}, seed, 300)
		})
	}
}

// The order of layers must not change the resulting trees.
func TestLayerOrderIndependence(t *testing.T) {
	var want string
	for _, perm := range permutations(4) {
		s := runRandomLayerSequence(t, perm, 4711, 200)
		got := shape(s.chain)
		if want == "" {
			want = got
		} else if got != want {
			t.Fatalf("layers stacked as %v produce a different tree:\n got=%s\nwant=%s", perm, got, want)
		}
	}
}

func FuzzLayersRandomizedProperty(f *testing.F) {
	f.Add(int64(1), uint8(32))
	f.Add(int64(7), uint8(64))
	f.Add(int64(42), uint8(200))
	f.Fuzz(func(t *testing.T, seed int64, steps uint8) {
		runRandomLayerSequence(t, []int{2, 0, 3, 1}, seed, int(steps)+1)
	})
}

func permutations(n int) [][]int {
	if n == 0 {
		return [][]int{{}}
	}
	var out [][]int
	for _, p := range permutations(n - 1) {
		for i := 0; i <= len(p); i++ {
			q := slices.Insert(slices.Clone(p), i, n-1)
			out = append(out, q)
		}
	}
	return out
}

// shape renders the topology of a tree with its values.
func shape(c *Chain[int]) string {
	var b strings.Builder
	var walk func(node.Pos)
	walk = func(x node.Pos) {
		if c.IsNil(x) {
			b.WriteString("-")
			return
		}
		fmt.Fprintf(&b, "(%d ", c.Value(x))
		walk(c.Left(x))
		b.WriteByte(' ')
		walk(c.Right(x))
		b.WriteByte(')')
	}
	walk(c.Root())
	return b.String()
}
