package bst

import (
	"slices"
	"testing"
)

// tnode is a pointer-based tree node for tests.
type tnode struct {
	v                   int
	parent, left, right *tnode
}

type links struct{}

func (links) IsNil(x *tnode) bool    { return x == nil }
func (links) Left(x *tnode) *tnode   { return x.left }
func (links) Right(x *tnode) *tnode  { return x.right }
func (links) Parent(x *tnode) *tnode { return x.parent }

func mk(l *tnode, v int, r *tnode) *tnode {
	x := &tnode{v: v, left: l, right: r}
	if l != nil {
		l.parent = x
	}
	if r != nil {
		r.parent = x
	}
	return x
}

func leaf(v int) *tnode { return mk(nil, v, nil) }

// sample builds
//
//	     4
//	   /   \
//	  2     6
//	 / \     \
//	1   3     7
func sample() (*tnode, map[int]*tnode) {
	root := mk(mk(leaf(1), 2, leaf(3)), 4, mk(nil, 6, leaf(7)))
	nodes := map[int]*tnode{}
	for x := range PreOrder[*tnode](links{}, root) {
		nodes[x.v] = x
	}
	return root, nodes
}

func collect(seq func(func(*tnode) bool)) []int {
	var vs []int
	for x := range seq {
		vs = append(vs, x.v)
	}
	return vs
}

func TestNavigation(t *testing.T) {
	root, n := sample()
	l := links{}
	if Minimum[*tnode](l, root) != n[1] || Maximum[*tnode](l, root) != n[7] {
		t.Errorf("minimum or maximum wrong")
	}
	if Minimum[*tnode](l, nil) != nil || Maximum[*tnode](l, nil) != nil {
		t.Errorf("extrema of nil should be nil")
	}
	if !IsLeaf[*tnode](l, n[3]) || IsLeaf[*tnode](l, n[6]) || IsLeaf[*tnode](l, nil) {
		t.Errorf("IsLeaf wrong")
	}
	if Root[*tnode](l, n[3]) != root || Parent[*tnode](l, root) != nil {
		t.Errorf("Root or Parent wrong")
	}
	if Sibling[*tnode](l, n[2]) != n[6] || Sibling[*tnode](l, n[7]) != nil || Sibling[*tnode](l, root) != nil {
		t.Errorf("Sibling wrong")
	}
	if !IsLeftChild[*tnode](l, n[1]) || IsLeftChild[*tnode](l, n[7]) || IsLeftChild[*tnode](l, root) {
		t.Errorf("IsLeftChild wrong")
	}
	if d := Depth[*tnode](l, n[3]); d != 2 {
		t.Errorf("depth of 3: got=%d want=2", d)
	}
	if d := Depth[*tnode](l, nil); d != -1 {
		t.Errorf("depth of nil: got=%d want=-1", d)
	}
	if h := Height[*tnode](l, root); h != 3 {
		t.Errorf("height: got=%d want=3", h)
	}
	if s := Size[*tnode](l, root); s != 6 {
		t.Errorf("size: got=%d want=6", s)
	}
	if RollDownLeft[*tnode](l, root) != n[1] || RollDownRight[*tnode](l, root) != n[7] {
		t.Errorf("roll down wrong")
	}
	if RollDownLeft[*tnode](l, n[6]) != n[7] {
		t.Errorf("roll down left of 6 should reach 7")
	}
}

func TestSuccessorPredecessor(t *testing.T) {
	_, n := sample()
	l := links{}
	want := []int{1, 2, 3, 4, 6, 7}
	for i, v := range want {
		succ, pred := Successor[*tnode](l, n[v]), Predecessor[*tnode](l, n[v])
		if i+1 < len(want) && succ != n[want[i+1]] {
			t.Errorf("successor of %d wrong", v)
		}
		if i+1 == len(want) && succ != nil {
			t.Errorf("successor of the last node should be nil")
		}
		if i > 0 && pred != n[want[i-1]] {
			t.Errorf("predecessor of %d wrong", v)
		}
		if i == 0 && pred != nil {
			t.Errorf("predecessor of the first node should be nil")
		}
	}
	if Successor[*tnode](l, nil) != nil || Predecessor[*tnode](l, nil) != nil {
		t.Errorf("neighbours of nil should be nil")
	}
}

func TestTraversals(t *testing.T) {
	root, n := sample()
	l := links{}
	if got := collect(InOrder[*tnode](l, root)); !slices.Equal(got, []int{1, 2, 3, 4, 6, 7}) {
		t.Errorf("in-order: %v", got)
	}
	if got := collect(InOrderBackward[*tnode](l, root)); !slices.Equal(got, []int{7, 6, 4, 3, 2, 1}) {
		t.Errorf("backward: %v", got)
	}
	if got := collect(PreOrder[*tnode](l, root)); !slices.Equal(got, []int{4, 2, 1, 3, 6, 7}) {
		t.Errorf("pre-order: %v", got)
	}
	if got := collect(PostOrder[*tnode](l, root)); !slices.Equal(got, []int{1, 3, 2, 7, 6, 4}) {
		t.Errorf("post-order: %v", got)
	}
	if got := collect(InOrder[*tnode](l, n[2])); !slices.Equal(got, []int{1, 2, 3}) {
		t.Errorf("in-order of subtree: %v", got)
	}
	if got := collect(PostOrder[*tnode](l, n[6])); !slices.Equal(got, []int{7, 6}) {
		t.Errorf("post-order of subtree: %v", got)
	}
	if got := collect(InOrder[*tnode](l, nil)); len(got) != 0 {
		t.Errorf("in-order of nil: %v", got)
	}
	var first []int
	for x := range InOrder[*tnode](l, root) {
		first = append(first, x.v)
		if len(first) == 2 {
			break
		}
	}
	if !slices.Equal(first, []int{1, 2}) {
		t.Errorf("early break: %v", first)
	}
}

func TestPostOrderTearDown(t *testing.T) {
	root, _ := sample()
	l := links{}
	var seen []int
	for x := range PostOrder[*tnode](l, root) {
		seen = append(seen, x.v)
		if x.parent != nil && x.parent.left == x {
			x.parent.left = nil
		}
		x.left, x.right = nil, nil
	}
	if len(seen) != 6 {
		t.Errorf("post-order while tearing down visited %v", seen)
	}
}

func TestOrder(t *testing.T) {
	root, n := sample()
	l := links{}
	seq := collect(InOrder[*tnode](l, root))
	var ctx OrderContext[*tnode]
	for i, a := range seq {
		for j, b := range seq {
			if got := ctx.Order(l, n[a], n[b]); got != (i < j) {
				t.Errorf("order(%d,%d): got=%v want=%v", a, b, got, i < j)
			}
		}
		if !Order[*tnode](l, n[a], nil) {
			t.Errorf("%d should precede nil", a)
		}
		if Order[*tnode](l, nil, n[a]) {
			t.Errorf("nil should not precede %d", a)
		}
	}
	if Order[*tnode](l, nil, nil) {
		t.Errorf("nil should not precede itself")
	}
	other := leaf(9)
	defer func() {
		if recover() == nil {
			t.Errorf("positions of different trees should panic")
		}
	}()
	ctx.Order(l, n[1], other)
}

func TestTopologicallyEqual(t *testing.T) {
	a, _ := sample()
	b, _ := sample()
	l := links{}
	eq := func(x, y *tnode) bool { return x.v == y.v }
	if !TopologicallyEqual[*tnode, *tnode](l, a, l, b, eq) {
		t.Errorf("equal trees reported as different")
	}
	b.right.right.v = 8
	if TopologicallyEqual[*tnode, *tnode](l, a, l, b, eq) {
		t.Errorf("different values reported as equal")
	}
	c := mk(mk(leaf(1), 2, leaf(3)), 4, mk(leaf(7), 6, nil))
	c.right.left.v = 7
	if TopologicallyEqual[*tnode, *tnode](l, a, l, c, func(x, y *tnode) bool { return true }) {
		t.Errorf("different shapes reported as equal")
	}
}
