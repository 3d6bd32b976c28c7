package bst

// OrderContext holds the scratch buffers for Order. A context may be reused
// for any number of calls, but not concurrently.
type OrderContext[P comparable] struct {
	xs, ys []P // paths to the root, position first
}

// Order reports whether x precedes y in in-order sequence. A nil position
// stands for the end of the sequence, i.e. every non-nil position precedes
// nil, and nil precedes nothing.
//
// Order takes time proportional to the depths of x and y.
func (ctx *OrderContext[P]) Order(l Links[P], x, y P) bool {
	if x == y {
		return false
	}
	if l.IsNil(y) {
		return !l.IsNil(x)
	}
	if l.IsNil(x) {
		return false
	}
	ctx.xs = pathToRoot(l, x, ctx.xs[:0])
	ctx.ys = pathToRoot(l, y, ctx.ys[:0])
	i, j := len(ctx.xs)-1, len(ctx.ys)-1
	assert(ctx.xs[i] == ctx.ys[j], "order: positions are in different trees")
	for i >= 0 && j >= 0 {
		if ctx.xs[i] != ctx.ys[j] {
			// both branch off from the same parent, the lowest common ancestor
			return IsLeftChild(l, ctx.xs[i])
		}
		i--
		j--
	}
	if i >= 0 { // y is an ancestor of x
		return IsLeftChild(l, ctx.xs[i])
	}
	// x is an ancestor of y
	return !IsLeftChild(l, ctx.ys[j])
}

// Order is a convenience wrapper which allocates a fresh context.
func Order[P comparable](l Links[P], x, y P) bool {
	var ctx OrderContext[P]
	return ctx.Order(l, x, y)
}

func pathToRoot[P comparable](l Links[P], x P, path []P) []P {
	for ; !l.IsNil(x); x = l.Parent(x) {
		path = append(path, x)
	}
	return path
}

func assert(condition bool, msg string) {
	if !condition {
		panic(msg)
	}
}
