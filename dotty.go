package bintree

import (
	"fmt"
	"io"
	"strings"

	"github.com/npillmayer/bintree/bst"
)

// Tree2Dot outputs the internal structure of a tree in Graphviz DOT format
// (for debugging purposes). Labels show the value and the metadata of the
// augmentations; nodes marked with any flag are highlighted.
func Tree2Dot[T any](t *Tree[T], w io.Writer) {
	io.WriteString(w, "strict digraph {\n")
	io.WriteString(w, "\tnode [fontname=Arial,fontsize=12];\n")
	var nodelist, edgelist strings.Builder
	nilid := 0
	for x := range bst.PreOrder[Pos](t.chain, t.Root()) {
		label := strings.ReplaceAll(nodeLabel(t, x, "\n"), "\"", "\\\"")
		label = strings.ReplaceAll(label, "\n", "\\n")
		fmt.Fprintf(&nodelist, "\"%d\" [label=\"%s\" %s];\n", x, label, nodeDotStyles(t, x))
		for _, ch := range []Pos{t.Left(x), t.Right(x)} {
			if t.IsNil(ch) {
				nilid++
				fmt.Fprintf(&nodelist, "\"nil%d\" %s;\n", nilid, emptyNode())
				fmt.Fprintf(&edgelist, "\"%d\" -> \"nil%d\";\n", x, nilid)
			} else {
				fmt.Fprintf(&edgelist, "\"%d\" -> \"%d\";\n", x, ch)
			}
		}
	}
	io.WriteString(w, nodelist.String())
	io.WriteString(w, edgelist.String())
	io.WriteString(w, "}\n")
}

// nodeLabel renders the value of x and the metadata, separated by sep.
func nodeLabel[T any](t *Tree[T], x Pos, sep string) string {
	label := fmt.Sprintf("%v", t.Value(x))
	var meta []string
	if t.avl != nil {
		meta = append(meta, fmt.Sprintf("b=%d", t.avl.BalanceFactor(x)))
	}
	if t.ix != nil {
		meta = append(meta, fmt.Sprintf("n=%d", t.ix.Size(x)))
	}
	if t.mark != nil {
		for f := Flag(0); int(f) < t.mark.Flags(); f++ {
			c, _ := t.mark.Count(x, f)
			meta = append(meta, fmt.Sprintf("m%d=%d", f, c))
		}
	}
	if len(meta) == 0 {
		return label
	}
	return label + sep + strings.Join(meta, " ")
}

func emptyNode() string {
	return "[label=\"\",color=black,shape=circle,fixedsize=true,width=.2]"
}

func nodeDotStyles[T any](t *Tree[T], x Pos) string {
	s := ",style=filled,color=black,shape=circle"
	if isMarked(t, x) {
		s += ",fillcolor=\"#FFAA66\""
	} else {
		s += ",fillcolor=\"#a3d7e4\""
	}
	return s
}

// isMarked reports whether x carries any flag.
func isMarked[T any](t *Tree[T], x Pos) bool {
	if t.mark == nil {
		return false
	}
	for f := Flag(0); int(f) < t.mark.Flags(); f++ {
		if m, _ := t.mark.Marked(x, f); m {
			return true
		}
	}
	return false
}
