package bintree

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"golang.org/x/term"
)

// Fprint writes an indented rendering of t to w, one node per line, right
// subtrees above their parents. Nodes carrying a mark are highlighted if w
// is a terminal.
func Fprint[T any](w io.Writer, t *Tree[T]) error {
	highlight := color.New(color.FgHiRed, color.Bold)
	if useColor(w) {
		highlight.EnableColor()
	} else {
		highlight.DisableColor()
	}
	var err error
	var walk func(Pos, int)
	walk = func(x Pos, depth int) {
		if t.IsNil(x) || err != nil {
			return
		}
		walk(t.Right(x), depth+1)
		label := nodeLabel(t, x, " ")
		if isMarked(t, x) {
			label = highlight.Sprint(label)
		}
		if _, e := fmt.Fprintf(w, "%s%s\n", strings.Repeat("    ", depth), label); e != nil {
			err = e
			return
		}
		walk(t.Left(x), depth+1)
	}
	if t.IsEmpty() {
		_, err = io.WriteString(w, "()\n")
		return err
	}
	walk(t.Root(), 0)
	return err
}

func useColor(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
