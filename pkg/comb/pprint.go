package comb

import (
	"fmt"
	"io"
	"strconv"
	"strings"
)

const (
	maxL      = 10
	maxR      = 10
	indentInc = 2
)

// String returns an outline of the tree rooted at n, one line per node, with
// the operands of a node indented inside brackets.
func (n Node) String() string {
	var sb strings.Builder
	pprintRec(n, &sb, 0)
	return sb.String()
}

// Pprint writes the outline of the tree rooted at n to w, followed by a
// newline.
func Pprint(n Node, w io.Writer) {
	pprintRec(n, w, 0)
	fmt.Fprint(w, "\n")
}

func pprintRec(n Node, w io.Writer, indent int) {
	fmt.Fprintf(w, "%*s%s", indent, "", label(n))
	if len(n.children) == 0 {
		return
	}
	fmt.Fprint(w, " [\n")
	for _, ch := range n.children {
		pprintRec(ch, w, indent+indentInc)
		fmt.Fprint(w, ",\n")
	}
	fmt.Fprintf(w, "%*s]", indent, "")
}

func label(n Node) string {
	switch n.kind {
	case LiteralNode, ConstantNode, FailNode:
		return n.kind.String() + " " + strconv.Quote(n.text)
	case PatternNode:
		return "Pattern /" + n.text + "/"
	case FixedRepeatNode:
		return "Repeat " + strconv.Itoa(n.min)
	case BoundedRepeatNode:
		return fmt.Sprintf("RepeatRange %d..%d", n.min, n.max)
	case TransformNode:
		return "Map"
	default:
		return n.kind.String()
	}
}

func compactQuote(text string) string {
	if len(text) > maxL+maxR+3 {
		text = text[0:maxL] + "..." + text[len(text)-maxR:]
	}
	return strconv.Quote(text)
}
