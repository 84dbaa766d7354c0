// Package comb implements parser combinators.
//
// A recognizer is a tree of Node values. Leaves are built with Literal,
// Pattern, Constant and Fail; composite nodes are built by chaining methods
// like Then, Or and Repeat on existing nodes. The tree is then evaluated
// against some input with Match or Parse, producing the matched text and the
// unconsumed remainder.
//
// Leaves yield substrings of the input as their matched text. Sequence and
// repetition nodes yield a list of the matched texts of their operands,
// encoded with EncodeList; a Transform node usually takes such a list apart
// with DecodeList and builds something more useful from it.
//
// Nodes are immutable values. A tree can be shared freely, including across
// goroutines, as long as the functions passed to Map are free of mutable
// state.
package comb

import (
	"fmt"
	"regexp"
	"regexp/syntax"
)

// Kind identifies the type of a Node.
type Kind int

// Possible values of Kind.
const (
	LiteralNode Kind = iota
	PatternNode
	ConstantNode
	FailNode
	SequenceNode
	SkipBeforeNode
	SkipAfterNode
	AlternationNode
	FixedRepeatNode
	BoundedRepeatNode
	TransformNode
)

var kindNames = [...]string{
	LiteralNode:       "Literal",
	PatternNode:       "Pattern",
	ConstantNode:      "Constant",
	FailNode:          "Fail",
	SequenceNode:      "Sequence",
	SkipBeforeNode:    "SkipBefore",
	SkipAfterNode:     "SkipAfter",
	AlternationNode:   "Alternation",
	FixedRepeatNode:   "FixedRepeat",
	BoundedRepeatNode: "BoundedRepeat",
	TransformNode:     "Transform",
}

func (k Kind) String() string {
	if 0 <= k && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Mapper transforms the matched text of a node. A non-nil error makes the
// Transform node fail like an ordinary mismatch.
type Mapper interface {
	Apply(text string) (string, error)
}

// MapperFunc adapts an ordinary function to a Mapper.
type MapperFunc func(string) (string, error)

// Apply calls f(text).
func (f MapperFunc) Apply(text string) (string, error) { return f(text) }

// Node is one matching rule, possibly with operands. The zero value is a
// Literal that matches the empty string.
type Node struct {
	kind Kind
	// Literal, Constant and Fail keep their payload here; Pattern keeps the
	// source of the expression.
	text string
	// Anchored form of the pattern, used for matching.
	re *regexp.Regexp
	// Repetition counts. FixedRepeat only uses min.
	min, max int
	mapper   Mapper
	children []Node
}

// Kind returns the kind of n.
func (n Node) Kind() Kind { return n.kind }

// Children returns a copy of the operands of n.
func (n Node) Children() []Node { return append([]Node(nil), n.children...) }

// Literal returns a Node that matches s at the start of the input.
func Literal(s string) Node { return Node{kind: LiteralNode, text: s} }

// Pattern returns a Node that matches the regular expression expr at the start
// of the input. Matches further into the input are not considered.
//
// The syntax is that of the regexp package. An invalid expression is an error
// of the caller, not of the input, so it is reported here rather than at match
// time.
func Pattern(expr string) (Node, error) {
	parsed, err := syntax.Parse(expr, syntax.Perl)
	if err != nil {
		return Node{}, fmt.Errorf("bad pattern %q: %w", expr, err)
	}
	// Anchor on the parse tree; wrapping the source text in \A(?:...) would
	// change the meaning of things like an unterminated \Q.
	anchored := &syntax.Regexp{Op: syntax.OpConcat,
		Sub: []*syntax.Regexp{{Op: syntax.OpBeginText}, parsed}}
	re, err := regexp.Compile(anchored.String())
	if err != nil {
		return Node{}, fmt.Errorf("bad pattern %q: %w", expr, err)
	}
	return Node{kind: PatternNode, text: expr, re: re}, nil
}

// MustPattern is like Pattern, but panics if expr is invalid. It is meant for
// initializing package-level recognizers.
func MustPattern(expr string) Node {
	n, err := Pattern(expr)
	if err != nil {
		panic(err)
	}
	return n
}

// Constant returns a Node that always matches, consumes nothing and yields s.
func Constant(s string) Node { return Node{kind: ConstantNode, text: s} }

// Fail returns a Node that aborts the whole evaluation with msg when it is
// reached. See FatalError.
func Fail(msg string) Node { return Node{kind: FailNode, text: msg} }

func composite(k Kind, children ...Node) Node {
	return Node{kind: k, children: children}
}

// Then returns a Node that matches n followed by m. Its matched text is the
// list of both matched texts.
func (n Node) Then(m Node) Node { return composite(SequenceNode, n, m) }

// SkipBefore returns a Node that matches n followed by m, and only keeps the
// matched text of m.
func (n Node) SkipBefore(m Node) Node { return composite(SkipBeforeNode, n, m) }

// SkipAfter returns a Node that matches n followed by m, and only keeps the
// matched text of n.
func (n Node) SkipAfter(m Node) Node { return composite(SkipAfterNode, n, m) }

// Or returns a Node that tries n first and m if n doesn't match. Both see the
// same input.
func (n Node) Or(m Node) Node { return composite(AlternationNode, n, m) }

// Repeat returns a Node that matches n exactly times times. A negative count
// is treated as 0.
func (n Node) Repeat(times int) Node {
	r := composite(FixedRepeatNode, n)
	r.min = clamp(times)
	return r
}

// RepeatRange returns a Node that matches n at least min times and then as
// many more times as it can, for a total of at most max. It is greedy and
// never gives back a repetition once matched. Negative bounds are treated as
// 0, and a max smaller than min is treated as min.
func (n Node) RepeatRange(min, max int) Node {
	r := composite(BoundedRepeatNode, n)
	r.min = clamp(min)
	r.max = clamp(max)
	if r.max < r.min {
		r.max = r.min
	}
	return r
}

// Optional returns a Node that matches n zero or one time. It is the same as
// n.RepeatRange(0, 1).
func (n Node) Optional() Node { return n.RepeatRange(0, 1) }

// Map returns a Node that matches n and passes its matched text through f.
func (n Node) Map(f func(string) (string, error)) Node {
	return n.MapWith(MapperFunc(f))
}

// MapWith is like Map, but takes a Mapper. The same Mapper may be used by any
// number of nodes.
func (n Node) MapWith(m Mapper) Node {
	r := composite(TransformNode, n)
	r.mapper = m
	return r
}

// Seq chains the nodes with Then, grouping from the left. With one argument it
// returns that node; with none it returns Constant("").
func Seq(nodes ...Node) Node { return fold(Node.Then, nodes) }

// Alt chains the nodes with Or, grouping from the left. With one argument it
// returns that node; with none it returns Constant("").
func Alt(nodes ...Node) Node { return fold(Node.Or, nodes) }

func fold(f func(Node, Node) Node, nodes []Node) Node {
	if len(nodes) == 0 {
		return Constant("")
	}
	acc := nodes[0]
	for _, n := range nodes[1:] {
		acc = f(acc, n)
	}
	return acc
}

func clamp(i int) int {
	if i < 0 {
		return 0
	}
	return i
}
