package comb

import "strings"

// Match evaluates n against input.
//
// On success, it returns the matched text, the remainder of the input and true.
// On failure, it returns false, and rest is the input that the failing
// primitive was looking at; matched is empty.
//
// Reaching a node built with Fail panics with a *FatalError; Parse turns that
// into an error.
func (n Node) Match(input string) (matched, rest string, ok bool) {
	switch n.kind {
	case LiteralNode:
		if strings.HasPrefix(input, n.text) {
			return n.text, input[len(n.text):], true
		}
		return "", input, false
	case PatternNode:
		loc := n.re.FindStringIndex(input)
		if loc == nil {
			return "", input, false
		}
		return input[:loc[1]], input[loc[1]:], true
	case ConstantNode:
		return n.text, input, true
	case FailNode:
		panic(&FatalError{Message: n.text})
	case SequenceNode:
		lmatched, rest, ok := n.children[0].Match(input)
		if !ok {
			return "", rest, false
		}
		rmatched, rest, ok := n.children[1].Match(rest)
		if !ok {
			return "", rest, false
		}
		return EncodeList([]string{lmatched, rmatched}), rest, true
	case SkipBeforeNode:
		_, rest, ok := n.children[0].Match(input)
		if !ok {
			return "", rest, false
		}
		return n.children[1].Match(rest)
	case SkipAfterNode:
		matched, rest, ok := n.children[0].Match(input)
		if !ok {
			return "", rest, false
		}
		_, rest, ok = n.children[1].Match(rest)
		if !ok {
			return "", rest, false
		}
		return matched, rest, true
	case AlternationNode:
		if matched, rest, ok := n.children[0].Match(input); ok {
			return matched, rest, true
		}
		return n.children[1].Match(input)
	case FixedRepeatNode:
		items, rest, ok := repeat(n.children[0], input, n.min, nil)
		if !ok {
			return "", rest, false
		}
		return EncodeList(items), rest, true
	case BoundedRepeatNode:
		items, rest, ok := repeat(n.children[0], input, n.min, nil)
		if !ok {
			return "", rest, false
		}
		for i := n.min; i < n.max; i++ {
			m, r, ok := n.children[0].Match(rest)
			// The input seen by the failed attempt becomes the remainder.
			rest = r
			if !ok {
				break
			}
			items = append(items, m)
		}
		return EncodeList(items), rest, true
	case TransformNode:
		matched, rest, ok := n.children[0].Match(input)
		if !ok {
			return "", rest, false
		}
		if n.mapper == nil {
			return matched, rest, true
		}
		mapped, err := n.mapper.Apply(matched)
		if err != nil {
			logger.Printf("mapper rejected %q: %v", matched, err)
			return "", rest, false
		}
		return mapped, rest, true
	default:
		panic("unreachable")
	}
}

// Matches op exactly times times, appending the matched texts to items.
func repeat(op Node, input string, times int, items []string) ([]string, string, bool) {
	rest := input
	for i := 0; i < times; i++ {
		m, r, ok := op.Match(rest)
		if !ok {
			return nil, r, false
		}
		items = append(items, m)
		rest = r
	}
	return items, rest, true
}

// Result is the outcome of a successful Parse.
type Result struct {
	Matched string
	Rest    string
}

// Parse evaluates n against input. The error is a *MismatchError if n doesn't
// match, or a *FatalError if the evaluation reached a Fail node.
func Parse(n Node, input string) (res Result, err error) {
	defer func() {
		if r := recover(); r != nil {
			fe, ok := r.(*FatalError)
			if !ok {
				panic(r)
			}
			res, err = Result{}, fe
		}
	}()
	matched, rest, ok := n.Match(input)
	if !ok {
		return Result{}, &MismatchError{Rest: rest}
	}
	return Result{matched, rest}, nil
}

// ParseAll is like Parse, but also requires n to consume all of input. When
// it doesn't, the error is a *MismatchError carrying the leftover.
func ParseAll(n Node, input string) (Result, error) {
	res, err := Parse(n, input)
	if err != nil {
		return res, err
	}
	if res.Rest != "" {
		return Result{}, &MismatchError{Rest: res.Rest}
	}
	return res, nil
}
