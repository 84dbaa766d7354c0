// Package rules is a catalogue of ready-made recognizers built with package
// comb.
//
// Each rule yields a normalized rendition of what it matched: numbers are
// reformatted, strings are unquoted, and so on.
package rules

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"src.pcomb.sh/pkg/comb"
)

// Upper bound of items in a list.
const maxListItems = 1024

var errBadShape = errors.New("unexpected shape of matched text")

var (
	ws = comb.MustPattern(`[ \t]*`)

	intRule = comb.MustPattern(`[+-]?[0-9]+`).Map(normalizeInt)

	floatRule = comb.MustPattern(
		`[+-]?(?:[0-9]+\.[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?|[+-]?[0-9]+[eE][+-]?[0-9]+`).
		Map(normalizeFloat)

	ident = comb.MustPattern(`[A-Za-z_][A-Za-z0-9_]*`)

	boolRule = comb.Alt(comb.Literal("true"), comb.Literal("false"))

	stringRule = comb.MustPattern(`"(?:[^"\\]|\\.)*"`).Map(strconv.Unquote)

	hexColor = comb.Literal("#").
		SkipBefore(comb.MustPattern(`[0-9a-fA-F]{2}`).Repeat(3)).
		Map(rgb)

	number = comb.MustPattern(`0|[1-9][0-9]*`)
	dot    = comb.Literal(".")
	semver = comb.Seq(number.SkipAfter(dot), number.SkipAfter(dot), number).
		Then(comb.Literal("-").SkipBefore(comb.MustPattern(`[0-9A-Za-z.-]+`)).Optional()).
		Map(describeSemver)

	value = comb.Alt(stringRule, floatRule, intRule, boolRule, ident)

	kv = ident.SkipAfter(comb.Seq(ws, comb.Literal("="), ws)).Then(value).Map(joinKV)

	item = ws.SkipBefore(value).SkipAfter(ws)
	list = comb.Literal("[").
		SkipBefore(item.Then(comb.Literal(",").SkipBefore(item).RepeatRange(0, maxListItems)).Optional()).
		SkipAfter(comb.Literal("]")).
		Map(flattenList)

	todo = comb.Fail("rule not implemented")
)

type rule struct {
	node comb.Node
	desc string
}

var rules = map[string]rule{
	"int":      {intRule, "decimal integer with optional sign, normalized"},
	"float":    {floatRule, "decimal number with a fraction or an exponent, normalized"},
	"ident":    {ident, "identifier made of letters, digits and underscores"},
	"bool":     {boolRule, "true or false"},
	"string":   {stringRule, "double-quoted string with backslash escapes, unquoted"},
	"hexcolor": {hexColor, "#rrggbb color, rendered as rgb(r, g, b)"},
	"semver":   {semver, "semantic version with an optional prerelease"},
	"kv":       {kv, "key = value pair, rendered as key=value"},
	"list":     {list, "bracketed, comma-separated list of values"},
	"todo":     {todo, "placeholder that aborts any evaluation reaching it"},
}

// Lookup finds a rule by name.
func Lookup(name string) (comb.Node, bool) {
	r, ok := rules[name]
	return r.node, ok
}

// Names returns the names of all rules, sorted.
func Names() []string {
	names := make([]string, 0, len(rules))
	for name := range rules {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Describe returns a one-line description of a rule, or "" if there is no
// such rule.
func Describe(name string) string {
	return rules[name].desc
}

func normalizeInt(s string) (string, error) {
	i, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(i, 10), nil
}

func normalizeFloat(s string) (string, error) {
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return "", err
	}
	return strconv.FormatFloat(f, 'g', -1, 64), nil
}

func rgb(s string) (string, error) {
	parts, err := decodeN(s, 3)
	if err != nil {
		return "", err
	}
	var c [3]uint64
	for i, part := range parts {
		c[i], err = strconv.ParseUint(part, 16, 8)
		if err != nil {
			return "", err
		}
	}
	return fmt.Sprintf("rgb(%d, %d, %d)", c[0], c[1], c[2]), nil
}

func describeSemver(s string) (string, error) {
	// [[[major, minor], patch], [pre...]]
	top, err := decodeN(s, 2)
	if err != nil {
		return "", err
	}
	core, err := decodeN(top[0], 2)
	if err != nil {
		return "", err
	}
	majorMinor, err := decodeN(core[0], 2)
	if err != nil {
		return "", err
	}
	pre, err := comb.DecodeList(top[1])
	if err != nil {
		return "", err
	}
	desc := fmt.Sprintf("major=%s minor=%s patch=%s", majorMinor[0], majorMinor[1], core[1])
	if len(pre) > 0 {
		desc += " pre=" + pre[0]
	}
	return desc, nil
}

func joinKV(s string) (string, error) {
	pair, err := decodeN(s, 2)
	if err != nil {
		return "", err
	}
	return pair[0] + "=" + pair[1], nil
}

func flattenList(s string) (string, error) {
	// Either [] or [[first, [rest...]]].
	opt, err := comb.DecodeList(s)
	if err != nil {
		return "", err
	}
	if len(opt) == 0 {
		return comb.EncodeList(nil), nil
	}
	firstRest, err := decodeN(opt[0], 2)
	if err != nil {
		return "", err
	}
	rest, err := comb.DecodeList(firstRest[1])
	if err != nil {
		return "", err
	}
	return comb.EncodeList(append([]string{firstRest[0]}, rest...)), nil
}

func decodeN(s string, n int) ([]string, error) {
	items, err := comb.DecodeList(s)
	if err != nil {
		return nil, err
	}
	if len(items) != n {
		return nil, fmt.Errorf("%w: want %d items, got %d in %s",
			errBadShape, n, len(items), strings.TrimSpace(s))
	}
	return items, nil
}
