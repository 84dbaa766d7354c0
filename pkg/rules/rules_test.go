package rules

import (
	"testing"

	"src.pcomb.sh/pkg/comb"
	"src.pcomb.sh/pkg/testutil"
	"src.pcomb.sh/pkg/tt"
)

func match(name, input string) (string, string, bool) {
	n, ok := Lookup(name)
	if !ok {
		panic("no rule " + name)
	}
	return n.Match(input)
}

func TestRules(t *testing.T) {
	tt.Test(t, tt.Fn("match", match), tt.Table{
		tt.Args("int", "42 rest").Rets("42", " rest", true),
		tt.Args("int", "+007").Rets("7", "", true),
		tt.Args("int", "-12x").Rets("-12", "x", true),
		tt.Args("int", "x12").Rets("", "x12", false),
		// Too big for int64; the mapper rejects it.
		tt.Args("int", "99999999999999999999;").Rets("", ";", false),

		tt.Args("float", "1.50").Rets("1.5", "", true),
		tt.Args("float", "1e3,").Rets("1000", ",", true),
		tt.Args("float", "-.25").Rets("-0.25", "", true),
		tt.Args("float", "12").Rets("", "12", false),

		tt.Args("ident", "foo_1 bar").Rets("foo_1", " bar", true),
		tt.Args("ident", "1foo").Rets("", "1foo", false),

		tt.Args("bool", "true").Rets("true", "", true),
		tt.Args("bool", "falsey").Rets("false", "y", true),
		tt.Args("bool", "yes").Rets("", "yes", false),

		tt.Args("string", `"a\tb" tail`).Rets("a\tb", " tail", true),
		tt.Args("string", `"say \"hi\""`).Rets(`say "hi"`, "", true),
		tt.Args("string", `"bad \q"!`).Rets("", "!", false),
		tt.Args("string", `"open`).Rets("", `"open`, false),

		tt.Args("hexcolor", "#ff8000;").Rets("rgb(255, 128, 0)", ";", true),
		tt.Args("hexcolor", "#FFF").Rets("", "F", false),
		tt.Args("hexcolor", "ff8000").Rets("", "ff8000", false),

		tt.Args("semver", "1.2.3").Rets("major=1 minor=2 patch=3", "", true),
		tt.Args("semver", "10.0.1-rc.1 ").
			Rets("major=10 minor=0 patch=1 pre=rc.1", " ", true),
		tt.Args("semver", "1.2").Rets("", "", false),
		tt.Args("semver", "01.2.3").Rets("", "1.2.3", false),

		tt.Args("kv", "name = \"pcomb\"").Rets("name=pcomb", "", true),
		tt.Args("kv", "x=1.50;").Rets("x=1.5", ";", true),
		tt.Args("kv", "x=y").Rets("x=y", "", true),
		tt.Args("kv", "debug = false").Rets("debug=false", "", true),
		// Booleans are tried before identifiers.
		tt.Args("kv", "x=truex").Rets("x=true", "x", true),
		tt.Args("kv", "x:1").Rets("", ":1", false),

		tt.Args("list", "[]").Rets("[]", "", true),
		tt.Args("list", "[ ]").Rets("[]", "", true),
		tt.Args("list", `[1, 2.50, "three", four]`).
			Rets(`["1","2.5","three","four"]`, "", true),
		// A dangling comma stops the repetition without failing it.
		tt.Args("list", "[1, ]").Rets(`["1"]`, "", true),
		tt.Args("list", "[true,no]").Rets(`["true","no"]`, "", true),
		tt.Args("list", "[1 2]").Rets("", "2]", false),
	})
}

func TestTodoIsFatal(t *testing.T) {
	n, _ := Lookup("todo")
	_, err := comb.Parse(n, "anything")
	if _, ok := err.(*comb.FatalError); !ok {
		t.Errorf("Parse returns %v, want *comb.FatalError", err)
	}
	if r := testutil.Recover(func() { n.Match("") }); r == nil {
		t.Errorf("Match didn't panic")
	}
}

func TestLookup_Missing(t *testing.T) {
	if _, ok := Lookup("nope"); ok {
		t.Errorf("Lookup found a rule that doesn't exist")
	}
	if d := Describe("nope"); d != "" {
		t.Errorf("Describe returns %q for a missing rule", d)
	}
}

func TestNames(t *testing.T) {
	names := Names()
	if len(names) != len(rules) {
		t.Fatalf("Names returns %d names, want %d", len(names), len(rules))
	}
	for i, name := range names {
		if i > 0 && names[i-1] >= name {
			t.Errorf("Names not sorted: %v", names)
		}
		if Describe(name) == "" {
			t.Errorf("rule %s has no description", name)
		}
	}
}
