package tt

import (
	"fmt"
	"strings"
	"testing"
)

// recorder is a T that keeps the messages passed to Errorf.
type recorder []string

func (r *recorder) Helper() {}

func (r *recorder) Errorf(format string, args ...any) {
	*r = append(*r, fmt.Sprintf(format, args...))
}

func cut(s, sep string) (string, string) {
	before, after, _ := strings.Cut(s, sep)
	return before, after
}

func first(items ...string) string {
	if len(items) == 0 {
		return ""
	}
	return items[0]
}

func passErr(err error) error { return err }

type prefix string

func (p prefix) Match(v RetValue) bool {
	s, ok := v.(string)
	return ok && strings.HasPrefix(s, string(p))
}

func TestTest_Pass(t *testing.T) {
	var r recorder
	Test(&r, Fn("cut", cut), Table{
		Args("a=b", "=").Rets("a", "b"),
		Args("a=b", "=").Rets(Any, "b"),
		Args("key=value", "=").Rets(prefix("k"), prefix("v")),
	})
	Test(&r, Fn("passErr", passErr), Table{
		Args(nil).Rets(nil),
	})
	Test(&r, Fn("first", first), Table{
		Args().Rets(""),
		Args("x", "y").Rets("x"),
	})
	if len(r) > 0 {
		t.Errorf("Test reported errors for passing cases: %v", r)
	}
}

func TestTest_DefaultFmt(t *testing.T) {
	var r recorder
	Test(&r, Fn("cut", cut), Table{Args("a=b", "=").Rets("a", "c")})
	wantOne(t, r, `cut(a=b, =) returns (-Wanted +Actual):`+"\n")
}

func TestTest_CustomFmt(t *testing.T) {
	var r recorder
	Test(&r,
		Fn("cut", cut).ArgsFmt("%q, %q").RetsFmt("(%q, %q)"),
		Table{Args("a=b", "=").Rets("a", "c")})
	wantOne(t, r, `cut("a=b", "=") returns (-Wanted +Actual):`+"\n"+
		`-("a", "c")`+"\n"+`+("a", "b")`+"\n")
}

func TestTest_MatcherFails(t *testing.T) {
	var r recorder
	Test(&r, Fn("first", first), Table{
		Args("yes").Rets(prefix("x")),
	})
	wantOne(t, r, "first(yes) returns (-Wanted +Actual):\n")
}

func wantOne(t *testing.T, r recorder, wantPrefix string) {
	t.Helper()
	switch len(r) {
	case 0:
		t.Errorf("Test reported no error for a failing case")
	case 1:
		if !strings.HasPrefix(r[0], wantPrefix) {
			t.Errorf("Test reported:\n%q\nwant prefix:\n%q", r[0], wantPrefix)
		}
	default:
		t.Errorf("Test reported %d errors, want 1: %v", len(r), r)
	}
}
