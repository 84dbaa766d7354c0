package comb

import (
	"testing"

	"src.pcomb.sh/pkg/tt"
)

func TestEncodeList(t *testing.T) {
	tt.Test(t, tt.Fn("EncodeList", EncodeList), tt.Table{
		tt.Args([]string(nil)).Rets("[]"),
		tt.Args([]string{}).Rets("[]"),
		tt.Args([]string{"a", "b"}).Rets(`["a","b"]`),
		tt.Args([]string{"<&>"}).Rets(`["<&>"]`),
		tt.Args([]string{`a"b`, "\n"}).Rets(`["a\"b","\n"]`),
	})
}

func TestDecodeList(t *testing.T) {
	tt.Test(t, tt.Fn("DecodeList", DecodeList), tt.Table{
		tt.Args(`["a","b"]`).Rets([]string{"a", "b"}, nil),
		tt.Args(`[]`).Rets([]string{}, nil),
		tt.Args(`["[\"a\",\"b\"]","c"]`).Rets([]string{`["a","b"]`, "c"}, nil),
	})

	for _, bad := range []string{"", "null", "abc", `{"a":1}`, `[1]`} {
		if _, err := DecodeList(bad); err == nil {
			t.Errorf("DecodeList(%q) returns no error", bad)
		}
	}
}

func TestDecodeList_Nested(t *testing.T) {
	matched, _, _ := Seq(Literal("a"), Literal("b"), Literal("c")).Match("abc")
	outer, err := DecodeList(matched)
	if err != nil || len(outer) != 2 || outer[1] != "c" {
		t.Fatalf("DecodeList(%q) = %q, %v", matched, outer, err)
	}
	inner, err := DecodeList(outer[0])
	if err != nil || len(inner) != 2 || inner[0] != "a" || inner[1] != "b" {
		t.Errorf("DecodeList(%q) = %q, %v", outer[0], inner, err)
	}
}
