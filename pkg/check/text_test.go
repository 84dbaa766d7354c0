package check

import (
	"testing"

	"src.pcomb.sh/pkg/tt"
)

func TestTruncate(t *testing.T) {
	tt.Test(t, tt.Fn("truncate", truncate), tt.Table{
		tt.Args("abcdef", 0).Rets("abcdef"),
		tt.Args("abcdef", -1).Rets("abcdef"),
		tt.Args("abcdef", 6).Rets("abcdef"),
		tt.Args("abcdef", 5).Rets("ab..."),
		tt.Args("abcdef", 2).Rets(".."),
		tt.Args("你好世界你好", 5).Rets("你好..."),
	})
}
