package lsp_test

import (
	"fmt"
	"testing"

	"src.pcomb.sh/pkg/lsp"
	. "src.pcomb.sh/pkg/prog/progtest"
)

func TestProgram(t *testing.T) {
	SetupEnv(t)
	request := `{"jsonrpc":"2.0","id":1,"method":"initialize","params":{}}`

	Test(t, &lsp.Program{},
		ThatPcomb("-lsp", "-rule", "int").WithStdin("").DoesNothing(),
		ThatPcomb("-lsp", "-rule", "int").
			WithStdin(fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(request), request)).
			WritesStdoutContaining(`"hoverProvider":true`),

		ThatPcomb("-lsp").ExitsWith(2).WritesStderrContaining("no rule given"),
		ThatPcomb("-lsp", "-rule", "nope").ExitsWith(2).
			WritesStderrContaining(`unknown rule "nope"`),
		ThatPcomb("-rule", "int").ExitsWith(2).
			WritesStderr("internal error: no suitable subprogram\n"),
	)
}
