// Pcomb matches text against rules built from parser combinators. It checks
// inputs given as arguments or on stdin, keeps a history of them, and can
// serve as a language server that checks documents line by line.
package main

import (
	"os"

	"src.pcomb.sh/pkg/buildinfo"
	"src.pcomb.sh/pkg/check"
	"src.pcomb.sh/pkg/lsp"
	"src.pcomb.sh/pkg/prog"
)

func main() {
	os.Exit(prog.Run(
		[3]*os.File{os.Stdin, os.Stdout, os.Stderr}, os.Args,
		prog.Composite(
			&buildinfo.Program{}, &lsp.Program{},
			&check.HistoryProgram{}, &check.Program{})))
}
