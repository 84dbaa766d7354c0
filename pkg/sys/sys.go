// Package sys provides terminal utilities with the same API across OSes.
package sys

import (
	"os"

	"github.com/mattn/go-isatty"
)

// WinSize queries the size of the terminal referenced by the given file. It
// returns -1, -1 if file is not a terminal or the size can't be determined.
func WinSize(file *os.File) (row, col int) { return winSize(file) }

// IsATTY determines whether the given file is a terminal.
func IsATTY(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}
