// Package prog supports building the pcomb program from subprograms.
//
// A subprogram registers its own flags and decides in Run whether it applies,
// returning ErrNextProgram if it doesn't.
package prog

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"src.pcomb.sh/pkg/config"
	"src.pcomb.sh/pkg/logutil"
)

// Program represents a subprogram.
type Program interface {
	RegisterFlags(fs *FlagSet)
	// Run runs the subprogram.
	Run(fds [3]*os.File, args []string) error
}

func usage(out io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(out, "Usage: pcomb [flags] [input ...]")
	fmt.Fprintln(out, "Supported flags:")
	fs.SetOutput(out)
	fs.PrintDefaults()
}

// Run parses command-line flags, loads the configuration file and runs the
// first applicable subprogram. It returns the exit status of the program.
func Run(fds [3]*os.File, args []string, p Program) int {
	var log, rc string
	var help bool

	fs := flag.NewFlagSet("pcomb", flag.ContinueOnError)
	// Error and usage will be printed explicitly.
	fs.SetOutput(io.Discard)

	fs.StringVar(&log, "log", "", "a file to write debug log to")
	fs.StringVar(&rc, "rc", "", "path to the configuration file")
	fs.BoolVar(&help, "help", false, "show usage help and quit")

	f := &FlagSet{FlagSet: fs}
	p.RegisterFlags(f)

	err := fs.Parse(args[1:])
	if err != nil {
		if err == flag.ErrHelp {
			// (*flag.FlagSet).Parse returns ErrHelp when -h or -help was
			// requested but *not* defined. pcomb defines -help, but not -h;
			// so this means that -h has been requested. Handle this by
			// printing the same message as an undefined flag.
			fmt.Fprintln(fds[2], "flag provided but not defined: -h")
		} else {
			fmt.Fprintln(fds[2], err)
		}
		usage(fds[2], fs)
		return 2
	}

	if help {
		usage(fds[1], fs)
		return 0
	}

	cfg, err := config.Load(rc)
	if err != nil {
		fmt.Fprintln(fds[2], "cannot load configuration:", err)
		return 2
	}
	if f.config != nil {
		*f.config = cfg
	}

	if log == "" {
		log = cfg.Log
	}
	if log != "" {
		if err := logutil.SetOutputFile(log); err != nil {
			fmt.Fprintln(fds[2], err)
		}
	}

	err = p.Run(fds, fs.Args())
	if err == nil {
		return 0
	}
	if err == ErrNextProgram {
		err = errNoSuitableSubprogram
	}
	if msg := err.Error(); msg != "" {
		fmt.Fprintln(fds[2], msg)
	}
	switch err := err.(type) {
	case badUsageError:
		usage(fds[2], fs)
	case exitError:
		return err.exit
	}
	return 2
}

// Composite returns a Program made up from other programs. It registers the
// flags of all of them, and runs the first one that doesn't return
// ErrNextProgram.
func Composite(programs ...Program) Program {
	return composite(programs)
}

type composite []Program

func (cp composite) RegisterFlags(f *FlagSet) {
	for _, p := range cp {
		p.RegisterFlags(f)
	}
}

func (cp composite) Run(fds [3]*os.File, args []string) error {
	for _, p := range cp {
		err := p.Run(fds, args)
		if err != ErrNextProgram {
			return err
		}
	}
	// If we have reached here, all subprograms have returned ErrNextProgram
	return ErrNextProgram
}

// ErrNextProgram is a special error that may be returned by Program.Run that
// is part of a Composite program, indicating that the next program should be
// tried.
var ErrNextProgram = errors.New("next program")

var errNoSuitableSubprogram = errors.New("internal error: no suitable subprogram")

// BadUsage returns a special error that may be returned by Program.Run. It
// causes the main function to print out a message, the usage information and
// exit with 2.
func BadUsage(msg string) error { return badUsageError{msg} }

type badUsageError struct{ msg string }

func (e badUsageError) Error() string { return e.msg }

// Exit returns a special error that may be returned by Program.Run. It causes
// the main function to exit with the given code without printing any error
// messages. Exit(0) returns nil.
func Exit(exit int) error {
	if exit == 0 {
		return nil
	}
	return exitError{exit}
}

type exitError struct{ exit int }

func (e exitError) Error() string { return "" }
