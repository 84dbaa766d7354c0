// Package progtest contains utilities for testing subprograms.
package progtest

import (
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"src.pcomb.sh/pkg/env"
	"src.pcomb.sh/pkg/prog"
	"src.pcomb.sh/pkg/testutil"
)

// Case is a test case to run with Test.
type Case struct {
	args  []string
	stdin string
	want  result
}

type result struct {
	exitStatus int
	stdout     output
	stderr     output
}

type output struct {
	content  string
	partial  bool
	nonEmpty bool
}

func (o output) String() string {
	if o.partial {
		return fmt.Sprintf("text containing %q", o.content)
	}
	return fmt.Sprintf("%q", o.content)
}

// ThatPcomb returns a new Case with the specified CLI arguments.
//
// The new Case expects the program run to exit with 0, and write nothing to
// stdout or stderr.
//
// When combined with subsequent method calls, a test case reads like English.
// For example, a test for the fact that "pcomb -rule int 42" writes "42" to
// stdout reads:
//
//	ThatPcomb("-rule", "int", "42").WritesStdoutContaining("42")
func ThatPcomb(args ...string) *Case {
	return &Case{args: append([]string{"pcomb"}, args...)}
}

// WithStdin returns an altered Case that provides the given input to stdin.
func (c *Case) WithStdin(s string) *Case {
	c.stdin = s
	return c
}

// DoesNothing returns c itself. It is useful to mark tests that otherwise don't
// have any expectations, for example:
//
//	ThatPcomb("-rc", "rc.yaml").DoesNothing()
func (c *Case) DoesNothing() *Case {
	return c
}

// ExitsWith returns an altered Case that requires the program run to return
// with the given exit status.
func (c *Case) ExitsWith(code int) *Case {
	c.want.exitStatus = code
	return c
}

// WritesStdout returns an altered Case that requires the program run to write
// exactly the given text to stdout.
func (c *Case) WritesStdout(s string) *Case {
	c.want.stdout = output{content: s}
	return c
}

// WritesStdoutContaining returns an altered Case that requires the program run
// to write output to stdout that contains the given text as a substring.
func (c *Case) WritesStdoutContaining(s string) *Case {
	c.want.stdout = output{content: s, partial: true}
	return c
}

// WritesSomeStdout returns an altered Case that requires the program run to
// write some output to stdout.
func (c *Case) WritesSomeStdout() *Case {
	c.want.stdout = output{nonEmpty: true, partial: true}
	return c
}

// WritesStderr returns an altered Case that requires the program run to write
// exactly the given text to stderr.
func (c *Case) WritesStderr(s string) *Case {
	c.want.stderr = output{content: s}
	return c
}

// WritesStderrContaining returns an altered Case that requires the program run
// to write output to stderr that contains the given text as a substring.
func (c *Case) WritesStderrContaining(s string) *Case {
	c.want.stderr = output{content: s, partial: true}
	return c
}

// Test runs test cases against a given program.
func Test(t *testing.T, p prog.Program, cases ...*Case) {
	t.Helper()
	for _, c := range cases {
		t.Run(strings.Join(c.args, " "), func(t *testing.T) {
			t.Helper()
			r := run(p, c.args, c.stdin)
			if r.exitStatus != c.want.exitStatus {
				t.Errorf("got exit status %v, want %v", r.exitStatus, c.want.exitStatus)
			}
			if !matchOutput(r.stdout.content, c.want.stdout) {
				t.Errorf("got stdout %q, want %s", r.stdout.content, c.want.stdout)
			}
			if !matchOutput(r.stderr.content, c.want.stderr) {
				t.Errorf("got stderr %q, want %s", r.stderr.content, c.want.stderr)
			}
		})
	}
}

// Run runs a Program with the given arguments and stdin. It returns the
// Program's exit code and output to stdout and stderr.
func Run(p prog.Program, args []string, stdin string) (exit int, stdout, stderr string) {
	r := run(p, append([]string{"pcomb"}, args...), stdin)
	return r.exitStatus, r.stdout.content, r.stderr.content
}

func run(p prog.Program, args []string, stdin string) result {
	r0, w0 := mustPipe()
	// TODO: This assumes that stdin fits in the pipe buffer. Don't assume that.
	_, err := w0.WriteString(stdin)
	if err != nil {
		panic(err)
	}
	w0.Close()
	defer r0.Close()

	r1, w1 := mustPipe()
	r2, w2 := mustPipe()
	stdout := captureOutput(r1)
	stderr := captureOutput(r2)

	exit := prog.Run([3]*os.File{r0, w1, w2}, args, p)
	w1.Close()
	w2.Close()
	return result{exit, output{content: <-stdout}, output{content: <-stderr}}
}

func mustPipe() (*os.File, *os.File) {
	r, w, err := os.Pipe()
	if err != nil {
		panic(err)
	}
	return r, w
}

func matchOutput(got string, want output) bool {
	if want.nonEmpty {
		return got != ""
	}
	if want.partial {
		return strings.Contains(got, want.content)
	}
	return got == want.content
}

func captureOutput(r *os.File) <-chan string {
	ch := make(chan string, 1)
	go func() {
		b, err := io.ReadAll(r)
		r.Close()
		if err != nil {
			panic(err)
		}
		ch <- string(b)
	}()
	return ch
}

// SetupEnv points the configuration lookup at an empty temporary directory for
// the duration of the test, so that a configuration file of the user running
// the test is not picked up. It returns the directory.
func SetupEnv(t *testing.T) string {
	dir := testutil.TempDir(t)
	testutil.Unsetenv(t, env.PCOMB_RC)
	testutil.Setenv(t, env.XDG_CONFIG_HOME, dir)
	return dir
}
