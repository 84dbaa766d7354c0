// Package check implements the default subprogram, which matches inputs
// against a rule and reports the outcome of each.
package check

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"src.pcomb.sh/pkg/comb"
	"src.pcomb.sh/pkg/config"
	"src.pcomb.sh/pkg/errutil"
	"src.pcomb.sh/pkg/logutil"
	"src.pcomb.sh/pkg/prog"
	"src.pcomb.sh/pkg/rules"
	"src.pcomb.sh/pkg/store"
	"src.pcomb.sh/pkg/sys"
)

var logger = logutil.GetLogger("[check] ")

// Exit status used when evaluation reached a Fail node.
const exitFatal = 3

// Program is the default subprogram.
type Program struct {
	rule *string
	db   *string
	cfg  *config.Config

	all       bool
	tree      bool
	listRules bool
	format    string
	color     string
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	p.rule = fs.Rule()
	p.db = fs.DB()
	p.cfg = fs.Config()
	fs.BoolVar(&p.all, "all", false, "require each input to be matched completely")
	fs.BoolVar(&p.tree, "tree", false, "print the outline of the rule before the results")
	fs.BoolVar(&p.listRules, "rules", false, "list the available rules and quit")
	fs.StringVar(&p.format, "format", "", "output format: text, json or yaml")
	fs.StringVar(&p.color, "color", "", "when to color text output: auto, always or never")
}

func (p *Program) Run(fds [3]*os.File, args []string) error {
	allOK, err := p.run(fds, args)
	var fatal *comb.FatalError
	if errors.As(err, &fatal) {
		// err may also carry failures from recording the aborted input.
		fmt.Fprintln(fds[2], err)
		return prog.Exit(exitFatal)
	} else if err != nil {
		return err
	}
	if !allOK {
		return prog.Exit(1)
	}
	return nil
}

// History database used by Program. Tests replace it.
type historyStore interface {
	AddEntry(store.Entry) (int, error)
	Close() error
}

var openHistory = func(path string) (historyStore, error) { return store.Open(path) }

func (p *Program) run(fds [3]*os.File, args []string) (allOK bool, err error) {
	if p.listRules {
		for _, name := range rules.Names() {
			fmt.Fprintf(fds[1], "%-10s %s\n", name, rules.Describe(name))
		}
		return true, nil
	}

	name := prog.RuleOrDefault(p.rule, p.cfg)
	if name == "" {
		return false, prog.BadUsage("no rule given; use -rule or set rule in the configuration file")
	}
	node, ok := rules.Lookup(name)
	if !ok {
		return false, prog.BadUsage(fmt.Sprintf("unknown rule %q; see -rules", name))
	}
	format := orDefault(p.format, p.cfg.Format)
	if !oneOf(format, config.Formats) {
		return false, prog.BadUsage(fmt.Sprintf("bad value for -format: %q", format))
	}
	color := orDefault(p.color, p.cfg.Color)
	if !oneOf(color, config.Colors) {
		return false, prog.BadUsage(fmt.Sprintf("bad value for -color: %q", color))
	}

	if p.tree {
		comb.Pprint(node, fds[1])
	}

	var history historyStore
	if path := orDefault(*p.db, p.cfg.DB); path != "" {
		history, err = openHistory(path)
		if err != nil {
			return false, err
		}
		defer func() { err = errutil.Multi(err, history.Close()) }()
	}
	record := func(e store.Entry) error {
		if history == nil {
			return nil
		}
		if _, err := history.AddEntry(e); err != nil {
			return fmt.Errorf("cannot record history: %w", err)
		}
		return nil
	}

	w := newWriter(fds[1], format, color)
	parse := comb.Parse
	if p.all {
		parse = comb.ParseAll
	}
	allOK = true
	err = eachInput(fds[0], args, func(input string) error {
		res, err := parse(node, input)
		var fatal *comb.FatalError
		if errors.As(err, &fatal) {
			logger.Printf("rule %s aborted on %q: %v", name, input, fatal)
			return errutil.Multi(err, record(store.Entry{Rule: name, Input: input, Fatal: true}))
		}
		r := outcome{Input: input, OK: err == nil, Matched: res.Matched, Rest: res.Rest}
		if err != nil {
			allOK = false
			var mismatch *comb.MismatchError
			if errors.As(err, &mismatch) {
				r.Rest = mismatch.Rest
			}
		}
		if err := record(store.Entry{Rule: name, Input: input, OK: r.OK}); err != nil {
			return err
		}
		return w.write(r)
	})
	return allOK, errutil.Multi(err, w.close())
}

// Calls f on each of args, or on each line of stdin if there are no args,
// stopping at the first error.
func eachInput(stdin io.Reader, args []string, f func(string) error) error {
	if len(args) > 0 {
		for _, arg := range args {
			if err := f(arg); err != nil {
				return err
			}
		}
		return nil
	}
	scanner := bufio.NewScanner(stdin)
	scanner.Buffer(nil, 1<<20)
	for scanner.Scan() {
		if err := f(scanner.Text()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

type outcome struct {
	Input   string `json:"input" yaml:"input"`
	OK      bool   `json:"ok" yaml:"ok"`
	Matched string `json:"matched" yaml:"matched"`
	Rest    string `json:"rest" yaml:"rest"`
}

type writer interface {
	write(outcome) error
	close() error
}

func newWriter(out *os.File, format, color string) writer {
	switch format {
	case "json":
		return jsonWriter{json.NewEncoder(out)}
	case "yaml":
		return yamlWriter{yaml.NewEncoder(out)}
	}
	colored := color == "always" || (color == "auto" && sys.IsATTY(out.Fd()))
	_, width := sys.WinSize(out)
	return &textWriter{out, colored, width}
}

type jsonWriter struct{ enc *json.Encoder }

func (w jsonWriter) write(r outcome) error { return w.enc.Encode(r) }
func (w jsonWriter) close() error         { return nil }

type yamlWriter struct{ enc *yaml.Encoder }

func (w yamlWriter) write(r outcome) error { return w.enc.Encode(r) }
func (w yamlWriter) close() error         { return w.enc.Close() }

const (
	sgrOK    = "\033[32m"
	sgrFail  = "\033[31m"
	sgrReset = "\033[m"
)

type textWriter struct {
	out     io.Writer
	colored bool
	// Terminal width, or -1 if out is not a terminal.
	width int
}

func (w *textWriter) write(r outcome) error {
	status, sgr := "ok  ", sgrOK
	var line string
	if r.OK {
		line = r.Matched + " | rest " + strconv.Quote(r.Rest)
	} else {
		status, sgr = "FAIL", sgrFail
		line = (&comb.MismatchError{Rest: r.Rest}).Error()
	}
	line = truncate(line, w.width-len(status)-1)
	if w.colored {
		status = sgr + status + sgrReset
	}
	_, err := fmt.Fprintln(w.out, status, line)
	return err
}

func (w *textWriter) close() error { return nil }

// Truncates s to at most n codepoints, marking the cut with "...". A
// non-positive n means no limit.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return "..."[:n]
	}
	i := 0
	for j := range s {
		if i == n-3 {
			return s[:j] + "..."
		}
		i++
	}
	return s
}

func orDefault(s, def string) string {
	if s != "" {
		return s
	}
	return def
}

func oneOf(s string, values []string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
