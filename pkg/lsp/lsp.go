// Package lsp implements a language server that checks each line of a
// document against a rule.
package lsp

import (
	"context"
	"fmt"
	"os"

	"github.com/sourcegraph/jsonrpc2"

	"src.pcomb.sh/pkg/config"
	"src.pcomb.sh/pkg/errutil"
	"src.pcomb.sh/pkg/logutil"
	"src.pcomb.sh/pkg/prog"
	"src.pcomb.sh/pkg/rules"
)

var logger = logutil.GetLogger("[lsp] ")

// Program is the LSP subprogram.
type Program struct {
	run  bool
	rule *string
	cfg  *config.Config
}

func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.run, "lsp", false, "run language server instead of checking inputs")
	p.rule = fs.Rule()
	p.cfg = fs.Config()
}

func (p *Program) Run(fds [3]*os.File, _ []string) error {
	if !p.run {
		return prog.ErrNextProgram
	}
	name := prog.RuleOrDefault(p.rule, p.cfg)
	if name == "" {
		return prog.BadUsage("no rule given; use -rule or set rule in the configuration file")
	}
	if _, ok := rules.Lookup(name); !ok {
		return prog.BadUsage(fmt.Sprintf("unknown rule %q; see -rules", name))
	}
	logger.Println("serving rule", name)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	s := newServer(name)
	conn := jsonrpc2.NewConn(ctx,
		jsonrpc2.NewBufferedStream(transport{fds[0], fds[1]}, jsonrpc2.VSCodeObjectCodec{}),
		handler(s))
	<-conn.DisconnectNotify()
	return nil
}

type transport struct{ in, out *os.File }

func (c transport) Read(p []byte) (int, error)  { return c.in.Read(p) }
func (c transport) Write(p []byte) (int, error) { return c.out.Write(p) }

func (c transport) Close() error {
	return errutil.Multi(c.in.Close(), c.out.Close())
}
