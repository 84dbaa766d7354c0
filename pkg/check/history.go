package check

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"strconv"

	"src.pcomb.sh/pkg/config"
	"src.pcomb.sh/pkg/errutil"
	"src.pcomb.sh/pkg/prog"
	"src.pcomb.sh/pkg/store"
)

// HistoryProgram prints the inputs recorded in the history database.
type HistoryProgram struct {
	history bool
	rule    *string
	db      *string
	json    *bool
	cfg     *config.Config
}

func (p *HistoryProgram) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.history, "history", false, "show the recorded inputs and quit")
	p.rule = fs.Rule()
	p.db = fs.DB()
	p.json = fs.JSON()
	p.cfg = fs.Config()
}

func (p *HistoryProgram) Run(fds [3]*os.File, args []string) (err error) {
	if !p.history {
		return prog.ErrNextProgram
	}
	if len(args) > 0 {
		return prog.BadUsage("arguments are not allowed with -history")
	}
	path := orDefault(*p.db, p.cfg.DB)
	if path == "" {
		return prog.BadUsage("no history database; use -db or set db in the configuration file")
	}
	s, err := store.Open(path)
	if err != nil {
		return err
	}
	defer func() { err = errutil.Multi(err, s.Close()) }()

	entries, err := s.Entries(0, math.MaxInt)
	if err != nil {
		return err
	}
	enc := json.NewEncoder(fds[1])
	for _, e := range entries {
		if *p.rule != "" && e.Rule != *p.rule {
			continue
		}
		if *p.json {
			if err := enc.Encode(e); err != nil {
				return err
			}
			continue
		}
		status := "ok"
		switch {
		case e.Fatal:
			status = "FATAL"
		case !e.OK:
			status = "FAIL"
		}
		fmt.Fprintf(fds[1], "%5d  %-5s  %-8s  %s\n", e.Seq, status, e.Rule, strconv.Quote(e.Input))
	}
	return nil
}
