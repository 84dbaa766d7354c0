package prog

import (
	"flag"

	"src.pcomb.sh/pkg/config"
)

// FlagSet wraps a [flag.FlagSet]. Flags that are used by more than one
// subprogram are registered lazily through its methods, so that each is only
// registered once.
type FlagSet struct {
	*flag.FlagSet
	rule   *string
	db     *string
	json   *bool
	config *config.Config
}

// Rule returns a pointer to the value of the -rule flag.
func (fs *FlagSet) Rule() *string {
	if fs.rule == nil {
		var rule string
		fs.StringVar(&rule, "rule", "", "name of the rule to match with; see -rules")
		fs.rule = &rule
	}
	return fs.rule
}

// DB returns a pointer to the value of the -db flag.
func (fs *FlagSet) DB() *string {
	if fs.db == nil {
		var db string
		fs.StringVar(&db, "db", "", "path to the history database")
		fs.db = &db
	}
	return fs.db
}

// JSON returns a pointer to the value of the -json flag.
func (fs *FlagSet) JSON() *bool {
	if fs.json == nil {
		var json bool
		fs.BoolVar(&json, "json", false,
			"show the output from -buildinfo, -version or -history in JSON")
		fs.json = &json
	}
	return fs.json
}

// Config returns a pointer to the configuration. It is filled by Run after
// flags are parsed and before any subprogram runs.
func (fs *FlagSet) Config() *config.Config {
	if fs.config == nil {
		cfg := config.Default()
		fs.config = &cfg
	}
	return fs.config
}

// RuleOrDefault returns the -rule flag if it was given, or the rule from the
// configuration otherwise.
func RuleOrDefault(rule *string, cfg *config.Config) string {
	if *rule != "" {
		return *rule
	}
	return cfg.Rule
}
