// Package config loads the pcomb configuration file.
//
// The file supplies defaults for command-line flags. It is YAML unless its
// name ends in .toml. An example in YAML:
//
//	rule: kv
//	format: json
//	color: never
//	db: ~/.local/state/pcomb/history.db
//	log: /tmp/pcomb.log
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"src.pcomb.sh/pkg/env"
	"src.pcomb.sh/pkg/logutil"
)

var logger = logutil.GetLogger("[config] ")

// Config keeps the settings read from the configuration file.
type Config struct {
	Rule   string `yaml:"rule" toml:"rule"`
	Format string `yaml:"format" toml:"format"`
	Color  string `yaml:"color" toml:"color"`
	DB     string `yaml:"db" toml:"db"`
	Log    string `yaml:"log" toml:"log"`
}

// Allowed values of Config.Format and Config.Color.
var (
	Formats = []string{"text", "json", "yaml"}
	Colors  = []string{"auto", "always", "never"}
)

// Default returns the configuration used when there is no file.
func Default() Config {
	return Config{Format: "text", Color: "auto"}
}

// Find returns the path of the configuration file to use. An explicit path
// wins, then $PCOMB_RC, then rc.yaml in the pcomb directory under
// $XDG_CONFIG_HOME or ~/.config. The bool result reports whether the file is
// required to exist, which is the case for the first two sources.
func Find(explicit string) (string, bool) {
	if explicit != "" {
		return explicit, true
	}
	if p := os.Getenv(env.PCOMB_RC); p != "" {
		return p, true
	}
	dir := os.Getenv(env.XDG_CONFIG_HOME)
	if dir == "" {
		home := os.Getenv(env.HOME)
		if home == "" {
			return "", false
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pcomb", "rc.yaml"), false
}

// Load reads the configuration from the file chosen by Find. Settings missing
// from the file keep their default values.
func Load(explicit string) (Config, error) {
	cfg := Default()
	path, required := Find(explicit)
	if path == "" {
		return cfg, nil
	}
	content, err := os.ReadFile(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}
	logger.Println("loading", path)
	if err := decode(path, content, &cfg); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	cfg.DB = expandHome(cfg.DB)
	cfg.Log = expandHome(cfg.Log)
	return cfg, nil
}

func decode(path string, content []byte, cfg *Config) error {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		md, err := toml.Decode(string(content), cfg)
		if err != nil {
			return err
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return fmt.Errorf("unknown setting %s", undecoded[0])
		}
		return nil
	}
	dec := yaml.NewDecoder(bytes.NewReader(content))
	dec.KnownFields(true)
	err := dec.Decode(cfg)
	if errors.Is(err, io.EOF) {
		// Empty file.
		return nil
	}
	return err
}

// Validate checks the settings that only allow a fixed set of values.
func (c Config) Validate() error {
	if c.Format != "" && !oneOf(c.Format, Formats) {
		return fmt.Errorf("format must be one of %s, got %q", strings.Join(Formats, ", "), c.Format)
	}
	if c.Color != "" && !oneOf(c.Color, Colors) {
		return fmt.Errorf("color must be one of %s, got %q", strings.Join(Colors, ", "), c.Color)
	}
	return nil
}

func oneOf(s string, choices []string) bool {
	for _, choice := range choices {
		if s == choice {
			return true
		}
	}
	return false
}

func expandHome(p string) string {
	if p == "~" || strings.HasPrefix(p, "~/") {
		if home := os.Getenv(env.HOME); home != "" {
			return filepath.Join(home, p[1:])
		}
	}
	return p
}
