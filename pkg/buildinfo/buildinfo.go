// Package buildinfo contains build information.
//
// Some of the exported fields may be set during compilation by passing
// -ldflags "-X src.pcomb.sh/pkg/buildinfo.Var=value" to "go build".
package buildinfo

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"
	"runtime/debug"
	"time"

	"src.pcomb.sh/pkg/prog"
)

// VersionBase is the version of pcomb, without any suffix. On development
// commits, it identifies the next release.
const VersionBase = "0.3.0"

// VCSOverride may be set during compilation to "time-commit" (e.g.
// "20220401235958-123456789012") to override the VCS information in the
// version string of development builds.
var VCSOverride string

// Type contains all the build information fields.
type Type struct {
	Version   string `json:"version"`
	GoVersion string `json:"goversion"`
}

// Value contains all the build information.
var Value = Type{
	Version:   devVersion(VersionBase, VCSOverride, debug.ReadBuildInfo),
	GoVersion: runtime.Version(),
}

func devVersion(next, vcsOverride string, readBuildInfo func() (*debug.BuildInfo, bool)) string {
	if vcsOverride != "" {
		return next + "-dev.0." + vcsOverride
	}
	fallback := next + "-dev.unknown"
	bi, ok := readBuildInfo()
	if !ok {
		return fallback
	}
	// If pcomb was built with "go install src.pcomb.sh/cmd/pcomb@version",
	// use the module version.
	if bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		if len(bi.Main.Version) > 0 && bi.Main.Version[0] == 'v' {
			return bi.Main.Version[1:]
		}
		return bi.Main.Version
	}
	var revision, modified string
	var vcsTime time.Time
	for _, setting := range bi.Settings {
		switch setting.Key {
		case "vcs.revision":
			revision = setting.Value
		case "vcs.time":
			t, err := time.Parse(time.RFC3339, setting.Value)
			if err != nil {
				return fallback
			}
			vcsTime = t
		case "vcs.modified":
			modified = setting.Value
		}
	}
	if revision == "" || vcsTime.IsZero() {
		return fallback
	}
	if len(revision) > 12 {
		revision = revision[:12]
	}
	version := fmt.Sprintf("%s-dev.0.%s-%s", next, vcsTime.UTC().Format("20060102150405"), revision)
	if modified == "true" {
		version += "-dirty"
	}
	return version
}

// Program is the buildinfo subprogram.
type Program struct {
	version, buildinfo bool
	json               *bool
}

// RegisterFlags registers -version and -buildinfo.
func (p *Program) RegisterFlags(fs *prog.FlagSet) {
	fs.BoolVar(&p.version, "version", false, "show version and quit")
	fs.BoolVar(&p.buildinfo, "buildinfo", false, "show build info and quit")
	p.json = fs.JSON()
}

// Run runs the program.
func (p *Program) Run(fds [3]*os.File, _ []string) error {
	switch {
	case p.buildinfo:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value))
		} else {
			fmt.Fprintln(fds[1], "Version:", Value.Version)
			fmt.Fprintln(fds[1], "Go version:", Value.GoVersion)
		}
	case p.version:
		if *p.json {
			fmt.Fprintln(fds[1], mustToJSON(Value.Version))
		} else {
			fmt.Fprintln(fds[1], Value.Version)
		}
	default:
		return prog.ErrNextProgram
	}
	return nil
}

func mustToJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
