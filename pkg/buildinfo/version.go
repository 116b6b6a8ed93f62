// Package buildinfo reports which slidie build is running.
//
// Release builds set the variables with ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/slidie/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/slidie/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/slidie/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)" \
//	    ./cmd/slidie
//
// Binaries from "go install" have no ldflags; their module version and VCS
// stamp are used instead.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Info is the version, commit and build date of a binary.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Current returns the ldflags values, with unset ones filled in from the
// binary's embedded build information.
func Current() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}
	if bi, ok := debug.ReadBuildInfo(); ok {
		info = info.fill(bi)
	}
	return info
}

func (i Info) fill(bi *debug.BuildInfo) Info {
	if i.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		i.Version = bi.Main.Version
	}
	vcs := make(map[string]string)
	for _, s := range bi.Settings {
		vcs[s.Key] = s.Value
	}
	if rev := vcs["vcs.revision"]; rev != "" && i.Commit == "none" {
		i.Commit = rev
		if vcs["vcs.modified"] == "true" {
			i.Commit += "-dirty"
		}
	}
	if t := vcs["vcs.time"]; t != "" && i.Date == "unknown" {
		i.Date = t
	}
	return i
}

// String returns the output of "slidie version".
func String() string {
	i := Current()
	return fmt.Sprintf("slidie %s\ncommit: %s\nbuilt: %s", i.Version, i.Commit, i.Date)
}

// Template returns the cobra --version template.
func Template() string {
	i := Current()
	return fmt.Sprintf("{{.Name}} %s (%s, %s)\n", i.Version, i.Commit, i.Date)
}
