package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v0.3.0", "abc123", "2026-10-01T00:00:00Z"

	want := "slidie v0.3.0\ncommit: abc123\nbuilt: 2026-10-01T00:00:00Z"
	if got := String(); got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestTemplate(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v0.3.0", "abc123", "2026-10-01"

	want := "{{.Name}} v0.3.0 (abc123, 2026-10-01)\n"
	if got := Template(); got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
}

func TestFill(t *testing.T) {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "deadbeef"},
			{Key: "vcs.time", Value: "2026-09-30T12:00:00Z"},
			{Key: "vcs.modified", Value: "true"},
		},
	}
	unset := Info{Version: "dev", Commit: "none", Date: "unknown"}

	tests := []struct {
		name string
		info Info
		bi   *debug.BuildInfo
		want Info
	}{
		{
			"go install",
			unset,
			stamped,
			Info{Version: "v0.4.1", Commit: "deadbeef-dirty", Date: "2026-09-30T12:00:00Z"},
		},
		{
			"ldflags win",
			Info{Version: "v1.0.0", Commit: "abc", Date: "2026-10-01"},
			stamped,
			Info{Version: "v1.0.0", Commit: "abc", Date: "2026-10-01"},
		},
		{
			"local build",
			unset,
			&debug.BuildInfo{Main: debug.Module{Version: "(devel)"}},
			unset,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.info.fill(tt.bi); got != tt.want {
				t.Errorf("fill() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestCurrent(t *testing.T) {
	got := Current()
	if got.Version == "" || got.Commit == "" || got.Date == "" {
		t.Errorf("Current() = %+v, want no empty fields", got)
	}
	if !strings.HasPrefix(String(), "slidie ") {
		t.Errorf("String() = %q", String())
	}
}
