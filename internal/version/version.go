// Package version reports the llmsmd build. Release builds set the variables
// with ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/llmsmd/internal/version.Version=1.0.0"
//
// Builds without ldflags fall back to the module and VCS data embedded by the
// Go toolchain.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

var (
	Version   = "dev"
	Commit    = ""
	Dirty     = ""
	BuildDate = ""
)

// Info is the resolved build description.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit,omitempty" yaml:"commit,omitempty"`
	Dirty     bool   `json:"dirty" yaml:"dirty"`
	BuildDate string `json:"build_date,omitempty" yaml:"build_date,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get resolves the build description, preferring ldflags over build info.
func Get() Info {
	info := Info{
		Version:   Version,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "" {
				info.Commit = s.Value
			}
		case "vcs.modified":
			if Dirty == "" {
				info.Dirty = s.Value == "true"
			}
		case "vcs.time":
			if info.BuildDate == "" {
				info.BuildDate = s.Value
			}
		}
	}
	return info
}

// String is the version with a -dirty suffix for modified trees.
func (i Info) String() string {
	if i.Dirty {
		return i.Version + "-dirty"
	}
	return i.Version
}

// Full is the one-line description printed by `llmsmd version`, e.g.
// "llmsmd 1.0.0 (3f2a9c1, 2026-01-02T15:04:05Z) go1.23.0 linux/amd64".
func (i Info) Full() string {
	var meta []string
	if i.Commit != "" {
		meta = append(meta, shortCommit(i.Commit))
	}
	if i.BuildDate != "" {
		meta = append(meta, i.BuildDate)
	}

	s := "llmsmd " + i.String()
	if len(meta) > 0 {
		s += " (" + strings.Join(meta, ", ") + ")"
	}
	return fmt.Sprintf("%s %s %s", s, i.GoVersion, i.Platform)
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
