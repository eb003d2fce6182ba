// Package compileinfo reports the VCS state a binary was built from, as
// recorded by the Go toolchain.
package compileinfo

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
)

type BuildInfo struct {
	Binary     string
	Module     string
	Version    string
	GoVersion  string
	Revision   string
	CommitTime string
	Dirty      bool
}

func (b BuildInfo) String() string {
	rev := b.Revision
	if rev == "" {
		rev = "unknown revision"
	}
	if b.Dirty {
		rev += " (with uncommitted changes)"
	}

	when := ""
	if b.CommitTime != "" {
		when = " committed " + b.CommitTime
	}

	return fmt.Sprintf("%s (%s %s) built with %s from %s%s", b.Binary, b.Module, b.Version, b.GoVersion, rev, when)
}

func Get() BuildInfo {
	out := BuildInfo{Binary: filepath.Base(os.Args[0])}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return out
	}

	return fromBuildInfo(out, info)
}

func fromBuildInfo(out BuildInfo, info *debug.BuildInfo) BuildInfo {
	out.GoVersion = info.GoVersion
	out.Module = info.Main.Path
	out.Version = info.Main.Version
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			out.Revision = s.Value
		case "vcs.time":
			out.CommitTime = s.Value
		case "vcs.modified":
			out.Dirty = s.Value == "true"
		}
	}

	return out
}

func PrintToStdErr() {
	fmt.Fprintln(os.Stderr, Get())
}
