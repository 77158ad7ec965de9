// Package version reports the build of the running binary.
//
// Version and Commit can be set at link time:
//
//	go build -ldflags "-X github.com/kbukum/ledger/version.Version=1.2.0" ./cmd/ledger
//
// Otherwise Commit is read from the VCS stamp Go embeds in the binary.
package version

import (
	"runtime/debug"
	"sync"
)

var (
	Version = "dev"
	Commit  = ""
)

// Info describes the running build.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	Dirty     bool   `json:"dirty,omitempty"`
	GoVersion string `json:"go_version"`
}

var (
	once sync.Once
	info Info
)

// Get returns the build info, computed once.
func Get() Info {
	once.Do(func() {
		info = read(Version, Commit, debug.ReadBuildInfo)
	})
	return info
}

// String returns version, short commit and a dirty marker, e.g. 1.2.0-3f9c2ab-dirty.
func (i Info) String() string {
	s := i.Version
	if i.Commit != "" {
		s += "-" + i.Commit
	}
	if i.Dirty {
		s += "-dirty"
	}
	return s
}

func read(version, commit string, buildInfo func() (*debug.BuildInfo, bool)) Info {
	i := Info{Version: version, Commit: commit}
	bi, ok := buildInfo()
	if !ok {
		return i
	}
	i.GoVersion = bi.GoVersion
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if i.Commit == "" {
				i.Commit = s.Value
			}
		case "vcs.modified":
			i.Dirty = s.Value == "true"
		}
	}
	if len(i.Commit) > 7 {
		i.Commit = i.Commit[:7]
	}
	return i
}
