// Package version exposes build metadata for the rightscrape binary.
//
// The variables are stamped at link time:
//
//	go build -ldflags "-X github.com/jmylchreest/rightscrape/internal/version.Version=0.3.0 \
//	    -X github.com/jmylchreest/rightscrape/internal/version.Commit=$(git rev-parse --short HEAD)"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	Dirty     = "false"
	BuildDate = "unknown"
)

// Info is the structured form printed by `rightscrape version --json`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Dirty     bool   `json:"dirty"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Get returns the current build information.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Dirty:     isDirty(),
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the version, suffixed with -dirty for modified trees.
func String() string {
	if isDirty() {
		return Version + "-dirty"
	}
	return Version
}

// Full returns the multi-line form printed by `rightscrape version`.
func Full() string {
	info := Get()
	rows := [][2]string{
		{"Commit", info.Commit},
		{"Built", info.BuildDate},
		{"Go version", info.GoVersion},
		{"OS/Arch", info.Platform},
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "rightscrape %s", String())
	for _, row := range rows {
		fmt.Fprintf(&sb, "\n  %-11s %s", row[0]+":", row[1])
	}
	return sb.String()
}

func isDirty() bool {
	return Dirty == "true"
}
