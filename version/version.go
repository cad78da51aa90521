// Package version reports how the codectx binary was built.
package version

import (
	"fmt"
	"runtime"
	"strings"
)

// Set with -ldflags "-X github.com/meysamhadeli/codectx/version.Version=1.2.3 ...".
var (
	Version   = "dev"
	Commit    = "none"
	BuildTime = "unknown"
)

const shortCommitLength = 7

// Info is the build information of the running binary.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	BuildTime string `json:"buildTime"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
}

// Get returns the build information of the running binary.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// IsDevelopment reports whether the binary was built without release ldflags.
func (i Info) IsDevelopment() bool {
	return i.Version == "" || i.Version == "dev"
}

// Short is the version with the abbreviated commit as build metadata, such as
// "1.2.3+abcdef0". Unknown commits are left out.
func (i Info) Short() string {
	v := strings.TrimPrefix(i.Version, "v")
	if v == "" {
		v = "dev"
	}
	commit := i.Commit
	if commit == "" || commit == "none" {
		return v
	}
	if len(commit) > shortCommitLength {
		commit = commit[:shortCommitLength]
	}
	return v + "+" + commit
}

func (i Info) String() string {
	return fmt.Sprintf("codectx %s (built %s with %s for %s)", i.Short(), i.BuildTime, i.GoVersion, i.Platform)
}
