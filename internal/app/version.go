package app

import (
	"fmt"
	"runtime/debug"
)

// Set via ldflags, e.g.
// go build -ldflags "-X github.com/heartmarshall/kairon-web/internal/app.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion reports the version for startup logs and /health. Commit and
// build time fall back to the VCS stamp the toolchain embeds.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			switch s.Key {
			case "vcs.revision":
				if commit == "" {
					commit = s.Value
				}
			case "vcs.time":
				if built == "" {
					built = s.Value
				}
			}
		}
	}
	return formatVersion(Version, commit, built)
}

func formatVersion(version, commit, built string) string {
	if commit == "" {
		commit = "unknown"
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if built == "" {
		built = "unknown"
	}
	return fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, built)
}
