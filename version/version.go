// Package version exposes the library's build version, for embedding in
// telemetry resources and diagnostics.
//
// The variables are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/skillsenselab/fpipe/version.Version=1.2.0"
package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

var (
	// Version is the semantic version, "dev" for unreleased builds.
	Version = "dev"
	// GitCommit is the short commit hash the build was made from.
	GitCommit = ""
	// BuildTime is the RFC3339 build timestamp.
	BuildTime = ""
)

// Info is a resolved snapshot of the build metadata.
type Info struct {
	Version   string    `json:"version"`
	GitCommit string    `json:"git_commit"`
	BuildDate time.Time `json:"build_date"`
	GoVersion string    `json:"go_version"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// Get resolves the build metadata, filling gaps from the binary's embedded
// VCS information when the ldflags were not set.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}
	if BuildTime != "" {
		if t, err := time.Parse(time.RFC3339, BuildTime); err == nil {
			info.BuildDate = t
		}
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = bi.GoVersion
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = shortCommit(setting.Value)
				}
			case "vcs.modified":
				info.IsDirty = setting.Value == "true"
			case "vcs.time":
				if info.BuildDate.IsZero() {
					if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
						info.BuildDate = t
					}
				}
			}
		}
	}
	return info
}

// Short returns a compact version string such as "1.2.0-abc1234".
func Short() string {
	info := Get()
	switch {
	case info.GitCommit == "":
		return info.Version
	case info.IsDirty:
		return fmt.Sprintf("%s-%s-dirty", info.Version, info.GitCommit)
	default:
		return fmt.Sprintf("%s-%s", info.Version, info.GitCommit)
	}
}

func shortCommit(rev string) string {
	if len(rev) > 7 {
		return rev[:7]
	}
	return rev
}
