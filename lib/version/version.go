// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"sync"
)

// These variables are set via -ldflags at build time:
//
//	go build -ldflags "-X github.com/bureau-foundation/roomevents/lib/version.GitCommit=$(git rev-parse --short HEAD)"
var (
	// GitCommit is the short git SHA of the build.
	GitCommit = "unknown"

	// GitDirty indicates whether there were uncommitted changes.
	GitDirty = "false"

	// BuildTime is the UTC timestamp of the build.
	BuildTime = "unknown"

	// Version is the semantic version. This is set manually for releases.
	Version = "0.1.0-dev"
)

// stamp is the build information after falling back to the embedded
// VCS settings for anything ldflags did not set.
type stamp struct {
	commit    string
	dirty     bool
	buildTime string
}

var resolved = sync.OnceValue(func() stamp {
	return resolve(GitCommit, GitDirty, BuildTime, readSettings())
})

func readSettings() map[string]string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return nil
	}
	settings := make(map[string]string, len(info.Settings))
	for _, setting := range info.Settings {
		settings[setting.Key] = setting.Value
	}
	return settings
}

func resolve(commit, dirty, buildTime string, settings map[string]string) stamp {
	result := stamp{commit: commit, dirty: dirty == "true", buildTime: buildTime}
	if commit != "unknown" {
		return result
	}
	if revision := settings["vcs.revision"]; revision != "" {
		if len(revision) > 7 {
			revision = revision[:7]
		}
		result.commit = revision
		result.dirty = settings["vcs.modified"] == "true"
	}
	if buildTime == "unknown" && settings["vcs.time"] != "" {
		result.buildTime = settings["vcs.time"]
	}
	return result
}

func (s stamp) info(version string) string {
	dirty := ""
	if s.dirty {
		dirty = "-dirty"
	}
	return fmt.Sprintf("%s (%s%s, %s)", version, s.commit, dirty, s.buildTime)
}

// Info returns a formatted version string suitable for version output.
func Info() string {
	return resolved().info(Version)
}

// Full returns detailed version information including Go version.
func Full() string {
	return fmt.Sprintf("%s\n  Go: %s\n  Platform: %s/%s",
		Info(), runtime.Version(), runtime.GOOS, runtime.GOARCH)
}

// Short returns just the version number.
func Short() string {
	return Version
}

// Commit returns the git commit SHA.
func Commit() string {
	return resolved().commit
}
