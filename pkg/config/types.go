// Package config loads and validates the lkdots manifest: an ordered list
// of source→target entries plus the path of the VCS ignore file kept in
// sync for encrypted entries.
package config

import (
	"runtime"
)

// Platform names an operating system an entry applies to.
type Platform string

const (
	PlatformLinux   Platform = "linux"
	PlatformDarwin  Platform = "darwin"
	PlatformWindows Platform = "windows"
)

// AllPlatforms is the default platform set for entries that omit one.
var AllPlatforms = []Platform{PlatformLinux, PlatformDarwin, PlatformWindows}

// CurrentPlatform returns the Platform for the running OS. Anything that
// is not darwin or windows is treated as linux.
func CurrentPlatform() Platform {
	switch runtime.GOOS {
	case "darwin":
		return PlatformDarwin
	case "windows":
		return PlatformWindows
	default:
		return PlatformLinux
	}
}

// Entry is one source→target mapping. Immutable after load; one Entry
// yields exactly one plan.
type Entry struct {
	From      string     `koanf:"from" toml:"from"`
	To        string     `koanf:"to" toml:"to"`
	Platforms []Platform `koanf:"platforms" toml:"platforms,omitempty"`
	Encrypt   bool       `koanf:"encrypt" toml:"encrypt"`
}

// MatchPlatform reports whether the entry applies to the running OS.
func (e *Entry) MatchPlatform() bool {
	current := CurrentPlatform()
	for _, p := range e.Platforms {
		if p == current {
			return true
		}
	}
	return false
}

// Config is the loaded manifest. Gitignore precedes Entries so the
// generated starter config keeps the scalar above the entry tables.
type Config struct {
	Gitignore string  `koanf:"gitignore" toml:"gitignore"`
	Entries   []Entry `koanf:"entries" toml:"entries"`

	// BaseDir is the directory containing the config file. Relative
	// entry sources are resolved against it.
	BaseDir string `koanf:"-" toml:"-"`
}
