// Package buildinfo carries version stamps injected with -ldflags, e.g.
//
//	go build -ldflags "-X gltfviewer/internal/buildinfo.Version=v0.3.0"
package buildinfo

import "runtime/debug"

var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)

// Short returns a compact identifier for the window title.
func Short() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if c := commit(); c != "" {
		return c
	}
	return "dev"
}

// Fields returns the stamps as alternating key/value pairs for structured logging.
func Fields() []any {
	return []any{"version", Version, "commit", commitOr("unknown"), "date", Date}
}

func commitOr(def string) string {
	if c := commit(); c != "" {
		return c
	}
	return def
}

// commit prefers the ldflags stamp and falls back to the VCS revision Go embeds.
func commit() string {
	if Commit != "" && Commit != "unknown" {
		return Commit
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	for _, s := range bi.Settings {
		if s.Key == "vcs.revision" && len(s.Value) >= 7 {
			return s.Value[:7]
		}
	}
	return ""
}
