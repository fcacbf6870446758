// Package version identifies the build of the tool. The identifier ends up in
// the marker comment of every arrangement file the low bass fix rewrites.
package version

import "runtime/debug"

// Version is empty unless release builds inject it:
//
//	go build -ldflags "-X github.com/QEStudios/CDLCArrangementBuilder/version.Version=v1.2.0" ./cmd/builder
var Version string

// Hash is the short VCS revision the binary was built from, suffixed with
// "-dirty" for uncommitted changes. It is empty outside a checkout.
var Hash = func() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return ""
	}
	var revision, suffix string
	for _, setting := range info.Settings {
		switch {
		case setting.Key == "vcs.revision":
			revision = setting.Value
		case setting.Key == "vcs.modified" && setting.Value == "true":
			suffix = "-dirty"
		}
	}
	if len(revision) < 7 {
		return ""
	}
	return revision[:7] + suffix
}()

// VersionOrHash prefers Version, then Hash, then "dev". It is printed by
// --version and written after "arrbuild v" in marker comments.
var VersionOrHash = func() string {
	if Version != "" {
		return Version
	}
	if Hash != "" {
		return Hash
	}
	return "dev"
}()
