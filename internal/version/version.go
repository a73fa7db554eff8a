// Package version provides version information for the application.
//
// Version and Revision are set at build time with -ldflags. When they are not
// set, values are taken from the module build information where available.
package version

import (
	"runtime/debug"
)

var (
	// Version is the semantic version of the build.
	Version = "0.0.0-dev"

	// Revision is the VCS revision of the build.
	Revision = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if Version == "0.0.0-dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	if Revision != "unknown" {
		return
	}

	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			Revision = s.Value
		}
	}
}

// String returns the version and revision in the form `<version>+<revision>`.
func String() string {
	return Version + "+" + Revision
}
