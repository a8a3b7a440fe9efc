// Package version provides build and version information.
package version

import "runtime/debug"

// Version is the current application version.
const Version = "0.3.0"

// Milestones:
// 0.3.0 - Info menu with hover animation, goto/back navigation, sun marker
// 0.2.0 - Compressed catalogs (gzip, zstd, lz4), YAML config, sharded projection
// 0.1.0 - Initial release: stereographic sky, color policies, headless modes

// String returns the version, with the VCS revision when the binary was built
// from a checkout.
func String() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return Version
	}
	var rev string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			rev = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if rev == "" {
		return Version
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if dirty {
		rev += "-dirty"
	}
	return Version + " (" + rev + ")"
}
