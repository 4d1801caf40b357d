// Package version records the build identity of the shorthand CLI.
package version

import (
	"strings"

	"github.com/fatih/color"
)

// These variables can be overridden at build time via -ldflags, e.g.
//
//	-X shorthand/internal/version.Version=1.2.0
var (
	// Version is the semantic version of the toolchain.
	Version = "0.1.0-dev"

	// Commit is an optional git commit hash.
	Commit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Pretty renders Version with each semver segment colored for
// terminal display. With colors disabled it equals Version.
func Pretty() string {
	parts := strings.SplitN(Version, ".", 3)
	colors := []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor}
	for i := range parts {
		parts[i] = colors[i].Sprint(parts[i])
	}
	return strings.Join(parts, ".")
}

// UserAgent identifies the toolchain in one token, for server
// metadata and generated-output headers.
func UserAgent() string {
	if Commit == "" {
		return "shorthand/" + Version
	}
	return "shorthand/" + Version + " (" + Commit + ")"
}
