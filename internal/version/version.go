package version

import (
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/fatih/color"
)

// Version information for the rex CLI.
// These variables can be overridden at build time via -ldflags:
//
//	-X rex/internal/version.Version=0.2.0 -X rex/internal/version.GitCommit=$(git rev-parse HEAD)
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// GitMessage is an optional git commit message.
	GitMessage = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric component highlighted.
// Components past the third and any pre-release suffix stay plain.
func Colored() string {
	core, suffix, hasSuffix := strings.Cut(Version, "-")
	parts := strings.SplitN(core, ".", 3)
	if len(parts) != 3 {
		return Version
	}
	out := versionMajorColor.Sprint(parts[0]) + "." +
		versionMinorColor.Sprint(parts[1]) + "." +
		versionPatchColor.Sprint(parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// Commit returns GitCommit, falling back to the VCS revision embedded by the
// go toolchain. Short hashes are truncated to 12 characters.
func Commit() string {
	commit := GitCommit
	if commit == "" {
		if info, ok := debug.ReadBuildInfo(); ok {
			for _, s := range info.Settings {
				if s.Key == "vcs.revision" {
					commit = s.Value
				}
			}
		}
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	return commit
}

// String returns a one-line description such as "rex 0.1.0 (abc123, 2024-01-15)".
func String() string {
	var extras []string
	if c := Commit(); c != "" {
		extras = append(extras, c)
	}
	if BuildDate != "" {
		extras = append(extras, BuildDate)
	}
	if len(extras) == 0 {
		return "rex " + Version
	}
	return fmt.Sprintf("rex %s (%s)", Version, strings.Join(extras, ", "))
}
