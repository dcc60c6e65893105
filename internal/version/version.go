package version

import (
	"strings"

	"github.com/fatih/color"
)

// Build information. Override at build time with
// -ldflags "-X hyperlex/internal/version.Version=1.2.3".
var (
	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)
)

// Colored renders Version with each numeric part in its own color. Anything
// that is not major.minor.patch[-suffix] is returned unchanged.
func Colored() string {
	core, suffix, hasSuffix := strings.Cut(Version, "-")
	parts := strings.Split(core, ".")
	if len(parts) != 3 {
		return Version
	}
	out := majorColor.Sprint(parts[0]) + "." + minorColor.Sprint(parts[1]) + "." + patchColor.Sprint(parts[2])
	if hasSuffix {
		out += "-" + suffix
	}
	return out
}

// Info is the multi-line description printed by the version command.
func Info(colored bool) string {
	v := Version
	if colored {
		v = Colored()
	}
	var sb strings.Builder
	sb.WriteString("hyperlex ")
	sb.WriteString(v)
	if GitCommit != "" {
		sb.WriteString("\ncommit: ")
		sb.WriteString(GitCommit)
	}
	if BuildDate != "" {
		sb.WriteString("\nbuilt: ")
		sb.WriteString(BuildDate)
	}
	return sb.String()
}
