// Package version records build metadata of the numlens CLI.
// The variables can be overridden at build time via -ldflags.
package version

import (
	"strconv"

	"github.com/Masterminds/semver/v3"
	"github.com/fatih/color"
)

var (
	majorColor = color.New(color.FgYellow, color.Bold)
	minorColor = color.New(color.FgGreen, color.Bold)
	patchColor = color.New(color.FgBlue, color.Bold)

	// Version is the semantic version of the CLI.
	Version = "0.1.0-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// Colored renders v with each numeric component in its own colour.
// Strings that are not semantic versions are returned unchanged.
func Colored(v string) string {
	sv, err := semver.NewVersion(v)
	if err != nil {
		return v
	}
	out := majorColor.Sprint(strconv.FormatUint(sv.Major(), 10)) + "." +
		minorColor.Sprint(strconv.FormatUint(sv.Minor(), 10)) + "." +
		patchColor.Sprint(strconv.FormatUint(sv.Patch(), 10))
	if pre := sv.Prerelease(); pre != "" {
		out += "-" + pre
	}
	if meta := sv.Metadata(); meta != "" {
		out += "+" + meta
	}
	return out
}
