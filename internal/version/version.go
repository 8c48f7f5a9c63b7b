// Package version carries the build identity stamped into chart-board
// binaries.
package version

import "fmt"

// Set at build time with
// -ldflags "-X chart-board/internal/version.Version=..."
var (
	Version   = "0.1.0"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the full build identity for --version output and the
// About dialog.
func String() string {
	return fmt.Sprintf("%s (built %s, commit %s)", Version, BuildTime, GitCommit)
}
