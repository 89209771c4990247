// Package version holds build information for the morph binaries.
package version

// Build information set by ldflags
var (
	Version = "dev"     // -X github.com/arthur-debert/morph/internal/version.Version={{.Version}}
	Commit  = "unknown" // -X github.com/arthur-debert/morph/internal/version.Commit={{.Commit}}
	Date    = "unknown" // -X github.com/arthur-debert/morph/internal/version.Date={{.Date}}
)

// String returns the version line printed by --version
func String() string {
	return Version + " (" + Commit + ", " + Date + ")"
}
