package version

import "fmt"

// These variables are populated by the Go linker (LDFLAGS) at build time.
var (
	Version    = "dev"     // Default value if not built with LDFLAGS
	CommitHash = "unknown" // Default value
	BuildDate  = "unknown" // Default value
)

// String formats the build information for `marquee version`.
func String() string {
	return fmt.Sprintf("marquee %s (commit %s, built %s)", Version, CommitHash, BuildDate)
}
