package version

import "fmt"

// Build information, set via ldflags.
// Example: go build -ldflags "-X dictproxy/internal/version.Version=1.0.0"
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

func String() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
