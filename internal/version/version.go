package version

import "fmt"

// Set at build time, for example:
// go build -ldflags "-X github.com/oukeidos/slideproj/internal/version.Version=0.2.0 -X github.com/oukeidos/slideproj/internal/version.Commit=$(git rev-parse --short HEAD)"
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// Info returns the text printed by --version.
func Info() string {
	return fmt.Sprintf("slideproj %s\ncommit: %s\nbuild: %s", Version, Commit, BuildDate)
}
