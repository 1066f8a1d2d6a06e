package app

import "fmt"

// Version, Commit and BuildTime are set via ldflags, e.g.
//
//	go build -ldflags "-X github.com/heartmarshall/zeitdreher-backend/internal/app.Version=1.0.0" ./cmd/server
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// BuildVersion is reported in startup logs and by /health.
func BuildVersion() string {
	return fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime)
}
