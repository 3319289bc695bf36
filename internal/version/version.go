package version

import "strings"

// Set at build time, e.g.
// -ldflags "-X github.com/Watcharapat-P/compro2-final-project-Starry-Night/internal/version.Version=v1.0.0"
var (
	Version = "dev"
	Commit  = "none"
	Date    = ""
	Dirty   = "false"
)

// String is the one-line build description printed by -version.
func String() string {
	var b strings.Builder
	b.WriteString("starry-night ")
	b.WriteString(Version)
	b.WriteString(" (commit ")
	b.WriteString(Commit)
	if Dirty == "true" {
		b.WriteString(", dirty")
	}
	if Date != "" {
		b.WriteString(", built ")
		b.WriteString(Date)
	}
	b.WriteString(")")
	return b.String()
}
