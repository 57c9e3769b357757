package version

// Build information set by ldflags
var (
	Version = "dev"     // Set by goreleaser: -X github.com/arthur-debert/fae/internal/version.Version={{.Version}}
	Commit  = "unknown" // Set by goreleaser: -X github.com/arthur-debert/fae/internal/version.Commit={{.Commit}}
	Date    = "unknown" // Set by goreleaser: -X github.com/arthur-debert/fae/internal/version.Date={{.Date}}
	Branch  = "main"    // Set by goreleaser: -X github.com/arthur-debert/fae/internal/version.Branch={{.Branch}}
)

// Channel names the release channel: "stable" for builds from main,
// otherwise the branch the binary was built from.
func Channel() string {
	if Branch == "" || Branch == "main" {
		return "stable"
	}
	return Branch
}
