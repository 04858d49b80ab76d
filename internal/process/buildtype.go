package process

import "git.home.luguber.info/inful/pkgforge/internal/config"

// BuildType distinguishes a developer-sandbox build from a release-pipeline build.
type BuildType string

const (
	// BuildTypeLocal resolves against the full search path, local repository included.
	BuildTypeLocal BuildType = "local"

	// BuildTypeCentral resolves against non-local repositories only, so a
	// release can never depend on a package that exists solely in a
	// developer's local repository.
	BuildTypeCentral BuildType = "central"
)

// SearchPaths selects the package search path configuration for this build type.
func (t BuildType) SearchPaths(cfg *config.Config) []string {
	if t == BuildTypeCentral {
		return cfg.NonLocalSearchPaths()
	}
	return cfg.SearchPaths()
}
