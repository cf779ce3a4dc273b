// Package version reports the build the binary was made from. Both
// variables are set at link time with -ldflags "-X".
package version

import "fmt"

var (
	// Version is the release of bvmc.
	Version = "dev"
	// GitCommit is the commit the binary was built from.
	GitCommit = "unknown"
)

// String renders the version block printed by "bvmc version".
func String() string {
	return fmt.Sprintf("bvmc version: %s\ngit commit:   %s\n", Version, GitCommit)
}
