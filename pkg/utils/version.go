// Package utils provides small helpers shared by the duet CLI and its
// packages that don't warrant their own package.
package utils

import "fmt"

// Set at build time with -ldflags "-X github.com/papercomputeco/duet/pkg/utils.Version=..."
var (
	Version   = "dev"
	Sha       = "HEAD"
	Buildtime = "dev"
)

// VersionString renders the build metadata on a single line.
func VersionString() string {
	return fmt.Sprintf("%s (%s, built %s)", Version, Sha, Buildtime)
}
