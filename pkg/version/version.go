// Package version exposes the build version of skipselect.
package version

// version is overridden at build time via
// -ldflags "-X github.com/skipwise/skipselect/pkg/version.version=v1.2.3".
var version = "dev" //nolint:gochecknoglobals // Set by the linker

// GetVersion returns the build version string.
func GetVersion() string {
	return version
}
