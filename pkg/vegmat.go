// Package vegmat holds build metadata for the vegmat binary.
package vegmat

var (
	// Version is the application version, set via ldflags at build time.
	Version = "v0.1.1"

	// Build is the build timestamp, set via ldflags at build time.
	Build string
)
