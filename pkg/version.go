// Package kardex holds build information of the kardex application.
package kardex

var (
	// Version of kardex, set by build flags.
	Version = "v0.1.0"

	// Build timestamp, set by build flags.
	Build = "n/a"
)
