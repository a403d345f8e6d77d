// Package gelato keeps build information of the application.
package gelato

var (
	// Version of gelato, set by the build with ldflags.
	Version = "v0.1.0"

	// Build timestamp, set by the build with ldflags.
	Build = "n/a"
)
