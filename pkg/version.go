// Package umiseed holds application-wide metadata shared by the CLI.
package umiseed

var (
	// Version is set by build flags.
	Version = "v0.3.1"

	// Build is set by build flags to the build timestamp.
	Build = "n/a"
)
