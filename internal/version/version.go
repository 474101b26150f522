// Package version holds the application version string.
package version

// Version is set at build time via -ldflags.
var Version = "dev"
