// Package version holds build metadata for bioalign.
package version

// Version is the application version, overridden at build time with
// -ldflags "-X github.com/mandalnilabja/bioalign/internal/version.Version=v1.2.3".
var Version = "dev"
