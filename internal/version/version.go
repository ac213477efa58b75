// Package version exposes the build version of the server binary.
package version

// Version is set at build time via -ldflags "-X .../internal/version.Version=v1.2.3".
var Version = "dev"
