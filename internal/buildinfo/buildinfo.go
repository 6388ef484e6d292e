// Package buildinfo carries build-time metadata injected via ldflags,
// kept separate from user configuration.
package buildinfo

import "fmt"

// Context holds metadata stamped into the binary at build time.
type Context struct {
	// Version holds the Git version tag from build
	Version string

	// BuildDate is the time when the binary was built
	BuildDate string
}

// New creates a build context, substituting defaults for unset values.
func New(version, buildDate string) Context {
	if version == "" {
		version = "dev"
	}
	if buildDate == "" {
		buildDate = "unknown"
	}
	return Context{Version: version, BuildDate: buildDate}
}

// String renders the context for startup banners and version output.
func (c Context) String() string {
	return fmt.Sprintf("riceguard %s (built %s)", c.Version, c.BuildDate)
}
