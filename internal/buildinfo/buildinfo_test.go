package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewDefaults(t *testing.T) {
	t.Parallel()

	ctx := New("", "")
	assert.Equal(t, "dev", ctx.Version)
	assert.Equal(t, "unknown", ctx.BuildDate)
}

func TestNewKeepsProvidedValues(t *testing.T) {
	t.Parallel()

	ctx := New("v1.2.3", "2026-08-27")
	assert.Equal(t, "v1.2.3", ctx.Version)
	assert.Equal(t, "riceguard v1.2.3 (built 2026-08-27)", ctx.String())
}
