package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/df07/go-wavefront-tracer/pkg/integrator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	r, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), r)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "render.yaml")
	require.NoError(t, os.WriteFile(path, []byte("width: 128\nheight: 96\npolicy: naive\n"), 0644))

	r, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 128, r.Width)
	assert.Equal(t, 96, r.Height)
	assert.Equal(t, integrator.Naive, r.Policy())
}

func TestPolicyDefaultsToFull(t *testing.T) {
	r := Default()
	r.PolicyName = "something-unrecognized"
	assert.Equal(t, integrator.Full, r.Policy())
}
