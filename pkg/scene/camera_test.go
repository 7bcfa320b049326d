package scene

import (
	"testing"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/stretchr/testify/assert"
)

func TestCameraForwardPointsAtLookAt(t *testing.T) {
	cam := NewCamera(Config{
		Center:      core.NewVec3(0, 0, -5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFovDegrees: 40,
		Width:       100,
		Height:      100,
	})
	assert.InDelta(t, 0, cam.Forward.X, 1e-9)
	assert.InDelta(t, 0, cam.Forward.Y, 1e-9)
	assert.InDelta(t, 1, cam.Forward.Z, 1e-9)
}

func TestCameraCenterPixelRayMatchesForward(t *testing.T) {
	cam := NewCamera(Config{
		Center:      core.NewVec3(0, 0, -5),
		LookAt:      core.NewVec3(0, 0, 0),
		Up:          core.NewVec3(0, 1, 0),
		VFovDegrees: 40,
		Width:       101,
		Height:      101,
	})
	ray := cam.GenerateRay(50*101+50, 101, 101, core.NewRNGFromSeed(1))
	assert.InDelta(t, cam.Forward.X, ray.Direction.X, 1e-6)
	assert.InDelta(t, cam.Forward.Y, ray.Direction.Y, 1e-6)
	assert.InDelta(t, cam.Forward.Z, ray.Direction.Z, 1e-6)
}

func TestCameraDOFSamplesDifferentLensOrigins(t *testing.T) {
	cam := NewCamera(Config{
		Center:        core.NewVec3(0, 0, -5),
		LookAt:        core.NewVec3(0, 0, 0),
		Up:            core.NewVec3(0, 1, 0),
		VFovDegrees:   40,
		Width:         100,
		Height:        100,
		Aperture:      1.0,
		FocusDistance: 5,
	})
	r1 := cam.GenerateRay(0, 100, 100, core.NewRNGFromSeed(1))
	r2 := cam.GenerateRay(0, 100, 100, core.NewRNGFromSeed(2))
	assert.NotEqual(t, r1.Origin, r2.Origin)
}
