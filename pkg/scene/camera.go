package scene

import (
	"math"

	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// Camera builds primary rays per §4.F step 1: forward/right/up basis with
// the image plane at unit distance scaled by pixelLength, optional
// sub-pixel jitter, and thin-lens depth of field. Grounded on the teacher's
// pkg/renderer camera (Center/LookAt/Up/VFov config surface), rebuilt
// around the look/right/up + pixelLength convention §9 calls out, and
// pixel (0,0) fixed at top-left throughout (§9's unification note).
type Camera struct {
	Center   core.Vec3
	Forward  core.Vec3
	Right    core.Vec3
	Up       core.Vec3

	PixelLength float64 // world-space size of one pixel on the unit-distance image plane
	LensRadius  float64
	FocusDist   float64

	AntiAliasing bool
}

// Config is the host-friendly camera specification; NewCamera derives the
// orthonormal basis and pixel length from it.
type Config struct {
	Center        core.Vec3
	LookAt        core.Vec3
	Up            core.Vec3
	VFovDegrees   float64
	Width, Height int
	Aperture      float64 // 2*lensRadius; 0 disables DOF
	FocusDistance float64 // 0 auto-computes from Center/LookAt distance
	AntiAliasing  bool
}

func NewCamera(cfg Config) *Camera {
	focusDist := cfg.FocusDistance
	if focusDist <= 0 {
		focusDist = cfg.Center.Subtract(cfg.LookAt).Length()
	}

	forward := cfg.LookAt.Subtract(cfg.Center).Normalize()
	right := forward.Cross(cfg.Up).Normalize()
	up := right.Cross(forward).Normalize()

	theta := cfg.VFovDegrees * math.Pi / 180
	viewportHeight := 2 * math.Tan(theta/2)
	pixelLength := viewportHeight / float64(cfg.Height)

	return &Camera{
		Center:       cfg.Center,
		Forward:      forward,
		Right:        right,
		Up:           up,
		PixelLength:  pixelLength,
		LensRadius:   cfg.Aperture / 2,
		FocusDist:    focusDist,
		AntiAliasing: cfg.AntiAliasing,
	}
}

// GenerateRay builds the primary ray for pixelIndex (row-major, (0,0) top
// left) at the given resolution, applying §4.F step 1's jitter and DOF.
func (c *Camera) GenerateRay(pixelIndex, width, height int, sampler core.Sampler) core.Ray {
	px := pixelIndex % width
	py := pixelIndex / width

	jx, jy := 0.0, 0.0
	if c.AntiAliasing {
		jx = sampler.Get1D() - 0.5
		jy = sampler.Get1D() - 0.5
	}

	ndcX := (float64(px) + 0.5 + jx) - float64(width)/2
	ndcY := float64(height)/2 - (float64(py) + 0.5 + jy)

	dirPlane := c.Forward.
		Add(c.Right.Multiply(ndcX * c.PixelLength)).
		Add(c.Up.Multiply(ndcY * c.PixelLength))

	origin := c.Center
	direction := dirPlane.Normalize()

	if c.LensRadius > 0 {
		lu, lv := sampler.Get2D()
		disk := core.ConcentricSampleDisk(lu, lv)
		lensOffset := c.Right.Multiply(disk.X * c.LensRadius).Add(c.Up.Multiply(disk.Y * c.LensRadius))

		focalPoint := origin.Add(dirPlane.Multiply(c.FocusDist))
		origin = origin.Add(lensOffset)
		direction = focalPoint.Subtract(origin).Normalize()
	}

	return core.NewRay(origin, direction)
}
