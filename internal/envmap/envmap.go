// Package envmap decodes an on-disk environment map image and resamples it
// to the lat-long buffer pkg/lights.EnvironmentMap reads, per §6's "decoding
// the source HDR file is an external concern" split. Grounded on the
// teacher's pkg/loaders/image.go (stdlib image.Decode + format registration)
// for the decode step, extended with golang.org/x/image/draw for the
// resample step the teacher's loader never needed.
package envmap

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"golang.org/x/image/draw"

	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/lights"
)

// Load decodes an equirectangular (lat-long) environment image from disk
// and resamples it to width x height using a Catmull-Rom kernel, matching
// pkg/lights.EnvironmentMap's row-major, row-0-is-+Y convention.
func Load(path string, width, height int) (*lights.EnvironmentMap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("envmap: open %s: %w", path, err)
	}
	defer f.Close()

	src, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("envmap: decode %s: %w", path, err)
	}

	dst := image.NewRGBA64(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Over, nil)

	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			r, g, b, _ := dst.At(x, y).RGBA()
			pixels[y*width+x] = core.NewVec3(float64(r)/65535.0, float64(g)/65535.0, float64(b)/65535.0)
		}
	}

	return &lights.EnvironmentMap{Width: width, Height: height, Pixels: pixels}, nil
}

// Constant builds a uniform environment map of a single radiance value,
// used for solid-color "sky" fills when no image is configured.
func Constant(color core.Vec3) *lights.EnvironmentMap {
	return &lights.EnvironmentMap{Width: 1, Height: 1, Pixels: []core.Vec3{color}}
}
