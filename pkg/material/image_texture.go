package material

import (
	"github.com/df07/go-wavefront-tracer/pkg/core"
)

// TextureAtlas holds every scene texture back to back in one flat pixel
// array, indexed by Descriptor (§4.K: "texture atlas + descriptors"). It is
// allocated once at scene init and freed with the rest of device state.
type TextureAtlas struct {
	Pixels      []core.Vec3 // every texture's pixels, concatenated
	Descriptors []TextureDescriptor
}

// TextureDescriptor locates one texture inside the shared atlas.
type TextureDescriptor struct {
	Offset, Width, Height int
}

// AddTexture appends width*height pixels to the atlas and returns the
// texture's index into Descriptors (what Material.AlbedoTextureIndex
// stores).
func (a *TextureAtlas) AddTexture(width, height int, pixels []core.Vec3) int {
	desc := TextureDescriptor{Offset: len(a.Pixels), Width: width, Height: height}
	a.Pixels = append(a.Pixels, pixels...)
	a.Descriptors = append(a.Descriptors, desc)
	return len(a.Descriptors) - 1
}

// Sample evaluates texture index `tex` at uv with nearest-neighbor
// filtering (§9: sampling is nearest-neighbor by design). The sampled
// color is returned to the caller and never written back into shared
// material state — §9 flags that races when a shader once wrote the
// sampled color into the shared material record, and tells us to keep the
// sample thread-local instead.
func (a *TextureAtlas) Sample(tex int, uv core.Vec2) core.Vec3 {
	if tex < 0 || tex >= len(a.Descriptors) {
		return core.Vec3{}
	}
	d := a.Descriptors[tex]

	u := uv.X - float64(int(uv.X))
	v := uv.Y - float64(int(uv.Y))
	if u < 0 {
		u += 1.0
	}
	if v < 0 {
		v += 1.0
	}

	x := int(u * float64(d.Width))
	y := int((1.0 - v) * float64(d.Height))
	if x >= d.Width {
		x = d.Width - 1
	}
	if y >= d.Height {
		y = d.Height - 1
	}
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}

	return a.Pixels[d.Offset+y*d.Width+x]
}
