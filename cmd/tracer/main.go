// Command tracer is the external application around the wavefront device
// API (§6): it builds a scene, calls Init once, drives RenderIteration in a
// loop, optionally denoises, and writes the result to a PNG — grounded on
// the teacher's root main.go's flag parsing and png.Encode output step.
package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/df07/go-wavefront-tracer/internal/config"
	"github.com/df07/go-wavefront-tracer/internal/envmap"
	"github.com/df07/go-wavefront-tracer/internal/meshloader"
	"github.com/df07/go-wavefront-tracer/internal/renderlog"
	"github.com/df07/go-wavefront-tracer/pkg/core"
	"github.com/df07/go-wavefront-tracer/pkg/geometry"
	"github.com/df07/go-wavefront-tracer/pkg/material"
	"github.com/df07/go-wavefront-tracer/pkg/scene"
)

func main() {
	configPath := flag.String("config", "", "path to a YAML render config")
	sceneName := flag.String("scene", "", "scene name, overrides the config file's scene")
	iterations := flag.Int("iterations", 0, "sample count, overrides the config file's iterations")
	output := flag.String("output", "", "output PNG path, overrides the config file's output")
	meshPath := flag.String("mesh", "", "optional glTF/GLB or PLY mesh placed in the scene's center, diffuse gray")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
	if *sceneName != "" {
		cfg.Scene = *sceneName
	}
	if *iterations > 0 {
		cfg.Iterations = *iterations
	}
	if *output != "" {
		cfg.Output = *output
	}

	s, err := buildScene(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error building scene: %v\n", err)
		os.Exit(1)
	}

	if *meshPath != "" {
		if err := addMesh(s, *meshPath); err != nil {
			fmt.Fprintf(os.Stderr, "error loading mesh: %v\n", err)
			os.Exit(1)
		}
	}

	if cfg.EnvironmentMap != "" {
		env, err := envmap.Load(cfg.EnvironmentMap, 512, 256)
		if err != nil {
			renderlog.Warn("failed to load environment map, continuing without it", "path", cfg.EnvironmentMap, "error", err)
		} else {
			s.SetEnvironment(env)
		}
	}

	ctx, err := scene.Init(s, scene.RenderConfig{Policy: cfg.Policy(), Options: cfg.WavefrontOptions()})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error initializing render context: %v\n", err)
		os.Exit(1)
	}
	defer ctx.Free()

	start := time.Now()
	for i := 1; i <= cfg.Iterations; i++ {
		if err := ctx.RenderIteration(i); err != nil {
			fmt.Fprintf(os.Stderr, "error rendering iteration %d: %v\n", i, err)
			os.Exit(1)
		}
	}
	renderlog.Info("render complete", "iterations", cfg.Iterations, "scene", cfg.Scene, "elapsed", time.Since(start))

	var pixels []core.Vec3
	if cfg.Denoise {
		pixels = ctx.Denoise(cfg.SigmaColor, cfg.SigmaNormal, cfg.SigmaPosition, cfg.FilterSize)
	} else {
		pixels = ctx.ReadFramebuffer()
	}

	if err := writePNG(cfg.Output, cfg.Width, cfg.Height, pixels); err != nil {
		fmt.Fprintf(os.Stderr, "error writing image: %v\n", err)
		os.Exit(1)
	}
	renderlog.Info("wrote image", "path", cfg.Output)
}

func buildScene(cfg config.Render) (*scene.Scene, error) {
	switch cfg.Scene {
	case "cornell", "":
		return scene.NewCornellScene(cfg.Width, cfg.Height), nil
	default:
		return nil, fmt.Errorf("unknown scene %q", cfg.Scene)
	}
}

// addMesh loads a mesh asset (glTF/GLB or Stanford PLY, dispatched by file
// extension) and places it at the Cornell box's center as a diffuse gray
// instance, giving the scene a real mesh instead of only the built-in
// spheres and quads.
func addMesh(s *scene.Scene, path string) error {
	gray := material.Material{Tag: material.Diffuse, Albedo: core.NewVec3(0.6, 0.6, 0.6), AlbedoTextureIndex: -1}
	matID := s.AddMaterial(gray)

	transform := geometry.Transform{
		Translation: core.NewVec3(278, 0, 278),
		Scale:       core.NewVec3(100, 100, 100),
	}

	var triangles geometry.TriangleRange
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gltf", ".glb":
		t, err := meshloader.LoadGLTF(path, s.Pool, transform)
		if err != nil {
			return err
		}
		triangles = t
	case ".ply":
		data, err := meshloader.LoadPLY(path)
		if err != nil {
			return err
		}
		triangles = meshloader.ToTriangleRange(s.Pool, data, transform)
	default:
		return fmt.Errorf("unsupported mesh format %q", path)
	}

	s.AddMeshInstance(geometry.Identity(), triangles, matID)
	return nil
}

// writePNG encodes display-space pixels (already [0,255]-clamped by
// Framebuffer.Read or the denoiser) to a PNG file, creating the output
// directory if needed.
func writePNG(path string, width, height int, pixels []core.Vec3) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			p := pixels[y*width+x]
			img.SetRGBA(x, y, color.RGBA{
				R: uint8(p.X + 0.5),
				G: uint8(p.Y + 0.5),
				B: uint8(p.Z + 0.5),
				A: 255,
			})
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return png.Encode(file, img)
}
