package main

import (
	"tileworld/internal/graphics"
	"tileworld/internal/graphics/renderables/features"
	"tileworld/internal/graphics/renderables/hud"
	"tileworld/internal/graphics/renderables/terrain"
	renderer "tileworld/internal/graphics/renderer"
	"tileworld/internal/meshing"
	"tileworld/internal/world"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	winW = 900
	winH = 600
)

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winW, winH, "tileworld", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()

	// Initialize OpenGL bindings
	if err := gl.Init(); err != nil {
		return nil, err
	}

	// V-Sync off; the frame limiter paces the loop
	glfw.SwapInterval(0)
	return window, nil
}

// ViewerComponents holds the initialized viewer parts
type ViewerComponents struct {
	Renderer *renderer.Renderer
	Program  *graphics.TileProgram
	Features *features.Features
	HUD      *hud.HUD
	World    *world.World
}

func setupViewer(w *world.World, batches []meshing.Batch) (*ViewerComponents, error) {
	program, err := graphics.NewTileProgram()
	if err != nil {
		return nil, err
	}

	featuresRenderer := features.NewFeatures(program, batches)
	hudRenderer := hud.NewHUD()

	r, err := renderer.NewRenderer(winW, winH,
		terrain.NewTerrain(program, batches),
		featuresRenderer,
		hudRenderer,
	)
	if err != nil {
		program.Delete()
		return nil, err
	}

	// Start centred on the world
	half := float32(w.Size()) / 2
	r.GetCamera().Center = mgl32.Vec2{half, half}

	return &ViewerComponents{
		Renderer: r,
		Program:  program,
		Features: featuresRenderer,
		HUD:      hudRenderer,
		World:    w,
	}, nil
}
