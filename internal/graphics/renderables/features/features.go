package features

import (
	"tileworld/internal/graphics"
	"tileworld/internal/graphics/renderer"
	"tileworld/internal/meshing"
)

// Features draws placed features over the terrain, one draw call per kind.
// Batches arrive sorted by descending Y so nearer features overdraw farther
// ones.
type Features struct {
	program *graphics.TileProgram
	batches []meshing.Batch
	meshes  []*graphics.QuadMesh
	hidden  bool
}

func NewFeatures(program *graphics.TileProgram, bs []meshing.Batch) *Features {
	f := &Features{program: program}
	for _, b := range bs {
		if b.Key.Layer == meshing.LayerFeatures {
			f.batches = append(f.batches, b)
		}
	}
	return f
}

func (f *Features) Init() error {
	for _, b := range f.batches {
		f.meshes = append(f.meshes, graphics.NewQuadMesh(b))
	}
	f.batches = nil
	return nil
}

// Toggle shows or hides the feature layer.
func (f *Features) Toggle() { f.hidden = !f.hidden }

func (f *Features) Render(ctx renderer.RenderContext) {
	if f.hidden {
		return
	}
	f.program.Bind(&ctx.Proj[0])
	for _, m := range f.meshes {
		m.Draw()
	}
}

func (f *Features) Dispose() {
	for _, m := range f.meshes {
		m.Delete()
	}
	f.meshes = nil
}

func (f *Features) SetViewport(width, height int) {}
