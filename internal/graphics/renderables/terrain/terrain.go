package terrain

import (
	"tileworld/internal/graphics"
	"tileworld/internal/graphics/renderer"
	"tileworld/internal/meshing"
)

// Terrain draws the ground layer: one mesh and one draw call per terrain
// type.
type Terrain struct {
	program *graphics.TileProgram
	batches []meshing.Batch
	meshes  []*graphics.QuadMesh
}

// NewTerrain keeps the terrain batches among bs for upload at Init.
func NewTerrain(program *graphics.TileProgram, bs []meshing.Batch) *Terrain {
	t := &Terrain{program: program}
	for _, b := range bs {
		if b.Key.Layer == meshing.LayerTerrain {
			t.batches = append(t.batches, b)
		}
	}
	return t
}

func (t *Terrain) Init() error {
	for _, b := range t.batches {
		t.meshes = append(t.meshes, graphics.NewQuadMesh(b))
	}
	// vertex data lives on the GPU now
	t.batches = nil
	return nil
}

func (t *Terrain) Render(ctx renderer.RenderContext) {
	t.program.Bind(&ctx.Proj[0])
	for _, m := range t.meshes {
		m.Draw()
	}
}

func (t *Terrain) Dispose() {
	for _, m := range t.meshes {
		m.Delete()
	}
	t.meshes = nil
}

func (t *Terrain) SetViewport(width, height int) {}
