package hud

import (
	"fmt"
	"math"

	"tileworld/internal/graphics"
	"tileworld/internal/graphics/renderer"
	"tileworld/internal/profiling"
	"tileworld/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// HUD prints the seed, zoom and the tile under the cursor.
type HUD struct {
	font          *graphics.FontRenderer
	width, height int
	visible       bool
	showProfiling bool
}

func NewHUD() *HUD {
	return &HUD{width: 900, height: 600, visible: true}
}

func (h *HUD) Init() error {
	fr, err := graphics.NewFontRenderer(h.width, h.height)
	if err != nil {
		return err
	}
	h.font = fr
	return nil
}

func (h *HUD) Toggle()          { h.visible = !h.visible }
func (h *HUD) ToggleProfiling() { h.showProfiling = !h.showProfiling }

func (h *HUD) Render(ctx renderer.RenderContext) {
	if !h.visible || h.font == nil {
		return
	}
	cursor := ctx.Camera.ScreenToWorld(ctx.Cursor[0], ctx.Cursor[1])
	lines := Lines(ctx.World, ctx.Camera.Zoom, cursor)
	if h.showProfiling {
		lines = append(lines, profiling.TopN(4))
	}
	step := float32(h.font.LineHeight() + 2)
	h.font.RenderLines(lines, 8, 8+step, step, 1, mgl32.Vec3{1, 1, 1})
}

// Lines describes the world and the tile at cursor.
func Lines(w *world.World, zoom float32, cursor mgl32.Vec2) []string {
	x := int(math.Floor(float64(cursor.X())))
	y := int(math.Floor(float64(cursor.Y())))
	lines := []string{
		fmt.Sprintf("seed %d  size %d  zoom %.0fpx", w.Seed(), w.Size(), zoom),
	}
	t, ok := w.TerrainAt(x, y)
	if !ok {
		return append(lines, fmt.Sprintf("(%d,%d) outside", x, y))
	}
	lines = append(lines, fmt.Sprintf("(%d,%d) %s / %s  c=%.2f w=%.2f r=%.2f",
		x, y, t.Type(), t.Biome(), t.Continentality(), t.Weirdness(), t.Rivers()))
	if f, ok := w.FeatureAt(x, y); ok {
		lines = append(lines, fmt.Sprintf("%s #%d at (%.2f,%.2f)", f.Kind(), f.Variant(), f.Location().X(), f.Location().Y()))
	}
	return lines
}

func (h *HUD) Dispose() {
	if h.font != nil {
		h.font.Dispose()
		h.font = nil
	}
}

func (h *HUD) SetViewport(width, height int) {
	h.width, h.height = width, height
	if h.font != nil {
		h.font.SetViewport(width, height)
	}
}
