package graphics

import (
	"tileworld/internal/config"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is an orthographic view over the tile grid. World Y points up on
// screen; Zoom is screen pixels per tile.
type Camera struct {
	Center mgl32.Vec2
	Zoom   float32
	Width  int
	Height int
}

func NewCamera(width, height int) *Camera {
	return &Camera{
		Zoom:   config.GetTileZoom(),
		Width:  max(width, 1),
		Height: max(height, 1),
	}
}

func (c *Camera) SetViewport(width, height int) {
	c.Width = max(width, 1)
	c.Height = max(height, 1)
}

// halfExtent is half the visible area in tiles.
func (c *Camera) halfExtent() (float32, float32) {
	return float32(c.Width) / 2 / c.Zoom, float32(c.Height) / 2 / c.Zoom
}

func (c *Camera) GetProjectionMatrix() mgl32.Mat4 {
	hw, hh := c.halfExtent()
	return mgl32.Ortho2D(c.Center.X()-hw, c.Center.X()+hw, c.Center.Y()-hh, c.Center.Y()+hh)
}

// Visible returns the world rectangle on screen.
func (c *Camera) Visible() (minX, minY, maxX, maxY float32) {
	hw, hh := c.halfExtent()
	return c.Center.X() - hw, c.Center.Y() - hh, c.Center.X() + hw, c.Center.Y() + hh
}

// Pan moves the centre by a screen-independent distance in tiles.
func (c *Camera) Pan(dx, dy float32) {
	c.Center = c.Center.Add(mgl32.Vec2{dx, dy})
}

// ZoomBy scales the zoom, keeping the world point under the screen
// position (sx, sy) fixed.
func (c *Camera) ZoomBy(factor float32, sx, sy float64) {
	before := c.ScreenToWorld(sx, sy)
	c.Zoom = mgl32.Clamp(c.Zoom*factor, config.MinTileZoom, config.MaxTileZoom)
	after := c.ScreenToWorld(sx, sy)
	c.Center = c.Center.Add(before.Sub(after))
}

// ScreenToWorld maps window pixels (origin top-left) to tile coordinates.
func (c *Camera) ScreenToWorld(sx, sy float64) mgl32.Vec2 {
	x := c.Center.X() + (float32(sx)-float32(c.Width)/2)/c.Zoom
	y := c.Center.Y() - (float32(sy)-float32(c.Height)/2)/c.Zoom
	return mgl32.Vec2{x, y}
}

// ClampTo keeps the centre over a size×size grid.
func (c *Camera) ClampTo(size int) {
	s := float32(size)
	c.Center = mgl32.Vec2{mgl32.Clamp(c.Center.X(), 0, s), mgl32.Clamp(c.Center.Y(), 0, s)}
}
