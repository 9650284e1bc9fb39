// Package palette maps texture handles to colours and small procedural
// sprites shared by the PNG preview and the GL viewer.
package palette

import (
	"image"
	"image/color"

	"tileworld/internal/world"
)

var colors = [world.TextureCount]color.RGBA{
	world.TextureNone:       {0, 0, 0, 0},
	world.TextureWater:      {48, 96, 200, 255},
	world.TextureGrass:      {92, 168, 64, 255},
	world.TextureSand:       {222, 206, 142, 255},
	world.TextureStone:      {128, 128, 128, 255},
	world.TextureSnow:       {240, 244, 250, 255},
	world.TextureGravel:     {150, 140, 124, 255},
	world.TextureRock:       {88, 86, 84, 255},
	world.TextureTulip:      {230, 60, 80, 255},
	world.TextureTulip2:     {240, 140, 190, 255},
	world.TextureBlueOrchid: {70, 150, 240, 255},
	world.TextureDandelion:  {250, 220, 40, 255},
	world.TextureRedLily:    {200, 30, 30, 255},
	world.TextureBush:       {46, 120, 40, 255},
	world.TextureTree1:      {30, 100, 36, 255},
	world.TextureTree2:      {20, 76, 46, 255},
}

var (
	stemColor  = color.RGBA{50, 130, 40, 255}
	trunkColor = color.RGBA{110, 74, 40, 255}
)

// Color is the flat colour of a texture handle.
func Color(id world.TextureID) color.RGBA {
	if int(id) >= len(colors) {
		return color.RGBA{255, 0, 255, 255}
	}
	return colors[id]
}

func shade(c color.RGBA, f float64) color.RGBA {
	s := func(v uint8) uint8 { return uint8(min(max(float64(v)*f, 0), 255)) }
	return color.RGBA{s(c.R), s(c.G), s(c.B), c.A}
}

// Sprite draws a px×px image for a handle. Ground textures are opaque and
// speckled so rotated tiles are distinguishable; feature sprites have a
// transparent background.
func Sprite(id world.TextureID, px int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, px, px))
	base := Color(id)
	switch id {
	case world.TextureWater:
		for y := range px {
			for x := range px {
				c := base
				if (y+x/4)%6 == 0 {
					c = shade(base, 1.25)
				}
				img.SetRGBA(x, y, c)
			}
		}
	case world.TextureGrass, world.TextureSand, world.TextureStone, world.TextureSnow, world.TextureGravel:
		for y := range px {
			for x := range px {
				c := base
				switch world.TileHash(int64(id), 0, x, y) % 7 {
				case 0:
					c = shade(base, 0.85)
				case 1:
					c = shade(base, 1.1)
				}
				img.SetRGBA(x, y, c)
			}
		}
	case world.TextureRock:
		disc(img, 0.5, 0.6, 0.38, 0.28, base)
		disc(img, 0.45, 0.55, 0.2, 0.12, shade(base, 1.3))
	case world.TextureTulip, world.TextureTulip2, world.TextureBlueOrchid, world.TextureDandelion, world.TextureRedLily:
		rect(img, 0.47, 0.45, 0.53, 0.95, stemColor)
		disc(img, 0.5, 0.35, 0.18, 0.18, base)
	case world.TextureBush:
		disc(img, 0.5, 0.55, 0.42, 0.38, base)
		disc(img, 0.4, 0.45, 0.15, 0.12, shade(base, 1.3))
	case world.TextureTree1, world.TextureTree2:
		rect(img, 0.42, 0.55, 0.58, 0.98, trunkColor)
		disc(img, 0.5, 0.38, 0.45, 0.36, base)
	}
	return img
}

// disc fills an ellipse given in unit coordinates.
func disc(img *image.RGBA, cx, cy, rx, ry float64, c color.RGBA) {
	px := float64(img.Bounds().Dx())
	for y := range img.Bounds().Dy() {
		for x := range img.Bounds().Dx() {
			dx := ((float64(x)+0.5)/px - cx) / rx
			dy := ((float64(y)+0.5)/px - cy) / ry
			if dx*dx+dy*dy <= 1 {
				img.SetRGBA(x, y, c)
			}
		}
	}
}

func rect(img *image.RGBA, x0, y0, x1, y1 float64, c color.RGBA) {
	px := float64(img.Bounds().Dx())
	for y := int(y0 * px); y < int(y1*px); y++ {
		for x := int(x0 * px); x < int(x1*px); x++ {
			img.SetRGBA(x, y, c)
		}
	}
}
