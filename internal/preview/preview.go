// Package preview renders a world to an image for quick inspection.
package preview

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"tileworld/internal/palette"
	"tileworld/internal/world"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Options controls the output image.
type Options struct {
	Scale    int  // output pixels per tile
	Features bool // overlay feature footprints
	Legend   bool // print seed and counts in the corner
}

func DefaultOptions() Options {
	return Options{Scale: 4, Features: true, Legend: true}
}

// Map draws one pixel per tile, world Y up.
func Map(w *world.World, features bool) *image.RGBA {
	n := w.Size()
	img := image.NewRGBA(image.Rect(0, 0, n, n))
	for y := range n {
		for x := range n {
			t, _ := w.TerrainAt(x, y)
			img.SetRGBA(x, n-1-y, palette.Color(t.Type().Texture()))
		}
	}
	if !features {
		return img
	}
	for _, f := range w.Features() {
		c := palette.Color(f.Kind().Texture(f.Variant()))
		ax, ay := f.Anchor()
		size := f.Size()
		for dy := range size.H {
			for dx := range size.W {
				img.SetRGBA(ax+dx, n-1-(ay+dy), c)
			}
		}
	}
	return img
}

// Render draws the world scaled up with nearest-neighbour sampling.
func Render(w *world.World, opts Options) *image.RGBA {
	scale := max(opts.Scale, 1)
	src := Map(w, opts.Features)
	dst := image.NewRGBA(image.Rect(0, 0, src.Bounds().Dx()*scale, src.Bounds().Dy()*scale))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	if opts.Legend {
		drawLegend(dst, w)
	}
	return dst
}

// LegendLines summarizes the world in a few short lines.
func LegendLines(w *world.World) []string {
	s := w.Stats()
	lines := []string{fmt.Sprintf("seed %d  %dx%d", w.Seed(), w.Size(), w.Size())}
	for _, k := range world.PlacementOrder {
		lines = append(lines, fmt.Sprintf("%-6s %d", k, s.Features[k]))
	}
	return lines
}

func drawLegend(dst *image.RGBA, w *world.World) {
	face := basicfont.Face7x13
	lines := LegendLines(w)
	lineH := face.Metrics().Height.Ceil()

	width := 0
	for _, l := range lines {
		width = max(width, font.MeasureString(face, l).Ceil())
	}
	box := image.Rect(0, 0, width+8, lineH*len(lines)+6).Intersect(dst.Bounds())
	draw.Draw(dst, box, image.NewUniform(color.RGBA{0, 0, 0, 160}), image.Point{}, draw.Over)

	d := &font.Drawer{Dst: dst, Src: image.White, Face: face}
	for i, l := range lines {
		d.Dot = fixed.P(4, 3+lineH*(i+1)-face.Metrics().Descent.Ceil())
		d.DrawString(l)
	}
}

// WritePNG encodes img to path.
func WritePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	return f.Close()
}
