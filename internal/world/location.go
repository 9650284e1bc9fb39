package world

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Location is a position in tile space. The integer part names the tile,
// the fractional part is the sub-tile offset.
type Location struct {
	v mgl64.Vec2
}

// NewLocation creates a location at (x, y).
func NewLocation(x, y float64) Location {
	return Location{v: mgl64.Vec2{x, y}}
}

func (l Location) X() float64 { return l.v.X() }
func (l Location) Y() float64 { return l.v.Y() }

// Vec returns the location as a vector.
func (l Location) Vec() mgl64.Vec2 { return l.v }

// Add returns the location translated by (dx, dy).
func (l Location) Add(dx, dy float64) Location {
	return Location{v: l.v.Add(mgl64.Vec2{dx, dy})}
}

// Tile returns the integer tile coordinates containing the location.
func (l Location) Tile() (int, int) {
	return int(math.Floor(l.v.X())), int(math.Floor(l.v.Y()))
}
