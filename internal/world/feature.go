package world

import (
	"cmp"
	"fmt"
)

// Size is a footprint in tiles.
type Size struct {
	W, H int
}

// FeatureKind is the closed set of things placed on top of terrain.
type FeatureKind uint8

const (
	FeatureRock FeatureKind = iota
	FeatureFlower
	FeatureBush
	FeatureTree

	featureKindCount
)

// placementCondition reports whether a footprint anchored at (x, y) suits
// the kind. Bounds and occupancy are checked before it runs.
type placementCondition func(w *World, x, y int, size Size) bool

type featureKindInfo struct {
	name      string
	size      Size
	textures  []TextureID // one per variant
	offsetDiv [2]int      // sub-tile offset divisor per axis, 0 pins the axis
	condition placementCondition
}

var featureKinds = [featureKindCount]featureKindInfo{
	FeatureRock: {
		name:      "rock",
		size:      Size{1, 1},
		textures:  []TextureID{TextureRock},
		offsetDiv: [2]int{2, 2},
		condition: allCells(TerrainStone, TerrainGravel),
	},
	FeatureFlower: {
		name:      "flower",
		size:      Size{1, 1},
		textures:  []TextureID{TextureTulip, TextureTulip2, TextureBlueOrchid, TextureDandelion, TextureRedLily},
		offsetDiv: [2]int{2, 2},
		condition: grassAwayFromWater,
	},
	FeatureBush: {
		name:      "bush",
		size:      Size{1, 1},
		textures:  []TextureID{TextureBush},
		offsetDiv: [2]int{3, 3},
		condition: allCells(TerrainGrass),
	},
	FeatureTree: {
		name:      "tree",
		size:      Size{2, 2},
		textures:  []TextureID{TextureTree1, TextureTree2},
		offsetDiv: [2]int{4, 0},
		condition: allCells(TerrainGrass),
	},
}

// FeatureKinds lists every kind in declaration order.
func FeatureKinds() []FeatureKind {
	out := make([]FeatureKind, featureKindCount)
	for i := range out {
		out[i] = FeatureKind(i)
	}
	return out
}

// ParseFeatureKind is the inverse of String.
func ParseFeatureKind(name string) (FeatureKind, bool) {
	for i, info := range featureKinds {
		if info.name == name {
			return FeatureKind(i), true
		}
	}
	return 0, false
}

func (k FeatureKind) valid() bool { return k < featureKindCount }

func (k FeatureKind) String() string {
	if k.valid() {
		return featureKinds[k].name
	}
	return fmt.Sprintf("FeatureKind(%d)", uint8(k))
}

// Variants is the number of visual variants of the kind.
func (k FeatureKind) Variants() int {
	if !k.valid() {
		return 0
	}
	return len(featureKinds[k].textures)
}

func (k FeatureKind) Size() Size {
	if !k.valid() {
		return Size{}
	}
	return featureKinds[k].size
}

// OffsetDivisor returns the per-axis divisor applied to the random sub-tile
// offset. Zero means no displacement on that axis.
func (k FeatureKind) OffsetDivisor() (int, int) {
	if !k.valid() {
		return 0, 0
	}
	d := featureKinds[k].offsetDiv
	return d[0], d[1]
}

// Texture returns the handle of a variant.
func (k FeatureKind) Texture(variant int) TextureID {
	if !k.valid() || variant < 0 || variant >= k.Variants() {
		return TextureNone
	}
	return featureKinds[k].textures[variant]
}

// Feature is a placed decoration.
type Feature struct {
	location Location
	size     Size
	kind     FeatureKind
	variant  int
}

func (f Feature) Location() Location { return f.location }
func (f Feature) Size() Size         { return f.size }
func (f Feature) Kind() FeatureKind  { return f.kind }
func (f Feature) Variant() int       { return f.variant }

// Anchor is the tile the footprint starts at.
func (f Feature) Anchor() (int, int) { return f.location.Tile() }

// Key identifies a feature by its location.
func (f Feature) Key() Location { return f.location }

// Covers reports whether the footprint contains tile (x, y).
func (f Feature) Covers(x, y int) bool {
	ax, ay := f.Anchor()
	return x >= ax && x < ax+f.size.W && y >= ay && y < ay+f.size.H
}

// Overlaps reports whether two footprints share a tile.
func (f Feature) Overlaps(o Feature) bool {
	ax, ay := f.Anchor()
	bx, by := o.Anchor()
	return ax < bx+o.size.W && bx < ax+f.size.W &&
		ay < by+o.size.H && by < ay+f.size.H
}

// CompareFeatures orders features by descending Y, the order they are drawn
// in. Ties fall back to ascending X.
func CompareFeatures(a, b Feature) int {
	if c := cmp.Compare(b.location.Y(), a.location.Y()); c != 0 {
		return c
	}
	return cmp.Compare(a.location.X(), b.location.X())
}

func allCells(types ...TerrainType) placementCondition {
	return func(w *World, x, y int, size Size) bool {
		for dy := range size.H {
			for dx := range size.W {
				t := w.terrainAt(x+dx, y+dy).typ
				ok := false
				for _, want := range types {
					if t == want {
						ok = true
						break
					}
				}
				if !ok {
					return false
				}
			}
		}
		return true
	}
}

var grassOnly = allCells(TerrainGrass)

// Flowers need grass and no water in the surrounding ring; tiles outside
// the grid count as dry.
func grassAwayFromWater(w *World, x, y int, size Size) bool {
	if !grassOnly(w, x, y, size) {
		return false
	}
	for ny := y - 1; ny <= y+size.H; ny++ {
		for nx := x - 1; nx <= x+size.W; nx++ {
			if !w.InBounds(nx, ny) {
				continue
			}
			if w.terrainAt(nx, ny).typ == TerrainWater {
				return false
			}
		}
	}
	return true
}
