package world

import (
	"errors"
	"fmt"
)

// MaxSize bounds the side length so the grid stays addressable by int32.
const MaxSize = 1 << 14

var (
	ErrInvalidSize   = errors.New("invalid world size")
	ErrInvalidConfig = errors.New("invalid world configuration")
	ErrWorldSealed   = errors.New("world is sealed")
)

// World is a square grid of terrain plus the features placed on it. It is
// written by the generation pipeline and sealed afterwards; a sealed world
// is safe for concurrent readers.
type World struct {
	size    int
	seed    int64
	terrain []Terrain

	features []Feature                 // commit order
	byKind   [featureKindCount][]int32 // indices into features
	occupied []int32                   // per cell, index into features plus one

	sealed bool
}

// NewWorld allocates an all-water world of the given side length. The seed
// keys every random draw made while placing features.
func NewWorld(size int, seed int64) (*World, error) {
	if size <= 0 || size > MaxSize {
		return nil, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidSize, size, MaxSize)
	}
	return &World{
		size:     size,
		seed:     seed,
		terrain:  make([]Terrain, size*size),
		occupied: make([]int32, size*size),
	}, nil
}

// NewFlatWorld fills every tile with the same terrain type.
func NewFlatWorld(size int, seed int64, t TerrainType) (*World, error) {
	w, err := NewWorld(size, seed)
	if err != nil {
		return nil, err
	}
	biome := BiomePlains
	if t == TerrainWater {
		biome = BiomeOcean
	}
	flat := NewTerrain(t, biome, NoiseSample{})
	for i := range w.terrain {
		w.terrain[i] = flat
	}
	return w, nil
}

func (w *World) Size() int    { return w.size }
func (w *World) Seed() int64  { return w.seed }
func (w *World) Sealed() bool { return w.sealed }

// InBounds reports whether (x, y) is a tile of the grid.
func (w *World) InBounds(x, y int) bool {
	return x >= 0 && y >= 0 && x < w.size && y < w.size
}

func (w *World) index(x, y int) int {
	return y*w.size + x
}

// terrainAt skips the bounds check; callers guarantee it.
func (w *World) terrainAt(x, y int) Terrain {
	return w.terrain[w.index(x, y)]
}

// SetTerrain overwrites a tile. Only valid before the world is sealed.
func (w *World) SetTerrain(x, y int, t Terrain) error {
	if w.sealed {
		return ErrWorldSealed
	}
	if !w.InBounds(x, y) {
		return fmt.Errorf("%w: (%d,%d)", ErrFootprintOutOfBounds, x, y)
	}
	w.terrain[w.index(x, y)] = t
	return nil
}

// Seal ends the generation phase. Mutators fail afterwards.
func (w *World) Seal() {
	w.sealed = true
}

// TerrainAt returns the terrain of a tile, or false if (x, y) is outside
// the grid.
func (w *World) TerrainAt(x, y int) (Terrain, bool) {
	if !w.InBounds(x, y) {
		return Terrain{}, false
	}
	return w.terrainAt(x, y), true
}

// FeatureAt returns the feature whose footprint covers (x, y).
func (w *World) FeatureAt(x, y int) (Feature, bool) {
	if !w.InBounds(x, y) {
		return Feature{}, false
	}
	ref := w.occupied[w.index(x, y)]
	if ref == 0 {
		return Feature{}, false
	}
	return w.features[ref-1], true
}

// FeaturesOfKind returns the features of one kind in commit order.
func (w *World) FeaturesOfKind(kind FeatureKind) []Feature {
	if !kind.valid() {
		return nil
	}
	refs := w.byKind[kind]
	out := make([]Feature, len(refs))
	for i, ref := range refs {
		out[i] = w.features[ref]
	}
	return out
}

// Features returns every feature in commit order.
func (w *World) Features() []Feature {
	out := make([]Feature, len(w.features))
	copy(out, w.features)
	return out
}

// commit records a feature that already passed every placement check.
func (w *World) commit(f Feature) {
	ref := int32(len(w.features))
	w.features = append(w.features, f)
	w.byKind[f.kind] = append(w.byKind[f.kind], ref)
	ax, ay := f.Anchor()
	for dy := range f.size.H {
		for dx := range f.size.W {
			w.occupied[w.index(ax+dx, ay+dy)] = ref + 1
		}
	}
}

// Stats summarizes a world.
type Stats struct {
	Terrain  map[TerrainType]int
	Biomes   map[Biome]int
	Features map[FeatureKind]int
}

func (w *World) Stats() Stats {
	s := Stats{
		Terrain:  make(map[TerrainType]int),
		Biomes:   make(map[Biome]int),
		Features: make(map[FeatureKind]int),
	}
	for _, t := range w.terrain {
		s.Terrain[t.typ]++
		s.Biomes[t.biome]++
	}
	for k, refs := range w.byKind {
		if len(refs) > 0 {
			s.Features[FeatureKind(k)] = len(refs)
		}
	}
	return s
}
