package world

import (
	"errors"
	"fmt"
)

// Placement rejections. They are expected during generation and only
// counted there.
var (
	ErrFootprintOutOfBounds = errors.New("footprint out of bounds")
	ErrFootprintOccupied    = errors.New("footprint occupied")
	ErrPlacementCondition   = errors.New("placement condition not met")
	ErrInvalidVariant       = errors.New("invalid feature variant")
	ErrUnknownKind          = errors.New("unknown feature kind")
)

// VariantRandom asks Place to pick a seeded variant.
const VariantRandom = -1

// PlacementOrder is the order kinds are populated in. Earlier kinds claim
// tiles first, so changing it changes every world.
var PlacementOrder = [...]FeatureKind{FeatureRock, FeatureBush, FeatureTree, FeatureFlower}

const (
	saltSpawn uint64 = 0x5350_0000
	saltPlace uint64 = 0x504C_0000
)

// CanPlace runs the legality checks for a footprint anchored at (x, y)
// without committing anything.
func (w *World) CanPlace(kind FeatureKind, x, y int) error {
	if !kind.valid() {
		return fmt.Errorf("%w: %d", ErrUnknownKind, kind)
	}
	size := kind.Size()
	if !w.InBounds(x, y) || !w.InBounds(x+size.W-1, y+size.H-1) {
		return fmt.Errorf("%w: %s at (%d,%d)", ErrFootprintOutOfBounds, kind, x, y)
	}
	for dy := range size.H {
		for dx := range size.W {
			if w.occupied[w.index(x+dx, y+dy)] != 0 {
				return fmt.Errorf("%w: %s at (%d,%d)", ErrFootprintOccupied, kind, x+dx, y+dy)
			}
		}
	}
	if !featureKinds[kind].condition(w, x, y, size) {
		return fmt.Errorf("%w: %s at (%d,%d)", ErrPlacementCondition, kind, x, y)
	}
	return nil
}

// Place checks and commits a feature anchored at (x, y). variant is either
// an index in [0, kind.Variants()) or VariantRandom.
func (w *World) Place(kind FeatureKind, x, y, variant int) (Feature, error) {
	if w.sealed {
		return Feature{}, ErrWorldSealed
	}
	if err := w.CanPlace(kind, x, y); err != nil {
		return Feature{}, err
	}
	if variant != VariantRandom && (variant < 0 || variant >= kind.Variants()) {
		return Feature{}, fmt.Errorf("%w: %s variant %d (have %d)", ErrInvalidVariant, kind, variant, kind.Variants())
	}

	rng := newTileRand(w.seed, saltPlace|uint64(kind), x, y)
	if variant == VariantRandom {
		variant = rng.Intn(kind.Variants())
	}
	var offsetX, offsetY float64
	divX, divY := kind.OffsetDivisor()
	if divX != 0 {
		offsetX = rng.Float64() / float64(divX)
	}
	if divY != 0 {
		offsetY = rng.Float64() / float64(divY)
	}

	f := Feature{
		location: NewLocation(float64(x), float64(y)).Add(offsetX, offsetY),
		size:     kind.Size(),
		kind:     kind,
		variant:  variant,
	}
	w.commit(f)
	return f, nil
}

// PlacementStats counts what happened to the candidates of each kind.
type PlacementStats struct {
	Candidates map[FeatureKind]int
	Placed     map[FeatureKind]int
	Rejected   map[FeatureKind]int
}

// Populate scans the grid once per kind in PlacementOrder. Every tile rolls
// against the density policy; tiles that pass become candidates and are
// placed if legal.
func Populate(w *World, density DensityPolicy) (PlacementStats, error) {
	stats := PlacementStats{
		Candidates: make(map[FeatureKind]int),
		Placed:     make(map[FeatureKind]int),
		Rejected:   make(map[FeatureKind]int),
	}
	if w.sealed {
		return stats, ErrWorldSealed
	}
	if density == nil {
		return stats, fmt.Errorf("%w: nil density policy", ErrInvalidConfig)
	}
	for _, kind := range PlacementOrder {
		for y := range w.size {
			for x := range w.size {
				chance := density.Chance(kind, w.terrainAt(x, y))
				if chance <= 0 {
					continue
				}
				roll := newTileRand(w.seed, saltSpawn|uint64(kind), x, y)
				if roll.Float64() >= chance {
					continue
				}
				stats.Candidates[kind]++
				if _, err := w.Place(kind, x, y, VariantRandom); err != nil {
					stats.Rejected[kind]++
					continue
				}
				stats.Placed[kind]++
			}
		}
	}
	return stats, nil
}
