package world

import (
	"errors"
	"reflect"
	"testing"
)

func flatGrass(t *testing.T, size int) *World {
	t.Helper()
	w, err := NewFlatWorld(size, 42, TerrainGrass)
	if err != nil {
		t.Fatalf("NewFlatWorld: %v", err)
	}
	return w
}

func setType(t *testing.T, w *World, x, y int, typ TerrainType) {
	t.Helper()
	if err := w.SetTerrain(x, y, NewTerrain(typ, BiomePlains, NoiseSample{})); err != nil {
		t.Fatalf("SetTerrain(%d,%d): %v", x, y, err)
	}
}

func TestTreeClaimsFootprint(t *testing.T) {
	w := flatGrass(t, 8)
	tree, err := w.Place(FeatureTree, 3, 3, 0)
	if err != nil {
		t.Fatalf("Place tree: %v", err)
	}
	for _, c := range [][2]int{{3, 3}, {4, 3}, {3, 4}, {4, 4}} {
		got, ok := w.FeatureAt(c[0], c[1])
		if !ok || got != tree {
			t.Errorf("FeatureAt(%d,%d) = %v, %v; want the tree", c[0], c[1], got, ok)
		}
	}
	for _, c := range [][2]int{{2, 3}, {5, 3}, {3, 5}, {3, 2}} {
		if _, ok := w.FeatureAt(c[0], c[1]); ok {
			t.Errorf("FeatureAt(%d,%d) should be empty", c[0], c[1])
		}
	}

	setType(t, w, 4, 4, TerrainStone)
	if err := w.CanPlace(FeatureRock, 4, 4); !errors.Is(err, ErrFootprintOccupied) {
		t.Errorf("rock on tree cell: expected ErrFootprintOccupied, got %v", err)
	}
	if _, err := w.Place(FeatureTree, 4, 4, 0); !errors.Is(err, ErrFootprintOccupied) {
		t.Errorf("overlapping tree: expected ErrFootprintOccupied, got %v", err)
	}
}

func TestPlaceOutOfBounds(t *testing.T) {
	w := flatGrass(t, 8)
	tests := []struct {
		kind FeatureKind
		x, y int
	}{
		{FeatureBush, -1, 0},
		{FeatureBush, 0, 8},
		{FeatureTree, 7, 3},
		{FeatureTree, 3, 7},
		{FeatureTree, 7, 7},
	}
	for _, tt := range tests {
		if _, err := w.Place(tt.kind, tt.x, tt.y, 0); !errors.Is(err, ErrFootprintOutOfBounds) {
			t.Errorf("%s at (%d,%d): expected ErrFootprintOutOfBounds, got %v", tt.kind, tt.x, tt.y, err)
		}
	}
	if _, err := w.Place(FeatureTree, 6, 6, 0); err != nil {
		t.Errorf("tree touching the corner should fit: %v", err)
	}
}

func TestPlacementConditions(t *testing.T) {
	w := flatGrass(t, 8)
	setType(t, w, 1, 1, TerrainSand)
	setType(t, w, 5, 5, TerrainWater)
	setType(t, w, 2, 6, TerrainGravel)
	setType(t, w, 0, 0, TerrainStone)

	rejected := []struct {
		kind FeatureKind
		x, y int
	}{
		{FeatureBush, 1, 1},   // sand
		{FeatureFlower, 4, 4}, // diagonal neighbour is water
		{FeatureFlower, 5, 6}, // neighbour below is water
		{FeatureRock, 3, 3},   // grass
		{FeatureTree, 0, 0},   // one cell is stone
		{FeatureTree, 4, 4},   // one cell is water
	}
	for _, tt := range rejected {
		if err := w.CanPlace(tt.kind, tt.x, tt.y); !errors.Is(err, ErrPlacementCondition) {
			t.Errorf("%s at (%d,%d): expected ErrPlacementCondition, got %v", tt.kind, tt.x, tt.y, err)
		}
	}

	accepted := []struct {
		kind FeatureKind
		x, y int
	}{
		{FeatureRock, 2, 6},
		{FeatureRock, 0, 0},
		{FeatureFlower, 3, 3},
		{FeatureFlower, 7, 0}, // corner: missing neighbours count as dry
		{FeatureBush, 6, 1},
		{FeatureTree, 1, 3},
	}
	for _, tt := range accepted {
		if err := w.CanPlace(tt.kind, tt.x, tt.y); err != nil {
			t.Errorf("%s at (%d,%d): unexpected %v", tt.kind, tt.x, tt.y, err)
		}
	}
}

func TestPlaceVariantAndOffset(t *testing.T) {
	w := flatGrass(t, 32)
	if _, err := w.Place(FeatureFlower, 0, 0, 5); !errors.Is(err, ErrInvalidVariant) {
		t.Errorf("expected ErrInvalidVariant, got %v", err)
	}
	if _, err := w.Place(FeatureFlower, 0, 0, -2); !errors.Is(err, ErrInvalidVariant) {
		t.Errorf("expected ErrInvalidVariant for -2, got %v", err)
	}
	if _, err := w.Place(FeatureKind(9), 0, 0, 0); !errors.Is(err, ErrUnknownKind) {
		t.Errorf("expected ErrUnknownKind, got %v", err)
	}

	seen := make(map[int]bool)
	for y := 0; y < 32; y += 2 {
		for x := 0; x < 32; x += 2 {
			f, err := w.Place(FeatureFlower, x, y, VariantRandom)
			if err != nil {
				t.Fatalf("Place flower (%d,%d): %v", x, y, err)
			}
			seen[f.Variant()] = true
			dx, dy := f.Location().X()-float64(x), f.Location().Y()-float64(y)
			if dx < 0 || dx >= 0.5 || dy < 0 || dy >= 0.5 {
				t.Fatalf("flower offset (%v,%v) out of [0,0.5)", dx, dy)
			}
			if ax, ay := f.Anchor(); ax != x || ay != y {
				t.Fatalf("anchor (%d,%d), want (%d,%d)", ax, ay, x, y)
			}
		}
	}
	if len(seen) != FeatureFlower.Variants() {
		t.Errorf("expected all %d flower variants over 256 placements, saw %v", FeatureFlower.Variants(), seen)
	}

	tree, err := flatGrass(t, 4).Place(FeatureTree, 1, 1, VariantRandom)
	if err != nil {
		t.Fatalf("Place tree: %v", err)
	}
	if dy := tree.Location().Y() - 1; dy != 0 {
		t.Errorf("tree y offset = %v, want 0", dy)
	}
	if dx := tree.Location().X() - 1; dx < 0 || dx >= 0.25 {
		t.Errorf("tree x offset = %v, want [0,0.25)", dx)
	}
}

func TestPlaceIsDeterministic(t *testing.T) {
	a, b := flatGrass(t, 4), flatGrass(t, 4)
	fa, _ := a.Place(FeatureBush, 2, 1, VariantRandom)
	fb, _ := b.Place(FeatureBush, 2, 1, VariantRandom)
	if fa != fb {
		t.Errorf("same seed and tile gave %v and %v", fa, fb)
	}
}

func TestSealedWorldRejectsMutation(t *testing.T) {
	w := flatGrass(t, 4)
	w.Seal()
	if _, err := w.Place(FeatureBush, 0, 0, 0); !errors.Is(err, ErrWorldSealed) {
		t.Errorf("Place: expected ErrWorldSealed, got %v", err)
	}
	if err := w.SetTerrain(0, 0, Terrain{}); !errors.Is(err, ErrWorldSealed) {
		t.Errorf("SetTerrain: expected ErrWorldSealed, got %v", err)
	}
	if _, err := Populate(w, DefaultDensity); !errors.Is(err, ErrWorldSealed) {
		t.Errorf("Populate: expected ErrWorldSealed, got %v", err)
	}
}

// With every tile a candidate, bushes run before trees and flowers and take
// the whole grid.
func TestPopulateOrder(t *testing.T) {
	w := flatGrass(t, 6)
	stats, err := Populate(w, UniformDensity(1))
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if n := len(w.FeaturesOfKind(FeatureBush)); n != 36 {
		t.Errorf("expected 36 bushes, got %d", n)
	}
	for _, k := range []FeatureKind{FeatureRock, FeatureTree, FeatureFlower} {
		if n := len(w.FeaturesOfKind(k)); n != 0 {
			t.Errorf("expected no %s, got %d", k, n)
		}
		if stats.Candidates[k] != 36 || stats.Rejected[k] != 36 {
			t.Errorf("%s: candidates=%d rejected=%d, want 36/36", k, stats.Candidates[k], stats.Rejected[k])
		}
	}
}

func TestPopulateZeroDensity(t *testing.T) {
	w := flatGrass(t, 6)
	stats, err := Populate(w, UniformDensity(0))
	if err != nil {
		t.Fatalf("Populate: %v", err)
	}
	if len(w.Features()) != 0 || len(stats.Candidates) != 0 {
		t.Errorf("expected nothing placed, got %d features", len(w.Features()))
	}
	if _, err := Populate(w, nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("nil density: expected ErrInvalidConfig, got %v", err)
	}
}

func TestPopulateDeterministic(t *testing.T) {
	build := func() *World {
		w := flatGrass(t, 24)
		for x := range 24 {
			setType(t, w, x, 12, TerrainWater)
			setType(t, w, x, 13, TerrainGravel)
		}
		if _, err := Populate(w, UniformDensity(0.3)); err != nil {
			t.Fatalf("Populate: %v", err)
		}
		return w
	}
	a, b := build(), build()
	if !reflect.DeepEqual(a.Features(), b.Features()) {
		t.Error("Populate is not deterministic")
	}
	if len(a.Features()) == 0 {
		t.Error("expected some features")
	}
}

func TestDensityPolicies(t *testing.T) {
	forest := NewTerrain(TerrainGrass, BiomeForest, NoiseSample{})
	ocean := NewTerrain(TerrainWater, BiomeOcean, NoiseSample{})
	if c := DefaultDensity.Chance(FeatureTree, forest); c <= DefaultDensity.Chance(FeatureTree, NewTerrain(TerrainGrass, BiomePlains, NoiseSample{})) {
		t.Errorf("forest tree chance %v should exceed plains", c)
	}
	for _, k := range FeatureKinds() {
		if c := DefaultDensity.Chance(k, ocean); c != 0 {
			t.Errorf("ocean %s chance = %v, want 0", k, c)
		}
	}
	if c := (BiomeDensity{Scale: 1000}).Chance(FeatureTree, forest); c != 1 {
		t.Errorf("scaled chance = %v, want clamp to 1", c)
	}
	if c := UniformDensity(-3).Chance(FeatureRock, forest); c != 0 {
		t.Errorf("negative uniform chance = %v, want 0", c)
	}
}
