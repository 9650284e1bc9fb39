package world

import "fmt"

// Noise field parameters shared by every world.
const (
	DefaultOctaves   = 8
	DefaultRoughness = 0.5
	DefaultScale     = 0.5

	// Rivers sample at a higher frequency with slower weight decay, which
	// gives narrow, jagged bands instead of broad blobs.
	RiversScaleDivisor    = 3.0
	RiversRoughnessFactor = 1.5
)

var (
	continentalityOctaves = Octaves{Count: DefaultOctaves, Roughness: DefaultRoughness, Scale: DefaultScale}
	weirdnessOctaves      = continentalityOctaves
	riversOctaves         = Octaves{
		Count:     DefaultOctaves,
		Roughness: DefaultRoughness * RiversRoughnessFactor,
		Scale:     DefaultScale / RiversScaleDivisor,
	}
)

// NoiseSample holds the three field values of one tile.
type NoiseSample struct {
	Continentality float64
	Weirdness      float64
	Rivers         float64
}

// Builder owns the three decorrelated noise fields of a world.
type Builder struct {
	seed           int64
	continentality *FractalNoise
	weirdness      *FractalNoise
	rivers         *FractalNoise
}

// NewBuilder seeds the fields with seed, seed+1 and seed+2.
func NewBuilder(seed int64, backend NoiseBackend) (*Builder, error) {
	if backend != BackendOpenSimplex && backend != BackendPerlin {
		return nil, fmt.Errorf("%w: noise backend %v", ErrInvalidConfig, backend)
	}
	b := &Builder{seed: seed}
	var err error
	if b.continentality, err = NewFractalNoise(NewNoiseGenerator(seed, backend), continentalityOctaves); err != nil {
		return nil, fmt.Errorf("continentality: %w", err)
	}
	if b.weirdness, err = NewFractalNoise(NewNoiseGenerator(seed+1, backend), weirdnessOctaves); err != nil {
		return nil, fmt.Errorf("weirdness: %w", err)
	}
	if b.rivers, err = NewFractalNoise(NewNoiseGenerator(seed+2, backend), riversOctaves); err != nil {
		return nil, fmt.Errorf("rivers: %w", err)
	}
	return b, nil
}

func (b *Builder) Seed() int64 { return b.seed }

// ContinentalityAt drives the land/water boundary.
func (b *Builder) ContinentalityAt(x, y int) float64 {
	return b.continentality.At(float64(x), float64(y))
}

// WeirdnessAt perturbs biome choice on land.
func (b *Builder) WeirdnessAt(x, y int) float64 {
	return b.weirdness.At(float64(x), float64(y))
}

// RiversAt carves narrow bands; values near zero are river beds.
func (b *Builder) RiversAt(x, y int) float64 {
	return b.rivers.At(float64(x), float64(y))
}

// Sample evaluates all three fields at a tile.
func (b *Builder) Sample(x, y int) NoiseSample {
	return NoiseSample{
		Continentality: b.ContinentalityAt(x, y),
		Weirdness:      b.WeirdnessAt(x, y),
		Rivers:         b.RiversAt(x, y),
	}
}

// Terrain classifies the tile and wraps the result in an immutable record.
func (b *Builder) Terrain(x, y int) Terrain {
	s := b.Sample(x, y)
	t, biome := Classify(s.Continentality, s.Weirdness, s.Rivers)
	return NewTerrain(t, biome, s)
}
