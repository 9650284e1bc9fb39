package world

import (
	"errors"
	"fmt"
	"math"

	"github.com/aquilax/go-perlin"
	opensimplex "github.com/ojrac/opensimplex-go"
)

// ErrInvalidOctaves is returned when fractal parameters cannot produce a field.
var ErrInvalidOctaves = errors.New("invalid octave configuration")

// NoiseBackend selects the single-octave noise function behind a generator.
type NoiseBackend int

const (
	BackendOpenSimplex NoiseBackend = iota
	BackendPerlin
)

// ParseNoiseBackend maps a config name to a backend.
func ParseNoiseBackend(name string) (NoiseBackend, error) {
	switch name {
	case "", "opensimplex":
		return BackendOpenSimplex, nil
	case "perlin":
		return BackendPerlin, nil
	}
	return 0, fmt.Errorf("%w: unknown noise backend %q", ErrInvalidConfig, name)
}

func (b NoiseBackend) String() string {
	switch b {
	case BackendOpenSimplex:
		return "opensimplex"
	case BackendPerlin:
		return "perlin"
	}
	return fmt.Sprintf("NoiseBackend(%d)", int(b))
}

// baseNoise is a single octave of 2D noise in roughly [-1, 1].
type baseNoise interface {
	Eval2(x, y float64) float64
}

// Perlin gradient noise is exactly zero on integer lattice points, and tile
// coordinates times power-of-two frequencies land there constantly.
const perlinLatticeShift = 0.3183098861837907

// go-perlin sums its own octaves; FractalNoise does the stacking, so the
// base is held to one.
const (
	perlinAlpha   = 2
	perlinBeta    = 2
	perlinOctaves = 1
)

type perlinNoise struct {
	p *perlin.Perlin
}

func (n perlinNoise) Eval2(x, y float64) float64 {
	return n.p.Noise2D(x+perlinLatticeShift, y+perlinLatticeShift)
}

// NoiseGenerator produces deterministic single-octave noise for a seed.
type NoiseGenerator struct {
	seed    int64
	backend NoiseBackend
	base    baseNoise
}

// NewNoiseGenerator creates a generator for the given seed and backend.
// Unknown backends fall back to OpenSimplex.
func NewNoiseGenerator(seed int64, backend NoiseBackend) *NoiseGenerator {
	g := &NoiseGenerator{seed: seed, backend: backend}
	switch backend {
	case BackendPerlin:
		g.base = perlinNoise{p: perlin.NewPerlin(perlinAlpha, perlinBeta, perlinOctaves, seed)}
	default:
		g.backend = BackendOpenSimplex
		g.base = opensimplex.New(seed)
	}
	return g
}

func (g *NoiseGenerator) Seed() int64           { return g.seed }
func (g *NoiseGenerator) Backend() NoiseBackend { return g.backend }

// Sample returns one octave of noise at (x, y).
func (g *NoiseGenerator) Sample(x, y float64) float64 {
	return g.base.Eval2(x, y)
}

// Octaves describes a fractal noise stack. Lacunarity is fixed at 2.
type Octaves struct {
	Count     int
	Roughness float64 // per-octave weight multiplier
	Scale     float64 // frequency of the first octave
}

// Validate rejects stacks that would degenerate to a constant field.
func (o Octaves) Validate() error {
	if o.Count < 1 {
		return fmt.Errorf("%w: count %d < 1", ErrInvalidOctaves, o.Count)
	}
	if !(o.Scale > 0) || math.IsInf(o.Scale, 0) {
		return fmt.Errorf("%w: scale %v must be positive and finite", ErrInvalidOctaves, o.Scale)
	}
	if math.IsNaN(o.Roughness) || math.IsInf(o.Roughness, 0) || o.Roughness < 0 {
		return fmt.Errorf("%w: roughness %v must be finite and non-negative", ErrInvalidOctaves, o.Roughness)
	}
	return nil
}

// Amplitude is the largest magnitude the sum can reach when every octave
// returns ±1.
func (o Octaves) Amplitude() float64 {
	sum, w := 0.0, 1.0
	for range o.Count {
		sum += w
		w *= o.Roughness
	}
	return sum
}

// FractalNoise layers octaves of a generator.
type FractalNoise struct {
	gen     *NoiseGenerator
	octaves Octaves
}

// NewFractalNoise validates the octave stack up front so At never has to.
func NewFractalNoise(gen *NoiseGenerator, octaves Octaves) (*FractalNoise, error) {
	if gen == nil {
		return nil, fmt.Errorf("%w: nil generator", ErrInvalidConfig)
	}
	if err := octaves.Validate(); err != nil {
		return nil, err
	}
	return &FractalNoise{gen: gen, octaves: octaves}, nil
}

func (f *FractalNoise) Octaves() Octaves { return f.octaves }

// At returns the unnormalized octave sum at (x, y).
func (f *FractalNoise) At(x, y float64) float64 {
	return fractal(f.gen, x, y, f.octaves)
}

func fractal(g *NoiseGenerator, x, y float64, o Octaves) float64 {
	noise := 0.0
	frequency := o.Scale
	weight := 1.0
	for range o.Count {
		noise += g.Sample(x*frequency, y*frequency) * weight
		frequency *= 2
		weight *= o.Roughness
	}
	return noise
}
