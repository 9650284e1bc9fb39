package world

// DensityPolicy decides how likely a tile is to become a placement
// candidate for a kind. Chance must be a pure function of its arguments.
type DensityPolicy interface {
	Chance(kind FeatureKind, t Terrain) float64
}

// Base per-tile spawn chance of each kind before biome weighting.
var baseDensity = [featureKindCount]float64{
	FeatureRock:   0.04,
	FeatureFlower: 0.05,
	FeatureBush:   0.03,
	FeatureTree:   0.06,
}

// biomeWeights multiplies the base chance per biome. Missing entries count
// as zero.
var biomeWeights = map[Biome][featureKindCount]float64{
	BiomePlains:    {FeatureRock: 0, FeatureFlower: 2, FeatureBush: 1, FeatureTree: 0.5},
	BiomeForest:    {FeatureRock: 0, FeatureFlower: 0.5, FeatureBush: 1.5, FeatureTree: 3},
	BiomeRiver:     {FeatureRock: 1, FeatureFlower: 0, FeatureBush: 0, FeatureTree: 0},
	BiomeMountains: {FeatureRock: 2, FeatureFlower: 0, FeatureBush: 0, FeatureTree: 0},
	BiomeTundra:    {FeatureRock: 0.5, FeatureFlower: 0, FeatureBush: 0, FeatureTree: 0},
}

// BiomeDensity is the default policy: base chance times biome weight times
// Scale, clamped to [0, 1].
type BiomeDensity struct {
	Scale float64
}

// DefaultDensity is BiomeDensity at scale 1.
var DefaultDensity DensityPolicy = BiomeDensity{Scale: 1}

func (d BiomeDensity) Chance(kind FeatureKind, t Terrain) float64 {
	if !kind.valid() {
		return 0
	}
	weights, ok := biomeWeights[t.Biome()]
	if !ok {
		return 0
	}
	c := baseDensity[kind] * weights[kind] * d.Scale
	return min(max(c, 0), 1)
}

// UniformDensity gives every kind the same chance on every tile.
type UniformDensity float64

func (u UniformDensity) Chance(FeatureKind, Terrain) float64 {
	return min(max(float64(u), 0), 1)
}
