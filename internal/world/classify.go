package world

import "math"

// Classification thresholds. The fields are raw octave sums (see
// Octaves.Amplitude), so typical values sit well inside ±1.
const (
	// Continentality below this is open water.
	WaterThreshold = -0.15
	// Land within this margin above WaterThreshold is beach.
	BeachWidth = 0.08
	// |rivers| below this is a gravel river bed.
	RiverBandWidth = 0.035

	SnowWeirdness     = 0.55
	MountainWeirdness = 0.35
	ForestWeirdness   = 0.10
	DesertWeirdness   = -0.35
)

// Classify maps the three noise values of a tile to its terrain and biome.
// Water depends on continentality alone.
func Classify(continentality, weirdness, rivers float64) (TerrainType, Biome) {
	switch {
	case continentality < WaterThreshold:
		return TerrainWater, BiomeOcean
	case continentality < WaterThreshold+BeachWidth:
		return TerrainSand, BiomeBeach
	case math.Abs(rivers) < RiverBandWidth:
		return TerrainGravel, BiomeRiver
	case weirdness >= SnowWeirdness:
		return TerrainSnow, BiomeTundra
	case weirdness >= MountainWeirdness:
		return TerrainStone, BiomeMountains
	case weirdness <= DesertWeirdness:
		return TerrainSand, BiomeDesert
	case weirdness >= ForestWeirdness:
		return TerrainGrass, BiomeForest
	default:
		return TerrainGrass, BiomePlains
	}
}
