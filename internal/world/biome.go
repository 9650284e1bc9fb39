package world

import "fmt"

// Biome labels the climate band a tile belongs to. Feature density is
// gated on it.
type Biome uint8

const (
	BiomeOcean Biome = iota
	BiomeBeach
	BiomeRiver
	BiomePlains
	BiomeForest
	BiomeDesert
	BiomeMountains
	BiomeTundra

	biomeCount
)

var biomeNames = [biomeCount]string{
	BiomeOcean:     "ocean",
	BiomeBeach:     "beach",
	BiomeRiver:     "river",
	BiomePlains:    "plains",
	BiomeForest:    "forest",
	BiomeDesert:    "desert",
	BiomeMountains: "mountains",
	BiomeTundra:    "tundra",
}

// Biomes lists every biome in declaration order.
func Biomes() []Biome {
	out := make([]Biome, biomeCount)
	for i := range out {
		out[i] = Biome(i)
	}
	return out
}

func (b Biome) String() string {
	if b < biomeCount {
		return biomeNames[b]
	}
	return fmt.Sprintf("Biome(%d)", uint8(b))
}
