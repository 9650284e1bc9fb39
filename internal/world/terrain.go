package world

import "fmt"

// TextureID is an opaque handle resolved by the rendering side.
type TextureID uint16

const (
	TextureNone TextureID = iota
	TextureWater
	TextureGrass
	TextureSand
	TextureStone
	TextureSnow
	TextureGravel
	TextureRock
	TextureTulip
	TextureTulip2
	TextureBlueOrchid
	TextureDandelion
	TextureRedLily
	TextureBush
	TextureTree1
	TextureTree2

	TextureCount // number of handles, TextureNone included
)

// TerrainType is the ground material of a tile.
type TerrainType uint8

const (
	TerrainWater TerrainType = iota
	TerrainGrass
	TerrainSand
	TerrainStone
	TerrainSnow
	TerrainGravel

	terrainTypeCount
)

type terrainTypeInfo struct {
	name     string
	texture  TextureID
	randomUV bool // tiles are drawn with one of four UV orientations
}

var terrainTypes = [terrainTypeCount]terrainTypeInfo{
	TerrainWater:  {name: "water", texture: TextureWater, randomUV: false},
	TerrainGrass:  {name: "grass", texture: TextureGrass, randomUV: true},
	TerrainSand:   {name: "sand", texture: TextureSand, randomUV: true},
	TerrainStone:  {name: "stone", texture: TextureStone, randomUV: true},
	TerrainSnow:   {name: "snow", texture: TextureSnow, randomUV: true},
	TerrainGravel: {name: "gravel", texture: TextureGravel, randomUV: true},
}

// TerrainTypes lists every terrain type in declaration order.
func TerrainTypes() []TerrainType {
	out := make([]TerrainType, terrainTypeCount)
	for i := range out {
		out[i] = TerrainType(i)
	}
	return out
}

// ParseTerrainType is the inverse of String.
func ParseTerrainType(name string) (TerrainType, bool) {
	for i, info := range terrainTypes {
		if info.name == name {
			return TerrainType(i), true
		}
	}
	return 0, false
}

func (t TerrainType) String() string {
	if t < terrainTypeCount {
		return terrainTypes[t].name
	}
	return fmt.Sprintf("TerrainType(%d)", uint8(t))
}

func (t TerrainType) Texture() TextureID {
	if t < terrainTypeCount {
		return terrainTypes[t].texture
	}
	return TextureNone
}

func (t TerrainType) HasRandomUV() bool {
	return t < terrainTypeCount && terrainTypes[t].randomUV
}

// Terrain is the generated record of one tile. It is never modified after
// the terrain pass.
type Terrain struct {
	typ            TerrainType
	biome          Biome
	continentality float64
	weirdness      float64
	rivers         float64
}

// NewTerrain builds a tile record from a classification and the noise it
// was derived from.
func NewTerrain(t TerrainType, b Biome, s NoiseSample) Terrain {
	return Terrain{
		typ:            t,
		biome:          b,
		continentality: s.Continentality,
		weirdness:      s.Weirdness,
		rivers:         s.Rivers,
	}
}

func (t Terrain) Type() TerrainType       { return t.typ }
func (t Terrain) Biome() Biome            { return t.biome }
func (t Terrain) Continentality() float64 { return t.continentality }
func (t Terrain) Weirdness() float64      { return t.weirdness }
func (t Terrain) Rivers() float64         { return t.rivers }

// Noise returns the three field values the terrain was classified from.
func (t Terrain) Noise() NoiseSample {
	return NoiseSample{Continentality: t.continentality, Weirdness: t.weirdness, Rivers: t.rivers}
}
