package meshing

import (
	"slices"

	"tileworld/internal/world"
)

// Vertex layout: x, y, u, v, texture.
const (
	FloatsPerVertex = 5
	VerticesPerQuad = 6
	FloatsPerQuad   = FloatsPerVertex * VerticesPerQuad
)

// Layer separates ground quads from the features drawn over them.
type Layer uint8

const (
	LayerTerrain Layer = iota
	LayerFeatures
)

// BatchKey names one batch: a terrain type or a feature kind.
type BatchKey struct {
	Layer   Layer
	Terrain world.TerrainType
	Kind    world.FeatureKind
}

func TerrainKey(t world.TerrainType) BatchKey { return BatchKey{Layer: LayerTerrain, Terrain: t} }
func FeatureKey(k world.FeatureKind) BatchKey { return BatchKey{Layer: LayerFeatures, Kind: k} }

func (k BatchKey) String() string {
	if k.Layer == LayerTerrain {
		return "terrain/" + k.Terrain.String()
	}
	return "feature/" + k.Kind.String()
}

// Batch is every quad of one type, ready for a single draw call.
type Batch struct {
	Key      BatchKey
	Vertices []float32
}

func (b Batch) Quads() int { return len(b.Vertices) / FloatsPerQuad }

// Corner order of a quad: (0,0), (1,1), (1,0), (0,1).
var quadCorners = [4][2]float32{{0, 0}, {1, 1}, {1, 0}, {0, 1}}

// Two counter-clockwise triangles over the corners.
var quadTriangles = [VerticesPerQuad]int{0, 2, 1, 0, 1, 3}

// UV sets per orientation, in corner order. Orientation 0 is the identity,
// then transpose, anti-transpose and a half turn.
var uvOrientations = [4][4][2]float32{
	{{0, 0}, {1, 1}, {1, 0}, {0, 1}},
	{{0, 0}, {1, 1}, {0, 1}, {1, 0}},
	{{1, 1}, {0, 0}, {1, 0}, {0, 1}},
	{{1, 1}, {0, 0}, {0, 1}, {1, 0}},
}

const saltUV uint64 = 0x5556_0000

// UVOrientation picks the texture orientation of a tile. Types without
// random UVs always use the identity.
func UVOrientation(seed int64, t world.TerrainType, x, y int) int {
	if !t.HasRandomUV() {
		return 0
	}
	return int(world.TileHash(seed, saltUV, x, y) & 3)
}

func appendQuad(dst []float32, x, y, w, h float32, uv *[4][2]float32, texture float32) []float32 {
	for _, c := range quadTriangles {
		dst = append(dst,
			x+quadCorners[c][0]*w,
			y+quadCorners[c][1]*h,
			uv[c][0], uv[c][1],
			texture,
		)
	}
	return dst
}

// BuildTerrainBatch emits one unit quad per tile of type t.
func BuildTerrainBatch(w *world.World, t world.TerrainType) Batch {
	b := Batch{Key: TerrainKey(t)}
	tex := float32(t.Texture())
	size := w.Size()
	for y := range size {
		for x := range size {
			ter, _ := w.TerrainAt(x, y)
			if ter.Type() != t {
				continue
			}
			uv := &uvOrientations[UVOrientation(w.Seed(), t, x, y)]
			b.Vertices = appendQuad(b.Vertices, float32(x), float32(y), 1, 1, uv, tex)
		}
	}
	return b
}

// BuildFeatureBatch emits one quad per feature of kind k covering its
// footprint at its offset location. Quads are ordered by descending Y so
// nearer features are drawn last.
func BuildFeatureBatch(w *world.World, k world.FeatureKind) Batch {
	b := Batch{Key: FeatureKey(k)}
	features := w.FeaturesOfKind(k)
	slices.SortStableFunc(features, world.CompareFeatures)
	b.Vertices = make([]float32, 0, len(features)*FloatsPerQuad)
	for _, f := range features {
		loc := f.Location()
		size := f.Size()
		b.Vertices = appendQuad(b.Vertices,
			float32(loc.X()), float32(loc.Y()),
			float32(size.W), float32(size.H),
			&uvOrientations[0], float32(k.Texture(f.Variant())))
	}
	return b
}

// BuildBatch dispatches on the key's layer.
func BuildBatch(w *world.World, key BatchKey) Batch {
	if key.Layer == LayerTerrain {
		return BuildTerrainBatch(w, key.Terrain)
	}
	return BuildFeatureBatch(w, key.Kind)
}

// AllKeys lists terrain batches first, then features in placement order.
func AllKeys() []BatchKey {
	var keys []BatchKey
	for _, t := range world.TerrainTypes() {
		keys = append(keys, TerrainKey(t))
	}
	for _, k := range world.PlacementOrder {
		keys = append(keys, FeatureKey(k))
	}
	return keys
}
