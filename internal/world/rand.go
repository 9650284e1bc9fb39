package world

// Per-tile randomness is hashed from (seed, salt, x, y) rather than drawn
// from a shared generator, so a tile's draws do not depend on how many
// tiles were visited before it.

const golden = 0x9E3779B97F4A7C15

func mix64(v uint64) uint64 {
	v = (v ^ (v >> 30)) * 0xBF58476D1CE4E5B9
	v = (v ^ (v >> 27)) * 0x94D049BB133111EB
	return v ^ (v >> 31)
}

// TileHash returns a stable 64-bit hash of a tile under a seed and salt.
func TileHash(seed int64, salt uint64, x, y int) uint64 {
	v := uint64(seed)*golden + salt
	v = mix64(v + uint64(int64(x))*0xD6E8FEB86659FD93)
	v = mix64(v + uint64(int64(y))*0xA0761D6478BD642F)
	return v
}

// tileRand is a SplitMix64 stream.
type tileRand struct {
	state uint64
}

func newTileRand(seed int64, salt uint64, x, y int) tileRand {
	return tileRand{state: TileHash(seed, salt, x, y)}
}

func (r *tileRand) next() uint64 {
	r.state += golden
	return mix64(r.state)
}

// Float64 returns a value in [0, 1).
func (r *tileRand) Float64() float64 {
	return float64(r.next()>>11) / (1 << 53)
}

// Intn returns a value in [0, n). n must be positive.
func (r *tileRand) Intn(n int) int {
	return int(r.next() % uint64(n))
}
