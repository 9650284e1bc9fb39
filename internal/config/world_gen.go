package config

import (
	"sync"

	"tileworld/internal/world"
)

// WorldGenSettings holds world generation configuration
type WorldGenSettings struct {
	mu             sync.RWMutex
	noiseBackend   string
	terrainWorkers int
	densityScale   float64
}

var globalWorldGenSettings = &WorldGenSettings{
	noiseBackend:   "opensimplex",
	terrainWorkers: 0, // runtime.NumCPU()
	densityScale:   1,
}

// GetNoiseBackend returns the configured base noise name
func GetNoiseBackend() string {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.noiseBackend
}

// SetNoiseBackend sets the base noise. Unknown names are rejected.
func SetNoiseBackend(name string) error {
	backend, err := world.ParseNoiseBackend(name)
	if err != nil {
		return err
	}
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()
	globalWorldGenSettings.noiseBackend = backend.String()
	return nil
}

// GetTerrainWorkers returns the terrain pass worker count, 0 meaning one per CPU
func GetTerrainWorkers() int {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.terrainWorkers
}

// SetTerrainWorkers sets the terrain pass worker count
func SetTerrainWorkers(n int) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()

	if n < 0 {
		n = 0
	}
	if n > 256 {
		n = 256
	}
	globalWorldGenSettings.terrainWorkers = n
}

// GetDensityScale returns the feature density multiplier
func GetDensityScale() float64 {
	globalWorldGenSettings.mu.RLock()
	defer globalWorldGenSettings.mu.RUnlock()
	return globalWorldGenSettings.densityScale
}

// SetDensityScale sets the feature density multiplier, clamped to [0, 10]
func SetDensityScale(scale float64) {
	globalWorldGenSettings.mu.Lock()
	defer globalWorldGenSettings.mu.Unlock()

	if !(scale >= 0) {
		scale = 0
	}
	if scale > 10 {
		scale = 10
	}
	globalWorldGenSettings.densityScale = scale
}

// GenerationConfig builds a world.Config from the current settings.
func GenerationConfig(seed int64, size int) (world.Config, error) {
	backend, err := world.ParseNoiseBackend(GetNoiseBackend())
	if err != nil {
		return world.Config{}, err
	}
	cfg := world.DefaultConfig(seed, size)
	cfg.Backend = backend
	cfg.TerrainWorkers = GetTerrainWorkers()
	cfg.Density = world.BiomeDensity{Scale: GetDensityScale()}
	return cfg, nil
}
