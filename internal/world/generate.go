package world

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	"tileworld/internal/profiling"
)

// Config holds the inputs of one generation run. Seed and Size are the only
// values that have to be persisted to regenerate a world.
type Config struct {
	Seed int64
	Size int

	Backend        NoiseBackend
	TerrainWorkers int // <= 0 means runtime.NumCPU()
	Density        DensityPolicy
}

// DefaultConfig returns a config with the default noise backend and density.
func DefaultConfig(seed int64, size int) Config {
	return Config{
		Seed:    seed,
		Size:    size,
		Backend: BackendOpenSimplex,
		Density: DefaultDensity,
	}
}

// Validate reports configuration errors before any work is done.
func (c Config) Validate() error {
	if c.Size <= 0 || c.Size > MaxSize {
		return fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidSize, c.Size, MaxSize)
	}
	if c.Backend != BackendOpenSimplex && c.Backend != BackendPerlin {
		return fmt.Errorf("%w: noise backend %v", ErrInvalidConfig, c.Backend)
	}
	return nil
}

// Generate runs the full pipeline: terrain pass, feature passes, seal.
func Generate(cfg Config) (*World, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Density == nil {
		cfg.Density = DefaultDensity
	}
	b, err := NewBuilder(cfg.Seed, cfg.Backend)
	if err != nil {
		return nil, err
	}
	w, err := NewWorld(cfg.Size, cfg.Seed)
	if err != nil {
		return nil, err
	}

	workers := cfg.TerrainWorkers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	fillTerrain(w, b, workers)

	stats, err := populateTracked(w, cfg.Density)
	if err != nil {
		return nil, err
	}
	w.Seal()

	log.Printf("world generated: seed=%d size=%d features=%d (rock=%d bush=%d tree=%d flower=%d, rejected=%d) [%s]",
		cfg.Seed, cfg.Size, len(w.features),
		stats.Placed[FeatureRock], stats.Placed[FeatureBush], stats.Placed[FeatureTree], stats.Placed[FeatureFlower],
		totalRejected(stats), profiling.TopN(2))
	return w, nil
}

// fillTerrain classifies every tile. Rows are independent, so they are
// handed out to workers; each cell is written exactly once.
func fillTerrain(w *World, b *Builder, workers int) {
	defer profiling.Track("world.fillTerrain")()
	workers = max(min(workers, w.size), 1)

	rows := make(chan int, w.size)
	for y := range w.size {
		rows <- y
	}
	close(rows)

	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for y := range rows {
				for x := range w.size {
					w.terrain[w.index(x, y)] = b.Terrain(x, y)
				}
			}
		}()
	}
	wg.Wait()
}

func populateTracked(w *World, density DensityPolicy) (PlacementStats, error) {
	defer profiling.Track("world.populate")()
	return Populate(w, density)
}

func totalRejected(s PlacementStats) int {
	n := 0
	for _, v := range s.Rejected {
		n += v
	}
	return n
}
