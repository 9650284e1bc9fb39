package main

import (
	"log"

	"tileworld/internal/config"
	"tileworld/internal/preview"
	"tileworld/internal/world"
)

func main() {
	if err := config.LoadWorldGenFromEnv(); err != nil {
		log.Fatalf("config: %v", err)
	}
	seed := config.Int64Env("TILEWORLD_SEED", 42)
	size := config.IntEnv("TILEWORLD_SIZE", 256)
	out := config.StringEnv("TILEWORLD_OUT", "world.png")
	config.SetPreviewScale(config.IntEnv("TILEWORLD_SCALE", config.GetPreviewScale()))

	cfg, err := config.GenerationConfig(seed, size)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	w, err := world.Generate(cfg)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	stats := w.Stats()
	for _, t := range world.TerrainTypes() {
		log.Printf("terrain %-6s %6d tiles", t, stats.Terrain[t])
	}

	opts := preview.DefaultOptions()
	opts.Scale = config.GetPreviewScale()
	if err := preview.WritePNG(out, preview.Render(w, opts)); err != nil {
		log.Fatalf("preview: %v", err)
	}
	log.Printf("wrote %s", out)
}
