package main

import (
	"context"
	"log"
	"runtime"

	"tileworld/internal/config"
	"tileworld/internal/meshing"
	"tileworld/internal/world"

	"github.com/go-gl/glfw/v3.3/glfw"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	if err := config.LoadWorldGenFromEnv(); err != nil {
		log.Fatalf("config: %v", err)
	}
	seed := config.Int64Env("TILEWORLD_SEED", 42)
	size := config.IntEnv("TILEWORLD_SIZE", 256)
	config.SetFPSLimit(config.IntEnv("TILEWORLD_FPS", config.GetFPSLimit()))

	cfg, err := config.GenerationConfig(seed, size)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	w, err := world.Generate(cfg)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	pool := meshing.NewWorkerPool(runtime.NumCPU(), 16)
	batches, err := pool.BuildAll(context.Background(), w)
	pool.Shutdown()
	if err != nil {
		log.Fatalf("mesh: %v", err)
	}

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw: %v", err)
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		log.Fatalf("window: %v", err)
	}

	c, err := setupViewer(w, batches)
	if err != nil {
		log.Fatalf("renderer: %v", err)
	}
	defer c.Program.Delete()
	defer c.Renderer.Dispose()

	loop := NewViewLoop(window, c)
	setupInputHandlers(window, loop)
	loop.Run()
}
