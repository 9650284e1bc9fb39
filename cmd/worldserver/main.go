package main

import (
	"context"
	"log"

	"tileworld/internal/api"
	"tileworld/internal/catalog"
	"tileworld/internal/config"
	"tileworld/internal/world"

	"github.com/cloudwego/hertz/pkg/app/server"
)

func main() {
	if err := config.LoadWorldGenFromEnv(); err != nil {
		log.Fatalf("config: %v", err)
	}
	seed := config.Int64Env("TILEWORLD_SEED", 42)
	size := config.IntEnv("TILEWORLD_SIZE", 256)
	addr := config.StringEnv("TILEWORLD_ADDR", ":8080")
	maxSize := config.IntEnv("TILEWORLD_MAX_SIZE", 2048)
	cached := config.IntEnv("TILEWORLD_CACHE_WORLDS", catalog.DefaultCacheWorlds)

	w, err := generate(seed, size)
	if err != nil {
		log.Fatalf("generate: %v", err)
	}

	store := mustBuildStore()
	h := api.Handler{
		World:        w,
		Store:        store,
		Worlds:       catalog.NewCache(store, generate, cached),
		MaxWorldSize: maxSize,
	}

	s := server.Default(server.WithHostPorts(addr))
	h.RegisterRoutes(s)

	log.Printf("tileworld server listening on %s (seed=%d size=%d)", addr, seed, size)
	s.Spin()
}

func generate(seed int64, size int) (*world.World, error) {
	cfg, err := config.GenerationConfig(seed, size)
	if err != nil {
		return nil, err
	}
	return world.Generate(cfg)
}

// mustBuildStore uses postgres when TILEWORLD_DB_DSN is set and an in-memory
// catalog otherwise.
func mustBuildStore() catalog.Store {
	dsn := config.StringEnv("TILEWORLD_DB_DSN", "")
	if dsn == "" {
		log.Println("TILEWORLD_DB_DSN not set, catalog is in-memory")
		return catalog.NewMemoryStore()
	}
	db, err := catalog.OpenPostgres(dsn)
	if err != nil {
		log.Fatalf("open postgres: %v", err)
	}
	store := catalog.NewGormStore(db)
	if err := store.Migrate(context.Background()); err != nil {
		log.Fatalf("migrate: %v", err)
	}
	return store
}
