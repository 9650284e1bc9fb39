package catalog

import (
	"context"
	"sync"

	"tileworld/internal/world"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheWorlds is the capacity used when NewCache gets a non-positive
// one. A 2048² world holds roughly 150 MB of terrain.
const DefaultCacheWorlds = 4

// Generator turns a record into a world. world.Generate wrapped with the
// process configuration is the usual implementation.
type Generator func(seed int64, size int) (*world.World, error)

// Cache regenerates catalogued worlds on first use and keeps the most
// recently used ones. Worlds are sealed, so sharing them between requests is
// safe.
type Cache struct {
	store    Store
	generate Generator

	mu     sync.Mutex
	worlds *lru.Cache[string, *entry]
}

type entry struct {
	once  sync.Once
	rec   Record
	world *world.World
	err   error
}

// NewCache keeps at most capacity worlds, evicting the least recently used.
func NewCache(store Store, gen Generator, capacity int) *Cache {
	if capacity <= 0 {
		capacity = DefaultCacheWorlds
	}
	worlds, err := lru.New[string, *entry](capacity)
	if err != nil {
		// only returned for a non-positive size
		panic(err)
	}
	return &Cache{store: store, generate: gen, worlds: worlds}
}

// World returns the named world, generating it at most once per record while
// it stays cached.
func (c *Cache) World(ctx context.Context, name string) (*world.World, error) {
	rec, err := c.store.Get(ctx, name)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	e, ok := c.worlds.Get(name)
	if !ok || e.rec.Seed != rec.Seed || e.rec.Size != rec.Size {
		// new, evicted or replaced record
		e = &entry{rec: rec}
		c.worlds.Add(name, e)
	}
	c.mu.Unlock()

	e.once.Do(func() {
		e.world, e.err = c.generate(rec.Seed, rec.Size)
	})
	return e.world, e.err
}

// Len reports how many worlds are cached.
func (c *Cache) Len() int {
	return c.worlds.Len()
}

// Cached reports whether name currently has a cache entry, without touching
// its recency.
func (c *Cache) Cached(name string) bool {
	return c.worlds.Contains(name)
}
