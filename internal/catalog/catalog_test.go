package catalog

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"tileworld/internal/world"
)

func TestRecordValidate(t *testing.T) {
	tests := []struct {
		rec  Record
		ok   bool
		desc string
	}{
		{Record{Name: "alpha", Size: 64}, true, "plain"},
		{Record{Name: "a-1_b", Size: 1}, true, "punctuation"},
		{Record{Name: "", Size: 64}, false, "empty name"},
		{Record{Name: "Upper", Size: 64}, false, "upper case"},
		{Record{Name: "has space", Size: 64}, false, "space"},
		{Record{Name: "alpha", Size: 0}, false, "zero size"},
		{Record{Name: "alpha", Size: world.MaxSize + 1}, false, "too large"},
	}
	for _, tt := range tests {
		err := tt.rec.Validate()
		if tt.ok && err != nil {
			t.Errorf("%s: unexpected %v", tt.desc, err)
		}
		if !tt.ok && !errors.Is(err, ErrInvalidRecord) {
			t.Errorf("%s: expected ErrInvalidRecord, got %v", tt.desc, err)
		}
	}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if _, err := s.Get(ctx, "nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	for _, r := range []Record{{Name: "zeta", Seed: 1, Size: 8}, {Name: "alpha", Seed: 2, Size: 16}} {
		if err := s.Save(ctx, r); err != nil {
			t.Fatal(err)
		}
	}
	if err := s.Save(ctx, Record{Name: "Bad"}); !errors.Is(err, ErrInvalidRecord) {
		t.Errorf("expected ErrInvalidRecord, got %v", err)
	}

	got, err := s.Get(ctx, "alpha")
	if err != nil || got.Seed != 2 || got.CreatedAt.IsZero() {
		t.Fatalf("Get alpha = %+v, %v", got, err)
	}
	list, _ := s.List(ctx)
	if len(list) != 2 || list[0].Name != "alpha" || list[1].Name != "zeta" {
		t.Errorf("List = %+v", list)
	}

	// Save replaces by name
	if err := s.Save(ctx, Record{Name: "alpha", Seed: 3, Size: 16}); err != nil {
		t.Fatal(err)
	}
	if got, _ := s.Get(ctx, "alpha"); got.Seed != 3 {
		t.Errorf("seed after replace = %d, want 3", got.Seed)
	}
}

func TestCacheGeneratesOnce(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Save(ctx, Record{Name: "w", Seed: 5, Size: 16}); err != nil {
		t.Fatal(err)
	}
	var calls atomic.Int32
	c := NewCache(s, func(seed int64, size int) (*world.World, error) {
		calls.Add(1)
		return world.Generate(world.DefaultConfig(seed, size))
	}, 0)

	var wg sync.WaitGroup
	worlds := make([]*world.World, 8)
	for i := range worlds {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w, err := c.World(ctx, "w")
			if err != nil {
				t.Error(err)
			}
			worlds[i] = w
		}()
	}
	wg.Wait()
	if calls.Load() != 1 {
		t.Errorf("generated %d times, want 1", calls.Load())
	}
	for _, w := range worlds[1:] {
		if w != worlds[0] {
			t.Fatal("callers got different worlds")
		}
	}
	if worlds[0].Seed() != 5 || worlds[0].Size() != 16 {
		t.Errorf("world seed/size %d/%d", worlds[0].Seed(), worlds[0].Size())
	}

	// replacing the record invalidates the cached world
	if err := s.Save(ctx, Record{Name: "w", Seed: 6, Size: 16}); err != nil {
		t.Fatal(err)
	}
	w, err := c.World(ctx, "w")
	if err != nil {
		t.Fatalf("after replace: %v", err)
	}
	if w.Seed() != 6 || calls.Load() != 2 {
		t.Errorf("after replace: seed=%d calls=%d", w.Seed(), calls.Load())
	}
	if c.Len() != 1 {
		t.Errorf("cache holds %d worlds, want 1", c.Len())
	}

	if _, err := c.World(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestCacheKeepsGeneratorErrors(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	_ = s.Save(ctx, Record{Name: "w", Seed: 1, Size: 4})
	boom := errors.New("boom")
	c := NewCache(s, func(int64, int) (*world.World, error) { return nil, boom }, 0)
	if _, err := c.World(ctx, "w"); !errors.Is(err, boom) {
		t.Errorf("expected generator error, got %v", err)
	}
}

func TestCacheEvictsLeastRecentlyUsed(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	for i, name := range []string{"a", "b", "c"} {
		if err := s.Save(ctx, Record{Name: name, Seed: int64(i), Size: 4}); err != nil {
			t.Fatal(err)
		}
	}
	var calls atomic.Int32
	c := NewCache(s, func(seed int64, size int) (*world.World, error) {
		calls.Add(1)
		return world.NewFlatWorld(size, seed, world.TerrainGrass)
	}, 2)

	mustWorld := func(name string) {
		t.Helper()
		if _, err := c.World(ctx, name); err != nil {
			t.Fatalf("%s: %v", name, err)
		}
	}
	mustWorld("a")
	mustWorld("b")
	mustWorld("a") // a is now more recent than b
	mustWorld("c")

	if c.Len() != 2 {
		t.Fatalf("cache holds %d worlds, want 2", c.Len())
	}
	if c.Cached("b") {
		t.Error("least recently used world b should have been evicted")
	}
	if !c.Cached("a") || !c.Cached("c") {
		t.Error("a and c should still be cached")
	}
	if calls.Load() != 3 {
		t.Fatalf("generated %d times, want 3", calls.Load())
	}

	// an evicted world is regenerated on demand
	mustWorld("b")
	if calls.Load() != 4 {
		t.Errorf("generated %d times after re-request, want 4", calls.Load())
	}
	if c.Len() != 2 {
		t.Errorf("cache holds %d worlds after re-request, want 2", c.Len())
	}
}

func TestNewCacheDefaultCapacity(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	c := NewCache(s, func(seed int64, size int) (*world.World, error) {
		return world.NewFlatWorld(size, seed, world.TerrainGrass)
	}, 0)
	for i := range DefaultCacheWorlds + 3 {
		name := string(rune('a' + i))
		if err := s.Save(ctx, Record{Name: name, Seed: int64(i), Size: 2}); err != nil {
			t.Fatal(err)
		}
		if _, err := c.World(ctx, name); err != nil {
			t.Fatal(err)
		}
	}
	if c.Len() != DefaultCacheWorlds {
		t.Errorf("cache holds %d worlds, want %d", c.Len(), DefaultCacheWorlds)
	}
}
