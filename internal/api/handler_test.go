package api

import (
	"context"
	"encoding/json"
	"testing"

	"tileworld/internal/catalog"
	"tileworld/internal/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
	"github.com/cloudwego/hertz/pkg/route/param"
)

func fixtureWorld(t *testing.T) *world.World {
	t.Helper()
	w, err := world.NewFlatWorld(8, 5, world.TerrainGrass)
	if err != nil {
		t.Fatalf("flat world: %v", err)
	}
	for _, p := range []struct {
		kind    world.FeatureKind
		x, y, v int
	}{
		{world.FeatureTree, 2, 3, 1},
		{world.FeatureBush, 6, 6, 0},
		{world.FeatureFlower, 0, 0, 2},
		{world.FeatureFlower, 7, 0, 0},
	} {
		if _, err := w.Place(p.kind, p.x, p.y, p.v); err != nil {
			t.Fatalf("place %s: %v", p.kind, err)
		}
	}
	w.Seal()
	return w
}

func newRequest(uri string, params ...param.Param) *app.RequestContext {
	ctx := &app.RequestContext{}
	ctx.Request.SetRequestURI(uri)
	ctx.Params = params
	return ctx
}

func decode(t *testing.T, ctx *app.RequestContext, v any) {
	t.Helper()
	if err := json.Unmarshal(ctx.Response.Body(), v); err != nil {
		t.Fatalf("decode %s: %v", ctx.Response.Body(), err)
	}
}

func errorCode(t *testing.T, ctx *app.RequestContext) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	decode(t, ctx, &body)
	return body.Error.Code
}

func TestWorldInfo(t *testing.T) {
	h := Handler{World: fixtureWorld(t)}
	ctx := newRequest("/api/world")
	h.worldInfo(context.Background(), ctx)

	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("expected 200, got %d", got)
	}
	var body worldResponse
	decode(t, ctx, &body)
	if body.Seed != 5 || body.Size != 8 {
		t.Fatalf("unexpected header: %+v", body)
	}
	if body.Terrain["grass"] != 64 {
		t.Fatalf("expected 64 grass tiles, got %v", body.Terrain)
	}
	if body.Features["flower"] != 2 || body.Features["tree"] != 1 || body.Features["bush"] != 1 {
		t.Fatalf("unexpected feature counts: %v", body.Features)
	}
}

func TestTerrainQuery(t *testing.T) {
	h := Handler{World: fixtureWorld(t)}

	ctx := newRequest("/api/terrain?x=3&y=4")
	h.terrain(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("expected 200, got %d: %s", got, ctx.Response.Body())
	}
	var body terrainResponse
	decode(t, ctx, &body)
	if body.X != 3 || body.Y != 4 || body.Type != "grass" || body.Biome != "plains" {
		t.Fatalf("unexpected terrain: %+v", body)
	}
}

func TestTerrainErrors(t *testing.T) {
	h := Handler{World: fixtureWorld(t)}
	cases := []struct {
		uri    string
		status int
		code   string
	}{
		{"/api/terrain?x=8&y=0", consts.StatusNotFound, "no_such_location"},
		{"/api/terrain?x=-1&y=0", consts.StatusNotFound, "no_such_location"},
		{"/api/terrain?x=a&y=0", consts.StatusBadRequest, "invalid_coordinates"},
		{"/api/terrain?x=1", consts.StatusBadRequest, "invalid_coordinates"},
	}
	for _, tc := range cases {
		ctx := newRequest(tc.uri)
		h.terrain(context.Background(), ctx)
		if got := ctx.Response.StatusCode(); got != tc.status {
			t.Errorf("%s: expected %d, got %d", tc.uri, tc.status, got)
			continue
		}
		if code := errorCode(t, ctx); code != tc.code {
			t.Errorf("%s: expected code %s, got %s", tc.uri, tc.code, code)
		}
	}
}

func TestFeatureQuery(t *testing.T) {
	h := Handler{World: fixtureWorld(t)}

	// (3,4) is the far corner of the tree anchored at (2,3)
	ctx := newRequest("/api/feature?x=3&y=4")
	h.feature(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("expected 200, got %d: %s", got, ctx.Response.Body())
	}
	var body featureResponse
	decode(t, ctx, &body)
	if body.Kind != "tree" || body.Variant != 1 || body.Anchor != (point{2, 3}) {
		t.Fatalf("unexpected feature: %+v", body)
	}
	if body.Width != 2 || body.Height != 2 {
		t.Fatalf("unexpected footprint %dx%d", body.Width, body.Height)
	}
	if body.Y != 3 {
		t.Errorf("tree y offset must be zero, got %v", body.Y)
	}

	ctx = newRequest("/api/feature?x=5&y=5")
	h.feature(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
	if code := errorCode(t, ctx); code != "no_feature" {
		t.Fatalf("expected no_feature, got %s", code)
	}

	ctx = newRequest("/api/feature?x=0&y=99")
	h.feature(context.Background(), ctx)
	if code := errorCode(t, ctx); code != "no_such_location" {
		t.Fatalf("expected no_such_location, got %s", code)
	}
}

func TestFeaturesOfKind(t *testing.T) {
	h := Handler{World: fixtureWorld(t)}

	ctx := newRequest("/api/features/flower", param.Param{Key: "kind", Value: "flower"})
	h.featuresOfKind(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("expected 200, got %d", got)
	}
	var body featureListResponse
	decode(t, ctx, &body)
	if body.Total != 2 || len(body.Features) != 2 {
		t.Fatalf("expected 2 flowers, got %+v", body)
	}
	for _, f := range body.Features {
		if f.Kind != "flower" {
			t.Errorf("unexpected kind %s", f.Kind)
		}
	}

	ctx = newRequest("/api/features/flower?offset=1&limit=5", param.Param{Key: "kind", Value: "flower"})
	h.featuresOfKind(context.Background(), ctx)
	body = featureListResponse{}
	decode(t, ctx, &body)
	if body.Total != 2 || len(body.Features) != 1 {
		t.Fatalf("expected one flower after offset, got %+v", body)
	}

	ctx = newRequest("/api/features/rock", param.Param{Key: "kind", Value: "rock"})
	h.featuresOfKind(context.Background(), ctx)
	body = featureListResponse{}
	decode(t, ctx, &body)
	if body.Total != 0 || body.Features == nil {
		t.Fatalf("expected an empty list, got %+v", body)
	}
}

func TestFeaturesOfUnknownKind(t *testing.T) {
	h := Handler{World: fixtureWorld(t)}
	ctx := newRequest("/api/features/cactus", param.Param{Key: "kind", Value: "cactus"})
	h.featuresOfKind(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
		t.Fatalf("expected 400, got %d", got)
	}
	if code := errorCode(t, ctx); code != "unknown_kind" {
		t.Fatalf("expected unknown_kind, got %s", code)
	}
}

func TestNoDefaultWorld(t *testing.T) {
	h := Handler{}
	ctx := newRequest("/api/world")
	h.worldInfo(context.Background(), ctx)
	if code := errorCode(t, ctx); code != "no_world" {
		t.Fatalf("expected no_world, got %s", code)
	}
}

func TestCatalogRoutes(t *testing.T) {
	store := catalog.NewMemoryStore()
	generated := 0
	fixture := fixtureWorld(t)
	cache := catalog.NewCache(store, func(seed int64, size int) (*world.World, error) {
		generated++
		return fixture, nil
	}, 0)
	h := Handler{Store: store, Worlds: cache, MaxWorldSize: 64}

	ctx := newRequest("/api/worlds")
	ctx.Request.SetBody([]byte(`{"name":"meadow","seed":5,"size":8}`))
	h.createWorld(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", got, ctx.Response.Body())
	}

	ctx = newRequest("/api/worlds")
	h.listWorlds(context.Background(), ctx)
	var list struct {
		Worlds []recordResponse `json:"worlds"`
	}
	decode(t, ctx, &list)
	if len(list.Worlds) != 1 || list.Worlds[0].Name != "meadow" || list.Worlds[0].Size != 8 {
		t.Fatalf("unexpected list: %+v", list)
	}

	name := param.Param{Key: "name", Value: "meadow"}
	ctx = newRequest("/api/worlds/meadow/terrain?x=1&y=1", name)
	h.terrain(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusOK {
		t.Fatalf("expected 200, got %d: %s", got, ctx.Response.Body())
	}
	ctx = newRequest("/api/worlds/meadow", name)
	h.worldInfo(context.Background(), ctx)
	var info worldResponse
	decode(t, ctx, &info)
	if info.Name != "meadow" {
		t.Fatalf("expected name in response, got %+v", info)
	}
	if generated != 1 {
		t.Fatalf("expected one generation, got %d", generated)
	}

	ctx = newRequest("/api/worlds/desert", param.Param{Key: "name", Value: "desert"})
	h.worldInfo(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusNotFound {
		t.Fatalf("expected 404, got %d", got)
	}
	if code := errorCode(t, ctx); code != "world_not_found" {
		t.Fatalf("expected world_not_found, got %s", code)
	}
}

func TestCreateWorldRejectsBadInput(t *testing.T) {
	h := Handler{Store: catalog.NewMemoryStore(), MaxWorldSize: 64}
	cases := []struct {
		body string
		code string
	}{
		{`{"name":`, "invalid_json"},
		{`{"name":"Bad Name","seed":1,"size":8}`, "invalid_record"},
		{`{"name":"ok","seed":1,"size":0}`, "invalid_record"},
		{`{"name":"big","seed":1,"size":65}`, "invalid_record"},
	}
	for _, tc := range cases {
		ctx := newRequest("/api/worlds")
		ctx.Request.SetBody([]byte(tc.body))
		h.createWorld(context.Background(), ctx)
		if got := ctx.Response.StatusCode(); got != consts.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", tc.body, got)
			continue
		}
		if code := errorCode(t, ctx); code != tc.code {
			t.Errorf("%s: expected %s, got %s", tc.body, tc.code, code)
		}
	}
}

func TestCreateWorldWithoutCatalog(t *testing.T) {
	h := Handler{}
	ctx := newRequest("/api/worlds")
	ctx.Request.SetBody([]byte(`{"name":"a","seed":1,"size":8}`))
	h.createWorld(context.Background(), ctx)
	if got := ctx.Response.StatusCode(); got != consts.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", got)
	}
}
