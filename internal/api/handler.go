// Package api serves world queries over HTTP.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"tileworld/internal/catalog"
	"tileworld/internal/world"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/protocol/consts"
)

var (
	ErrInvalidCoordinates = errors.New("x and y must be integers")
	ErrNoWorld            = errors.New("no world is loaded")
)

type Handler struct {
	// World answers the unnamed routes. May be nil.
	World *world.World
	// Store and Worlds back the /api/worlds routes. Both may be nil.
	Store  catalog.Store
	Worlds *catalog.Cache
	// MaxWorldSize caps sizes accepted on create; 0 means world.MaxSize.
	MaxWorldSize int
}

func (h Handler) RegisterRoutes(s *server.Hertz) {
	api := s.Group("/api")
	api.GET("/world", h.worldInfo)
	api.GET("/terrain", h.terrain)
	api.GET("/feature", h.feature)
	api.GET("/features/:kind", h.featuresOfKind)

	api.GET("/worlds", h.listWorlds)
	api.POST("/worlds", h.createWorld)
	api.GET("/worlds/:name", h.worldInfo)
	api.GET("/worlds/:name/terrain", h.terrain)
	api.GET("/worlds/:name/feature", h.feature)
	api.GET("/worlds/:name/features/:kind", h.featuresOfKind)
}

type worldResponse struct {
	Name     string         `json:"name,omitempty"`
	Seed     int64          `json:"seed"`
	Size     int            `json:"size"`
	Terrain  map[string]int `json:"terrain"`
	Biomes   map[string]int `json:"biomes"`
	Features map[string]int `json:"features"`
}

type terrainResponse struct {
	X              int     `json:"x"`
	Y              int     `json:"y"`
	Type           string  `json:"type"`
	Biome          string  `json:"biome"`
	Continentality float64 `json:"continentality"`
	Weirdness      float64 `json:"weirdness"`
	Rivers         float64 `json:"rivers"`
}

type point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

type featureResponse struct {
	Kind    string  `json:"kind"`
	Variant int     `json:"variant"`
	X       float64 `json:"x"`
	Y       float64 `json:"y"`
	Anchor  point   `json:"anchor"`
	Width   int     `json:"width"`
	Height  int     `json:"height"`
}

type featureListResponse struct {
	Kind     string            `json:"kind"`
	Total    int               `json:"total"`
	Features []featureResponse `json:"features"`
}

type recordResponse struct {
	Name      string    `json:"name"`
	Seed      int64     `json:"seed"`
	Size      int       `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}

type createWorldRequest struct {
	Name string `json:"name"`
	Seed int64  `json:"seed"`
	Size int    `json:"size"`
}

// resolve picks the catalogued world named in the path, or the default one.
func (h Handler) resolve(c context.Context, ctx *app.RequestContext) (*world.World, string, error) {
	name := ctx.Param("name")
	if name == "" {
		if h.World == nil {
			return nil, "", ErrNoWorld
		}
		return h.World, "", nil
	}
	if h.Worlds == nil {
		return nil, "", catalog.ErrNotFound
	}
	w, err := h.Worlds.World(c, name)
	return w, name, err
}

func (h Handler) worldInfo(c context.Context, ctx *app.RequestContext) {
	w, name, err := h.resolve(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	s := w.Stats()
	resp := worldResponse{
		Name:     name,
		Seed:     w.Seed(),
		Size:     w.Size(),
		Terrain:  make(map[string]int, len(s.Terrain)),
		Biomes:   make(map[string]int, len(s.Biomes)),
		Features: make(map[string]int, len(s.Features)),
	}
	for k, v := range s.Terrain {
		resp.Terrain[k.String()] = v
	}
	for k, v := range s.Biomes {
		resp.Biomes[k.String()] = v
	}
	for k, v := range s.Features {
		resp.Features[k.String()] = v
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) terrain(c context.Context, ctx *app.RequestContext) {
	w, _, err := h.resolve(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	x, y, err := coordinates(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	t, ok := w.TerrainAt(x, y)
	if !ok {
		writeErrorBody(ctx, consts.StatusNotFound, "no_such_location", fmt.Sprintf("(%d,%d) is outside the world", x, y))
		return
	}
	ctx.JSON(consts.StatusOK, terrainResponse{
		X: x, Y: y,
		Type:           t.Type().String(),
		Biome:          t.Biome().String(),
		Continentality: t.Continentality(),
		Weirdness:      t.Weirdness(),
		Rivers:         t.Rivers(),
	})
}

func (h Handler) feature(c context.Context, ctx *app.RequestContext) {
	w, _, err := h.resolve(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	x, y, err := coordinates(ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	if !w.InBounds(x, y) {
		writeErrorBody(ctx, consts.StatusNotFound, "no_such_location", fmt.Sprintf("(%d,%d) is outside the world", x, y))
		return
	}
	f, ok := w.FeatureAt(x, y)
	if !ok {
		writeErrorBody(ctx, consts.StatusNotFound, "no_feature", fmt.Sprintf("no feature covers (%d,%d)", x, y))
		return
	}
	ctx.JSON(consts.StatusOK, toFeatureResponse(f))
}

func (h Handler) featuresOfKind(c context.Context, ctx *app.RequestContext) {
	kind, ok := world.ParseFeatureKind(ctx.Param("kind"))
	if !ok {
		writeErrorBody(ctx, consts.StatusBadRequest, "unknown_kind", fmt.Sprintf("unknown feature kind %q", ctx.Param("kind")))
		return
	}
	w, _, err := h.resolve(c, ctx)
	if err != nil {
		writeError(ctx, err)
		return
	}
	all := w.FeaturesOfKind(kind)
	offset, _ := strconv.Atoi(string(ctx.Query("offset")))
	limit, _ := strconv.Atoi(string(ctx.Query("limit")))
	offset = min(max(offset, 0), len(all))
	page := all[offset:]
	if limit > 0 && limit < len(page) {
		page = page[:limit]
	}

	resp := featureListResponse{Kind: kind.String(), Total: len(all), Features: make([]featureResponse, len(page))}
	for i, f := range page {
		resp.Features[i] = toFeatureResponse(f)
	}
	ctx.JSON(consts.StatusOK, resp)
}

func (h Handler) listWorlds(c context.Context, ctx *app.RequestContext) {
	if h.Store == nil {
		ctx.JSON(consts.StatusOK, map[string]any{"worlds": []recordResponse{}})
		return
	}
	records, err := h.Store.List(c)
	if err != nil {
		writeError(ctx, err)
		return
	}
	out := make([]recordResponse, len(records))
	for i, r := range records {
		out[i] = toRecordResponse(r)
	}
	ctx.JSON(consts.StatusOK, map[string]any{"worlds": out})
}

func (h Handler) createWorld(c context.Context, ctx *app.RequestContext) {
	if h.Store == nil {
		writeErrorBody(ctx, consts.StatusServiceUnavailable, "catalog_unavailable", "no catalog is configured")
		return
	}
	var body createWorldRequest
	if err := json.Unmarshal(ctx.Request.Body(), &body); err != nil {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_json", "invalid json")
		return
	}
	if h.MaxWorldSize > 0 && body.Size > h.MaxWorldSize {
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_record", fmt.Sprintf("size %d exceeds %d", body.Size, h.MaxWorldSize))
		return
	}
	rec := catalog.Record{Name: body.Name, Seed: body.Seed, Size: body.Size, CreatedAt: time.Now().UTC()}
	if err := h.Store.Save(c, rec); err != nil {
		writeError(ctx, err)
		return
	}
	ctx.JSON(consts.StatusCreated, toRecordResponse(rec))
}

func coordinates(ctx *app.RequestContext) (int, int, error) {
	x, errX := strconv.Atoi(string(ctx.Query("x")))
	y, errY := strconv.Atoi(string(ctx.Query("y")))
	if errX != nil || errY != nil {
		return 0, 0, ErrInvalidCoordinates
	}
	return x, y, nil
}

func toFeatureResponse(f world.Feature) featureResponse {
	ax, ay := f.Anchor()
	return featureResponse{
		Kind:    f.Kind().String(),
		Variant: f.Variant(),
		X:       f.Location().X(),
		Y:       f.Location().Y(),
		Anchor:  point{X: ax, Y: ay},
		Width:   f.Size().W,
		Height:  f.Size().H,
	}
}

func toRecordResponse(r catalog.Record) recordResponse {
	return recordResponse{Name: r.Name, Seed: r.Seed, Size: r.Size, CreatedAt: r.CreatedAt}
}

func writeError(ctx *app.RequestContext, err error) {
	switch {
	case errors.Is(err, ErrInvalidCoordinates):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_coordinates", err.Error())
	case errors.Is(err, ErrNoWorld):
		writeErrorBody(ctx, consts.StatusNotFound, "no_world", err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		writeErrorBody(ctx, consts.StatusNotFound, "world_not_found", err.Error())
	case errors.Is(err, catalog.ErrInvalidRecord):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_record", err.Error())
	case errors.Is(err, world.ErrInvalidSize), errors.Is(err, world.ErrInvalidConfig):
		writeErrorBody(ctx, consts.StatusBadRequest, "invalid_world_config", err.Error())
	default:
		writeErrorBody(ctx, consts.StatusInternalServerError, "internal_error", "internal error")
	}
}

func writeErrorBody(ctx *app.RequestContext, status int, code, message string) {
	ctx.JSON(status, map[string]any{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
