package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/yingnomad/remotelife/internal/domain"
	"github.com/yingnomad/remotelife/internal/httpserver/deps"
)

// Viewports outside these limits are clamped.
const (
	minViewport = 64
	maxViewport = 8192
)

type tilesResponse struct {
	URL         string `json:"url"`
	Attribution string `json:"attribution"`
	MinZoom     int    `json:"min_zoom"`
	MaxZoom     int    `json:"max_zoom"`
}

type markerResponse struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Emoji  string  `json:"emoji"`
	Lat    float64 `json:"lat"`
	Lng    float64 `json:"lng"`
	Photos int     `json:"photos"`
}

type mapResponse struct {
	domain.MapView
	Padding  int              `json:"padding"`
	Viewport domain.Viewport  `json:"viewport"`
	Tiles    tilesResponse    `json:"tiles"`
	Markers  []markerResponse `json:"markers"`
}

// MapData describes the map: the fitted camera, the tile layer and one
// marker per city. w and h give the client's map size in pixels.
func MapData(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog := d.MemoryIndex.Catalog()
		if catalog == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "content not loaded yet"})
			return
		}

		vp, err := parseViewport(r, d.Viewport)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}

		resp := mapResponse{
			MapView:  catalog.InitialView(vp),
			Padding:  catalog.Map.Padding,
			Viewport: vp,
			Tiles: tilesResponse{
				URL:         catalog.Map.TileURL,
				Attribution: catalog.Map.Attribution,
				MinZoom:     catalog.Map.MinZoom,
				MaxZoom:     catalog.Map.MaxZoom,
			},
			Markers: make([]markerResponse, 0, len(catalog.Cities)),
		}
		for _, c := range catalog.Cities {
			resp.Markers = append(resp.Markers, markerResponse{
				ID:     c.ID,
				Name:   c.Name,
				Emoji:  c.Emoji,
				Lat:    c.Position.Lat,
				Lng:    c.Position.Lng,
				Photos: len(c.Photos),
			})
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func parseViewport(r *http.Request, def domain.Viewport) (domain.Viewport, error) {
	vp := def
	q := r.URL.Query()
	for _, p := range []struct {
		key string
		dst *int
	}{{"w", &vp.Width}, {"h", &vp.Height}} {
		raw := q.Get(p.key)
		if raw == "" {
			continue
		}
		n, err := strconv.Atoi(raw)
		if err != nil {
			return def, fmt.Errorf("invalid %s: %q", p.key, raw)
		}
		// A hidden map reports 0, fall back to the default size
		if n <= 0 {
			continue
		}
		*p.dst = min(max(n, minViewport), maxViewport)
	}
	return vp, nil
}
