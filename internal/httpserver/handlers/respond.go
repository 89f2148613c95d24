package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/yingnomad/remotelife/internal/domain"
	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/httpserver/mw"
	"github.com/yingnomad/remotelife/internal/logger"
	"github.com/yingnomad/remotelife/internal/web"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError answers htmx requests without touching the page and plain
// requests with a text error.
func writeError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	if mw.IsHTMX(r.Context()) {
		w.Header().Set("HX-Reswap", "none")
	}
	http.Error(w, msg, status)
}

// loadState returns the visitor's gallery state repaired against the current
// city list. A store failure degrades to the idle state.
func loadState(ctx context.Context, d deps.Deps, g *domain.Gallery) domain.GalleryState {
	sid := mw.SessionID(ctx)
	if sid == "" {
		return domain.GalleryState{}
	}
	st, err := d.Store.Load(ctx, sid)
	if err != nil {
		d.Logger.Warn("failed to load gallery state, using idle",
			logger.String("store", d.Store.Mode()),
			logger.Error(err))
		return domain.GalleryState{}
	}
	return g.Normalize(st)
}

// respondGallery sends the gallery fragment to htmx and sends plain form
// posts back to the map.
func respondGallery(w http.ResponseWriter, r *http.Request, d deps.Deps, c *domain.Catalog, g *domain.Gallery, st domain.GalleryState) {
	if !mw.IsHTMX(r.Context()) {
		http.Redirect(w, r, "/#"+domain.AnchorMap, http.StatusSeeOther)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	data := web.GalleryData{GalleryView: g.View(st), Cities: c.Cities}
	if err := d.Renderer.Fragment(w, web.FragmentGallery, data); err != nil {
		d.Logger.Error("failed to render gallery", logger.Error(err))
		writeError(w, r, http.StatusInternalServerError, "render error")
	}
}
