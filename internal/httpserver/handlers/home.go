package handlers

import (
	"net/http"

	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/logger"
	"github.com/yingnomad/remotelife/internal/web"
)

// Home renders the whole page with the visitor's gallery state.
func Home(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog, gallery := d.MemoryIndex.Snapshot()
		if catalog == nil {
			http.Error(w, "content not loaded yet", http.StatusServiceUnavailable)
			return
		}

		st := loadState(r.Context(), d, gallery)
		data := web.NewPageData(catalog, gallery.View(st), d.SiteURL, d.Version)

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		// The gallery part depends on the session
		w.Header().Set("Cache-Control", "private, no-store")
		if err := d.Renderer.Page(w, data); err != nil {
			d.Logger.Error("failed to render page", logger.Error(err))
			http.Error(w, "render error", http.StatusInternalServerError)
		}
	}
}
