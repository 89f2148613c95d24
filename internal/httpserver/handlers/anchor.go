package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/yingnomad/remotelife/internal/domain"
	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/httpserver/mw"
	"github.com/yingnomad/remotelife/internal/logger"
)

// Anchor brings a section of the page into view. htmx gets a scroll-to
// event; plain requests are redirected to the fragment. Unknown anchors do
// nothing.
func Anchor(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := "", error(domain.ErrUnknownAnchor)
		if c := d.MemoryIndex.Catalog(); c != nil {
			id, err = c.ResolveAnchor(chi.URLParam(r, "anchor"))
		}
		ok := err == nil
		if !ok {
			d.Logger.Debug("anchor ignored", logger.Error(err))
		}

		if mw.IsHTMX(r.Context()) {
			if ok {
				w.Header().Set("HX-Trigger", scrollTrigger(id))
			}
			w.WriteHeader(http.StatusNoContent)
			return
		}

		loc := "/"
		if ok {
			loc = "/#" + id
		}
		http.Redirect(w, r, loc, http.StatusSeeOther)
	}
}

func scrollTrigger(id string) string {
	b, _ := json.Marshal(map[string]map[string]string{
		"scroll-to": {"id": id},
	})
	return string(b)
}
