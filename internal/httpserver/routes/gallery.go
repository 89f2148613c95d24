package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/httpserver/handlers"
	"github.com/yingnomad/remotelife/internal/httpserver/mw"
)

func init() { Register("gallery", registerGallery) }

func registerGallery(r chi.Router, d deps.Deps) {
	r.Route("/gallery", func(r chi.Router) {
		r.Use(mw.RateLimit(mw.RateLimitConfig{
			Burst:             d.RateLimit.Burst,
			RefillPerIPPerMin: d.RateLimit.PerMin,
			TrustProxy:        d.TrustProxy,
			Logger:            d.Logger,
		}))
		r.Use(mw.Session(sessionConfig(d)))

		r.Post("/cities/{cityID}", handlers.GallerySelect(d))
		r.Post("/cities/{cityID}/photos/{index}", handlers.GalleryPhoto(d))
		r.Post("/next", handlers.GalleryNext(d))
		r.Post("/prev", handlers.GalleryPrev(d))
		r.Post("/close", handlers.GalleryClose(d))
		r.Post("/clear", handlers.GalleryClear(d))
		r.Post("/keys", handlers.GalleryKeys(d))
	})
}
