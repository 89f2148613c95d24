package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/httpserver/handlers"
	"github.com/yingnomad/remotelife/internal/httpserver/mw"
)

func init() { Register("health", registerHealth) }

// registerHealth mounts the liveness check for everyone and the readiness
// check for allowed networks only.
func registerHealth(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
	r.With(mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)).Get("/readyz", handlers.Readyz(d))
}
