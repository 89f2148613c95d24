package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/httpserver/handlers"
	"github.com/yingnomad/remotelife/internal/httpserver/mw"
)

func init() { Register("page", registerPage) }

func registerPage(r chi.Router, d deps.Deps) {
	r.With(mw.Session(sessionConfig(d))).Get("/", handlers.Home(d))
	r.Get("/go/{anchor}", handlers.Anchor(d))
	r.Get("/api/map", handlers.MapData(d))
}

func sessionConfig(d deps.Deps) mw.SessionConfig {
	return mw.SessionConfig{TTL: d.SessionTTL, Secure: d.SecureCookie}
}
