package routes

import (
	"os"

	"github.com/go-chi/chi/v5"

	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/httpserver/mw"
	"github.com/yingnomad/remotelife/internal/web"
)

func init() { Register("assets", registerAssets) }

// registerAssets serves the embedded CSS/JS under /static and the public
// directory (photos, hobby covers) at the root.
func registerAssets(r chi.Router, d deps.Deps) {
	r.Handle("/static/*", mw.AssetsWithCache(web.Static(), mw.AssetsConfig{Prefix: "/static"}, d.Logger))

	if d.PublicDir == "" {
		return
	}
	r.Handle("/*", mw.AssetsWithCache(os.DirFS(d.PublicDir), mw.AssetsConfig{
		CacheControl: "public, max-age=86400",
	}, d.Logger))
}
