package mw

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/yingnomad/remotelife/internal/logger"
	"github.com/yingnomad/remotelife/internal/utils"
)

// AssetsConfig configures AssetsWithCache.
type AssetsConfig struct {
	Prefix       string // URL prefix stripped before the file lookup, ex: "/static"
	CacheControl string
}

// AssetsWithCache serves files of fsys with Cache-Control, Vary and ETag
// handling. ETags are computed once, at construction. Directory listings
// are never served.
func AssetsWithCache(fsys fs.FS, cfg AssetsConfig, log logger.Logger) http.Handler {
	if cfg.CacheControl == "" {
		cfg.CacheControl = "public, max-age=604800, stale-while-revalidate=86400"
	}

	etags := map[string]string{}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return nil
		}
		et, err := fileETag(fsys, p)
		if err != nil {
			log.Warn("failed to hash asset", logger.String("path", p), logger.Error(err))
			return nil
		}
		etags["/"+p] = et
		return nil
	})
	if err != nil {
		log.Warn("failed to index assets", logger.Error(err))
	}
	log.Debugf("AssetsWithCache: %d files indexed under %q", len(etags), cfg.Prefix)

	files := http.FileServerFS(fsys)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := path.Clean("/" + strings.TrimPrefix(r.URL.Path, cfg.Prefix))
		et, ok := etags[name]
		if !ok {
			http.NotFound(w, r)
			return
		}

		w.Header().Set("Vary", "Accept-Encoding")
		w.Header().Set("Cache-Control", cfg.CacheControl)
		w.Header().Set("ETag", et)
		if inm := r.Header.Get("If-None-Match"); inm != "" && inm == et {
			w.WriteHeader(http.StatusNotModified)
			return
		}

		r2 := r.Clone(r.Context())
		r2.URL.Path = name
		r2.URL.RawPath = ""
		files.ServeHTTP(w, r2)
	})
}

func fileETag(fsys fs.FS, name string) (string, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return "", err
	}
	defer utils.Close(f)

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return `W/"` + hex.EncodeToString(h.Sum(nil)[:16]) + `"`, nil
}
