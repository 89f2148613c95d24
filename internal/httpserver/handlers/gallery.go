package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/yingnomad/remotelife/internal/domain"
	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/httpserver/mw"
	"github.com/yingnomad/remotelife/internal/logger"
	"github.com/yingnomad/remotelife/internal/store"
)

var errBadRequest = errors.New("bad request")

// transition computes the next gallery state from the current one. It must
// not have side effects: a store may run it more than once.
type transition func(g *domain.Gallery, st domain.GalleryState, r *http.Request) (domain.GalleryState, error)

// galleryAction applies t to the visitor's state as one atomic store update
// and answers with the new gallery. after, when set, runs once the
// transition succeeded.
func galleryAction(d deps.Deps, action string, t transition, after func(r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		catalog, gallery := d.MemoryIndex.Snapshot()
		if catalog == nil {
			writeError(w, r, http.StatusServiceUnavailable, "content not loaded yet")
			return
		}

		var current domain.GalleryState
		var terr error
		apply := func(st domain.GalleryState) (domain.GalleryState, error) {
			current = gallery.Normalize(st)
			next, err := t(gallery, current, r)
			if errors.Is(err, domain.ErrNoPhotos) {
				// Nothing to open, keep what the visitor sees
				next, err = current, nil
			}
			terr = err
			return next, err
		}

		next, err := updateState(ctx, d, apply)
		if err != nil && terr == nil {
			// Answer from idle without remembering anything
			d.Logger.Error("failed to update gallery state, using idle",
				logger.String("store", d.Store.Mode()),
				logger.String("action", action),
				logger.Error(err))
			next, _ = apply(domain.GalleryState{})
		}

		switch {
		case terr == nil:
		case errors.Is(terr, domain.ErrUnknownCity):
			writeError(w, r, http.StatusNotFound, terr.Error())
			return
		case errors.Is(terr, domain.ErrPhotoOutOfRange),
			errors.Is(terr, domain.ErrNoSelection),
			errors.Is(terr, errBadRequest):
			writeError(w, r, http.StatusBadRequest, terr.Error())
			return
		default:
			d.Logger.Error("gallery action failed",
				logger.String("action", action),
				logger.Error(terr))
			writeError(w, r, http.StatusInternalServerError, "internal error")
			return
		}

		if after != nil {
			after(r)
		}

		d.Logger.Debug("gallery transition",
			logger.String("action", action),
			logger.String("from", current.Phase().String()),
			logger.String("to", next.Phase().String()),
			logger.String("city", next.CityID),
			logger.Int("index", next.Index))

		respondGallery(w, r, d, catalog, gallery, next)
	}
}

// GallerySelect handles a click on a city marker and counts the view.
func GallerySelect(d deps.Deps) http.HandlerFunc {
	selectCity := func(g *domain.Gallery, st domain.GalleryState, r *http.Request) (domain.GalleryState, error) {
		return g.Select(st, chi.URLParam(r, "cityID"))
	}
	countView := func(r *http.Request) {
		cityID := chi.URLParam(r, "cityID")
		if err := d.Store.IncrementViews(r.Context(), cityID); err != nil {
			d.Logger.Warn("failed to count city view",
				logger.String("city", cityID),
				logger.Error(err))
		}
	}
	return galleryAction(d, "select", selectCity, countView)
}

// GalleryPhoto handles a click on a thumbnail, selecting the city first
// when the visitor comes from another one.
func GalleryPhoto(d deps.Deps) http.HandlerFunc {
	return galleryAction(d, "photo", func(g *domain.Gallery, st domain.GalleryState, r *http.Request) (domain.GalleryState, error) {
		cityID := chi.URLParam(r, "cityID")
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			return st, fmt.Errorf("%w: photo index %q", errBadRequest, chi.URLParam(r, "index"))
		}

		if st.CityID != cityID {
			if _, ok := g.City(cityID); !ok {
				return st, fmt.Errorf("%w: %q", domain.ErrUnknownCity, cityID)
			}
			st = domain.GalleryState{CityID: cityID}
		}
		return g.OpenPhoto(st, index)
	}, nil)
}

// GalleryNext shows the following photo.
func GalleryNext(d deps.Deps) http.HandlerFunc {
	return galleryAction(d, "next", func(g *domain.Gallery, st domain.GalleryState, _ *http.Request) (domain.GalleryState, error) {
		return g.Next(st), nil
	}, nil)
}

// GalleryPrev shows the preceding photo.
func GalleryPrev(d deps.Deps) http.HandlerFunc {
	return galleryAction(d, "prev", func(g *domain.Gallery, st domain.GalleryState, _ *http.Request) (domain.GalleryState, error) {
		return g.Prev(st), nil
	}, nil)
}

// GalleryClose leaves the lightbox.
func GalleryClose(d deps.Deps) http.HandlerFunc {
	return galleryAction(d, "close", func(g *domain.Gallery, st domain.GalleryState, _ *http.Request) (domain.GalleryState, error) {
		return g.Close(st), nil
	}, nil)
}

// GalleryClear returns the side panel to its prompt by forgetting the session.
func GalleryClear(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		catalog, gallery := d.MemoryIndex.Snapshot()
		if catalog == nil {
			writeError(w, r, http.StatusServiceUnavailable, "content not loaded yet")
			return
		}
		if sid := mw.SessionID(r.Context()); sid != "" {
			if err := d.Store.Delete(r.Context(), sid); err != nil {
				d.Logger.Error("failed to clear gallery state",
					logger.String("store", d.Store.Mode()),
					logger.Error(err))
			}
		}
		respondGallery(w, r, d, catalog, gallery, gallery.Deselect(domain.GalleryState{}))
	}
}

// GalleryKeys handles Escape and the arrow keys forwarded by the page.
func GalleryKeys(d deps.Deps) http.HandlerFunc {
	return galleryAction(d, "key", func(g *domain.Gallery, st domain.GalleryState, r *http.Request) (domain.GalleryState, error) {
		key := strings.TrimSpace(r.FormValue("key"))
		if key == "" {
			return st, fmt.Errorf("%w: missing key", errBadRequest)
		}
		return g.Key(st, key), nil
	}, nil)
}

// updateState runs apply through the store for visitors with a session.
func updateState(ctx context.Context, d deps.Deps, apply store.UpdateFunc) (domain.GalleryState, error) {
	sid := mw.SessionID(ctx)
	if sid == "" {
		return apply(domain.GalleryState{})
	}
	return d.Store.Update(ctx, sid, apply)
}
