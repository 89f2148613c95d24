package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/index"
)

type componentStatus struct {
	OK         bool          `json:"ok"`
	Source     string        `json:"source,omitempty"`
	Counts     *index.Counts `json:"counts,omitempty"`
	LastReload string        `json:"last_reload,omitempty"`
	Mode       string        `json:"mode,omitempty"`
	Impact     string        `json:"impact,omitempty"`
	Error      string        `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
	Views      map[string]int64           `json:"views,omitempty"`
}

// Infra reports the state of each component and the city view counters.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		counts := d.MemoryIndex.Counts()
		lastReload := d.MemoryIndex.GetLastReload()
		lastReloadStr := "never"
		if !lastReload.IsZero() {
			lastReloadStr = lastReload.Format(time.RFC3339)
		}

		components := map[string]componentStatus{
			"content": {
				OK:         d.MemoryIndex.Loaded(),
				Source:     d.ContentSource,
				Counts:     &counts,
				LastReload: lastReloadStr,
			},
			"sessions": checkStore(r.Context(), d),
		}

		resp := infraResponse{
			Status:     determineStatus(components),
			Components: components,
		}
		if views, err := d.Store.Views(r.Context()); err == nil {
			resp.Views = views
		}

		writeJSON(w, http.StatusOK, resp)
	}
}

func determineStatus(components map[string]componentStatus) string {
	if c, ok := components["content"]; ok && !c.OK {
		return "critical" // nothing to show
	}
	if s, ok := components["sessions"]; ok && !s.OK {
		return "degraded" // page works, gallery state is forgotten
	}
	return "ok"
}

func checkStore(ctx context.Context, d deps.Deps) componentStatus {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if err := d.Store.Ping(ctx); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.Store.Mode(),
			Impact: "gallery-state-not-persisted",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: d.Store.Mode()}
}
