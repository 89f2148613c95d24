package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/yingnomad/remotelife/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Content bool   `json:"content"`
	Store   bool   `json:"store"`
	Reason  string `json:"reason,omitempty"`
}

// Readyz is ready once content is loaded and the session store answers.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{Content: d.MemoryIndex.Loaded()}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := d.Store.Ping(ctx); err != nil {
			resp.Reason = d.Store.Mode() + " store unreachable"
		} else {
			resp.Store = true
		}
		if !resp.Content {
			resp.Reason = "content not loaded"
		}

		resp.Ready = resp.Content && resp.Store
		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, status, resp)
	}
}
