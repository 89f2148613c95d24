package handlers

import (
	"net/http"

	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/logger"
	"github.com/yingnomad/remotelife/internal/store"
	"github.com/yingnomad/remotelife/internal/utils"
)

type reloadResponse struct {
	Triggered       bool   `json:"triggered"`
	Message         string `json:"message"`
	SessionsFlushed *int   `json:"sessions_flushed,omitempty"`
}

// Reload triggers a content reload. With ?sessions=flush it also forgets
// every visitor's gallery state.
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		remote := utils.ClientIP(r, d.TrustProxy)
		resp := reloadResponse{}

		if r.URL.Query().Get("sessions") == "flush" {
			f, ok := d.Store.(store.Flusher)
			if !ok {
				writeJSON(w, http.StatusNotImplemented, errorResponse{Error: d.Store.Mode() + " store cannot flush sessions"})
				return
			}
			n, err := f.FlushSessions(r.Context())
			if err != nil {
				d.Logger.Error("failed to flush sessions", logger.Error(err))
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to flush sessions"})
				return
			}
			d.Logger.Info("sessions flushed via endpoint",
				logger.Int("count", n),
				logger.String("remote_ip", remote))
			resp.SessionsFlushed = &n
		}

		select {
		case d.ReloadTrigger <- struct{}{}:
			d.Logger.Info("manual content reload triggered via endpoint",
				logger.String("remote_ip", remote))
			resp.Triggered = true
			resp.Message = "reload triggered"
			writeJSON(w, http.StatusAccepted, resp)
		default:
			d.Logger.Warn("content reload already pending",
				logger.String("remote_ip", remote))
			resp.Message = "reload already pending, please wait"
			writeJSON(w, http.StatusTooManyRequests, resp)
		}
	}
}
