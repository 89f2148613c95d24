// Package store defines where per-visitor gallery state lives.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/yingnomad/remotelife/internal/domain"
)

// DefaultSessionTTL is how long an idle visitor keeps its gallery state.
const DefaultSessionTTL = 12 * time.Hour

// UpdateFunc computes a session's next state from its current one.
type UpdateFunc func(current domain.GalleryState) (domain.GalleryState, error)

// ErrConflict is returned when concurrent writers kept an update from
// committing.
var ErrConflict = errors.New("session updated concurrently")

// Store persists gallery state per session and counts city views.
type Store interface {
	// Load returns the zero state for unknown or expired sessions.
	Load(ctx context.Context, sessionID string) (domain.GalleryState, error)
	// Update applies fn to the current state and stores the result as one
	// atomic step per session. An error from fn is returned as is and
	// nothing is written.
	Update(ctx context.Context, sessionID string, fn UpdateFunc) (domain.GalleryState, error)
	// Delete forgets a session, which reads back as the idle state.
	Delete(ctx context.Context, sessionID string) error

	IncrementViews(ctx context.Context, cityID string) error
	Views(ctx context.Context) (map[string]int64, error)

	Ping(ctx context.Context) error
	// Mode names the backend ("memory" or "redis").
	Mode() string
}

// Flusher is implemented by stores that can drop every session at once.
type Flusher interface {
	FlushSessions(ctx context.Context) (int, error)
}
