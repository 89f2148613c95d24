package deps

import (
	"time"

	"github.com/yingnomad/remotelife/internal/domain"
	"github.com/yingnomad/remotelife/internal/index"
	"github.com/yingnomad/remotelife/internal/logger"
	"github.com/yingnomad/remotelife/internal/store"
	"github.com/yingnomad/remotelife/internal/web"
)

type Deps struct {
	Logger        logger.Logger
	StartTime     time.Time
	Version       string
	Commit        string
	BuildDate     string
	GoVersion     string
	TimeNow       func() time.Time   // for testing, defaults to time.Now
	AllowedHosts  []string           // Host headers allowed to reach the ops endpoints
	AllowedCIDRS  []string           // IPs allowed to reach readyz/infra/reload
	TrustProxy    bool               // true if running behind a trusted reverse proxy (e.g., cloudflared)
	SiteURL       string             // Public URL used for canonical links
	PublicDir     string             // Directory holding photos and hobby covers
	ContentSource string             // "embedded" or the content file path
	MemoryIndex   *index.MemoryIndex // Catalog currently served
	Store         store.Store        // Per-visitor gallery state and view counters
	Renderer      *web.Renderer      // Page and fragment templates
	Viewport      domain.Viewport    // Map size assumed when the client sends none
	SecureCookie  bool               // Mark the session cookie Secure
	SessionTTL    time.Duration      // Session cookie lifetime
	RateLimit     RateLimit          // Gallery action limits per client IP
	ReloadTrigger chan struct{}      // Channel to trigger a manual content reload
}

// RateLimit configures the token bucket guarding gallery actions.
type RateLimit struct {
	Burst  int
	PerMin int
}

// Now returns the current time through TimeNow when set.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
