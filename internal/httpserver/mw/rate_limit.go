package mw

import (
	"math"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/yingnomad/remotelife/internal/logger"
	"github.com/yingnomad/remotelife/internal/utils"
)

type RateLimitConfig struct {
	Burst             int              // bucket capacity per client IP
	RefillPerIPPerMin int              // tokens added per minute
	MaxEntries        int              // tracked IPs before idle buckets are evicted early
	IdleTTL           time.Duration    // buckets unseen for this long are dropped
	TrustProxy        bool             // resolve IP from proxy headers when true
	Logger            logger.Logger    // optional, logs throttled clients at debug level
	Now               func() time.Time // defaults to time.Now
}

func (c *RateLimitConfig) defaults() {
	c.Burst = max(c.Burst, 1)
	c.RefillPerIPPerMin = max(c.RefillPerIPPerMin, 1)
	if c.MaxEntries <= 0 {
		c.MaxEntries = 10000
	}
	if c.IdleTTL <= 0 {
		c.IdleTTL = 15 * time.Minute
	}
	if c.Now == nil {
		c.Now = time.Now
	}
	if c.Logger == nil {
		c.Logger = logger.Nop()
	}
}

type bucket struct {
	tokens float64
	seen   time.Time
}

// decision is the outcome of one take.
type decision struct {
	allowed    bool
	remaining  int
	retryAfter int // seconds, only when !allowed
}

type tokenBuckets struct {
	mu       sync.Mutex
	perSec   float64
	capacity float64
	idleTTL  time.Duration
	max      int
	buckets  map[string]*bucket
	swept    time.Time
}

func newTokenBuckets(cfg RateLimitConfig) *tokenBuckets {
	return &tokenBuckets{
		perSec:   float64(cfg.RefillPerIPPerMin) / 60,
		capacity: float64(cfg.Burst),
		idleTTL:  cfg.IdleTTL,
		max:      cfg.MaxEntries,
		buckets:  make(map[string]*bucket),
		swept:    cfg.Now(),
	}
}

func (tb *tokenBuckets) take(key string, now time.Time) decision {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	if len(tb.buckets) >= tb.max || now.Sub(tb.swept) >= time.Minute {
		tb.evictIdle(now)
	}

	b, ok := tb.buckets[key]
	if !ok {
		b = &bucket{tokens: tb.capacity, seen: now}
		tb.buckets[key] = b
	}
	if elapsed := now.Sub(b.seen).Seconds(); elapsed > 0 {
		b.tokens = math.Min(tb.capacity, b.tokens+elapsed*tb.perSec)
	}
	b.seen = now

	if b.tokens < 1 {
		wait := int(math.Ceil((1 - b.tokens) / tb.perSec))
		return decision{retryAfter: max(wait, 1)}
	}
	b.tokens--
	return decision{allowed: true, remaining: int(b.tokens)}
}

func (tb *tokenBuckets) evictIdle(now time.Time) {
	for key, b := range tb.buckets {
		if now.Sub(b.seen) > tb.idleTTL {
			delete(tb.buckets, key)
		}
	}
	tb.swept = now
}

// RateLimit throttles requests per client IP with a token bucket. A throttled
// htmx request keeps the current swap target untouched.
func RateLimit(cfg RateLimitConfig) func(http.Handler) http.Handler {
	cfg.defaults()
	tb := newTokenBuckets(cfg)
	limit := strconv.Itoa(cfg.Burst)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ip := utils.ClientIP(r, cfg.TrustProxy)
			d := tb.take(ip, cfg.Now())

			w.Header().Set("X-RateLimit-Limit", limit)
			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(d.remaining))
			if !d.allowed {
				cfg.Logger.Debug("rate limited",
					logger.String("remote_ip", ip),
					logger.String("path", r.URL.Path),
					logger.Int("retry_after", d.retryAfter))
				w.Header().Set("Retry-After", strconv.Itoa(d.retryAfter))
				w.Header().Set("HX-Reswap", "none")
				http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
