package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request deadline (ex: 10s)

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SiteURL        string        // public URL of the page, used for canonical links (optional)
	ContentFile    string        // path to a content.yaml overriding the embedded one (optional)
	PublicDir      string        // directory serving /photos and /hobbies images
	ReloadInterval time.Duration // interval to reload the content file (default: 10m)

	SessionTTL   time.Duration // idle lifetime of a visitor's gallery state
	GCInterval   time.Duration // interval to sweep expired in-memory sessions
	SecureCookie bool          // mark the session cookie Secure (HTTPS deployments)

	MapWidth  int // default viewport used to fit the map server side
	MapHeight int

	RateLimitBurst  int // gallery actions allowed in a burst per IP
	RateLimitPerMin int // sustained gallery actions per IP per minute

	// Redis (optional, empty RedisAddr => in-memory sessions)
	RedisAddr             string        // ex: "localhost:6379"
	RedisUser             string        // optional
	RedisPassword         string        // optional
	RedisPasswordRequired bool          // true => require password
	RedisTLS              bool          // dial with TLS
	RedisDB               int           // Redis DB number
	RedisDT               time.Duration // Redis dial timeout (ex: 5s)
	RedisRT               time.Duration // Redis read timeout (ex: 3s)
	RedisWT               time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait          time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout      time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize         int           // Redis connection pool size
	RedisConnectTimeout   time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval    time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold    int           // warn after this many attempts

	AllowedHosts []string // optional, restrict ops endpoints to specific Host headers
	AllowedCIDRS []string // optional, restrict ops endpoints to specific IPs/CIDRs
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      listenAddr(),
		ShutdownTimeout: mustDuration("REMOTELIFE_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("REMOTELIFE_REQUEST_TIMEOUT", 10*time.Second),

		// Logging
		LogLevel:  getenv("REMOTELIFE_LOG_LEVEL", "info"),
		PrettyLog: mustBool("REMOTELIFE_PRETTY_LOG", false),

		// Content
		SiteURL:        strings.TrimRight(getenv("REMOTELIFE_SITE_URL", ""), "/"),
		ContentFile:    getenv("REMOTELIFE_CONTENT_FILE", ""), // empty = embedded content
		PublicDir:      getenv("REMOTELIFE_PUBLIC_DIR", "public"),
		ReloadInterval: mustDuration("REMOTELIFE_RELOAD_INTERVAL", 10*time.Minute),

		// Sessions
		SessionTTL:   mustDuration("REMOTELIFE_SESSION_TTL", 12*time.Hour),
		GCInterval:   mustDuration("REMOTELIFE_GC_INTERVAL", 15*time.Minute),
		SecureCookie: mustBool("REMOTELIFE_SECURE_COOKIE", false),

		// Map
		MapWidth:  getenvInt("REMOTELIFE_MAP_WIDTH", 720),
		MapHeight: getenvInt("REMOTELIFE_MAP_HEIGHT", 560),

		// Rate limiting of gallery actions
		RateLimitBurst:  getenvInt("REMOTELIFE_RATE_LIMIT_BURST", 60),
		RateLimitPerMin: getenvInt("REMOTELIFE_RATE_LIMIT_PER_MIN", 120),

		// Redis settings
		RedisAddr:             getenv("REMOTELIFE_REDIS_ADDR", ""),
		RedisUser:             getenv("REMOTELIFE_REDIS_USERNAME", "default"),
		RedisPasswordRequired: mustBool("REMOTELIFE_REDIS_PASSWORD_REQUIRED", false),
		RedisTLS:              mustBool("REMOTELIFE_REDIS_TLS", false),
		RedisDB:               getenvInt("REMOTELIFE_REDIS_DB", 0),
		RedisDT:               mustDuration("REMOTELIFE_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:               mustDuration("REMOTELIFE_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:               mustDuration("REMOTELIFE_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:          mustDuration("REMOTELIFE_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:      mustDuration("REMOTELIFE_REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:         getenvInt("REMOTELIFE_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout:   mustDuration("REMOTELIFE_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:    mustDuration("REMOTELIFE_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:    getenvInt("REMOTELIFE_REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("REMOTELIFE_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("REMOTELIFE_ALLOWED_CIDRS", "127.0.0.1/32, ::1/128")),
		TrustProxy:   mustBool("REMOTELIFE_TRUST_PROXY", false),
	}

	// The password only matters when Redis is actually used
	if cfg.RedisAddr != "" && cfg.RedisPasswordRequired {
		cfg.RedisPassword = requireEnv("REMOTELIFE_REDIS_PASSWORD")
	} else {
		cfg.RedisPassword = getenv("REMOTELIFE_REDIS_PASSWORD", "")
	}

	if cfg.MapWidth <= 0 || cfg.MapHeight <= 0 {
		panic(fmt.Sprintf("❌ FATAL: map viewport must be positive, got %dx%d", cfg.MapWidth, cfg.MapHeight))
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		cfgCopy := *cfg
		if cfgCopy.RedisPassword != "" {
			cfgCopy.RedisPassword = "***REDACTED***"
		}
		log.Printf("[DEBUG] cfg: %+v\n", cfgCopy)
	}

	return cfg
}

// UseRedis reports whether sessions are kept in Redis.
func (c *Config) UseRedis() bool {
	return c.RedisAddr != ""
}

// listenAddr prefers REMOTELIFE_LISTEN_PORT, then the PORT set by most PaaS.
func listenAddr() string {
	if v := getenv("REMOTELIFE_LISTEN_PORT", ""); v != "" {
		return v
	}
	if p := getenv("PORT", ""); p != "" {
		return ":" + strings.TrimPrefix(p, ":")
	}
	return ":8080"
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
