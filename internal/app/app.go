package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/yingnomad/remotelife/internal/config"
	"github.com/yingnomad/remotelife/internal/domain"
	"github.com/yingnomad/remotelife/internal/httpserver"
	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/index"
	"github.com/yingnomad/remotelife/internal/logger"
	"github.com/yingnomad/remotelife/internal/markdown"
	"github.com/yingnomad/remotelife/internal/redis"
	"github.com/yingnomad/remotelife/internal/scheduler"
	"github.com/yingnomad/remotelife/internal/sources/content"
	"github.com/yingnomad/remotelife/internal/store"
	"github.com/yingnomad/remotelife/internal/store/memory"
	redisstore "github.com/yingnomad/remotelife/internal/store/redis"
	"github.com/yingnomad/remotelife/internal/utils"
	"github.com/yingnomad/remotelife/internal/version"
	"github.com/yingnomad/remotelife/internal/web"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	memIndex    *index.MemoryIndex
	reloader    *scheduler.ContentReloader
	collector   *scheduler.SessionCollector // nil with Redis, keys expire there
}

// New builds the application. ctx bounds the initial Redis connection.
func New(ctx context.Context) (*App, error) {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	renderer, err := web.New()
	if err != nil {
		return nil, err
	}

	// Session store: Redis when configured (fail fast if unreachable), memory otherwise
	var (
		sessions    store.Store
		redisClient *goredis.Client
		collector   *scheduler.SessionCollector
	)
	if cfg.UseRedis() {
		loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		redisClient, err = redis.New(ctx, redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			UseTLS:         cfg.RedisTLS,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			RedisDB:        cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, loggerClient)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		sessions = redisstore.NewStore(redisClient, cfg.SessionTTL)
		loggerClient.Info("Redis session store initialized")
	} else {
		mem := memory.New(cfg.SessionTTL)
		sessions = mem
		collector = scheduler.NewSessionCollector(mem, loggerClient, cfg.GCInterval)
		loggerClient.Info("REMOTELIFE_REDIS_ADDR not set, sessions kept in memory")
	}

	memIndex := index.NewMemoryIndex()

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	loader := content.NewLoader(cfg.ContentFile)
	reloader := scheduler.NewContentReloader(
		loader,
		content.NewMapper(markdown.NewRenderer()),
		memIndex,
		loggerClient,
		cfg.ReloadInterval,
		reloadTrigger,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:        loggerClient,
		StartTime:     time.Now(),
		Version:       version.Version,
		Commit:        version.Commit,
		BuildDate:     version.BuildDate,
		GoVersion:     version.GoVersion,
		TimeNow:       time.Now,
		AllowedHosts:  cfg.AllowedHosts,
		AllowedCIDRS:  cfg.AllowedCIDRS,
		TrustProxy:    cfg.TrustProxy,
		SiteURL:       cfg.SiteURL,
		PublicDir:     cfg.PublicDir,
		ContentSource: loader.Source(),
		MemoryIndex:   memIndex,
		Store:         sessions,
		Renderer:      renderer,
		Viewport:      domain.Viewport{Width: cfg.MapWidth, Height: cfg.MapHeight},
		SecureCookie:  cfg.SecureCookie,
		SessionTTL:    cfg.SessionTTL,
		RateLimit:     deps.RateLimit{Burst: cfg.RateLimitBurst, PerMin: cfg.RateLimitPerMin},
		ReloadTrigger: reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		memIndex:    memIndex,
		reloader:    reloader,
		collector:   collector,
	}, nil
}

// Run serves until ctx is cancelled, then shuts everything down.
func (a *App) Run(ctx context.Context) error {
	defer func() { _ = a.logger.Sync() }()

	a.logger.Infof("🚀 Starting remotelife %s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("remotelife %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	// Load content before accepting requests
	if err := a.reloader.Start(ctx); err != nil {
		a.closeRedis()
		return fmt.Errorf("failed to start content reloader: %w", err)
	}
	a.logger.Info("content reloader started",
		logger.Duration("interval", a.cfg.ReloadInterval))

	if a.collector != nil {
		a.collector.Start(ctx)
		a.logger.Info("session collector started",
			logger.Duration("interval", a.cfg.GCInterval))
	}

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var serveErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case serveErr = <-errCh:
		a.logger.Error("HTTP server failed, shutting down", logger.Error(serveErr))
	}

	return errors.Join(serveErr, a.shutdown())
}

// shutdown stops the schedulers, drains the server and closes Redis.
func (a *App) shutdown() error {
	a.reloader.Stop()
	if a.collector != nil {
		a.collector.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	var err error
	if stopErr := a.server.Stop(shutdownCtx); stopErr != nil {
		err = fmt.Errorf("failed to stop server: %w", stopErr)
	}

	a.closeRedis()

	if err == nil {
		a.logger.Info("✅ remotelife stopped cleanly",
			logger.Int("cities", a.memIndex.Counts().Cities))
	}
	return err
}

func (a *App) closeRedis() {
	if a.redisClient != nil {
		utils.CloseLogged(a.redisClient, a.logger, "Redis")
	}
}
