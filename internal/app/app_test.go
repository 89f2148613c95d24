package app

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/yingnomad/remotelife/internal/config"
	"github.com/yingnomad/remotelife/internal/httpserver"
	"github.com/yingnomad/remotelife/internal/httpserver/deps"
	"github.com/yingnomad/remotelife/internal/index"
	"github.com/yingnomad/remotelife/internal/logger"
	"github.com/yingnomad/remotelife/internal/markdown"
	"github.com/yingnomad/remotelife/internal/scheduler"
	"github.com/yingnomad/remotelife/internal/sources/content"
	"github.com/yingnomad/remotelife/internal/store/memory"
	"github.com/yingnomad/remotelife/internal/web"
)

func newTestApp(t *testing.T, listen string) (*App, *goredis.Client) {
	t.Helper()

	log := logger.Nop()
	cfg := &config.Config{ListenPort: listen, ShutdownTimeout: time.Second}

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})

	renderer, err := web.New()
	require.NoError(t, err)

	idx := index.NewMemoryIndex()
	sessions := memory.New(time.Hour)
	d := deps.Deps{
		Logger:        log,
		StartTime:     time.Now(),
		MemoryIndex:   idx,
		Store:         sessions,
		Renderer:      renderer,
		ReloadTrigger: make(chan struct{}, 1),
	}

	return &App{
		cfg:         cfg,
		logger:      log,
		server:      httpserver.New(cfg, log, d),
		redisClient: client,
		memIndex:    idx,
		reloader: scheduler.NewContentReloader(content.NewLoader(""),
			content.NewMapper(markdown.NewRenderer()), idx, log, 0, d.ReloadTrigger),
		collector: scheduler.NewSessionCollector(sessions, log, time.Minute),
	}, client
}

func TestRunTearsDownWhenServerFails(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = busy.Close() })

	a, client := newTestApp(t, busy.Addr().String())

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	select {
	case err := <-done:
		require.Error(t, err)
		require.Contains(t, err.Error(), "http server error")
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after the listener failed")
	}

	require.ErrorIs(t, client.Ping(context.Background()).Err(), goredis.ErrClosed)
}

func TestRunStopsOnCancel(t *testing.T) {
	a, client := newTestApp(t, "127.0.0.1:0")

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	require.Eventually(t, a.memIndex.Loaded, 2*time.Second, 10*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run() did not return after cancel")
	}

	require.ErrorIs(t, client.Ping(context.Background()).Err(), goredis.ErrClosed)
}
