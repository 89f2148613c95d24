package redis

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yingnomad/remotelife/internal/domain"
)

// save seeds a session through Update.
func save(t *testing.T, s *Store, id string, st domain.GalleryState) {
	t.Helper()
	_, err := s.Update(context.Background(), id, func(domain.GalleryState) (domain.GalleryState, error) {
		return st, nil
	})
	require.NoError(t, err)
}

func newTestStore(t *testing.T, ttl time.Duration) (*Store, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewStore(client, ttl), mr
}

func TestStoreUpdateLoad(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Hour)
	want := domain.GalleryState{CityID: "nyc", Open: true, Index: 6}

	save(t, s, "sid-1", want)
	require.True(t, mr.Exists(SessionKey("sid-1")))
	require.Equal(t, time.Hour, mr.TTL(SessionKey("sid-1")))

	got, err := s.Load(ctx, "sid-1")
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestStoreLoadMissingIsIdle(t *testing.T) {
	s, _ := newTestStore(t, time.Hour)

	got, err := s.Load(context.Background(), "unknown")
	require.NoError(t, err)
	require.Equal(t, domain.GalleryState{}, got)
}

func TestStoreSessionExpires(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Minute)

	save(t, s, "sid", domain.GalleryState{CityID: "zurich"})
	mr.FastForward(2 * time.Minute)

	got, err := s.Load(ctx, "sid")
	require.NoError(t, err)
	require.Equal(t, domain.GalleryState{}, got)
}

func TestStoreLoadCorruptValue(t *testing.T) {
	s, mr := newTestStore(t, time.Hour)
	require.NoError(t, mr.Set(SessionKey("sid"), "{not json"))

	_, err := s.Load(context.Background(), "sid")
	require.Error(t, err)
}

func TestStoreDeleteAndFlush(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Hour)

	for _, id := range []string{"a", "b", "c"} {
		save(t, s, id, domain.GalleryState{CityID: "paris"})
	}
	require.NoError(t, s.IncrementViews(ctx, "paris"))

	require.NoError(t, s.Delete(ctx, "a"))
	require.False(t, mr.Exists(SessionKey("a")))

	removed, err := s.FlushSessions(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, removed)
	require.True(t, mr.Exists(ViewsKey()), "flush must keep view counters")
}

func TestStoreViews(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Hour)

	require.NoError(t, s.IncrementViews(ctx, "zurich"))
	require.NoError(t, s.IncrementViews(ctx, "zurich"))
	require.NoError(t, s.IncrementViews(ctx, "nyc"))
	mr.HSet(ViewsKey(), "garbage", "x")

	views, err := s.Views(ctx)
	require.NoError(t, err)
	require.Equal(t, map[string]int64{"zurich": 2, "nyc": 1}, views)
}

func TestStorePingAndMode(t *testing.T) {
	s, mr := newTestStore(t, 0)
	require.Equal(t, "redis", s.Mode())
	require.NoError(t, s.Ping(context.Background()))

	mr.Close()
	require.Error(t, s.Ping(context.Background()))
}

func TestStoreUpdate(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Hour)

	got, err := s.Update(ctx, "sid", func(st domain.GalleryState) (domain.GalleryState, error) {
		require.Equal(t, domain.GalleryState{}, st)
		return domain.GalleryState{CityID: "zurich", Open: true}, nil
	})
	require.NoError(t, err)
	require.Equal(t, domain.GalleryState{CityID: "zurich", Open: true}, got)
	require.Equal(t, time.Hour, mr.TTL(SessionKey("sid")))

	// A failing transition writes nothing
	boom := errors.New("boom")
	got, err = s.Update(ctx, "sid", func(domain.GalleryState) (domain.GalleryState, error) {
		return domain.GalleryState{}, boom
	})
	require.ErrorIs(t, err, boom)
	require.Equal(t, domain.GalleryState{CityID: "zurich", Open: true}, got)

	loaded, err := s.Load(ctx, "sid")
	require.NoError(t, err)
	require.Equal(t, domain.GalleryState{CityID: "zurich", Open: true}, loaded)
}

func TestStoreUpdateRetriesOnConcurrentWrite(t *testing.T) {
	ctx := context.Background()
	s, mr := newTestStore(t, time.Hour)
	save(t, s, "sid", domain.GalleryState{CityID: "nyc", Open: true})

	calls := 0
	got, err := s.Update(ctx, "sid", func(st domain.GalleryState) (domain.GalleryState, error) {
		calls++
		if calls == 1 {
			// Another request moves on while this one is computing
			data, _ := json.Marshal(domain.GalleryState{CityID: "nyc", Open: true, Index: 1})
			require.NoError(t, mr.Set(SessionKey("sid"), string(data)))
		}
		st.Index++
		return st, nil
	})
	require.NoError(t, err)
	require.Equal(t, 2, calls)
	require.Equal(t, 2, got.Index)
}

func TestStoreUpdateConcurrent(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, time.Hour)
	save(t, s, "sid", domain.GalleryState{CityID: "nyc", Open: true})

	const writers = 5
	var wg sync.WaitGroup
	for range writers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, "sid", func(st domain.GalleryState) (domain.GalleryState, error) {
				st.Index++
				return st, nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, err := s.Load(ctx, "sid")
	require.NoError(t, err)
	require.Equal(t, writers, got.Index)
}
