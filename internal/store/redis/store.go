package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yingnomad/remotelife/internal/domain"
	"github.com/yingnomad/remotelife/internal/store"
)

// Store keeps gallery sessions and view counters in Redis.
// Session keys expire on their own, so no collector is needed.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

var (
	_ store.Store   = (*Store)(nil)
	_ store.Flusher = (*Store)(nil)
)

// NewStore creates a Redis store; ttl <= 0 selects store.DefaultSessionTTL.
func NewStore(client *redis.Client, ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = store.DefaultSessionTTL
	}
	return &Store{
		client: client,
		ttl:    ttl,
	}
}

// Load retrieves a session's gallery state; a missing key is the idle state.
func (s *Store) Load(ctx context.Context, sessionID string) (domain.GalleryState, error) {
	return decodeState(s.client.Get(ctx, SessionKey(sessionID)).Bytes())
}

func decodeState(data []byte, err error) (domain.GalleryState, error) {
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return domain.GalleryState{}, nil
		}
		return domain.GalleryState{}, fmt.Errorf("failed to get session: %w", err)
	}

	var st domain.GalleryState
	if err := json.Unmarshal(data, &st); err != nil {
		return domain.GalleryState{}, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	return st, nil
}

// maxUpdateAttempts bounds the optimistic retries of Update.
const maxUpdateAttempts = 16

// Update applies fn inside a WATCH/MULTI transaction on the session key and
// retries when another request wrote the key in between.
func (s *Store) Update(ctx context.Context, sessionID string, fn store.UpdateFunc) (domain.GalleryState, error) {
	key := SessionKey(sessionID)
	var next domain.GalleryState

	txf := func(tx *redis.Tx) error {
		current, err := decodeState(tx.Get(ctx, key).Bytes())
		if err != nil {
			return err
		}
		next, err = fn(current)
		if err != nil {
			next = current
			return err
		}
		data, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, s.ttl)
			return nil
		})
		return err
	}

	for range maxUpdateAttempts {
		err := s.client.Watch(ctx, txf, key)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return next, err
	}
	return next, fmt.Errorf("%w: %s", store.ErrConflict, sessionID)
}

// Delete removes a session.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	if err := s.client.Del(ctx, SessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// FlushSessions removes every stored session and returns how many were deleted.
func (s *Store) FlushSessions(ctx context.Context) (int, error) {
	removed := 0
	iter := s.client.Scan(ctx, 0, KeyPrefixSession+"*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.client.Del(ctx, iter.Val()).Err(); err != nil {
			return removed, fmt.Errorf("failed to delete session key: %w", err)
		}
		removed++
	}
	if err := iter.Err(); err != nil {
		return removed, fmt.Errorf("failed to flush sessions: %w", err)
	}
	return removed, nil
}

// Ping checks the connection.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}

func (s *Store) Mode() string { return "redis" }
