package redis

import (
	"context"
	"fmt"
	"strconv"
)

// IncrementViews increments the marker click counter of a city
func (s *Store) IncrementViews(ctx context.Context, cityID string) error {
	if err := s.client.HIncrBy(ctx, ViewsKey(), cityID, 1).Err(); err != nil {
		return fmt.Errorf("failed to increment views: %w", err)
	}
	return nil
}

// Views returns the click counter of every city seen so far
func (s *Store) Views(ctx context.Context) (map[string]int64, error) {
	raw, err := s.client.HGetAll(ctx, ViewsKey()).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get views: %w", err)
	}

	stats := make(map[string]int64, len(raw))
	for cityID, v := range raw {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			// Skip values someone wrote by hand
			continue
		}
		stats[cityID] = n
	}
	return stats, nil
}
