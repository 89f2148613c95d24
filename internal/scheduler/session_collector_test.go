package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/yingnomad/remotelife/internal/domain"
	"github.com/yingnomad/remotelife/internal/logger"
	"github.com/yingnomad/remotelife/internal/store/memory"
)

func TestSessionCollector_Collect(t *testing.T) {
	ctx := context.Background()
	sessions := memory.New(time.Hour)

	seed := func(id string, st domain.GalleryState) {
		_, err := sessions.Update(ctx, id, func(domain.GalleryState) (domain.GalleryState, error) {
			return st, nil
		})
		if err != nil {
			t.Fatalf("Update failed: %v", err)
		}
	}
	seed("old", domain.GalleryState{CityID: "zurich", Open: true})
	seed("fresh", domain.GalleryState{CityID: "nyc"})

	sc := NewSessionCollector(sessions, logger.Nop(), time.Minute)

	// Nothing has expired yet
	if removed := sc.Collect(); removed != 0 {
		t.Errorf("Collect() removed %d sessions, want 0", removed)
	}

	// Two hours later both are past their TTL
	sc.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	if removed := sc.Collect(); removed != 2 {
		t.Errorf("Collect() removed %d sessions, want 2", removed)
	}
	if sessions.Len() != 0 {
		t.Errorf("Expected 0 sessions after GC, got %d", sessions.Len())
	}
}

func TestSessionCollector_DefaultInterval(t *testing.T) {
	sc := NewSessionCollector(memory.New(time.Hour), logger.Nop(), 0)
	if sc.interval != DefaultGCInterval {
		t.Errorf("interval = %v, want %v", sc.interval, DefaultGCInterval)
	}
}

func TestSessionCollector_StartStop(t *testing.T) {
	sc := NewSessionCollector(memory.New(time.Hour), logger.Nop(), time.Millisecond)
	sc.Start(context.Background())
	time.Sleep(5 * time.Millisecond)
	sc.Stop()
}
