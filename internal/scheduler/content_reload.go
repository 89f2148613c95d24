package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/yingnomad/remotelife/internal/index"
	"github.com/yingnomad/remotelife/internal/logger"
	"github.com/yingnomad/remotelife/internal/sources/content"
)

// ContentReloader handles periodic reloading of the page content
type ContentReloader struct {
	loader        *content.Loader
	mapper        *content.Mapper
	index         *index.MemoryIndex
	logger        logger.Logger
	interval      time.Duration
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewContentReloader creates a new content reloader
func NewContentReloader(
	loader *content.Loader,
	mapper *content.Mapper,
	idx *index.MemoryIndex,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *ContentReloader {
	return &ContentReloader{
		loader:        loader,
		mapper:        mapper,
		index:         idx,
		logger:        log,
		interval:      interval,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start loads the content once and then keeps it fresh. A page cannot be
// served without content, so the first load must succeed.
func (cr *ContentReloader) Start(ctx context.Context) error {
	if err := cr.Reload(ctx); err != nil {
		return fmt.Errorf("initial content load failed: %w", err)
	}

	// The embedded content never changes, only manual triggers matter then
	var ticker *time.Ticker
	var tick <-chan time.Time
	if cr.interval > 0 && cr.loader.Source() != "embedded" {
		ticker = time.NewTicker(cr.interval)
		tick = ticker.C
	}

	go func() {
		if ticker != nil {
			defer ticker.Stop()
		}
		for {
			select {
			case <-tick:
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload content, keeping previous catalog",
						logger.Error(err))
				}
			case <-cr.manualTrigger:
				cr.logger.Info("manual reload triggered")
				if err := cr.Reload(ctx); err != nil {
					cr.logger.Error("failed to reload content, keeping previous catalog",
						logger.Error(err))
				}
			case <-cr.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the reloader
func (cr *ContentReloader) Stop() {
	close(cr.stopCh)
}

// Reload reads the content file and swaps the served catalog. On error the
// index keeps the catalog it had.
func (cr *ContentReloader) Reload(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	cr.logger.Debug("reloading content",
		logger.String("source", cr.loader.Source()))

	cfg, err := cr.loader.Load()
	if err != nil {
		return fmt.Errorf("failed to load content: %w", err)
	}

	catalog, err := cr.mapper.MapCatalog(cfg)
	if err != nil {
		return fmt.Errorf("failed to map content: %w", err)
	}

	cr.index.Update(catalog)

	counts := cr.index.Counts()
	cr.logger.Info("content loaded",
		logger.String("source", cr.loader.Source()),
		logger.Int("hobbies", counts.Hobbies),
		logger.Int("cities", counts.Cities),
		logger.Int("photos", counts.Photos),
		logger.Int("sections", counts.Sections))

	return nil
}
