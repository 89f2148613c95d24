package index

import (
	"sync"
	"time"

	"github.com/yingnomad/remotelife/internal/domain"
)

// Counts summarises the loaded catalog.
type Counts struct {
	Hobbies  int `json:"hobbies"`
	Cities   int `json:"cities"`
	Photos   int `json:"photos"`
	Sections int `json:"sections"`
}

// MemoryIndex holds the catalog currently served. Readers always see a
// complete catalog: a reload swaps it as a whole.
type MemoryIndex struct {
	mu         sync.RWMutex
	catalog    *domain.Catalog
	gallery    *domain.Gallery
	lastReload time.Time // Timestamp of last successful load
}

// NewMemoryIndex creates an empty index.
func NewMemoryIndex() *MemoryIndex {
	return &MemoryIndex{}
}

// Update replaces the catalog and rebuilds the gallery.
func (idx *MemoryIndex) Update(catalog *domain.Catalog) {
	gallery := domain.NewGallery(catalog.Cities)

	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.catalog = catalog
	idx.gallery = gallery
	idx.lastReload = time.Now()
}

// Catalog returns the current catalog, or nil before the first load.
func (idx *MemoryIndex) Catalog() *domain.Catalog {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.catalog
}

// Gallery returns the state machine for the current cities.
func (idx *MemoryIndex) Gallery() *domain.Gallery {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.gallery
}

// Snapshot returns catalog and gallery from the same load.
func (idx *MemoryIndex) Snapshot() (*domain.Catalog, *domain.Gallery) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.catalog, idx.gallery
}

// Loaded reports whether a catalog has been loaded.
func (idx *MemoryIndex) Loaded() bool {
	return idx.Catalog() != nil
}

// Counts returns the size of the loaded catalog.
func (idx *MemoryIndex) Counts() Counts {
	cat := idx.Catalog()
	if cat == nil {
		return Counts{}
	}
	return Counts{
		Hobbies:  len(cat.Hobbies),
		Cities:   len(cat.Cities),
		Photos:   cat.PhotoCount(),
		Sections: len(cat.Sections),
	}
}

// GetLastReload returns the timestamp of the last successful load.
func (idx *MemoryIndex) GetLastReload() time.Time {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	return idx.lastReload
}
