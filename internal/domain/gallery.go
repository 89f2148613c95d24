package domain

import "fmt"

// Keys understood by the lightbox.
const (
	KeyEscape     = "Escape"
	KeyArrowLeft  = "ArrowLeft"
	KeyArrowRight = "ArrowRight"
)

// Phase is the coarse state of the map widget.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseCitySelected
	PhaseLightbox
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseCitySelected:
		return "city-selected"
	case PhaseLightbox:
		return "lightbox"
	default:
		return fmt.Sprintf("phase(%d)", int(p))
	}
}

// GalleryState is the view state of one visitor's map widget.
// The zero value is the idle state.
type GalleryState struct {
	CityID string `json:"city,omitempty"`
	Open   bool   `json:"open,omitempty"`
	Index  int    `json:"idx,omitempty"`
}

// Phase derives the coarse state.
func (s GalleryState) Phase() Phase {
	switch {
	case s.CityID == "":
		return PhaseIdle
	case s.Open:
		return PhaseLightbox
	default:
		return PhaseCitySelected
	}
}

// Gallery applies user input to a GalleryState. It holds no per-visitor
// data and is safe for concurrent use.
type Gallery struct {
	cities []*City
	byID   map[string]*City
}

// NewGallery indexes the cities of the map.
func NewGallery(cities []*City) *Gallery {
	g := &Gallery{cities: cities, byID: make(map[string]*City, len(cities))}
	for _, c := range cities {
		g.byID[c.ID] = c
	}
	return g
}

// Cities returns the cities in display order.
func (g *Gallery) Cities() []*City { return g.cities }

// City looks a city up by id.
func (g *Gallery) City(id string) (*City, bool) {
	c, ok := g.byID[id]
	return c, ok
}

// Select handles a click on a city marker. A city with photos opens the
// lightbox on its first photo; a city without photos is only selected.
func (g *Gallery) Select(s GalleryState, cityID string) (GalleryState, error) {
	c, ok := g.byID[cityID]
	if !ok {
		return s, fmt.Errorf("%w: %q", ErrUnknownCity, cityID)
	}
	if !c.HasPhotos() {
		return GalleryState{CityID: c.ID}, nil
	}
	return GalleryState{CityID: c.ID, Open: true, Index: 0}, nil
}

// OpenPhoto handles a click on a thumbnail of the selected city.
func (g *Gallery) OpenPhoto(s GalleryState, index int) (GalleryState, error) {
	c, ok := g.byID[s.CityID]
	if !ok {
		return s, ErrNoSelection
	}
	if !c.HasPhotos() {
		return s, ErrNoPhotos
	}
	if index < 0 || index >= len(c.Photos) {
		return s, fmt.Errorf("%w: %d not in [0, %d)", ErrPhotoOutOfRange, index, len(c.Photos))
	}
	return GalleryState{CityID: c.ID, Open: true, Index: index}, nil
}

// Next shows the following photo, wrapping to the first.
func (g *Gallery) Next(s GalleryState) GalleryState { return g.step(s, 1) }

// Prev shows the preceding photo, wrapping to the last.
func (g *Gallery) Prev(s GalleryState) GalleryState { return g.step(s, -1) }

func (g *Gallery) step(s GalleryState, delta int) GalleryState {
	if !s.Open {
		return s
	}
	c, ok := g.byID[s.CityID]
	if !ok || !c.HasPhotos() {
		return s
	}
	n := len(c.Photos)
	s.Index = ((s.Index+delta)%n + n) % n
	return s
}

// Close leaves the lightbox and returns to the selected city.
func (g *Gallery) Close(s GalleryState) GalleryState {
	s.Open = false
	return s
}

// Deselect clears the side panel.
func (g *Gallery) Deselect(GalleryState) GalleryState {
	return GalleryState{}
}

// Key handles a key press. Keys only act while the lightbox is open.
func (g *Gallery) Key(s GalleryState, key string) GalleryState {
	if !s.Open {
		return s
	}
	switch key {
	case KeyEscape:
		return g.Close(s)
	case KeyArrowRight:
		return g.Next(s)
	case KeyArrowLeft:
		return g.Prev(s)
	default:
		return s
	}
}

// Normalize repairs a stored state against the current city list, which may
// have changed since the state was saved.
func (g *Gallery) Normalize(s GalleryState) GalleryState {
	if s.CityID == "" {
		return GalleryState{}
	}
	c, ok := g.byID[s.CityID]
	if !ok {
		return GalleryState{}
	}
	if !c.HasPhotos() {
		return GalleryState{CityID: c.ID}
	}
	if s.Index < 0 || s.Index >= len(c.Photos) {
		s.Index = 0
	}
	return s
}

// Thumbnail is one entry of the side panel grid or the lightbox strip.
type Thumbnail struct {
	Index  int
	Number int
	Path   string
	Active bool
}

// GalleryView is what the templates need to draw the side panel and the lightbox.
type GalleryView struct {
	Phase      Phase
	City       *City
	Open       bool
	Index      int
	Number     int // 1-based position of the current photo
	Total      int
	Photo      string
	Thumbnails []Thumbnail
}

// View resolves a state into renderable data.
func (g *Gallery) View(s GalleryState) GalleryView {
	s = g.Normalize(s)
	v := GalleryView{Phase: s.Phase()}
	c, ok := g.byID[s.CityID]
	if !ok {
		return v
	}

	v.City = c
	v.Total = len(c.Photos)
	v.Thumbnails = make([]Thumbnail, 0, len(c.Photos))
	for i, p := range c.Photos {
		v.Thumbnails = append(v.Thumbnails, Thumbnail{
			Index:  i,
			Number: i + 1,
			Path:   p,
			Active: s.Open && i == s.Index,
		})
	}
	if photo, ok := c.Photo(s.Index); ok && s.Open {
		v.Open = true
		v.Index = s.Index
		v.Number = s.Index + 1
		v.Photo = photo
	}
	return v
}
