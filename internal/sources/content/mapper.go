package content

import (
	"fmt"
	"strings"

	"github.com/yingnomad/remotelife/internal/domain"
)

const defaultCityEmoji = "📍"

// MarkdownRenderer renders section bodies.
type MarkdownRenderer interface {
	Render(src string) (string, error)
}

// Mapper converts a content Config into a validated domain.Catalog.
type Mapper struct {
	md MarkdownRenderer
}

// NewMapper creates a mapper using md for section bodies.
func NewMapper(md MarkdownRenderer) *Mapper {
	return &Mapper{md: md}
}

// MapCatalog builds the catalog and checks its invariants.
func (m *Mapper) MapCatalog(cfg Config) (*domain.Catalog, error) {
	cat := &domain.Catalog{
		Hero: domain.Hero{
			Title:     strings.TrimSpace(cfg.Hero.Title),
			Tagline:   strings.TrimSpace(cfg.Hero.Tagline),
			Signature: strings.TrimSpace(cfg.Hero.Signature),
		},
		Hobbies:  make([]*domain.Hobby, 0, len(cfg.Hobbies)),
		Cities:   make([]*domain.City, 0, len(cfg.Cities)),
		Sections: make([]*domain.Section, 0, len(cfg.Sections)),
		Map:      mapSettings(cfg.Map),
	}

	for _, l := range cfg.Hero.Links {
		cat.Hero.Links = append(cat.Hero.Links, domain.HeroLink{
			Label:  l.Label,
			Anchor: strings.TrimPrefix(l.Anchor, "#"),
		})
	}

	for _, h := range cfg.Hobbies {
		target := h.Target
		if target == "" {
			target = h.ID
		}
		cat.Hobbies = append(cat.Hobbies, &domain.Hobby{
			ID:       h.ID,
			Label:    h.Label,
			Emoji:    h.Emoji,
			TargetID: strings.TrimPrefix(target, "#"),
			Color:    h.Color,
			Cover:    h.Cover,
		})
	}

	for _, c := range cfg.Cities {
		if len(c.Position) != 2 {
			return nil, fmt.Errorf("%w: city %q: position needs [lat, lng], got %d values",
				domain.ErrInvalidCatalog, c.ID, len(c.Position))
		}
		emoji := c.Emoji
		if emoji == "" {
			emoji = defaultCityEmoji
		}
		photos := make([]string, len(c.Photos))
		copy(photos, c.Photos)
		cat.Cities = append(cat.Cities, &domain.City{
			ID:       c.ID,
			Name:     c.Name,
			Emoji:    emoji,
			Position: domain.LatLng{Lat: c.Position[0], Lng: c.Position[1]},
			Photos:   photos,
			Blurb:    strings.TrimSpace(c.Blurb),
		})
	}

	for _, s := range cfg.Sections {
		html, err := m.md.Render(s.Body)
		if err != nil {
			return nil, fmt.Errorf("section %q: %w", s.ID, err)
		}
		cat.Sections = append(cat.Sections, &domain.Section{
			ID:    s.ID,
			Title: s.Title,
			Body:  s.Body,
			HTML:  html,
		})
	}

	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return cat, nil
}

func mapSettings(e MapEntry) domain.MapSettings {
	s := domain.MapSettings{
		TileURL:       e.TileURL,
		Attribution:   e.Attribution,
		DefaultCenter: domain.LatLng{Lat: 48.86, Lng: 2.35},
		DefaultZoom:   5,
		MinZoom:       1,
		MaxZoom:       12,
		Padding:       40,
	}
	if s.TileURL == "" {
		s.TileURL = "https://{s}.tile.openstreetmap.org/{z}/{x}/{y}.png"
		s.Attribution = "&copy; OpenStreetMap contributors"
	}
	if len(e.Center) == 2 {
		s.DefaultCenter = domain.LatLng{Lat: e.Center[0], Lng: e.Center[1]}
	}
	if e.Zoom > 0 {
		s.DefaultZoom = e.Zoom
	}
	if e.MinZoom > 0 {
		s.MinZoom = e.MinZoom
	}
	if e.MaxZoom > 0 {
		s.MaxZoom = e.MaxZoom
	}
	if e.Padding != nil {
		s.Padding = *e.Padding
	}
	return s
}
