package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Fixed anchors rendered by the page layout itself.
const (
	AnchorHobbies = "hobbies"
	AnchorMap     = "map"
)

// MapSettings configures the map widget.
type MapSettings struct {
	TileURL     string
	Attribution string

	// Used when there is no city to fit.
	DefaultCenter LatLng
	DefaultZoom   int

	MinZoom int
	MaxZoom int

	// Padding in pixels kept between the fitted bounds and the map edge.
	Padding int
}

// Catalog is everything the home page shows. It is built once per content
// load and never mutated afterwards.
type Catalog struct {
	Hero     Hero
	Hobbies  []*Hobby
	Cities   []*City
	Sections []*Section
	Map      MapSettings
}

// Validate checks the catalog invariants and reports every violation at once.
func (c *Catalog) Validate() error {
	var errs []error

	seen := make(map[string]bool, len(c.Hobbies))
	for i, h := range c.Hobbies {
		switch {
		case strings.TrimSpace(h.ID) == "":
			errs = append(errs, fmt.Errorf("hobby #%d: empty id", i))
		case seen[h.ID]:
			errs = append(errs, fmt.Errorf("hobby %q: duplicate id", h.ID))
		}
		seen[h.ID] = true
		if strings.TrimSpace(h.TargetID) == "" {
			errs = append(errs, fmt.Errorf("hobby %q: empty target", h.ID))
		}
	}

	seen = make(map[string]bool, len(c.Cities))
	for i, city := range c.Cities {
		switch {
		case strings.TrimSpace(city.ID) == "":
			errs = append(errs, fmt.Errorf("city #%d: empty id", i))
		case seen[city.ID]:
			errs = append(errs, fmt.Errorf("city %q: duplicate id", city.ID))
		}
		seen[city.ID] = true
		if !city.Position.Valid() {
			errs = append(errs, fmt.Errorf("city %q: invalid coordinates %s", city.ID, city.Position))
		}
		photos := make(map[string]bool, len(city.Photos))
		for j, p := range city.Photos {
			if strings.TrimSpace(p) == "" {
				errs = append(errs, fmt.Errorf("city %q: photo #%d has an empty path", city.ID, j))
				continue
			}
			if photos[p] {
				errs = append(errs, fmt.Errorf("city %q: duplicate photo %q", city.ID, p))
			}
			photos[p] = true
		}
	}

	seen = map[string]bool{AnchorHobbies: true, AnchorMap: true}
	for i, s := range c.Sections {
		switch {
		case strings.TrimSpace(s.ID) == "":
			errs = append(errs, fmt.Errorf("section #%d: empty id", i))
		case seen[s.ID]:
			errs = append(errs, fmt.Errorf("section %q: duplicate or reserved id", s.ID))
		}
		seen[s.ID] = true
	}

	if c.Map.MinZoom > c.Map.MaxZoom {
		errs = append(errs, fmt.Errorf("map: min zoom %d above max zoom %d", c.Map.MinZoom, c.Map.MaxZoom))
	}
	if !c.Map.DefaultCenter.Valid() {
		errs = append(errs, fmt.Errorf("map: invalid default center %s", c.Map.DefaultCenter))
	}

	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidCatalog, errors.Join(errs...))
	}
	return nil
}

// Anchors lists every element id a shortcut may scroll to.
func (c *Catalog) Anchors() []string {
	anchors := make([]string, 0, len(c.Sections)+2)
	anchors = append(anchors, AnchorHobbies)
	for _, s := range c.Sections {
		anchors = append(anchors, s.ID)
	}
	return append(anchors, AnchorMap)
}

// ResolveAnchor returns the page element id for target, with or without a
// leading '#'. It fails with ErrUnknownAnchor when no such element exists.
func (c *Catalog) ResolveAnchor(target string) (string, error) {
	id := strings.TrimPrefix(strings.TrimSpace(target), "#")
	if id != "" {
		for _, a := range c.Anchors() {
			if a == id {
				return a, nil
			}
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownAnchor, target)
}

// City looks a city up by id.
func (c *Catalog) City(id string) (*City, bool) {
	for _, city := range c.Cities {
		if city.ID == id {
			return city, true
		}
	}
	return nil, false
}

// Hobby looks a hobby up by id.
func (c *Catalog) Hobby(id string) (*Hobby, bool) {
	for _, h := range c.Hobbies {
		if h.ID == id {
			return h, true
		}
	}
	return nil, false
}

// Positions returns every city coordinate in list order.
func (c *Catalog) Positions() []LatLng {
	out := make([]LatLng, 0, len(c.Cities))
	for _, city := range c.Cities {
		out = append(out, city.Position)
	}
	return out
}

// PhotoCount is the total number of photos across all cities.
func (c *Catalog) PhotoCount() int {
	n := 0
	for _, city := range c.Cities {
		n += len(city.Photos)
	}
	return n
}
