package domain

import (
	"fmt"
	"math"
)

// LatLng is a WGS84 coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Valid reports whether the pair is a finite latitude/longitude.
func (p LatLng) Valid() bool {
	if math.IsNaN(p.Lat) || math.IsNaN(p.Lng) || math.IsInf(p.Lat, 0) || math.IsInf(p.Lng, 0) {
		return false
	}
	return p.Lat >= -90 && p.Lat <= 90 && p.Lng >= -180 && p.Lng <= 180
}

func (p LatLng) String() string {
	return fmt.Sprintf("[%.4f, %.4f]", p.Lat, p.Lng)
}

// City is a place pinned on the map. Photos are image paths in gallery order.
type City struct {
	ID       string
	Name     string
	Emoji    string
	Position LatLng
	Photos   []string
	Blurb    string
}

// HasPhotos reports whether the lightbox can be opened for this city.
func (c *City) HasPhotos() bool {
	return c != nil && len(c.Photos) > 0
}

// Photo returns the i-th photo path.
func (c *City) Photo(i int) (string, bool) {
	if c == nil || i < 0 || i >= len(c.Photos) {
		return "", false
	}
	return c.Photos[i], true
}
