package domain

import "math"

const (
	tileSize = 256.0

	// Web Mercator cannot represent the poles.
	maxMercatorLat = 85.0511287798
)

// Bounds is a latitude/longitude rectangle.
type Bounds struct {
	SouthWest LatLng `json:"south_west"`
	NorthEast LatLng `json:"north_east"`
}

// BoundsOf returns the smallest rectangle enclosing every point.
// ok is false when points is empty.
func BoundsOf(points []LatLng) (b Bounds, ok bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b = Bounds{SouthWest: points[0], NorthEast: points[0]}
	for _, p := range points[1:] {
		b = b.Extend(p)
	}
	return b, true
}

// Extend grows the rectangle to include p.
func (b Bounds) Extend(p LatLng) Bounds {
	b.SouthWest.Lat = math.Min(b.SouthWest.Lat, p.Lat)
	b.SouthWest.Lng = math.Min(b.SouthWest.Lng, p.Lng)
	b.NorthEast.Lat = math.Max(b.NorthEast.Lat, p.Lat)
	b.NorthEast.Lng = math.Max(b.NorthEast.Lng, p.Lng)
	return b
}

// Contains reports whether p lies inside or on the edge of b.
func (b Bounds) Contains(p LatLng) bool {
	return p.Lat >= b.SouthWest.Lat && p.Lat <= b.NorthEast.Lat &&
		p.Lng >= b.SouthWest.Lng && p.Lng <= b.NorthEast.Lng
}

// Center is the midpoint of the rectangle in projected (map) space.
func (b Bounds) Center() LatLng {
	swX, swY := project(b.SouthWest)
	neX, neY := project(b.NorthEast)
	return unproject((swX+neX)/2, (swY+neY)/2)
}

// Viewport is the pixel size of the map container.
type Viewport struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// MapView is the initial camera of the map.
type MapView struct {
	Center LatLng  `json:"center"`
	Zoom   int     `json:"zoom"`
	Bounds *Bounds `json:"bounds,omitempty"`
}

// FitBounds picks the largest integer zoom at which b, surrounded by padding
// pixels on every side, fits inside the viewport, and centres the view on b.
// The zoom is clamped to [minZoom, maxZoom].
// Longitudes never wrap: b spans SouthWest.Lng to NorthEast.Lng eastward, so
// cities on both sides of the antimeridian are fitted the long way round.
func FitBounds(b Bounds, vp Viewport, padding, minZoom, maxZoom int) MapView {
	availW := float64(vp.Width - 2*padding)
	availH := float64(vp.Height - 2*padding)

	swX, swY := project(b.SouthWest)
	neX, neY := project(b.NorthEast)
	w := math.Abs(neX - swX)
	h := math.Abs(swY - neY)

	zoom := maxZoom
	if availW <= 0 || availH <= 0 {
		zoom = minZoom
	} else if w > 0 || h > 0 {
		scale := math.Inf(1)
		if w > 0 {
			scale = availW / w
		}
		if h > 0 {
			scale = math.Min(scale, availH/h)
		}
		zoom = int(math.Floor(math.Log2(scale)))
	}

	zoom = min(max(zoom, minZoom), maxZoom)
	return MapView{Center: b.Center(), Zoom: zoom, Bounds: &b}
}

// InitialView fits every city of the catalog, or falls back to the
// configured default camera when there is none.
func (c *Catalog) InitialView(vp Viewport) MapView {
	b, ok := BoundsOf(c.Positions())
	if !ok {
		return MapView{Center: c.Map.DefaultCenter, Zoom: c.Map.DefaultZoom}
	}
	return FitBounds(b, vp, c.Map.Padding, c.Map.MinZoom, c.Map.MaxZoom)
}

// project maps a coordinate to Web Mercator pixels at zoom 0.
func project(p LatLng) (x, y float64) {
	lat := math.Max(-maxMercatorLat, math.Min(maxMercatorLat, p.Lat))
	sin := math.Sin(lat * math.Pi / 180)
	x = (p.Lng + 180) / 360 * tileSize
	y = (0.5 - math.Log((1+sin)/(1-sin))/(4*math.Pi)) * tileSize
	return x, y
}

func unproject(x, y float64) LatLng {
	lng := x/tileSize*360 - 180
	n := math.Pi - 2*math.Pi*y/tileSize
	lat := 180 / math.Pi * math.Atan(math.Sinh(n))
	return LatLng{Lat: lat, Lng: lng}
}
