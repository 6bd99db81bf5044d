package geo

import "fmt"

// LatLng is a geographic coordinate pair in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// String formats the pair for logs and traces.
func (p LatLng) String() string {
	return fmt.Sprintf("(%.6f,%.6f)", p.Lat, p.Lng)
}

// Bounds is a minimal enclosing rectangle over coordinate points.
//
// The zero value is invalid. Build a Bounds with Compute or by extending
// an existing valid Bounds - never by applying the zero value to a viewport.
type Bounds struct {
	MinLat float64 `json:"min_lat"`
	MinLng float64 `json:"min_lng"`
	MaxLat float64 `json:"max_lat"`
	MaxLng float64 `json:"max_lng"`

	set bool
}

// Valid reports whether the rectangle encloses at least one point.
func (b Bounds) Valid() bool {
	return b.set
}

// IsPoint reports whether the rectangle has zero area (single point).
func (b Bounds) IsPoint() bool {
	return b.set && b.MinLat == b.MaxLat && b.MinLng == b.MaxLng
}

// Extend grows the rectangle to include p. Extending the zero Bounds
// yields a valid zero-area rectangle at p.
func (b Bounds) Extend(p LatLng) Bounds {
	if !b.set {
		return Bounds{MinLat: p.Lat, MinLng: p.Lng, MaxLat: p.Lat, MaxLng: p.Lng, set: true}
	}
	if p.Lat < b.MinLat {
		b.MinLat = p.Lat
	}
	if p.Lat > b.MaxLat {
		b.MaxLat = p.Lat
	}
	if p.Lng < b.MinLng {
		b.MinLng = p.Lng
	}
	if p.Lng > b.MaxLng {
		b.MaxLng = p.Lng
	}
	return b
}

// ExtendBounds grows the rectangle to include another rectangle.
// Extending by an invalid Bounds is a no-op.
func (b Bounds) ExtendBounds(other Bounds) Bounds {
	if !other.set {
		return b
	}
	b = b.Extend(LatLng{Lat: other.MinLat, Lng: other.MinLng})
	return b.Extend(LatLng{Lat: other.MaxLat, Lng: other.MaxLng})
}

// Contains reports whether p lies inside or on the rectangle.
func (b Bounds) Contains(p LatLng) bool {
	return b.set &&
		p.Lat >= b.MinLat && p.Lat <= b.MaxLat &&
		p.Lng >= b.MinLng && p.Lng <= b.MaxLng
}

// Center returns the rectangle midpoint.
func (b Bounds) Center() LatLng {
	return LatLng{
		Lat: (b.MinLat + b.MaxLat) / 2,
		Lng: (b.MinLng + b.MaxLng) / 2,
	}
}

// String formats the rectangle for logs and traces.
func (b Bounds) String() string {
	if !b.set {
		return "bounds[invalid]"
	}
	return fmt.Sprintf("bounds[(%.6f,%.6f)-(%.6f,%.6f)]", b.MinLat, b.MinLng, b.MaxLat, b.MaxLng)
}

// Compute returns the minimal enclosing rectangle over points.
// Zero points yield the invalid zero Bounds - callers MUST treat that as
// "do not touch the viewport", never as an empty rectangle to apply.
func Compute(points []LatLng) Bounds {
	var b Bounds
	for _, p := range points {
		b = b.Extend(p)
	}
	return b
}
