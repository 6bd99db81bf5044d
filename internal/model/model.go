package model

import (
	"encoding/json"
	"fmt"

	"github.com/stone-age-io/iot-ui-sub006/internal/geo"
)

// UnknownEdgeLabel is shown in a location's detail overlay when its edge id
// doesn't resolve against the supplied edge list.
const UnknownEdgeLabel = "Unknown Edge"

// Coordinates is an optional geographic position on a location.
//
// Both components must be present and non-null for the location to render.
// The wire format accepts either "lng" or the legacy "long" key.
type Coordinates struct {
	Lat *float64
	Lng *float64
}

// coordinatesWire mirrors the JSON shape, including the legacy alias.
type coordinatesWire struct {
	Lat  *float64 `json:"lat"`
	Lng  *float64 `json:"lng"`
	Long *float64 `json:"long"`
}

// UnmarshalJSON decodes a coordinate pair, preferring "lng" over the
// legacy "long" alias when both are present.
func (c *Coordinates) UnmarshalJSON(data []byte) error {
	var w coordinatesWire
	if err := json.Unmarshal(data, &w); err != nil {
		return fmt.Errorf("decode coordinates: %w", err)
	}
	c.Lat = w.Lat
	c.Lng = w.Lng
	if c.Lng == nil {
		c.Lng = w.Long
	}
	return nil
}

// MarshalJSON encodes the pair using the canonical "lng" key.
func (c Coordinates) MarshalJSON() ([]byte, error) {
	return json.Marshal(coordinatesWire{Lat: c.Lat, Lng: c.Lng})
}

// Valid reports whether both components are present.
func (c *Coordinates) Valid() bool {
	return c != nil && c.Lat != nil && c.Lng != nil
}

// Location is a domain record optionally carrying geographic coordinates,
// renderable as a marker. Spelled out by the external data service; immutable
// to the sync engine except via full-list replacement.
type Location struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Code        string       `json:"code,omitempty"`
	Type        string       `json:"type"`
	EdgeID      string       `json:"edge_id,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
}

// LatLng returns the location's coordinate pair. ok is false when either
// component is absent; such locations are excluded from rendering and from
// bounds computation.
func (l Location) LatLng() (geo.LatLng, bool) {
	if !l.Coordinates.Valid() {
		return geo.LatLng{}, false
	}
	return geo.LatLng{Lat: *l.Coordinates.Lat, Lng: *l.Coordinates.Lng}, true
}

// Edge identifies a site a location belongs to. Used only for label
// resolution in marker detail overlays.
type Edge struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// EdgeIndex builds an id -> name lookup for detail overlay labels.
func EdgeIndex(edges []Edge) map[string]string {
	idx := make(map[string]string, len(edges))
	for _, e := range edges {
		idx[e.ID] = e.Name
	}
	return idx
}

// EdgeLabel resolves a location's edge name, falling back to
// UnknownEdgeLabel when the id is absent or unmatched.
func EdgeLabel(idx map[string]string, edgeID string) string {
	if name, ok := idx[edgeID]; ok && name != "" {
		return name
	}
	return UnknownEdgeLabel
}
