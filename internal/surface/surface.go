package surface

import (
	"errors"

	"github.com/google/uuid"

	"github.com/stone-age-io/iot-ui-sub006/internal/geo"
)

// ErrClosed is returned by every primitive call after Close.
// A deferred callback firing after teardown must treat this map instance as
// destroyed and no-op rather than propagate.
var ErrClosed = errors.New("surface: map instance destroyed")

// MarkerID is the handle tying one rendered marker to the surface.
type MarkerID string

// LayerID is the handle for a cluster layer on the surface.
type LayerID string

// MarkerSpec describes a single-location marker.
type MarkerSpec struct {
	EntityID  string
	Title     string
	IconClass string
	At        geo.LatLng
}

// ClusterSpec describes an aggregated cluster marker. Its icon displays
// Count; SizeClass selects the small/medium/large bucket styling. Bounds is
// the enclosing rectangle of the member markers, applied on cluster click.
type ClusterSpec struct {
	Count     int
	SizeClass string
	At        geo.LatLng
	Bounds    geo.Bounds
}

// Map is one live map instance bound to a mounted surface.
//
// All calls are serialized by the viewport controller - the sole owner of
// the instance. Marker and cluster mutations never animate.
type Map interface {
	AddMarker(spec MarkerSpec) (MarkerID, error)
	RemoveMarker(id MarkerID) error

	AddClusterLayer(spec ClusterSpec) (LayerID, error)
	RemoveLayer(id LayerID) error

	SetView(center geo.LatLng, zoom int) error
	FitBounds(b geo.Bounds, opts geo.FitOptions) error
	InvalidateSize() error

	// SetZoomHandlers registers the zoom-start/zoom-end listeners that drive
	// the controller's zooming flag. Passing nils unregisters.
	SetZoomHandlers(onStart, onEnd func())

	// Zoom reports the current zoom level, used for cluster grouping.
	Zoom() int

	// Close destroys the instance. Idempotent; all later calls fail with
	// ErrClosed.
	Close() error
}

// Factory creates a map instance bound to a mounted surface.
type Factory func() (Map, error)

// HandleGenerator mints marker and layer handles.
// Implemented by UUIDv7Generator (production) and the fixed-sequence
// generator in internal/testutil (deterministic traces).
type HandleGenerator interface {
	Next(kind string) string
}

// UUIDv7Generator mints time-sortable UUIDv7 handles.
// Stateless and safe for concurrent use.
type UUIDv7Generator struct{}

// Next returns a fresh UUIDv7 string. The kind argument is ignored;
// it exists for deterministic generators that number handles per kind.
func (UUIDv7Generator) Next(string) string {
	return uuid.Must(uuid.NewV7()).String()
}
