package surface

import (
	"sync"

	"github.com/stone-age-io/iot-ui-sub006/internal/geo"
)

// Op is one recorded primitive call. Fields are populated per op kind;
// zero-valued fields are omitted from the JSON trace.
type Op struct {
	Op        string  `json:"op"`
	ID        string  `json:"id,omitempty"`
	EntityID  string  `json:"entity_id,omitempty"`
	Title     string  `json:"title,omitempty"`
	Icon      string  `json:"icon,omitempty"`
	Count     int     `json:"count,omitempty"`
	Size      string  `json:"size,omitempty"`
	At        string  `json:"at,omitempty"`
	Zoom      int     `json:"zoom,omitempty"`
	Bounds    string  `json:"bounds,omitempty"`
	PaddingPx int     `json:"padding_px,omitempty"`
	MaxZoom   int     `json:"max_zoom,omitempty"`
	Animate   bool    `json:"animate,omitempty"`
}

// Op kinds recorded by the headless surface.
const (
	OpCreate         = "create_map"
	OpAddMarker      = "add_marker"
	OpRemoveMarker   = "remove_marker"
	OpAddCluster     = "add_cluster_layer"
	OpRemoveLayer    = "remove_layer"
	OpSetView        = "set_view"
	OpFitBounds      = "fit_bounds"
	OpInvalidateSize = "invalidate_size"
	OpClose          = "close"
)

// Headless is an in-process Map that records every primitive call.
//
// Zoom transitions are driven externally via EmitZoomStart/EmitZoomEnd,
// standing in for the rendering library's animated zoom events.
type Headless struct {
	mu      sync.Mutex
	ops     []Op
	handles HandleGenerator
	closed  bool
	zoom    int

	onZoomStart func()
	onZoomEnd   func()

	markers map[MarkerID]MarkerSpec
	layers  map[LayerID]ClusterSpec
}

// NewHeadless creates a recording surface with the given handle generator.
// A nil generator defaults to UUIDv7 handles.
func NewHeadless(handles HandleGenerator) *Headless {
	if handles == nil {
		handles = UUIDv7Generator{}
	}
	h := &Headless{
		handles: handles,
		markers: make(map[MarkerID]MarkerSpec),
		layers:  make(map[LayerID]ClusterSpec),
	}
	h.ops = append(h.ops, Op{Op: OpCreate})
	return h
}

// AddMarker records the marker and returns its handle.
func (h *Headless) AddMarker(spec MarkerSpec) (MarkerID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return "", ErrClosed
	}
	id := MarkerID(h.handles.Next("marker"))
	h.markers[id] = spec
	h.ops = append(h.ops, Op{
		Op:       OpAddMarker,
		ID:       string(id),
		EntityID: spec.EntityID,
		Title:    spec.Title,
		Icon:     spec.IconClass,
		At:       spec.At.String(),
	})
	return id, nil
}

// RemoveMarker drops a marker. Removing an unknown handle is a surface
// error, recorded nowhere.
func (h *Headless) RemoveMarker(id MarkerID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	delete(h.markers, id)
	h.ops = append(h.ops, Op{Op: OpRemoveMarker, ID: string(id)})
	return nil
}

// AddClusterLayer records a cluster marker and returns its layer handle.
func (h *Headless) AddClusterLayer(spec ClusterSpec) (LayerID, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return "", ErrClosed
	}
	id := LayerID(h.handles.Next("layer"))
	h.layers[id] = spec
	h.ops = append(h.ops, Op{
		Op:     OpAddCluster,
		ID:     string(id),
		Count:  spec.Count,
		Size:   spec.SizeClass,
		At:     spec.At.String(),
		Bounds: spec.Bounds.String(),
	})
	return id, nil
}

// RemoveLayer drops a cluster layer.
func (h *Headless) RemoveLayer(id LayerID) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	delete(h.layers, id)
	h.ops = append(h.ops, Op{Op: OpRemoveLayer, ID: string(id)})
	return nil
}

// SetView recenters the viewport.
func (h *Headless) SetView(center geo.LatLng, zoom int) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.zoom = zoom
	h.ops = append(h.ops, Op{Op: OpSetView, At: center.String(), Zoom: zoom})
	return nil
}

// FitBounds applies an enclosing rectangle with fit parameters.
func (h *Headless) FitBounds(b geo.Bounds, opts geo.FitOptions) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.ops = append(h.ops, Op{
		Op:        OpFitBounds,
		Bounds:    b.String(),
		PaddingPx: opts.PaddingPx,
		MaxZoom:   opts.MaxZoom,
		Animate:   opts.Animate,
	})
	return nil
}

// InvalidateSize recomputes the surface's internal layout.
func (h *Headless) InvalidateSize() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return ErrClosed
	}
	h.ops = append(h.ops, Op{Op: OpInvalidateSize})
	return nil
}

// SetZoomHandlers registers the zoom transition listeners.
func (h *Headless) SetZoomHandlers(onStart, onEnd func()) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onZoomStart = onStart
	h.onZoomEnd = onEnd
}

// Zoom reports the current zoom level.
func (h *Headless) Zoom() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.zoom
}

// Close destroys the instance. Idempotent.
func (h *Headless) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return nil
	}
	h.closed = true
	h.onZoomStart = nil
	h.onZoomEnd = nil
	h.ops = append(h.ops, Op{Op: OpClose})
	return nil
}

// EmitZoomStart simulates the rendering library beginning an animated zoom.
func (h *Headless) EmitZoomStart() {
	h.mu.Lock()
	fn := h.onZoomStart
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// EmitZoomEnd simulates the animated zoom settling.
func (h *Headless) EmitZoomEnd() {
	h.mu.Lock()
	fn := h.onZoomEnd
	h.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Ops returns a copy of the recorded operation trace.
func (h *Headless) Ops() []Op {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]Op, len(h.ops))
	copy(out, h.ops)
	return out
}

// MarkerCount reports the number of live markers.
func (h *Headless) MarkerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.markers)
}

// Markers returns the live marker specs keyed by handle.
func (h *Headless) Markers() map[MarkerID]MarkerSpec {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make(map[MarkerID]MarkerSpec, len(h.markers))
	for id, spec := range h.markers {
		out[id] = spec
	}
	return out
}

// LayerCount reports the number of live cluster layers.
func (h *Headless) LayerCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.layers)
}
