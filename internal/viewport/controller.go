package viewport

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/stone-age-io/iot-ui-sub006/internal/cluster"
	"github.com/stone-age-io/iot-ui-sub006/internal/geo"
	"github.com/stone-age-io/iot-ui-sub006/internal/model"
	"github.com/stone-age-io/iot-ui-sub006/internal/popup"
	"github.com/stone-age-io/iot-ui-sub006/internal/surface"
)

// DefaultRetryDelay is how long a guarded operation waits before retrying
// while a zoom animation is in flight.
const DefaultRetryDelay = 300 * time.Millisecond

// Default view applied on Initialize before any data arrives.
var (
	DefaultCenter = geo.LatLng{Lat: 39.8283, Lng: -98.5795}
	DefaultZoom   = 4
)

// ErrAlreadyInitialized is returned when Initialize is called on a
// controller that already owns a live map instance.
var ErrAlreadyInitialized = errors.New("viewport: map instance already live")

// Controller owns the map instance, the zoom-state guard, deferred-retry
// scheduling, and resize handling, and orchestrates marker reconciliation.
//
// All state is owned by the instance and tied to the surface's
// mount/unmount lifecycle - nothing here is process-global.
type Controller struct {
	mu sync.Mutex

	state State
	surf  surface.Map

	factory    surface.Factory
	sched      Scheduler
	agg        *cluster.Aggregator
	emitter    *popup.Emitter
	logger     *slog.Logger
	retryDelay time.Duration
	fitOpts    geo.FitOptions

	defaultCenter geo.LatLng
	defaultZoom   int

	// savedBounds: last computed enclosing rectangle, retained across
	// reconciliations for recentering. Updated only when a pass yields at
	// least one valid marker - stale-but-valid beats empty-and-invalid.
	saved geo.Bounds

	// Rendered marker set, with insertion order retained so clear-and-rebuild
	// removals replay deterministically.
	markers     map[string]surface.MarkerID
	markerOrder []string
	layers      map[surface.LayerID]geo.Bounds
	layerOrder  []surface.LayerID

	lastPoints    []geo.LatLng
	lastLocations map[string]model.Location
	edgeIndex     map[string]string
}

// Option configures a Controller at construction.
type Option func(*Controller)

// WithScheduler replaces the timer-backed scheduler. Tests and the
// conformance harness inject a manual scheduler for deterministic retries.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.sched = s }
}

// WithLogger sets the structured logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) { c.logger = l }
}

// WithRetryDelay overrides the zoom-guard retry delay.
func WithRetryDelay(d time.Duration) Option {
	return func(c *Controller) { c.retryDelay = d }
}

// WithFitOptions overrides the fit parameters applied on bounds fits.
func WithFitOptions(opts geo.FitOptions) Option {
	return func(c *Controller) { c.fitOpts = opts }
}

// WithClusterConfig overrides the aggregation radius and zoom threshold.
func WithClusterConfig(cfg cluster.Config) Option {
	return func(c *Controller) { c.agg = cluster.New(cfg) }
}

// WithDefaultView overrides the center and zoom applied on Initialize.
func WithDefaultView(center geo.LatLng, zoom int) Option {
	return func(c *Controller) {
		c.defaultCenter = center
		c.defaultZoom = zoom
	}
}

// New creates a controller for one mounted surface. The factory is invoked
// on Initialize; onSelect receives locations whose detail affordance is
// activated.
func New(factory surface.Factory, onSelect popup.SelectFunc, opts ...Option) *Controller {
	c := &Controller{
		state:         StateUninitialized,
		factory:       factory,
		sched:         NewTimerScheduler(),
		agg:           cluster.New(cluster.DefaultConfig()),
		logger:        slog.Default(),
		retryDelay:    DefaultRetryDelay,
		fitOpts:       geo.DefaultFitOptions(),
		defaultCenter: DefaultCenter,
		defaultZoom:   DefaultZoom,
		markers:       make(map[string]surface.MarkerID),
		layers:        make(map[surface.LayerID]geo.Bounds),
		lastLocations: make(map[string]model.Location),
		edgeIndex:     make(map[string]string),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.emitter = popup.NewEmitter(onSelect, c.logger)
	return c
}

// Initialize creates the map instance, applies the default view, and
// installs the zoom listeners. Uninitialized -> Ready.
func (c *Controller) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateUninitialized {
		return ErrAlreadyInitialized
	}

	surf, err := c.factory()
	if err != nil {
		return fmt.Errorf("create map instance: %w", err)
	}

	if err := surf.SetView(c.defaultCenter, c.defaultZoom); err != nil {
		surf.Close()
		return fmt.Errorf("apply default view: %w", err)
	}

	surf.SetZoomHandlers(c.onZoomStart, c.onZoomEnd)

	c.surf = surf
	c.state = StateReady

	c.logger.Info("viewport initialized",
		"center", c.defaultCenter.String(),
		"zoom", c.defaultZoom,
	)
	return nil
}

// Teardown releases the map instance, detaches listeners, and cancels all
// pending deferred retries. Idempotent; terminal for this instance.
func (c *Controller) Teardown() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateUninitialized {
		return
	}

	c.sched.CancelAll()
	c.emitter.Clear()

	c.surf.SetZoomHandlers(nil, nil)
	if err := c.surf.Close(); err != nil {
		c.logger.Error("close map instance", "error", err)
	}

	c.surf = nil
	c.markers = make(map[string]surface.MarkerID)
	c.markerOrder = nil
	c.layers = make(map[surface.LayerID]geo.Bounds)
	c.layerOrder = nil
	c.state = StateUninitialized

	c.logger.Info("viewport torn down")
}

// onZoomStart is the zoom-start listener: Ready -> Zooming.
func (c *Controller) onZoomStart() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateReady {
		c.state = StateZooming
	}
}

// onZoomEnd is the zoom-end listener: Zooming -> Ready.
func (c *Controller) onZoomEnd() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == StateZooming {
		c.state = StateReady
	}
}

// guarded runs a viewport-mutating operation under the zoom guard.
//
// Zooming: the call is rescheduled after the retry delay instead of
// executing, repeating until the zoom settles - deferred, never dropped.
// Uninitialized: the call no-ops; a deferred retry firing after Teardown
// lands here and must not touch the destroyed instance.
// Ready: fn executes with the lock held; the controller is the sole
// serialization point for map mutation.
func (c *Controller) guarded(op string, fn func()) {
	c.mu.Lock()

	switch c.state {
	case StateUninitialized:
		c.mu.Unlock()
		c.logger.Debug("viewport op dropped: no live instance", "op", op)
		return

	case StateZooming:
		c.mu.Unlock()
		c.logger.Debug("viewport op deferred during zoom",
			"op", op,
			"retry_delay", c.retryDelay,
		)
		c.sched.After(c.retryDelay, func() {
			c.guarded(op, fn)
		})
		return
	}

	defer c.mu.Unlock()
	fn()
}

// Resize invalidates the map's internal layout after a surface size change
// and, if a saved rectangle exists, reapplies it without animation.
// Deferred under the zoom guard; surface failures are logged and abandoned.
func (c *Controller) Resize() {
	c.guarded("resize", func() {
		if err := c.surf.InvalidateSize(); err != nil {
			c.logger.Error("invalidate layout", "error", err)
			return
		}
		if c.saved.Valid() {
			c.fitLocked(c.saved)
		}
	})
}

// Recenter fits the view to all rendered locations. Reuses savedBounds
// when present; otherwise recomputes from the last valid coordinates.
func (c *Controller) Recenter() {
	c.guarded("recenter", func() {
		b := c.saved
		if !b.Valid() {
			b = geo.Compute(c.lastPoints)
		}
		if !b.Valid() {
			c.logger.Warn("recenter skipped: no valid coordinates")
			return
		}
		c.fitLocked(b)
	})
}

// ClusterClick zooms to the bounds of a rendered cluster layer.
func (c *Controller) ClusterClick(id surface.LayerID) {
	c.guarded("cluster_click", func() {
		b, ok := c.layers[id]
		if !ok {
			c.logger.Debug("click on unknown cluster layer ignored", "layer_id", string(id))
			return
		}
		c.fitLocked(b)
	})
}

// fitLocked applies a bounds fit, never animated. Caller holds the lock
// and has verified b is valid. Surface failures are logged and the
// operation abandoned - unlike the zoom guard, this path never retries.
func (c *Controller) fitLocked(b geo.Bounds) {
	opts := c.fitOpts
	opts.Animate = false
	if err := c.surf.FitBounds(b, opts); err != nil {
		c.logger.Error("fit bounds abandoned", "bounds", b.String(), "error", err)
	}
}

// OpenDetail builds the detail overlay for a rendered location, binding its
// view-details affordance (replacing any prior binding). ok is false when
// the id isn't rendered or the surface is torn down.
func (c *Controller) OpenDetail(id string) (popup.Detail, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateUninitialized {
		return popup.Detail{}, false
	}
	loc, ok := c.lastLocations[id]
	if !ok {
		return popup.Detail{}, false
	}
	label := model.EdgeLabel(c.edgeIndex, loc.EdgeID)
	return c.emitter.Open(loc, label), true
}

// Select activates a previously opened detail affordance, emitting the
// selection event upstream.
func (c *Controller) Select(id string) bool {
	return c.emitter.Activate(id)
}

// State reports the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// SavedBounds returns the retained enclosing rectangle.
func (c *Controller) SavedBounds() geo.Bounds {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saved
}

// MarkerCount reports rendered 1:1 markers (clusters excluded).
func (c *Controller) MarkerCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.markers)
}

// MarkerEntityIDs returns the ids of locations currently rendered 1:1,
// in render order.
func (c *Controller) MarkerEntityIDs() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]string, len(c.markerOrder))
	copy(ids, c.markerOrder)
	return ids
}

// LayerIDs returns the handles of rendered cluster layers, in render order.
func (c *Controller) LayerIDs() []surface.LayerID {
	c.mu.Lock()
	defer c.mu.Unlock()
	ids := make([]surface.LayerID, len(c.layerOrder))
	copy(ids, c.layerOrder)
	return ids
}
