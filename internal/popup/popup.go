// Package popup builds the interactive detail overlays for markers and
// emits selection events to the host.
//
// Overlays are built lazily, on open - never pre-built for all markers, so
// memory stays bounded with large location counts. Each open REPLACES the
// prior binding for that location's view-details affordance; bindings never
// stack, so repeated opens cannot double-fire a selection.
package popup

import (
	"log/slog"
	"sync"

	"github.com/stone-age-io/iot-ui-sub006/internal/model"
)

// Detail is the overlay content for one marker: name, code, resolved edge
// label, and a type badge. The view-details affordance is bound separately
// via the emitter.
type Detail struct {
	Name      string `json:"name"`
	Code      string `json:"code,omitempty"`
	EdgeLabel string `json:"edge_label"`
	TypeBadge string `json:"type_badge"`
}

// SelectFunc receives the full location when its view-details affordance
// is activated. The engine performs no navigation itself.
type SelectFunc func(model.Location)

// Emitter owns the affordance bindings for one map surface.
type Emitter struct {
	mu       sync.Mutex
	onSelect SelectFunc
	bindings map[string]model.Location
	logger   *slog.Logger
}

// NewEmitter creates an emitter reporting selections to onSelect.
// A nil onSelect drops selections; a nil logger uses the default.
func NewEmitter(onSelect SelectFunc, logger *slog.Logger) *Emitter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Emitter{
		onSelect: onSelect,
		bindings: make(map[string]model.Location),
		logger:   logger,
	}
}

// Open builds the overlay content for a location and binds its affordance,
// replacing any prior binding for the same location id.
func (e *Emitter) Open(loc model.Location, edgeLabel string) Detail {
	e.mu.Lock()
	e.bindings[loc.ID] = loc
	e.mu.Unlock()

	return Detail{
		Name:      loc.Name,
		Code:      loc.Code,
		EdgeLabel: edgeLabel,
		TypeBadge: loc.Type,
	}
}

// Activate fires the selection event for a bound location.
// Exactly one event per activation; unknown ids are a logged no-op.
func (e *Emitter) Activate(id string) bool {
	e.mu.Lock()
	loc, ok := e.bindings[id]
	fn := e.onSelect
	e.mu.Unlock()

	if !ok {
		e.logger.Debug("selection for unbound location ignored", "location_id", id)
		return false
	}
	if fn != nil {
		fn(loc)
	}
	return true
}

// Clear drops all bindings. Called on every reconciliation rebuild and on
// teardown - an open overlay does not survive either.
func (e *Emitter) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.bindings = make(map[string]model.Location)
}

// BindingCount reports live bindings. Used by tests.
func (e *Emitter) BindingCount() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.bindings)
}
