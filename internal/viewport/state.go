package viewport

// State is the controller lifecycle state.
type State int

const (
	// StateUninitialized means no live map instance exists. Initial and
	// terminal state for a controller.
	StateUninitialized State = iota

	// StateReady means the map instance is live and viewport mutations
	// execute immediately.
	StateReady

	// StateZooming means an animated zoom is in flight. Viewport mutations
	// are deferred and retried, never executed mid-zoom and never dropped.
	StateZooming
)

// String returns the state name for logs and traces.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateZooming:
		return "zooming"
	default:
		return "unknown"
	}
}
