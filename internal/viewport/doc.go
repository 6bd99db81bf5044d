// Package viewport implements the map viewport controller and marker
// synchronizer.
//
// ARCHITECTURE:
//
// One Controller exclusively owns one live map instance per mounted
// surface. Every other component mutates the map only through the
// controller's guarded operations - this is the sole serialization point
// preventing concurrent viewport mutation races.
//
// State machine:
//
//	Uninitialized --Initialize()--> Ready
//	Ready --zoom-start--> Zooming
//	Zooming --zoom-end--> Ready
//	Ready --Teardown()--> Uninitialized (terminal for the instance)
//
// Zoom guard:
// Every viewport-mutating operation first checks the state. While Zooming,
// the operation is rescheduled after a fixed delay instead of executing,
// repeating until the zoom settles. An in-flight animated zoom racing a
// programmatic bounds-fit corrupts marker pixel positions; deferral is the
// only safe ordering. Deferred calls preserve call identity but not global
// ordering across distinct deferrals, so reconciliation is idempotent:
// identical inputs always yield an identical rendered marker set.
//
// Reconciliation:
// Full clear-and-rebuild - every pass destroys all rendered markers and
// recreates them from the supplied location list. This discards per-marker
// identity (open overlays close across passes) and is O(n) per update, but
// it is the observable behavior of the surface and is kept deliberately.
//
// Teardown cancels every outstanding deferred task and closes the map
// instance. A deferred callback firing after teardown observes the
// Uninitialized state and no-ops rather than touching the destroyed
// instance.
package viewport
