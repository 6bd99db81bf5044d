// Package surface defines the boundary with the underlying map-rendering
// library.
//
// The sync engine issues only the primitive calls named by the Map
// interface: marker add/remove, cluster layer add/remove, set-view,
// fit-bounds, layout invalidation, zoom listener registration, and instance
// destruction. Tile sources, attribution text, and other library-specific
// configuration are pass-through concerns of the concrete implementation and
// not part of the engine's behavioral contract.
//
// Headless is the in-process implementation: it records every primitive call
// in an ordered operation trace. The CLI uses it to run a map session
// without a browser, and the conformance harness compares its traces
// against golden files.
package surface
