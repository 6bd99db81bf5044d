// Package geo provides the coordinate and bounds primitives for the map
// sync engine.
//
// A Bounds is the minimal enclosing rectangle over a set of LatLng points.
// The zero Bounds is INVALID by construction - callers must check Valid()
// before applying a rectangle to the viewport. Compute over zero points
// returns the invalid zero value; the viewport treats that as a no-op and
// keeps its previously saved rectangle.
package geo
