// Package catalog stores the location and edge inventory in SQLite.
//
// The catalog is the data source the map reconciler reads from: a flat
// list of edges and a flat list of locations, each location optionally
// carrying coordinates. Rows with NULL lat or lng come back with the
// corresponding pointer unset so the reconciler's validity rule (both
// components present) applies uniformly to database-backed and
// API-backed data.
package catalog
