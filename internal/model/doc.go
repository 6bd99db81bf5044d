// Package model defines the externally supplied domain records the map
// renders: locations (rooms, entrances, server rooms) and the edges they
// belong to.
//
// Both record kinds are owned by the external data service. The sync engine
// never mutates them; hosts replace the full lists and call Reconcile.
package model
