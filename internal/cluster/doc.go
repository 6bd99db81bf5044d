// Package cluster groups nearby markers into visual clusters.
//
// Grouping happens in Web-Mercator pixel space at the current zoom level:
// two markers belong to the same cluster when their projected positions are
// within the configured pixel radius. At or above the configured max zoom
// clustering is disabled and every marker renders 1:1.
//
// Clusters are ephemeral per render epoch - the aggregator holds no state
// between calls, matching the full clear-and-rebuild reconciliation policy.
package cluster
