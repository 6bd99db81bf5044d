// Package harness executes YAML-defined map scenarios deterministically.
//
// A scenario drives one controller attached to a recording surface:
// sequential handles replace UUIDs, and a manually fired scheduler
// replaces wall-clock retry timers, so the recorded operation trace is
// byte-stable across runs. Traces are compared against golden files
// with goldie; regenerate with:
//
//	go test ./internal/harness -update
package harness
