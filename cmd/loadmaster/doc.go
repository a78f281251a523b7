// Package main hosts the loadmaster CLI entrypoint and command graph.
//
// The Cobra-based command tree maps terminal invocations onto the workspace:
// mission setup, barcode intake, roster maintenance, rendering, remote export
// and the local preview server. Each mutating command runs inside a locked
// workspace update so concurrent invocations never interleave.
//
// Keep this package lean: add new behaviour to the internal packages first,
// then surface it through dedicated commands or flags here.
package main
