// Package preview serves the live manifest over HTTP on the local machine.
//
// Every request reloads the workspace and recomposes the manifest, so the
// page always reflects the roster as it is on disk. The server also exposes
// Prometheus metrics for the render and export paths.
package preview
