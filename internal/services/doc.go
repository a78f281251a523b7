// Package services defines shared utilities consumed by the manifest
// collaborators: the remote exporter, the artifact publisher and the preview
// server.
//
// Key responsibilities:
//   - Context helpers that stamp record ids, chalk labels, export run ids and
//     correlation identifiers for logging.
//   - Structured error markers plus the Wrap helper that classify delivery
//     failures as retryable or operator-actionable.
//
// Use these helpers when wiring new integrations so error handling and
// observability stay uniform.
package services
