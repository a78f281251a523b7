// Package config loads, normalizes, and validates loadmaster configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// LOADMASTER_EXPORT_ENDPOINT. The Config type centralizes every knob the CLI,
// exporter, publisher and preview server need.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical formats, and clear validation errors.
package config
