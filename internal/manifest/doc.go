// Package manifest holds the DA Form 1306 composition engine.
//
// It defines the personnel record and mission configuration value types, the
// exit (door) constraints for each aircraft and parachute pairing, the
// category resolution that turns a personnel type selection into the label
// printed on the form, the intake parser for scanned identity strings, and the
// composer that groups, orders, and numbers a roster into document sections.
//
// Everything here is pure: no I/O, no clocks, no shared state. Callers own the
// roster ordering and the mission configuration and pass them in explicitly;
// the composer rebuilds the whole manifest on every call so renderers never
// see partially patched state.
package manifest
