// Package export delivers the composed manifest to the spreadsheet backend.
//
// Exiting personnel are grouped by chalk and door and each group is posted as
// its own JSON request. Groups are delivered concurrently and independently:
// a failed group never cancels or rolls back another, and the Report lists
// every outcome so the operator can retry just the failures. Runs always work
// on the composed snapshot handed in, so the roster can keep changing while
// an export is in flight.
package export
