package export

import (
	"context"

	"loadmaster/internal/manifest"
)

// Run is an export executing in the background.
type Run struct {
	done   chan struct{}
	report Report
	err    error
}

// Start launches Export on its own goroutine. The composed manifest is a
// value, so later roster edits do not reach the running export.
func (e *Exporter) Start(ctx context.Context, composed manifest.ComposedManifest, mission manifest.MissionConfiguration) *Run {
	run := &Run{done: make(chan struct{})}
	go func() {
		defer close(run.done)
		run.report, run.err = e.Export(ctx, composed, mission)
	}()
	return run
}

// Done is closed once the run has finished.
func (r *Run) Done() <-chan struct{} { return r.done }

// Wait blocks until the run finishes or ctx ends.
func (r *Run) Wait(ctx context.Context) (Report, error) {
	select {
	case <-r.done:
		return r.report, r.err
	case <-ctx.Done():
		return Report{}, ctx.Err()
	}
}
