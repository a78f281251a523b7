package workspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ExportRun is the journal entry for one remote export.
type ExportRun struct {
	ID         string
	Endpoint   string
	StartedAt  time.Time
	FinishedAt time.Time
	Deliveries []ExportDelivery
}

// ExportDelivery is the outcome of one chalk and door group.
type ExportDelivery struct {
	Chalk   string
	Door    string
	Entries int
	// Error is empty for successful deliveries.
	Error string
}

// Failed returns the deliveries that did not succeed.
func (r ExportRun) Failed() []ExportDelivery {
	var failed []ExportDelivery
	for _, delivery := range r.Deliveries {
		if delivery.Error != "" {
			failed = append(failed, delivery)
		}
	}
	return failed
}

// RecordExport stores an export run and its deliveries.
func (w *Workspace) RecordExport(ctx context.Context, run ExportRun) error {
	if run.ID == "" {
		return errors.New("record export: run id is required")
	}
	return w.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO export_runs (id, endpoint, started_at, finished_at) VALUES (?, ?, ?, ?)",
			run.ID, run.Endpoint, formatTime(run.StartedAt), formatTime(run.FinishedAt),
		); err != nil {
			return fmt.Errorf("record export run: %w", err)
		}
		for _, delivery := range run.Deliveries {
			if _, err := tx.ExecContext(ctx,
				"INSERT INTO export_deliveries (run_id, chalk, door, entries, error_message) VALUES (?, ?, ?, ?, ?)",
				run.ID, delivery.Chalk, delivery.Door, delivery.Entries, nullableString(delivery.Error),
			); err != nil {
				return fmt.Errorf("record export delivery %s/%s: %w", delivery.Chalk, delivery.Door, err)
			}
		}
		return nil
	})
}

// LatestExport returns the most recent export run, with ok false when no run
// has been recorded.
func (w *Workspace) LatestExport(ctx context.Context) (run ExportRun, ok bool, err error) {
	ctx = ensureContext(ctx)
	var started, finished string
	err = w.db.QueryRowContext(ctx,
		"SELECT id, endpoint, started_at, finished_at FROM export_runs ORDER BY started_at DESC, rowid DESC LIMIT 1",
	).Scan(&run.ID, &run.Endpoint, &started, &finished)
	if errors.Is(err, sql.ErrNoRows) {
		return ExportRun{}, false, nil
	}
	if err != nil {
		return ExportRun{}, false, fmt.Errorf("load latest export: %w", err)
	}
	if ts, parseErr := parseTimeString(started); parseErr == nil {
		run.StartedAt = ts
	}
	if ts, parseErr := parseTimeString(finished); parseErr == nil {
		run.FinishedAt = ts
	}

	rows, err := w.db.QueryContext(ctx,
		"SELECT chalk, door, entries, error_message FROM export_deliveries WHERE run_id = ? ORDER BY chalk, door",
		run.ID,
	)
	if err != nil {
		return ExportRun{}, false, fmt.Errorf("load export deliveries: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			delivery ExportDelivery
			message  sql.NullString
		)
		if err := rows.Scan(&delivery.Chalk, &delivery.Door, &delivery.Entries, &message); err != nil {
			return ExportRun{}, false, fmt.Errorf("scan export delivery: %w", err)
		}
		delivery.Error = message.String
		run.Deliveries = append(run.Deliveries, delivery)
	}
	if err := rows.Err(); err != nil {
		return ExportRun{}, false, fmt.Errorf("iterate export deliveries: %w", err)
	}
	return run, true, nil
}
