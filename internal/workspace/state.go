package workspace

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"loadmaster/internal/manifest"
	"loadmaster/internal/session"
)

const personnelColumns = "id, last_name, first_name, middle_initial, grade, organization, scanned_jump_type, jump_type, chalk, pass, door, category"

// Load reads the persisted session. initialized is false for a workspace that
// has never been saved; the returned state then carries configured defaults.
func (w *Workspace) Load(ctx context.Context) (state session.State, initialized bool, err error) {
	ctx = ensureContext(ctx)
	err = retryOnBusy(ctx, func() error {
		state, initialized, err = w.load(ctx)
		return err
	})
	return state, initialized, err
}

func (w *Workspace) load(ctx context.Context) (session.State, bool, error) {
	var (
		state       session.State
		partnerJump int
		nation      sql.NullString
		door        sql.NullString
		category    string
	)
	row := w.db.QueryRowContext(ctx, `SELECT aircraft_type, parachute_type, drop_zone, mission_date,
		partner_jump, partner_nation, current_chalk, current_pass, current_door, category
		FROM mission WHERE id = 1`)
	err := row.Scan(
		&state.Mission.AircraftType,
		&state.Mission.ParachuteType,
		&state.Mission.DropZone,
		&state.Mission.Date,
		&partnerJump,
		&nation,
		&state.Mission.CurrentChalk,
		&state.Mission.CurrentPass,
		&door,
		&category,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return session.State{Mission: w.defaults(w.now())}, false, nil
	}
	if err != nil {
		return session.State{}, false, fmt.Errorf("load mission: %w", err)
	}
	state.Mission.PartnerJump = partnerJump != 0
	state.Mission.PartnerNation = nation.String
	state.Mission.CurrentDoor = manifest.Door(door.String)
	if err := state.Category.UnmarshalText([]byte(category)); err != nil {
		return session.State{}, false, fmt.Errorf("load category selection: %w", err)
	}

	rows, err := w.db.QueryContext(ctx, "SELECT "+personnelColumns+" FROM personnel ORDER BY position")
	if err != nil {
		return session.State{}, false, fmt.Errorf("load personnel: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return session.State{}, false, fmt.Errorf("scan personnel: %w", err)
		}
		state.Records = append(state.Records, record)
	}
	if err := rows.Err(); err != nil {
		return session.State{}, false, fmt.Errorf("iterate personnel: %w", err)
	}
	return state, true, nil
}

func scanRecord(scanner interface{ Scan(dest ...any) error }) (manifest.PersonnelRecord, error) {
	var (
		record   manifest.PersonnelRecord
		door     sql.NullString
		category string
	)
	if err := scanner.Scan(
		&record.ID,
		&record.LastName,
		&record.FirstName,
		&record.MiddleInitial,
		&record.Grade,
		&record.Organization,
		&record.ScannedJumpType,
		&record.JumpType,
		&record.Chalk,
		&record.Pass,
		&door,
		&category,
	); err != nil {
		return manifest.PersonnelRecord{}, err
	}
	record.Door = manifest.Door(door.String)
	if err := record.Category.UnmarshalText([]byte(category)); err != nil {
		return manifest.PersonnelRecord{}, fmt.Errorf("record %s category: %w", record.ID, err)
	}
	return record, nil
}

// Save replaces the persisted session with state.
func (w *Workspace) Save(ctx context.Context, state session.State) error {
	category, err := state.Category.MarshalText()
	if err != nil {
		return fmt.Errorf("encode category: %w", err)
	}
	mission := state.Mission
	return w.withTx(ctx, func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `INSERT INTO mission (id, aircraft_type, parachute_type, drop_zone, mission_date,
			partner_jump, partner_nation, current_chalk, current_pass, current_door, category, updated_at)
			VALUES (1, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				aircraft_type = excluded.aircraft_type,
				parachute_type = excluded.parachute_type,
				drop_zone = excluded.drop_zone,
				mission_date = excluded.mission_date,
				partner_jump = excluded.partner_jump,
				partner_nation = excluded.partner_nation,
				current_chalk = excluded.current_chalk,
				current_pass = excluded.current_pass,
				current_door = excluded.current_door,
				category = excluded.category,
				updated_at = excluded.updated_at`,
			mission.AircraftType,
			mission.ParachuteType,
			mission.DropZone,
			mission.Date,
			boolToInt(mission.PartnerJump),
			nullableString(mission.PartnerNation),
			mission.CurrentChalk,
			mission.CurrentPass,
			nullableString(string(mission.CurrentDoor)),
			string(category),
			formatTime(w.now()),
		); err != nil {
			return fmt.Errorf("save mission: %w", err)
		}

		if _, err := tx.ExecContext(ctx, "DELETE FROM personnel"); err != nil {
			return fmt.Errorf("clear personnel: %w", err)
		}
		stmt, err := tx.PrepareContext(ctx, "INSERT INTO personnel (position, "+personnelColumns+") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)")
		if err != nil {
			return fmt.Errorf("prepare personnel insert: %w", err)
		}
		defer stmt.Close()
		for i, record := range state.Records {
			recordCategory, err := record.Category.MarshalText()
			if err != nil {
				return fmt.Errorf("encode record %s category: %w", record.ID, err)
			}
			if _, err := stmt.ExecContext(ctx,
				i,
				record.ID,
				record.LastName,
				record.FirstName,
				record.MiddleInitial,
				record.Grade,
				record.Organization,
				record.ScannedJumpType,
				record.JumpType,
				record.Chalk,
				record.Pass,
				nullableString(string(record.Door)),
				string(recordCategory),
			); err != nil {
				return fmt.Errorf("save record %s: %w", record.ID, err)
			}
		}
		return nil
	})
}

// Reset discards the roster and restores mission defaults under the
// exclusive lock.
func (w *Workspace) Reset(ctx context.Context) error {
	ctx = ensureContext(ctx)
	if err := w.acquire(ctx, false); err != nil {
		return err
	}
	defer w.release()
	return w.Save(ctx, session.State{Mission: w.defaults(w.now())})
}
