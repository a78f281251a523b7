// Package session holds the operator's working state: the mission
// configuration, the personnel category selected for the next admissions and
// the roster.
//
// Every admission reads the mission and category under the same lock that
// guards selector changes, so a record is always built from one consistent
// set of selections.
package session

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"loadmaster/internal/logging"
	"loadmaster/internal/manifest"
	"loadmaster/internal/roster"
)

// Session is safe for concurrent use.
type Session struct {
	mu       sync.Mutex
	mission  manifest.MissionConfiguration
	category manifest.Category
	roster   *roster.Store
	newID    func() string
	logger   *slog.Logger
}

// Option customizes a Session.
type Option func(*Session)

// WithLogger sets the session logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		s.logger = logging.NewComponentLogger(logger, "session")
	}
}

// WithIDGenerator replaces the uuid record id generator.
func WithIDGenerator(fn func() string) Option {
	return func(s *Session) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// State is a point-in-time copy of a session, used for persistence.
type State struct {
	Mission  manifest.MissionConfiguration
	Category manifest.Category
	Records  []manifest.PersonnelRecord
}

// New starts an empty session for mission.
func New(mission manifest.MissionConfiguration, opts ...Option) *Session {
	return Restore(State{Mission: mission}, opts...)
}

// Restore rebuilds a session from persisted state.
func Restore(state State, opts ...Option) *Session {
	s := &Session{
		mission:  state.Mission.Normalize(),
		category: state.Category,
		roster:   roster.New(state.Records...),
		newID:    uuid.NewString,
		logger:   logging.NewComponentLogger(nil, "session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// State returns a consistent copy of the session.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Mission: s.mission, Category: s.category, Records: s.roster.Snapshot()}
}

// Mission returns the current mission configuration.
func (s *Session) Mission() manifest.MissionConfiguration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mission
}

// Category returns the category applied to the next admissions.
func (s *Session) Category() manifest.Category {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.category
}

// Roster exposes the roster store for reorder, delete and edit operations.
func (s *Session) Roster() *roster.Store { return s.roster }

// Correction describes what an equipment change did to the door selection.
type Correction struct {
	Previous manifest.Door
	Current  manifest.Door
	Allowed  manifest.DoorSet
	// Resolved is false when the operator has to pick a door before the next
	// exiting admission.
	Resolved bool
}

// Changed reports whether the door selection moved.
func (c Correction) Changed() bool { return c.Previous != c.Current }

// SetEquipment changes the aircraft and parachute and applies the door
// correction before any later admission can observe the new equipment.
func (s *Session) SetEquipment(aircraft, parachute string) Correction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setEquipmentLocked(aircraft, parachute)
}

// SetAircraft changes only the aircraft.
func (s *Session) SetAircraft(aircraft string) Correction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setEquipmentLocked(aircraft, s.mission.ParachuteType)
}

// SetParachute changes only the parachute.
func (s *Session) SetParachute(parachute string) Correction {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.setEquipmentLocked(s.mission.AircraftType, parachute)
}

func (s *Session) setEquipmentLocked(aircraft, parachute string) Correction {
	previous := s.mission.CurrentDoor
	s.mission = s.mission.WithEquipment(aircraft, parachute)
	correction := Correction{
		Previous: previous,
		Current:  s.mission.CurrentDoor,
		Allowed:  s.mission.AllowedDoors(),
		Resolved: s.mission.DoorResolved(),
	}
	if !manifest.KnownAircraft(aircraft) || !manifest.KnownParachute(parachute) {
		logging.WarnWithContext(s.logger, "unrecognized equipment designation", "equipment_unknown",
			logging.String("aircraft", aircraft),
			logging.String("parachute", parachute),
			logging.String(logging.FieldImpact, "all doors allowed"),
			logging.String(logging.FieldErrorHint, "check the designation spelling"),
		)
	}
	switch {
	case !correction.Resolved:
		logging.WarnWithContext(s.logger, "door selection invalidated by equipment change", "door_unresolved",
			logging.String("aircraft", s.mission.AircraftType),
			logging.String("parachute", s.mission.ParachuteType),
			logging.String(logging.FieldDoor, string(previous)),
			logging.String(logging.FieldImpact, "exiting admissions blocked"),
			logging.String(logging.FieldErrorHint, "select a door from "+correction.Allowed.String()),
		)
	case correction.Changed():
		s.logger.Info("door corrected for equipment",
			logging.String("aircraft", s.mission.AircraftType),
			logging.String("parachute", s.mission.ParachuteType),
			logging.String("from", string(previous)),
			logging.String("to", string(correction.Current)),
		)
	}
	return correction
}

// SetDoor selects the door for the next exiting admissions.
func (s *Session) SetDoor(door manifest.Door) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated, err := s.mission.WithDoor(door)
	if err != nil {
		return err
	}
	s.mission = updated
	return nil
}

// SetChalk selects the chalk for the next admissions. An empty chalk prints
// as TBD.
func (s *Session) SetChalk(chalk string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mission.CurrentChalk = strings.TrimSpace(chalk)
}

// SetPass selects the pass for the next admissions.
func (s *Session) SetPass(pass int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	updated, err := s.mission.WithPass(pass)
	if err != nil {
		return err
	}
	s.mission = updated
	return nil
}

// NextPass advances the pass selection by one and returns the new value.
func (s *Session) NextPass() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mission.CurrentPass++
	if s.mission.CurrentPass < 1 {
		s.mission.CurrentPass = 1
	}
	return s.mission.CurrentPass
}

// SetCategory selects the category for the next admissions. Records already
// on the roster keep their category and label.
func (s *Session) SetCategory(category manifest.Category) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.category = category
}

// SetDropZone sets the mission drop zone.
func (s *Session) SetDropZone(dropZone string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mission.DropZone = strings.TrimSpace(dropZone)
}

// SetDate sets the mission date in YYYY-MM-DD form.
func (s *Session) SetDate(date string) error {
	date = strings.TrimSpace(date)
	if _, err := time.Parse(manifest.DateLayout, date); err != nil {
		return fmt.Errorf("mission date %q: expected YYYY-MM-DD", date)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mission.Date = date
	return nil
}

// SetPartner marks the mission as a partner jump with nation. Nations outside
// the known partner list are accepted with a warning.
func (s *Session) SetPartner(partnerJump bool, nation string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mission = s.mission.WithPartner(partnerJump, nation)
	if partnerJump && !manifest.KnownPartnerNation(nation) {
		logging.WarnWithContext(s.logger, "partner nation not on the known list", "partner_nation_unknown",
			logging.String("partner_nation", s.mission.PartnerNation),
			logging.String(logging.FieldImpact, "nation printed as entered"),
		)
	}
}

// Admit parses one intake line and admits it. Malformed input yields ok false
// and no error; nothing is added to the roster.
func (s *Session) Admit(raw string) (manifest.PersonnelRecord, bool, error) {
	candidate, ok := manifest.ParseIntake(raw)
	if !ok {
		s.logger.Debug("intake discarded", logging.Int("length", len(raw)))
		return manifest.PersonnelRecord{}, false, nil
	}
	record, err := s.AdmitCandidate(candidate)
	if err != nil {
		return manifest.PersonnelRecord{}, true, err
	}
	return record, true, nil
}

// AdmitCandidate admits an already parsed candidate with the current
// selections and appends it to the roster.
func (s *Session) AdmitCandidate(candidate manifest.Candidate) (manifest.PersonnelRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, err := manifest.Admit(s.newID(), candidate, s.mission, s.category)
	if err != nil {
		return manifest.PersonnelRecord{}, fmt.Errorf("admit %s: %w", strings.TrimSpace(candidate.LastName), err)
	}
	s.roster.Append(record)
	s.logger.Debug("record admitted",
		logging.String(logging.FieldRecordID, record.ID),
		logging.String(logging.FieldChalk, record.ChalkLabel()),
		logging.String(logging.FieldDoor, string(record.Door)),
		logging.String("category", record.Category.String()),
	)
	return record, nil
}

// Compose builds the manifest from the current roster and mission.
func (s *Session) Compose() manifest.ComposedManifest {
	state := s.State()
	return manifest.Compose(state.Records, state.Mission)
}
