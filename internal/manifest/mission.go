package manifest

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// MissionConfiguration carries the mission-wide values and the selections that
// new admissions inherit. It is a value type: the With* methods return updated
// copies and never touch the receiver.
type MissionConfiguration struct {
	AircraftType  string `json:"aircraftType"`
	ParachuteType string `json:"chuteType"`
	DropZone      string `json:"dropZone"`
	Date          string `json:"date"`
	PartnerJump   bool   `json:"partnerJump"`
	PartnerNation string `json:"partnerNation,omitempty"`
	CurrentChalk  string `json:"currentChalk"`
	CurrentPass   int    `json:"currentPass"`
	CurrentDoor   Door   `json:"currentDoor,omitempty"`
}

// DateLayout is the ISO calendar date format used for mission dates.
const DateLayout = "2006-01-02"

// AllowedDoors returns the exit set for the configured aircraft and parachute.
func (m MissionConfiguration) AllowedDoors() DoorSet {
	return AllowedDoors(m.AircraftType, m.ParachuteType)
}

// DoorResolved reports whether CurrentDoor is usable for new admissions.
func (m MissionConfiguration) DoorResolved() bool {
	allowed := m.AllowedDoors()
	return allowed.Empty() || allowed.Contains(m.CurrentDoor)
}

// WithEquipment changes the aircraft and parachute and corrects the current
// door against the new allowed set. When no automatic correction exists the
// door is cleared and DoorResolved reports false until the operator picks one.
func (m MissionConfiguration) WithEquipment(aircraft, parachute string) MissionConfiguration {
	m.AircraftType = strings.TrimSpace(aircraft)
	m.ParachuteType = strings.TrimSpace(parachute)
	allowed := m.AllowedDoors()
	if allowed.Empty() {
		// No exit concept applies; keep the selection so it comes back when
		// the operator switches to a fixed-wing aircraft.
		return m
	}
	if door, ok := CorrectDoor(m.CurrentDoor, allowed); ok {
		m.CurrentDoor = door
	} else {
		m.CurrentDoor = DoorNone
	}
	return m
}

// WithDoor selects the door for new admissions.
func (m MissionConfiguration) WithDoor(door Door) (MissionConfiguration, error) {
	allowed := m.AllowedDoors()
	if allowed.Empty() {
		if door != DoorNone {
			return m, fmt.Errorf("%w: %s has no exit doors", ErrDoorNotAllowed, m.AircraftType)
		}
		return m, nil
	}
	if !allowed.Contains(door) {
		return m, fmt.Errorf("%w: %q (allowed: %s)", ErrDoorNotAllowed, door, allowed)
	}
	m.CurrentDoor = door
	return m, nil
}

// WithPartner sets the partner jump flag. The nation is dropped when the jump
// is not a partner jump.
func (m MissionConfiguration) WithPartner(partnerJump bool, nation string) MissionConfiguration {
	m.PartnerJump = partnerJump
	if partnerJump {
		m.PartnerNation = strings.TrimSpace(nation)
	} else {
		m.PartnerNation = ""
	}
	return m
}

// WithPass selects the pass number for new admissions.
func (m MissionConfiguration) WithPass(pass int) (MissionConfiguration, error) {
	if pass < 1 {
		return m, fmt.Errorf("pass must be at least 1, got %d", pass)
	}
	m.CurrentPass = pass
	return m, nil
}

// PartnerLabel returns the partner nation when this is a partner jump.
func (m MissionConfiguration) PartnerLabel() string {
	if !m.PartnerJump {
		return ""
	}
	return strings.TrimSpace(m.PartnerNation)
}

// Normalize trims text fields and clamps the pass to its minimum.
func (m MissionConfiguration) Normalize() MissionConfiguration {
	m.AircraftType = strings.TrimSpace(m.AircraftType)
	m.ParachuteType = strings.TrimSpace(m.ParachuteType)
	m.DropZone = strings.TrimSpace(m.DropZone)
	m.Date = strings.TrimSpace(m.Date)
	m.CurrentChalk = strings.TrimSpace(m.CurrentChalk)
	if m.CurrentPass < 1 {
		m.CurrentPass = 1
	}
	return m.WithPartner(m.PartnerJump, m.PartnerNation)
}

// WaveDate formats an ISO mission date as the upper-case DDMMMYYYY form the
// spreadsheet backend keys on, for example 2025-12-08 becomes 08DEC2025.
func WaveDate(date string) (string, error) {
	parsed, err := time.Parse(DateLayout, strings.TrimSpace(date))
	if err != nil {
		return "", fmt.Errorf("parse mission date %q: %w", date, err)
	}
	return cases.Upper(language.Und).String(parsed.Format("02Jan2006")), nil
}
