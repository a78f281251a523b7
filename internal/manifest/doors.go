package manifest

import (
	"errors"
	"fmt"
	"strings"
)

// Door identifies a physical exit point on the aircraft.
type Door string

const (
	DoorNone  Door = ""
	DoorLeft  Door = "Left"
	DoorRight Door = "Right"
	DoorRamp  Door = "Ramp"
)

// Known aircraft and parachute designations.
const (
	AircraftC130    = "C-130"
	AircraftC17     = "C-17"
	AircraftC27     = "C-27"
	AircraftCASA212 = "CASA-212"
	AircraftUH60    = "UH-60"
	AircraftCH47    = "CH-47"

	ParachuteMC6 = "MC-6"
	ParachuteT11 = "T-11"
	ParachuteRA1 = "RA-1"
)

var (
	// ErrDoorNotAllowed reports a door selection outside the allowed set for the
	// current aircraft and parachute.
	ErrDoorNotAllowed = errors.New("door not allowed for aircraft configuration")
	// ErrDoorUnresolved reports that the current door selection was invalidated
	// by an equipment change and no replacement could be chosen automatically.
	ErrDoorUnresolved = errors.New("door selection unresolved")
)

// ParseDoor converts user input into a Door. Matching ignores case and an
// optional "door" suffix so "left door" and "LEFT" both resolve to DoorLeft.
func ParseDoor(value string) (Door, error) {
	trimmed := strings.ToLower(strings.TrimSpace(value))
	if trimmed == "" || trimmed == "none" {
		return DoorNone, nil
	}
	switch strings.TrimSpace(strings.TrimSuffix(trimmed, "door")) {
	case "left":
		return DoorLeft, nil
	case "right":
		return DoorRight, nil
	case "ramp":
		return DoorRamp, nil
	default:
		return DoorNone, fmt.Errorf("unknown door %q", value)
	}
}

// Label returns the exit description printed in section headers.
func (d Door) Label() string {
	switch d {
	case DoorRamp:
		return "Ramp"
	case DoorNone:
		return ""
	default:
		return string(d) + " Door"
	}
}

// rank orders doors for display. Ramp is semantically the last exit, and
// door-less records (helicopter loads) trail everything.
func (d Door) rank() int {
	switch d {
	case DoorLeft:
		return 0
	case DoorRight:
		return 1
	case DoorRamp:
		return 2
	default:
		return 3
	}
}

// DoorSet is an ordered set of doors in display order.
type DoorSet []Door

// Contains reports whether door is a member of the set.
func (s DoorSet) Contains(door Door) bool {
	if door == DoorNone {
		return false
	}
	for _, d := range s {
		if d == door {
			return true
		}
	}
	return false
}

// Empty reports whether no exit concept applies.
func (s DoorSet) Empty() bool { return len(s) == 0 }

func (s DoorSet) String() string {
	parts := make([]string, len(s))
	for i, d := range s {
		parts[i] = string(d)
	}
	return strings.Join(parts, ", ")
}

// AllowedDoors returns the exits usable for the aircraft and parachute pair.
// Rules are evaluated in priority order and the first match wins.
func AllowedDoors(aircraft, parachute string) DoorSet {
	switch {
	case sameDesignation(aircraft, AircraftCASA212), sameDesignation(aircraft, AircraftCH47):
		return DoorSet{DoorRamp}
	case sameDesignation(aircraft, AircraftUH60):
		return DoorSet{}
	case sameDesignation(aircraft, AircraftC17) && sameDesignation(parachute, ParachuteRA1):
		return DoorSet{DoorRamp}
	default:
		return DoorSet{DoorLeft, DoorRight, DoorRamp}
	}
}

// CorrectDoor keeps current when allowed, otherwise falls back to Ramp when
// the set offers it. ok is false when the operator has to pick a door again;
// an empty allowed set always resolves to DoorNone with ok true.
func CorrectDoor(current Door, allowed DoorSet) (Door, bool) {
	if allowed.Empty() {
		return DoorNone, true
	}
	if allowed.Contains(current) {
		return current, true
	}
	if allowed.Contains(DoorRamp) {
		return DoorRamp, true
	}
	return DoorNone, false
}

func sameDesignation(value, designation string) bool {
	return strings.EqualFold(strings.TrimSpace(value), designation)
}
