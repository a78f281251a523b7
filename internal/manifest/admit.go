package manifest

import (
	"fmt"
	"strings"
)

// Admit turns a candidate into a roster record using the mission selections
// and the category active at this moment. The category is resolved exactly
// once here; later selector changes do not touch the returned record.
//
// Non-exiting personnel never carry a door. Exiting personnel take the current
// door, or no door when the aircraft has no exit concept. A door invalidated by
// an equipment change blocks admission with ErrDoorUnresolved.
func Admit(id string, candidate Candidate, mission MissionConfiguration, category Category) (PersonnelRecord, error) {
	label, nonExiting := Resolve(category, candidate.JumpType)

	door := DoorNone
	if !nonExiting {
		allowed := mission.AllowedDoors()
		if !allowed.Empty() {
			if !allowed.Contains(mission.CurrentDoor) {
				return PersonnelRecord{}, fmt.Errorf("%w: %q is not one of %s", ErrDoorUnresolved, mission.CurrentDoor, allowed)
			}
			door = mission.CurrentDoor
		}
	}

	pass := mission.CurrentPass
	if pass < 1 {
		pass = 1
	}

	return PersonnelRecord{
		ID:              id,
		LastName:        strings.TrimSpace(candidate.LastName),
		FirstName:       strings.TrimSpace(candidate.FirstName),
		MiddleInitial:   strings.TrimSpace(candidate.MiddleInitial),
		Grade:           strings.TrimSpace(candidate.Grade),
		Organization:    strings.TrimSpace(candidate.Organization),
		ScannedJumpType: strings.TrimSpace(candidate.JumpType),
		JumpType:        strings.TrimSpace(label),
		Chalk:           strings.TrimSpace(mission.CurrentChalk),
		Pass:            pass,
		Door:            door,
		Category:        category,
	}, nil
}
