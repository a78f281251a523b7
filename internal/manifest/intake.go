package manifest

import "strings"

// Candidate is the identity portion of a record as read from a scan or typed
// entry, before mission assignment.
type Candidate struct {
	LastName      string
	FirstName     string
	MiddleInitial string
	Grade         string
	Organization  string
	JumpType      string
}

const intakeFields = 4

// ParseIntake reads the scanner format "Last, First MI|Grade|Organization|JumpType".
// Input that does not split into exactly four pipe-delimited fields, or whose
// name field has no comma, is rejected with ok false.
func ParseIntake(raw string) (Candidate, bool) {
	parts := strings.Split(strings.TrimSpace(raw), "|")
	if len(parts) != intakeFields {
		return Candidate{}, false
	}
	last, rest, found := strings.Cut(parts[0], ",")
	if !found {
		return Candidate{}, false
	}
	// Text after a second comma is ignored.
	rest, _, _ = strings.Cut(rest, ",")
	given := strings.Fields(rest)

	candidate := Candidate{
		LastName:     strings.TrimSpace(last),
		Grade:        strings.TrimSpace(parts[1]),
		Organization: strings.TrimSpace(parts[2]),
		JumpType:     strings.TrimSpace(parts[3]),
	}
	if len(given) > 0 {
		candidate.FirstName = given[0]
	}
	if len(given) > 1 {
		candidate.MiddleInitial = given[1]
	}
	return candidate, true
}
