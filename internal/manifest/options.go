package manifest

import "strings"

var (
	knownAircraft   = []string{AircraftC130, AircraftC17, AircraftC27, AircraftCASA212, AircraftUH60, AircraftCH47}
	knownParachutes = []string{ParachuteMC6, ParachuteT11, ParachuteRA1}
	knownDropZones  = []string{"Sicily DZ", "Holland DZ", "Luzon DZ", "St Mere DZ"}
	partnerNations  = []string{
		"Brazil", "Canada", "Chile", "Colombia", "Czech Republic", "Ecuador",
		"France", "Germany", "Greece", "Ireland", "Italy", "Jordan", "Kenya",
		"Netherlands", "Poland", "Portugal", "Qatar", "Spain", "Tunisia", "UK",
	}
	jumpTypeOptions = []string{"J/A/NT", "J/A/NT/CE", "A/NT", "SAFETY", "JUMPMASTER", "STUDENT", "INSTRUCTOR"}
)

// Options lists the selectable values offered to operators. Free text is
// still accepted everywhere; these only drive suggestions and warnings.
type Options struct {
	Aircraft       []string `json:"aircraft"`
	Parachutes     []string `json:"parachutes"`
	DropZones      []string `json:"dropZones"`
	PartnerNations []string `json:"partnerNations"`
	JumpTypes      []string `json:"jumpTypes"`
}

// KnownOptions returns fresh copies of the option lists.
func KnownOptions() Options {
	return Options{
		Aircraft:       append([]string(nil), knownAircraft...),
		Parachutes:     append([]string(nil), knownParachutes...),
		DropZones:      append([]string(nil), knownDropZones...),
		PartnerNations: append([]string(nil), partnerNations...),
		JumpTypes:      append([]string(nil), jumpTypeOptions...),
	}
}

// KnownPartnerNation reports whether nation is on the partner list.
func KnownPartnerNation(nation string) bool { return containsFold(partnerNations, nation) }

// KnownAircraft reports whether aircraft is a recognized designation.
func KnownAircraft(aircraft string) bool { return containsFold(knownAircraft, aircraft) }

// KnownParachute reports whether parachute is a recognized designation.
func KnownParachute(parachute string) bool { return containsFold(knownParachutes, parachute) }

// KnownJumpType reports whether label is one of the suggested jump types.
func KnownJumpType(label string) bool { return containsFold(jumpTypeOptions, label) }

func containsFold(options []string, value string) bool {
	value = strings.TrimSpace(value)
	for _, option := range options {
		if strings.EqualFold(option, value) {
			return true
		}
	}
	return false
}
