package manifest

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// SectionKind distinguishes exiting sections from the trailing non-exiting
// sections.
type SectionKind string

const (
	ExitSection       SectionKind = "exit"
	NonExitingSection SectionKind = "non-exiting"
)

// NonExitingMarker replaces the line number for personnel who stay aboard.
const NonExitingMarker = "////"

// Member is one numbered line of a section.
type Member struct {
	// Marker is the printed line number: "1", "2", ... for exiting sections
	// and NonExitingMarker otherwise.
	Marker string `json:"marker"`
	// Seq is the numeric line number, zero for non-exiting members.
	Seq      int             `json:"seq"`
	Record   PersonnelRecord `json:"record"`
	JumpType string          `json:"jumpType"`
}

// Section is a contiguous block of the manifest.
type Section struct {
	Kind  SectionKind `json:"kind"`
	Label string      `json:"label"`
	// Header is the mission line printed above the section.
	Header string `json:"header"`
	// Chalk is the section's chalk label. For exit sections it is taken from
	// the first member.
	Chalk   string   `json:"chalk"`
	Pass    int      `json:"pass,omitempty"`
	Door    Door     `json:"door,omitempty"`
	Members []Member `json:"members"`
}

// ComposedManifest is the grouped, ordered and numbered manifest. It is built
// in one pass by Compose and handed out by value; accessors return copies.
type ComposedManifest struct {
	sections []Section
}

// Totals summarizes the manifest head count.
type Totals struct {
	Manifested int `json:"manifested"`
	Exiting    int `json:"exiting"`
	NonExiting int `json:"nonExiting"`
}

// Sections returns the manifest sections in document order.
func (m ComposedManifest) Sections() []Section {
	out := make([]Section, len(m.sections))
	for i, section := range m.sections {
		section.Members = append([]Member(nil), section.Members...)
		out[i] = section
	}
	return out
}

// Len returns the number of sections.
func (m ComposedManifest) Len() int { return len(m.sections) }

// Empty reports whether nobody is manifested.
func (m ComposedManifest) Empty() bool { return len(m.sections) == 0 }

// Totals counts members by section kind.
func (m ComposedManifest) Totals() Totals {
	var totals Totals
	for _, section := range m.sections {
		if section.Kind == ExitSection {
			totals.Exiting += len(section.Members)
		} else {
			totals.NonExiting += len(section.Members)
		}
	}
	totals.Manifested = totals.Exiting + totals.NonExiting
	return totals
}

// Compose groups a roster into manifest sections.
//
// Exiting records are bucketed by pass (ascending) and door (Left, Right,
// Ramp), numbered from 1 within each bucket. Non-exiting records follow,
// bucketed by chalk in ascending order with the TBD placeholder last, each
// marked with NonExitingMarker. Roster order is kept inside every bucket.
// Each section carries its SectionHeader for the mission. Compose never fails
// and never retains its inputs.
func Compose(records []PersonnelRecord, mission MissionConfiguration) ComposedManifest {
	exiting := make([]PersonnelRecord, 0, len(records))
	var nonExiting []PersonnelRecord
	for _, record := range records {
		if record.NonExiting() {
			nonExiting = append(nonExiting, record)
		} else {
			exiting = append(exiting, record)
		}
	}

	sections := make([]Section, 0)
	sections = append(sections, exitSections(exiting)...)
	sections = append(sections, nonExitingSections(nonExiting)...)
	for i := range sections {
		sections[i].Header = SectionHeader(sections[i], mission)
	}
	return ComposedManifest{sections: sections}
}

func exitSections(records []PersonnelRecord) []Section {
	sorted := append([]PersonnelRecord(nil), records...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if passOf(sorted[i]) != passOf(sorted[j]) {
			return passOf(sorted[i]) < passOf(sorted[j])
		}
		return sorted[i].Door.rank() < sorted[j].Door.rank()
	})

	var sections []Section
	for _, record := range sorted {
		pass := passOf(record)
		n := len(sections)
		if n == 0 || sections[n-1].Pass != pass || sections[n-1].Door.rank() != record.Door.rank() {
			sections = append(sections, Section{
				Kind:  ExitSection,
				Label: exitLabel(pass, record.Door),
				Chalk: record.ChalkLabel(),
				Pass:  pass,
				Door:  normalizedDoor(record.Door),
			})
			n++
		}
		seq := len(sections[n-1].Members) + 1
		sections[n-1].Members = append(sections[n-1].Members, Member{
			Marker:   strconv.Itoa(seq),
			Seq:      seq,
			Record:   record,
			JumpType: record.JumpType,
		})
	}
	return sections
}

func nonExitingSections(records []PersonnelRecord) []Section {
	buckets := make(map[string][]PersonnelRecord)
	var labels []string
	for _, record := range records {
		label := record.ChalkLabel()
		if _, ok := buckets[label]; !ok {
			labels = append(labels, label)
		}
		buckets[label] = append(buckets[label], record)
	}
	sort.Slice(labels, func(i, j int) bool { return chalkLess(labels[i], labels[j]) })

	sections := make([]Section, 0, len(labels))
	for _, label := range labels {
		section := Section{
			Kind:  NonExitingSection,
			Label: fmt.Sprintf("Chalk %s, Non-Exiting", label),
			Chalk: label,
		}
		for _, record := range buckets[label] {
			section.Members = append(section.Members, Member{
				Marker:   NonExitingMarker,
				Record:   record,
				JumpType: record.JumpType,
			})
		}
		sections = append(sections, section)
	}
	return sections
}

// chalkLess orders chalk labels by byte order with the TBD placeholder after
// every real label.
func chalkLess(a, b string) bool {
	if (a == TBDChalk) != (b == TBDChalk) {
		return b == TBDChalk
	}
	return a < b
}

func exitLabel(pass int, door Door) string {
	if label := door.Label(); label != "" {
		return fmt.Sprintf("Pass %d, %s", pass, label)
	}
	return fmt.Sprintf("Pass %d", pass)
}

func passOf(record PersonnelRecord) int {
	if record.Pass < 1 {
		return 1
	}
	return record.Pass
}

func normalizedDoor(door Door) Door {
	if door.rank() > DoorRamp.rank() {
		return DoorNone
	}
	return door
}

// SectionHeader returns the mission line printed above a section. Exit
// sections read "Chalk 101, Pass 1, Left Door, T-11[, Partner]"; non-exiting
// sections use their label.
func SectionHeader(section Section, mission MissionConfiguration) string {
	if section.Kind != ExitSection {
		return section.Label
	}
	parts := []string{
		"Chalk " + section.Chalk,
		fmt.Sprintf("Pass %d", section.Pass),
		section.Door.Label(),
		strings.TrimSpace(mission.ParachuteType),
		mission.PartnerLabel(),
	}
	kept := parts[:0]
	for _, part := range parts {
		if part != "" {
			kept = append(kept, part)
		}
	}
	return strings.Join(kept, ", ")
}

// PassDoorCount is the number of exiting personnel in one pass and door.
type PassDoorCount struct {
	Pass  int
	Door  Door
	Count int
}

// CountByPassDoor tallies exiting records by pass and door in display order.
func CountByPassDoor(records []PersonnelRecord) []PassDoorCount {
	var counts []PassDoorCount
	for _, section := range exitSections(filterExiting(records)) {
		counts = append(counts, PassDoorCount{Pass: section.Pass, Door: section.Door, Count: len(section.Members)})
	}
	return counts
}

func filterExiting(records []PersonnelRecord) []PersonnelRecord {
	out := make([]PersonnelRecord, 0, len(records))
	for _, record := range records {
		if !record.NonExiting() {
			out = append(out, record)
		}
	}
	return out
}
