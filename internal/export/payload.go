package export

import (
	"strings"

	"loadmaster/internal/manifest"
	"loadmaster/internal/textutil"
)

// Group is one chalk and door delivery unit.
type Group struct {
	Chalk   string
	Door    string
	Members []manifest.Member
}

// Key identifies the group in logs and reports, for example "101-LEFT".
func (g Group) Key() string {
	return g.Chalk + "-" + g.Door
}

type formData struct {
	Date          string `json:"date"`
	DropZone      string `json:"dropZone"`
	AircraftType  string `json:"aircraftType"`
	ChuteType     string `json:"chuteType"`
	PartnerJump   string `json:"partnerJump"`
	PartnerNation string `json:"partnerNation"`
}

type entry struct {
	Line          int    `json:"line"`
	ID            string `json:"id"`
	LastName      string `json:"lastName"`
	FirstName     string `json:"firstName"`
	MiddleInitial string `json:"middleInitial"`
	Grade         string `json:"grade"`
	Organization  string `json:"organization"`
	JumpType      string `json:"jumpType"`
	Chalk         string `json:"chalk"`
	Pass          int    `json:"pass"`
	Door          string `json:"door"`
	PersonnelType string `json:"personnelType"`
	IsNonExiting  bool   `json:"isNonExiting"`
}

type requestBody struct {
	WaveDate   string   `json:"waveDate"`
	WaveNumber string   `json:"waveNumber"`
	Chalk      string   `json:"chalk"`
	Door       string   `json:"door"`
	FormData   formData `json:"formData"`
	Entries    []entry  `json:"entries"`
}

type responseBody struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// Groups splits the exiting sections into chalk and door groups. Sections of
// different passes that share a chalk and door land in the same group, in
// manifest order. Records without a door fall back to LEFT, which is where
// the backend files them.
func Groups(composed manifest.ComposedManifest) []Group {
	var groups []Group
	index := make(map[string]int)
	for _, section := range composed.Sections() {
		if section.Kind != manifest.ExitSection {
			continue
		}
		for _, member := range section.Members {
			chalk := member.Record.ChalkLabel()
			door := doorKey(member.Record.Door)
			key := chalk + "\x00" + door
			i, ok := index[key]
			if !ok {
				i = len(groups)
				index[key] = i
				groups = append(groups, Group{Chalk: chalk, Door: door})
			}
			groups[i].Members = append(groups[i].Members, member)
		}
	}
	return groups
}

func doorKey(door manifest.Door) string {
	if door == manifest.DoorNone {
		door = manifest.DoorLeft
	}
	return strings.ToUpper(string(door))
}

func buildForm(mission manifest.MissionConfiguration) formData {
	return formData{
		Date:          mission.Date,
		DropZone:      mission.DropZone,
		AircraftType:  mission.AircraftType,
		ChuteType:     mission.ParachuteType,
		PartnerJump:   textutil.YesNo(mission.PartnerJump),
		PartnerNation: mission.PartnerLabel(),
	}
}

func buildBody(group Group, waveDate, waveNumber string, form formData) requestBody {
	entries := make([]entry, 0, len(group.Members))
	for _, member := range group.Members {
		record := member.Record
		entries = append(entries, entry{
			Line:          member.Seq,
			ID:            record.ID,
			LastName:      record.LastName,
			FirstName:     record.FirstName,
			MiddleInitial: record.MiddleInitial,
			Grade:         record.Grade,
			Organization:  record.Organization,
			JumpType:      member.JumpType,
			Chalk:         record.ChalkLabel(),
			Pass:          record.Pass,
			Door:          string(record.Door),
			PersonnelType: string(record.Category.Kind()),
			IsNonExiting:  record.NonExiting(),
		})
	}
	return requestBody{
		WaveDate:   waveDate,
		WaveNumber: waveNumber,
		Chalk:      group.Chalk,
		Door:       group.Door,
		FormData:   form,
		Entries:    entries,
	}
}
