package render

import (
	"bytes"
	"context"
	"encoding/csv"
	"strconv"

	"loadmaster/internal/manifest"
)

var csvHeaders = []string{"Section", "Line", "Name", "Grade", "Organization", "Jump Type"}

type csvRenderer struct{}

func (csvRenderer) Format() Format { return FormatCSV }

// Render writes the mission block, a blank record, the personnel table and a
// summary block. Fields are quoted per RFC 4180 so "Last, First" names stay
// in one cell.
func (csvRenderer) Render(ctx context.Context, composed manifest.ComposedManifest, mission manifest.MissionConfiguration) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	records := make([][]string, 0, 16)
	for _, field := range missionFields(mission) {
		records = append(records, []string{field[0], field[1]})
	}
	records = append(records, []string{""}, csvHeaders)

	if composed.Empty() {
		records = append(records, []string{NoPersonnelMessage})
	}
	for _, section := range composed.Sections() {
		for _, member := range section.Members {
			records = append(records, []string{
				section.Header,
				member.Marker,
				member.Record.FullName(),
				member.Record.Grade,
				member.Record.Organization,
				member.JumpType,
			})
		}
	}

	totals := composed.Totals()
	records = append(records,
		[]string{""},
		[]string{"Total Manifested", strconv.Itoa(totals.Manifested)},
		[]string{"Total Jumpers", strconv.Itoa(totals.Exiting)},
		[]string{"Total Non-Jumpers", strconv.Itoa(totals.NonExiting)},
	)
	if err := w.WriteAll(records); err != nil {
		return Artifact{}, err
	}

	return Artifact{
		Name:        ArtifactName(mission, "csv"),
		ContentType: "text/csv; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}
