package render

import (
	"context"
	"fmt"
	"strings"

	"loadmaster/internal/manifest"
	"loadmaster/internal/textutil"
)

// Format names an output format.
type Format string

const (
	FormatText Format = "text"
	FormatCSV  Format = "csv"
	FormatHTML Format = "html"
)

// DefaultRowsPerPage is the personnel capacity of one printed form.
const DefaultRowsPerPage = 48

// NoPersonnelMessage is printed in place of sections for an empty manifest.
const NoPersonnelMessage = "No personnel manifested."

// Artifact is one rendered document.
type Artifact struct {
	Name        string
	ContentType string
	Data        []byte
}

// Renderer produces an artifact from a composed manifest.
type Renderer interface {
	Format() Format
	Render(ctx context.Context, composed manifest.ComposedManifest, mission manifest.MissionConfiguration) (Artifact, error)
}

// Options tunes renderer output.
type Options struct {
	RowsPerPage int
}

// Formats lists the supported formats.
func Formats() []Format {
	return []Format{FormatText, FormatCSV, FormatHTML}
}

// ParseFormat resolves a format name case-insensitively.
func ParseFormat(value string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(value))) {
	case FormatText, "txt":
		return FormatText, nil
	case FormatCSV:
		return FormatCSV, nil
	case FormatHTML:
		return FormatHTML, nil
	default:
		return "", fmt.Errorf("unsupported render format %q (want text, csv or html)", value)
	}
}

// New returns the renderer for a format.
func New(format Format, opts Options) (Renderer, error) {
	if opts.RowsPerPage < 1 {
		opts.RowsPerPage = DefaultRowsPerPage
	}
	switch format {
	case FormatText:
		return textRenderer{}, nil
	case FormatCSV:
		return csvRenderer{}, nil
	case FormatHTML:
		return htmlRenderer{rowsPerPage: opts.RowsPerPage}, nil
	default:
		return nil, fmt.Errorf("unsupported render format %q", format)
	}
}

// ForFormat parses a format name and returns its renderer.
func ForFormat(name string, opts Options) (Renderer, error) {
	format, err := ParseFormat(name)
	if err != nil {
		return nil, err
	}
	return New(format, opts)
}

// ArtifactName builds "{DDMMMYYYY}_MANIFEST.{ext}" from the mission date,
// falling back to "MANIFEST.{ext}" when the date does not parse.
func ArtifactName(mission manifest.MissionConfiguration, ext string) string {
	name := "MANIFEST." + ext
	if wave, err := manifest.WaveDate(mission.Date); err == nil {
		name = wave + "_" + name
	}
	return textutil.SanitizeFileName(name)
}

// missionFields returns the labelled mission block shared by every format.
func missionFields(mission manifest.MissionConfiguration) [][2]string {
	fields := [][2]string{
		{"Date", mission.Date},
		{"Drop Zone", mission.DropZone},
		{"Aircraft Type", mission.AircraftType},
		{"Parachute Type", mission.ParachuteType},
	}
	if partner := mission.PartnerLabel(); partner != "" {
		fields = append(fields, [2]string{"Partner Nation", partner})
	}
	return fields
}

func totalsLine(totals manifest.Totals) string {
	return fmt.Sprintf("Total Manifested: %d; Total Jumpers: %d; Total Non-Jumpers: %d",
		totals.Manifested, totals.Exiting, totals.NonExiting)
}

func memberRow(member manifest.Member) []string {
	return []string{
		member.Marker,
		member.Record.FullName(),
		member.Record.Grade,
		member.Record.Organization,
		member.JumpType,
	}
}

var memberHeaders = []string{"#", "Name", "Grade", "Organization", "Jump Type"}
