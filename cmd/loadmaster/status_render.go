package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"

	"loadmaster/internal/manifest"
	"loadmaster/internal/textutil"
)

type statusKind int

const (
	statusInfo statusKind = iota
	statusOK
	statusWarn
	statusError
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
	ansiBlue   = "\x1b[34m"
)

const (
	statusLabelWidth = 20
	statusIndent     = "  "
)

func renderStatusLine(label string, kind statusKind, message string, colorize bool) string {
	statusText := statusKindLabel(kind)
	if message != "" {
		statusText = fmt.Sprintf("[%s] %s", statusText, message)
	} else {
		statusText = fmt.Sprintf("[%s]", statusText)
	}
	base := fmt.Sprintf("%s%-*s %s", statusIndent, statusLabelWidth, label+":", statusText)
	if colorize {
		if color := statusKindColor(kind); color != "" {
			return color + base + ansiReset
		}
	}
	return base
}

func statusKindLabel(kind statusKind) string {
	switch kind {
	case statusOK:
		return "OK"
	case statusWarn:
		return "WARN"
	case statusError:
		return "ERROR"
	default:
		return "INFO"
	}
}

func statusKindColor(kind statusKind) string {
	switch kind {
	case statusOK:
		return ansiGreen
	case statusWarn:
		return ansiYellow
	case statusError:
		return ansiRed
	case statusInfo:
		return ansiBlue
	default:
		return ""
	}
}

func renderSectionHeader(title string, colorize bool) []string {
	line := fmt.Sprintf("== %s ==", strings.TrimSpace(title))
	rule := strings.Repeat("-", len(line))
	if colorize {
		line = ansiBlue + line + ansiReset
		rule = ansiBlue + rule + ansiReset
	}
	return []string{line, rule}
}

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func missionLines(mission manifest.MissionConfiguration, category manifest.Category, personnel int, colorize bool) []string {
	lines := renderSectionHeader("Mission", colorize)
	lines = append(lines,
		renderStatusLine("Aircraft", equipmentKind(manifest.KnownAircraft(mission.AircraftType)), valueOrUnset(mission.AircraftType), colorize),
		renderStatusLine("Parachute", equipmentKind(manifest.KnownParachute(mission.ParachuteType)), valueOrUnset(mission.ParachuteType), colorize),
		renderStatusLine("Drop zone", statusInfo, valueOrUnset(mission.DropZone), colorize),
		renderStatusLine("Date", statusInfo, valueOrUnset(mission.Date), colorize),
		renderStatusLine("Partner jump", statusInfo, partnerText(mission), colorize),
	)
	lines = append(lines, "")
	lines = append(lines, renderSectionHeader("Next admission", colorize)...)
	lines = append(lines,
		renderStatusLine("Chalk", statusInfo, chalkText(mission.CurrentChalk), colorize),
		renderStatusLine("Pass", statusInfo, strconv.Itoa(mission.CurrentPass), colorize),
		doorStatusLine(mission, colorize),
		renderStatusLine("Category", statusInfo, category.String(), colorize),
		renderStatusLine("Roster", statusInfo, fmt.Sprintf("%d manifested", personnel), colorize),
	)
	return lines
}

func doorStatusLine(mission manifest.MissionConfiguration, colorize bool) string {
	allowed := mission.AllowedDoors()
	switch {
	case allowed.Empty():
		return renderStatusLine("Door", statusInfo, fmt.Sprintf("n/a (%s has no exit doors)", mission.AircraftType), colorize)
	case !mission.DoorResolved():
		return renderStatusLine("Door", statusWarn, "unset; choose one of "+allowed.String(), colorize)
	default:
		return renderStatusLine("Door", statusOK, fmt.Sprintf("%s (allowed: %s)", mission.CurrentDoor, allowed), colorize)
	}
}

func equipmentKind(known bool) statusKind {
	if known {
		return statusOK
	}
	return statusWarn
}

func valueOrUnset(value string) string {
	if strings.TrimSpace(value) == "" {
		return "unset"
	}
	return value
}

func chalkText(chalk string) string {
	if strings.TrimSpace(chalk) == "" {
		return manifest.TBDChalk
	}
	return chalk
}

func partnerText(mission manifest.MissionConfiguration) string {
	if label := mission.PartnerLabel(); label != "" {
		return "yes, " + label
	}
	return textutil.YesNo(mission.PartnerJump)
}
