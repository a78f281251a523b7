package render

import (
	"context"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"loadmaster/internal/manifest"
)

const (
	formTitle    = "DA FORM 1306"
	formSubtitle = "STATEMENT OF JUMP AND LOADING MANIFEST"
)

type textRenderer struct{}

func (textRenderer) Format() Format { return FormatText }

func (textRenderer) Render(ctx context.Context, composed manifest.ComposedManifest, mission manifest.MissionConfiguration) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	var b strings.Builder
	b.WriteString(formTitle + "\n")
	b.WriteString(formSubtitle + "\n\n")
	for _, field := range missionFields(mission) {
		b.WriteString(field[0] + ": " + field[1] + "\n")
	}
	b.WriteString("\n")

	if composed.Empty() {
		b.WriteString(NoPersonnelMessage + "\n")
	} else {
		for _, section := range composed.Sections() {
			b.WriteString(section.Header + "\n")
			b.WriteString(memberTable(section.Members, table.StyleLight).Render())
			b.WriteString("\n\n")
		}
	}
	b.WriteString(totalsLine(composed.Totals()) + "\n")

	return Artifact{
		Name:        ArtifactName(mission, "txt"),
		ContentType: "text/plain; charset=utf-8",
		Data:        []byte(b.String()),
	}, nil
}
