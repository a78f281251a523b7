package render

import (
	"bytes"
	"context"
	_ "embed"
	"fmt"
	"html/template"

	"github.com/jedib0t/go-pretty/v6/table"

	"loadmaster/internal/manifest"
)

//go:embed document.html.tmpl
var documentTemplateText string

var documentTemplate = template.Must(template.New("document").Parse(documentTemplateText))

type htmlRenderer struct {
	rowsPerPage int
}

type documentPage struct {
	Number int
	Blocks []documentBlock
}

type documentBlock struct {
	Header    string
	Continued bool
	Table     template.HTML
	Rows      int
}

type documentData struct {
	Title        string
	Mission      [][2]string
	Pages        []documentPage
	PageCount    int
	EmptyMessage string
	Totals       string
}

func (htmlRenderer) Format() Format { return FormatHTML }

func (r htmlRenderer) Render(ctx context.Context, composed manifest.ComposedManifest, mission manifest.MissionConfiguration) (Artifact, error) {
	if err := ctx.Err(); err != nil {
		return Artifact{}, err
	}

	pages := paginate(composed.Sections(), r.rowsPerPage)
	data := documentData{
		Title:        ArtifactName(mission, "html"),
		Mission:      missionFields(mission),
		Pages:        pages,
		PageCount:    len(pages),
		EmptyMessage: NoPersonnelMessage,
		Totals:       totalsLine(composed.Totals()),
	}

	var buf bytes.Buffer
	if err := documentTemplate.Execute(&buf, data); err != nil {
		return Artifact{}, fmt.Errorf("execute document template: %w", err)
	}
	return Artifact{
		Name:        data.Title,
		ContentType: "text/html; charset=utf-8",
		Data:        buf.Bytes(),
	}, nil
}

// paginate splits sections into pages holding at most rowsPerPage members.
// A section that crosses a page boundary continues on the next page under the
// same header. An empty manifest still yields one page.
func paginate(sections []manifest.Section, rowsPerPage int) []documentPage {
	if rowsPerPage < 1 {
		rowsPerPage = DefaultRowsPerPage
	}
	pages := []documentPage{{Number: 1}}
	used := 0
	for _, section := range sections {
		remaining := section.Members
		continued := false
		for len(remaining) > 0 {
			if used == rowsPerPage {
				pages = append(pages, documentPage{Number: len(pages) + 1})
				used = 0
			}
			take := min(rowsPerPage-used, len(remaining))
			current := &pages[len(pages)-1]
			current.Blocks = append(current.Blocks, documentBlock{
				Header:    section.Header,
				Continued: continued,
				Table:     htmlTable(remaining[:take]),
				Rows:      take,
			})
			used += take
			remaining = remaining[take:]
			continued = true
		}
	}
	return pages
}

// htmlTable renders members with go-pretty, which escapes cell text.
func htmlTable(members []manifest.Member) template.HTML {
	style := table.StyleDefault
	style.HTML = table.HTMLOptions{
		CSSClass:    "manifest-section",
		EmptyColumn: "&nbsp;",
		EscapeText:  true,
		Newline:     "<br/>",
	}
	return template.HTML(memberTable(members, style).RenderHTML())
}
