package composer

import (
	"fmt"

	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/sections"
)

func emit(doc *docx.Document, blocks []sections.Block) error {
	for _, block := range blocks {
		switch b := block.(type) {
		case sections.Text:
			doc.AddParagraph(paragraph(b))
		case sections.Blank:
			for i := 0; i < b.Count; i++ {
				doc.AddParagraph(docx.Paragraph{})
			}
		case sections.Grid:
			if err := doc.AddTable(table(b)); err != nil {
				return err
			}
		case sections.PageBreak:
			doc.AddPageBreak()
		default:
			return fmt.Errorf("unsupported block %T", block)
		}
	}
	return nil
}

func paragraph(t sections.Text) docx.Paragraph {
	runs := make([]docx.Run, 0, len(t.Spans))
	for _, span := range t.Spans {
		runs = append(runs, docx.Run{Text: span.Text, SizePt: span.Size, Bold: span.Bold})
	}
	return docx.Paragraph{
		Align:         t.Align,
		SpaceBeforePt: t.SpaceBefore,
		SpaceAfterPt:  t.SpaceAfter,
		LineSpacing:   t.LineSpacing,
		Runs:          runs,
	}
}

func table(g sections.Grid) docx.Table {
	rows := make([]docx.TableRow, 0, len(g.Rows))
	for _, row := range g.Rows {
		cells := make([]docx.TableCell, 0, len(row))
		for _, c := range row {
			cells = append(cells, docx.TableCell{
				Span: c.Span,
				Paragraphs: []docx.Paragraph{{
					Runs: []docx.Run{{Text: c.Text, SizePt: g.Size, Bold: c.Bold}},
				}},
			})
		}
		rows = append(rows, docx.TableRow{Cells: cells})
	}
	return docx.Table{Style: docx.TableGridStyle, Columns: g.Columns, Rows: rows}
}
