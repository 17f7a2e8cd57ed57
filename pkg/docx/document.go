package docx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// ContentType is the MIME type of a .docx package.
const ContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

const (
	// A4 portrait in twentieths of a point, 3.17cm side margins.
	pageWidth    = 11906
	pageHeight   = 16838
	marginTop    = 1440
	marginBottom = 1440
	marginSide   = 1800
	textWidth    = pageWidth - 2*marginSide

	// DefaultFont matches the font the paper forms are printed in.
	DefaultFont = "宋体"
	// DefaultSizePt is 小四.
	DefaultSizePt = 12.0
	// TableGridStyle is the style id of the bordered table style.
	TableGridStyle = "TableGrid"
)

var (
	// ErrSpanOverflow is returned when the cells of a row span more columns
	// than the table declares.
	ErrSpanOverflow = errors.New("docx: row spans more columns than the table has")
	// ErrNoColumns is returned for tables declared without columns.
	ErrNoColumns = errors.New("docx: table needs at least one column")
)

// Alignment is a paragraph justification value.
type Alignment string

const (
	AlignDefault Alignment = ""
	AlignLeft    Alignment = "left"
	AlignCenter  Alignment = "center"
	AlignRight   Alignment = "right"
	AlignJustify Alignment = "both"
)

// Run is a contiguous span of text sharing one format. Newlines in Text are
// written as line breaks.
type Run struct {
	Text   string
	Font   string
	SizePt float64
	Bold   bool
}

// Paragraph is a block of runs. Spacing values are in points; LineSpacing is
// a multiple of single spacing (1.5 for one-and-a-half).
type Paragraph struct {
	Align         Alignment
	SpaceBeforePt float64
	SpaceAfterPt  float64
	LineSpacing   float64
	Runs          []Run
}

// TableCell holds the paragraphs of one cell. Span > 1 merges the cell with
// the following columns of the same row.
type TableCell struct {
	Span       int
	Paragraphs []Paragraph
}

// TableRow is one row of a table.
type TableRow struct {
	Cells []TableCell
}

// Table is a grid with a fixed column count. Style defaults to TableGrid.
type Table struct {
	Style   string
	Columns int
	Rows    []TableRow
}

// Option configures a Document.
type Option func(*Document)

// WithDefaultFont sets the font written into the document defaults and used
// for runs that leave Font empty.
func WithDefaultFont(name string) Option {
	return func(d *Document) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			d.font = trimmed
		}
	}
}

// WithDefaultSize sets the default run size in points.
func WithDefaultSize(sizePt float64) Option {
	return func(d *Document) {
		if sizePt > 0 {
			d.sizePt = sizePt
		}
	}
}

// Document accumulates body elements in order. It is not safe for concurrent
// use.
type Document struct {
	font     string
	sizePt   float64
	elements []any
}

// New constructs an empty document.
func New(options ...Option) *Document {
	d := &Document{
		font:   DefaultFont,
		sizePt: DefaultSizePt,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(d)
	}
	return d
}

// Font reports the default font.
func (d *Document) Font() string {
	return d.font
}

// Len reports the number of body elements added so far.
func (d *Document) Len() int {
	return len(d.elements)
}

// AddParagraph appends a paragraph.
func (d *Document) AddParagraph(p Paragraph) {
	d.elements = append(d.elements, d.paragraph(p))
}

// AddPageBreak appends a paragraph holding a page break.
func (d *Document) AddPageBreak() {
	d.elements = append(d.elements, xmlParagraph{
		Runs: []xmlRun{{Content: []any{xmlBreak{Type: "page"}}}},
	})
}

// AddTable appends a table. Rows whose spans cover fewer columns than the
// table declares are padded with empty cells.
func (d *Document) AddTable(t Table) error {
	if t.Columns <= 0 {
		return ErrNoColumns
	}
	style := t.Style
	if style == "" {
		style = TableGridStyle
	}
	colWidth := textWidth / t.Columns

	table := xmlTable{
		Props: xmlTableProps{
			Style:  &xmlVal{Val: style},
			Width:  &xmlWidth{W: "0", Type: "auto"},
			Layout: &xmlTableLayout{Type: "fixed"},
		},
	}
	for i := 0; i < t.Columns; i++ {
		table.Grid.Cols = append(table.Grid.Cols, xmlGridCol{W: itoa(colWidth)})
	}

	for rowIndex, row := range t.Rows {
		used := 0
		out := xmlRow{}
		for _, cell := range row.Cells {
			span := cell.Span
			if span < 1 {
				span = 1
			}
			used += span
			if used > t.Columns {
				return fmt.Errorf("%w (row %d)", ErrSpanOverflow, rowIndex)
			}
			out.Cells = append(out.Cells, d.cell(cell.Paragraphs, span, colWidth))
		}
		for ; used < t.Columns; used++ {
			out.Cells = append(out.Cells, d.cell(nil, 1, colWidth))
		}
		table.Rows = append(table.Rows, out)
	}

	d.elements = append(d.elements, table)
	return nil
}

// Write serialises the document package to w.
func (d *Document) Write(w io.Writer) error {
	body, err := d.documentXML()
	if err != nil {
		return err
	}
	return writePackage(w, body, stylesXML(d.font, d.sizePt))
}

// Bytes serialises the document package into memory.
func (d *Document) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := d.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) cell(paragraphs []Paragraph, span, colWidth int) xmlCell {
	cell := xmlCell{
		Props: &xmlCellProps{
			Width: &xmlWidth{W: itoa(colWidth * span), Type: "dxa"},
		},
	}
	if span > 1 {
		cell.Props.GridSpan = &xmlVal{Val: itoa(span)}
	}
	for _, p := range paragraphs {
		cell.Paragraphs = append(cell.Paragraphs, d.paragraph(p))
	}
	// Every cell needs at least one paragraph to be valid.
	if len(cell.Paragraphs) == 0 {
		cell.Paragraphs = []xmlParagraph{{}}
	}
	return cell
}
