package sections

import "github.com/goliatone/go-docform/pkg/docx"

// Font sizes in points, named after the Chinese size scale the paper forms
// are specified in.
const (
	SizeErHao   = 22.0 // 二号
	SizeXiaoEr  = 18.0 // 小二
	SizeSanHao  = 16.0 // 三号
	SizeSiHao   = 14.0 // 四号
	SizeXiaoSi  = 12.0 // 小四
	SizeWuHao   = 10.5 // 五号
	SizeXiaoWu  = 9.0  // 小五
	BodySpacing = 1.5
)

// Block is one unit of section output. The concrete types are Text, Grid,
// Blank and PageBreak.
type Block interface {
	isBlock()
}

// Span is a run of text with one style.
type Span struct {
	Text string
	Size float64
	Bold bool
}

// Text is a paragraph.
type Text struct {
	Spans       []Span
	Align       docx.Alignment
	SpaceBefore float64
	SpaceAfter  float64
	LineSpacing float64
}

// Cell is one grid cell. Span > 1 merges it with the following columns.
type Cell struct {
	Text string
	Span int
	Bold bool
}

// Grid is a bordered table. Size applies to every cell.
type Grid struct {
	Columns int
	Size    float64
	Rows    [][]Cell
}

// Blank is Count empty paragraphs.
type Blank struct {
	Count int
}

// PageBreak starts a new page.
type PageBreak struct{}

func (Text) isBlock()      {}
func (Grid) isBlock()      {}
func (Blank) isBlock()     {}
func (PageBreak) isBlock() {}

func line(text string, size float64, bold bool) Text {
	return Text{Spans: []Span{{Text: text, Size: size, Bold: bold}}}
}

func centered(text string, size float64, bold bool) Text {
	t := line(text, size, bold)
	t.Align = docx.AlignCenter
	return t
}

func title(text string) Text {
	return centered(text, SizeSanHao, true)
}

func blank(n int) Blank {
	return Blank{Count: n}
}

func cell(text string) Cell {
	return Cell{Text: text}
}

func wide(text string, span int) Cell {
	return Cell{Text: text, Span: span}
}
