package docx

import (
	"bytes"
	"encoding/xml"
	"math"
	"strconv"
	"strings"
)

const (
	nsW = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	nsR = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"
)

type xmlDocument struct {
	XMLName xml.Name `xml:"w:document"`
	XmlnsW  string   `xml:"xmlns:w,attr"`
	XmlnsR  string   `xml:"xmlns:r,attr"`
	Body    xmlBody  `xml:"w:body"`
}

// xmlBody keeps paragraphs and tables interleaved in insertion order.
type xmlBody struct {
	Elements []any
	Section  xmlSectPr
}

func (b xmlBody) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, element := range b.Elements {
		if err := e.Encode(element); err != nil {
			return err
		}
	}
	if err := e.Encode(b.Section); err != nil {
		return err
	}
	return e.EncodeToken(start.End())
}

type xmlSectPr struct {
	XMLName xml.Name    `xml:"w:sectPr"`
	Size    xmlPageSize `xml:"w:pgSz"`
	Margins xmlPageMar  `xml:"w:pgMar"`
}

type xmlPageSize struct {
	W string `xml:"w:w,attr"`
	H string `xml:"w:h,attr"`
}

type xmlPageMar struct {
	Top    string `xml:"w:top,attr"`
	Right  string `xml:"w:right,attr"`
	Bottom string `xml:"w:bottom,attr"`
	Left   string `xml:"w:left,attr"`
	Header string `xml:"w:header,attr"`
	Footer string `xml:"w:footer,attr"`
	Gutter string `xml:"w:gutter,attr"`
}

type xmlParagraph struct {
	XMLName xml.Name      `xml:"w:p"`
	Props   *xmlParaProps `xml:"w:pPr,omitempty"`
	Runs    []xmlRun      `xml:"w:r"`
}

type xmlParaProps struct {
	Spacing *xmlSpacing `xml:"w:spacing,omitempty"`
	Justify *xmlVal     `xml:"w:jc,omitempty"`
}

type xmlSpacing struct {
	Before   string `xml:"w:before,attr,omitempty"`
	After    string `xml:"w:after,attr,omitempty"`
	Line     string `xml:"w:line,attr,omitempty"`
	LineRule string `xml:"w:lineRule,attr,omitempty"`
}

type xmlRun struct {
	Props   *xmlRunProps
	Content []any
}

func (r xmlRun) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start = xml.StartElement{Name: xml.Name{Local: "w:r"}}
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if r.Props != nil {
		if err := e.Encode(r.Props); err != nil {
			return err
		}
	}
	for _, item := range r.Content {
		if err := e.Encode(item); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

type xmlRunProps struct {
	XMLName xml.Name  `xml:"w:rPr"`
	Fonts   *xmlFonts `xml:"w:rFonts,omitempty"`
	Bold    *xmlFlag  `xml:"w:b,omitempty"`
	BoldCS  *xmlFlag  `xml:"w:bCs,omitempty"`
	Size    *xmlVal   `xml:"w:sz,omitempty"`
	SizeCS  *xmlVal   `xml:"w:szCs,omitempty"`
}

type xmlFonts struct {
	ASCII    string `xml:"w:ascii,attr"`
	HAnsi    string `xml:"w:hAnsi,attr"`
	EastAsia string `xml:"w:eastAsia,attr"`
	CS       string `xml:"w:cs,attr"`
}

type xmlFlag struct{}

type xmlText struct {
	XMLName xml.Name `xml:"w:t"`
	Space   string   `xml:"xml:space,attr,omitempty"`
	Value   string   `xml:",chardata"`
}

type xmlBreak struct {
	XMLName xml.Name `xml:"w:br"`
	Type    string   `xml:"w:type,attr,omitempty"`
}

type xmlVal struct {
	Val string `xml:"w:val,attr"`
}

type xmlWidth struct {
	W    string `xml:"w:w,attr"`
	Type string `xml:"w:type,attr"`
}

type xmlTable struct {
	XMLName xml.Name      `xml:"w:tbl"`
	Props   xmlTableProps `xml:"w:tblPr"`
	Grid    xmlTableGrid  `xml:"w:tblGrid"`
	Rows    []xmlRow      `xml:"w:tr"`
}

type xmlTableProps struct {
	Style  *xmlVal         `xml:"w:tblStyle,omitempty"`
	Width  *xmlWidth       `xml:"w:tblW,omitempty"`
	Layout *xmlTableLayout `xml:"w:tblLayout,omitempty"`
}

type xmlTableLayout struct {
	Type string `xml:"w:type,attr"`
}

type xmlTableGrid struct {
	Cols []xmlGridCol `xml:"w:gridCol"`
}

type xmlGridCol struct {
	W string `xml:"w:w,attr"`
}

type xmlRow struct {
	Cells []xmlCell `xml:"w:tc"`
}

type xmlCell struct {
	Props      *xmlCellProps  `xml:"w:tcPr,omitempty"`
	Paragraphs []xmlParagraph `xml:"w:p"`
}

type xmlCellProps struct {
	Width    *xmlWidth `xml:"w:tcW,omitempty"`
	GridSpan *xmlVal   `xml:"w:gridSpan,omitempty"`
}

func (d *Document) documentXML() ([]byte, error) {
	doc := xmlDocument{
		XmlnsW: nsW,
		XmlnsR: nsR,
		Body: xmlBody{
			Elements: d.elements,
			Section: xmlSectPr{
				Size: xmlPageSize{W: itoa(pageWidth), H: itoa(pageHeight)},
				Margins: xmlPageMar{
					Top:    itoa(marginTop),
					Right:  itoa(marginSide),
					Bottom: itoa(marginBottom),
					Left:   itoa(marginSide),
					Header: "851",
					Footer: "992",
					Gutter: "0",
				},
			},
		},
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	if err := xml.NewEncoder(&buf).Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Document) paragraph(p Paragraph) xmlParagraph {
	out := xmlParagraph{}

	props := &xmlParaProps{}
	if p.SpaceBeforePt > 0 || p.SpaceAfterPt > 0 || p.LineSpacing > 0 {
		spacing := &xmlSpacing{}
		if p.SpaceBeforePt > 0 {
			spacing.Before = itoa(twips(p.SpaceBeforePt))
		}
		if p.SpaceAfterPt > 0 {
			spacing.After = itoa(twips(p.SpaceAfterPt))
		}
		if p.LineSpacing > 0 {
			spacing.Line = itoa(int(math.Round(p.LineSpacing * 240)))
			spacing.LineRule = "auto"
		}
		props.Spacing = spacing
	}
	if p.Align != AlignDefault {
		props.Justify = &xmlVal{Val: string(p.Align)}
	}
	if props.Spacing != nil || props.Justify != nil {
		out.Props = props
	}

	for _, run := range p.Runs {
		out.Runs = append(out.Runs, d.run(run))
	}
	return out
}

func (d *Document) run(r Run) xmlRun {
	font := r.Font
	if font == "" {
		font = d.font
	}
	size := r.SizePt
	if size <= 0 {
		size = d.sizePt
	}
	halfPoints := &xmlVal{Val: itoa(int(math.Round(size * 2)))}

	props := &xmlRunProps{
		Fonts:  &xmlFonts{ASCII: font, HAnsi: font, EastAsia: font, CS: font},
		Size:   halfPoints,
		SizeCS: halfPoints,
	}
	if r.Bold {
		props.Bold = &xmlFlag{}
		props.BoldCS = &xmlFlag{}
	}

	out := xmlRun{Props: props}
	for i, line := range strings.Split(r.Text, "\n") {
		if i > 0 {
			out.Content = append(out.Content, xmlBreak{})
		}
		if line == "" {
			continue
		}
		out.Content = append(out.Content, xmlText{Space: "preserve", Value: line})
	}
	return out
}

func twips(points float64) int {
	return int(math.Round(points * 20))
}

func itoa(v int) string {
	return strconv.Itoa(v)
}
