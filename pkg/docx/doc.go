// Package docx writes minimal WordprocessingML (.docx) packages.
//
// A DOCX file is a ZIP archive of XML parts. This package models the subset
// the report generator needs: paragraphs of formatted runs, grid tables with
// horizontally merged cells, and page breaks. Parts are written in a fixed
// order with fixed timestamps so identical documents serialise to identical
// bytes.
//
//	doc := docx.New()
//	doc.AddParagraph(docx.Paragraph{
//	    Align: docx.AlignCenter,
//	    Runs:  []docx.Run{{Text: "Hello", SizePt: 16, Bold: true}},
//	})
//	data, err := doc.Bytes()
package docx
