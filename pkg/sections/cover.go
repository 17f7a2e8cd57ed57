package sections

import (
	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/submission"
)

// Cover renders the cover page.
func Cover(sub submission.Submission, ctx Context) []Block {
	ctx = ctx.Normalize()

	heading := centered(ctx.ReportTitle(), SizeErHao, true)
	heading.SpaceBefore = 36

	blocks := []Block{
		centered("★            学号："+sub.Value(submission.FieldStudentID), SizeSiHao, false),
		heading,
		blank(3),
	}

	for _, text := range []string{
		"          " + sub.Value(submission.FieldCollege) + "      ",
		"专业：" + sub.Major(),
		"班    级：" + sub.Value(submission.FieldClass),
		"学生姓名：" + sub.Value(submission.FieldName),
	} {
		blocks = append(blocks, Text{
			Spans:      []Span{{Text: text, Size: SizeSanHao}},
			Align:      docx.AlignCenter,
			SpaceAfter: 12,
		})
	}

	return append(blocks,
		blank(3),
		centered(ctx.Institution, SizeXiaoEr, true),
	)
}
