package sections

import (
	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/submission"
)

var topicSummaryHeaders = []string{"序号", "学号", "姓名", "项目名称", "指导教师", "所在学院"}

// TopicSummary renders the topic approval table with a single entry for the
// submitting student.
func TopicSummary(sub submission.Submission, ctx Context) []Block {
	ctx = ctx.Normalize()

	header := make([]Cell, 0, len(topicSummaryHeaders))
	for _, h := range topicSummaryHeaders {
		header = append(header, Cell{Text: h, Bold: true})
	}
	entry := []Cell{
		cell("1"),
		cell(sub.Value(submission.FieldStudentID)),
		cell(sub.Value(submission.FieldName)),
		cell(sub.Value(submission.FieldProjectName)),
		cell(sub.Value(submission.FieldTeacher)),
		cell(sub.Value(submission.FieldCollege)),
	}

	collegeLine := line("学院："+sub.Value(submission.FieldCollege), SizeXiaoSi, false)
	collegeLine.Align = docx.AlignLeft

	return []Block{
		title(ctx.Institution + ctx.Program + "选题汇总表"),
		collegeLine,
		Grid{Columns: len(topicSummaryHeaders), Size: SizeXiaoSi, Rows: [][]Cell{header, entry}},
		blank(1),
		line("备注：此表回收后交学院按班级为单位装订存档。", SizeWuHao, false),
	}
}
