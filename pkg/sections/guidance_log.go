package sections

import "github.com/goliatone/go-docform/pkg/submission"

const monthDayPlaceholder = "    月    日"

// GuidanceLog renders the teacher meeting log. When a start date is known the
// first column is pre-filled with one date per interval; the dates are only
// placeholders for the student to correct.
func GuidanceLog(sub submission.Submission, ctx Context) []Block {
	ctx = ctx.Normalize()

	rows := [][]Cell{
		{cell("学号"), cell(sub.Value(submission.FieldStudentID)), cell(ctx.Program + "指导教师"), cell(sub.Value(submission.FieldTeacher))},
		{cell("专    业"), cell(sub.Value(submission.FieldMajor)), cell("指导教师专业"), cell(sub.Value(submission.FieldTeacherMajor))},
	}
	for _, label := range GuidanceDates(sub, ctx) {
		rows = append(rows, []Cell{cell(label), wide("", 3)})
	}
	rows = append(rows,
		[]Cell{wide("指导教师签名（每次需签名）：", 4)},
		[]Cell{wide("备注：此表由学生根据老师每次指导的内容填写，指导教师签字后，学生保存，待上交文档时交学院，学院按班级为单位装订存档。", 4)},
	)

	return []Block{
		title(ctx.Program + "指导记录表"),
		blank(1),
		Grid{Columns: 4, Size: SizeXiaoSi, Rows: rows},
	}
}

// GuidanceDates returns the first-column labels of the guidance log rows.
func GuidanceDates(sub submission.Submission, ctx Context) []string {
	ctx = ctx.Normalize()

	labels := make([]string, 0, ctx.GuidanceRows)
	start, ok := startDate(sub)
	for i := 0; i < ctx.GuidanceRows; i++ {
		if !ok {
			labels = append(labels, monthDayPlaceholder)
			continue
		}
		labels = append(labels, formatMonthDay(start.AddDate(0, 0, i*ctx.GuidanceInterval)))
	}
	return labels
}
