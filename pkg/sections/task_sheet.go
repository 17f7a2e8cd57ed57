package sections

import (
	"strings"

	"github.com/goliatone/go-docform/pkg/submission"
)

const fullDatePlaceholder = "20   年   月   日"

// TaskSheet renders the assignment sheet signed by the teacher.
func TaskSheet(sub submission.Submission, ctx Context) []Block {
	ctx = ctx.Normalize()

	grid := Grid{
		Columns: 4,
		Size:    SizeXiaoSi,
		Rows: [][]Cell{
			{cell("学院"), cell(sub.Value(submission.FieldCollege)), cell("学号"), cell(sub.Value(submission.FieldStudentID))},
			{cell("姓名"), cell(sub.Value(submission.FieldName)), cell(ctx.Program + "指导教师"), cell(sub.Value(submission.FieldTeacher))},
			{cell("项目名称"), wide(sub.Value(submission.FieldProjectName), 3)},
			{cell("起止时间"), wide(dateRange(sub), 3)},
			{wide(withBody(ctx.Program+"内容及培养目标", sub.Value(submission.FieldTrainingContent)), 4)},
			{wide(withBody(ctx.Program+"形式", sub.Value(submission.FieldTrainingForm)), 4)},
		},
	}

	return []Block{
		title(ctx.Institution + ctx.Program + "任务书"),
		blank(1),
		grid,
		blank(1),
		line(ctx.Program+"指导教师签名：", SizeXiaoSi, false),
		blank(1),
		line(ctx.Program+"领导小组审查意见：", SizeXiaoSi, false),
		blank(2),
		line("备注：此表回收后交院部按班级为单位装订存档。", SizeWuHao, false),
	}
}

// dateRange prints the training period, keeping the blank template for
// either side that was not supplied.
func dateRange(sub submission.Submission) string {
	from := fullDatePlaceholder
	if start, ok := startDate(sub); ok {
		from = formatFullDate(start)
	}
	to := "   " + fullDatePlaceholder
	if end, ok := endDate(sub); ok {
		to = formatFullDate(end)
	}
	return from + "至" + to
}

func withBody(heading, body string) string {
	body = strings.TrimSpace(body)
	if body == "" {
		return heading
	}
	return heading + "\n" + body
}
