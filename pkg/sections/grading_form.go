package sections

import "github.com/goliatone/go-docform/pkg/submission"

// GradingForm renders the evaluation sheet filled in by the teacher.
func GradingForm(sub submission.Submission, ctx Context) []Block {
	ctx = ctx.Normalize()
	p := ctx.Program

	rows := [][]Cell{
		{cell(p + "成绩评定"), cell(p + "项目名称：" + sub.Value(submission.FieldProjectName))},
		{cell(""), cell(p + "成果：□软件作品  □影视动漫作品  □电子工艺产品  □综合实训报告")},
		{cell(""), cell("审查时间：        年    月    日")},
		{cell(p + "初评评语"), cell("\n\n\n指导教师签名：          ")},
		{cell("初评成绩（满分100分）"), cell("1．" + p + "过程及成果评价（满分 80分）\n" +
			"A. 有创新性结果，全面完成了训练任务所规定的各项要求。(71-80分)\n" +
			"B. 有创新性结果，基本完成了训练任务所规定的各项要求。\n" +
			"C. 有一定的创新性结果，基本完成了训练任务所规定的各项要求。\n" +
			"D. 基本没有创新性结果，没有完成训练任务所规定的各项要求。")},
		{cell("评分"), cell("")},
		{cell(""), cell("2．答辩材料准备与答辩表现（满分20分）\n项目成果。回答问题正确，概念清楚，知识掌握")},
		{cell("评分"), cell("")},
		{cell("答辩评语"), cell("\n\n答辩成绩：        ")},
		{cell(p + "最终成绩评定"), cell("成绩评定（在\"□\"中划\" √\")\n优□    良□    中□    及格□    不及格□\n\n学院（签章）：              年    月    日")},
	}

	return []Block{
		title(p + "成绩评定表"),
		blank(1),
		Grid{Columns: 2, Size: SizeWuHao, Rows: rows},
		blank(1),
		line("注：1.如果初评成绩<90分，则\""+p+"最终成绩评定\"栏由指导教师直接依据初评成绩填写，并确定", SizeXiaoWu, false),
		line("2.初评成绩≥90分（优秀）才进行答辩，其他的不需答辩。", SizeXiaoWu, false),
		line("3.此表学院需复印一份以班级为单位装订存档。", SizeXiaoWu, false),
	}
}
