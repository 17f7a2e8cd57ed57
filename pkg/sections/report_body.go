package sections

import "github.com/goliatone/go-docform/pkg/submission"

type reportPart struct {
	heading string
	hint    string
}

var reportParts = []reportPart{
	{heading: "一、岗前培训目的（宋体，加粗，四号字，左对齐）", hint: "（介绍岗前培训目的和意义，岗前培训单位的发展情况及学习要求等）"},
	{heading: "二、培训内容（宋体，加粗，四号字，左对齐）"},
	{heading: "三、培训收获与体会（宋体，加粗，四号字，左对齐）"},
	{heading: "四、总结与建议（宋体，加粗，四号字，左对齐）"},
}

// ReportBody renders the report template with its writing instructions. It
// does not depend on the submission.
func ReportBody(_ submission.Submission, ctx Context) []Block {
	ctx = ctx.Normalize()

	blocks := []Block{
		title(ctx.Program + "报告"),
		blank(1),
		Text{Spans: []Span{
			{Text: "撰写说明：", Size: SizeXiaoSi, Bold: true},
			{Text: "报告分为四大部分，段落要求1.5倍行距，整个报告内容不少于5页，具体内容及格式要求如下：", Size: SizeXiaoSi},
		}},
		blank(1),
	}

	for _, part := range reportParts {
		blocks = append(blocks, line(part.heading, SizeSiHao, true))
		if part.hint != "" {
			blocks = append(blocks, line(part.hint, SizeXiaoSi, false))
		}
		blocks = append(blocks,
			line("1、小标题（宋体，加粗，小四号字）", SizeXiaoSi, true),
			bodyPlaceholder(),
			line("2、小标题（宋体，加粗，小四号字）", SizeXiaoSi, true),
			bodyPlaceholder(),
			line("………", SizeXiaoSi, false),
		)
	}
	return blocks
}

func bodyPlaceholder() Text {
	t := line("XXXXXXX（正文：宋体，小四号字）", SizeXiaoSi, false)
	t.LineSpacing = BodySpacing
	return t
}
