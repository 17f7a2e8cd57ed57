package sections

import (
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-docform/pkg/submission"
)

// Section keys, in document order.
const (
	KeyCover        = "cover"
	KeyTaskSheet    = "task_sheet"
	KeyGuidanceLog  = "guidance_log"
	KeyGradingForm  = "grading_form"
	KeyTopicSummary = "topic_summary"
	KeyReportBody   = "report_body"
)

const (
	DefaultInstitution      = "海南软件职业技术学院"
	DefaultProgram          = "岗前综合技能培训"
	DefaultGuidanceRows     = 8
	DefaultGuidanceInterval = 7

	// MaxGuidanceRows bounds the guidance log to one row per week of a year.
	MaxGuidanceRows = 53
	// MaxGuidanceInterval bounds the gap between guidance rows.
	MaxGuidanceInterval = 366
)

// Context carries the layout settings shared by every section.
type Context struct {
	// Institution is printed on the cover and in form titles.
	Institution string
	// Program names the training programme; titles are derived from it.
	Program string
	// GuidanceRows is the number of dated rows in the guidance log.
	GuidanceRows int
	// GuidanceInterval is the number of days between guidance log rows.
	GuidanceInterval int
}

// DefaultContext returns the settings of the printed forms.
func DefaultContext() Context {
	return Context{
		Institution:      DefaultInstitution,
		Program:          DefaultProgram,
		GuidanceRows:     DefaultGuidanceRows,
		GuidanceInterval: DefaultGuidanceInterval,
	}
}

// Normalize fills zero values with defaults.
func (c Context) Normalize() Context {
	def := DefaultContext()
	if strings.TrimSpace(c.Institution) == "" {
		c.Institution = def.Institution
	}
	if strings.TrimSpace(c.Program) == "" {
		c.Program = def.Program
	}
	if c.GuidanceRows <= 0 {
		c.GuidanceRows = def.GuidanceRows
	}
	if c.GuidanceRows > MaxGuidanceRows {
		c.GuidanceRows = MaxGuidanceRows
	}
	if c.GuidanceInterval <= 0 {
		c.GuidanceInterval = def.GuidanceInterval
	}
	if c.GuidanceInterval > MaxGuidanceInterval {
		c.GuidanceInterval = MaxGuidanceInterval
	}
	return c
}

// ReportTitle is the title printed on the cover page.
func (c Context) ReportTitle() string {
	return c.Program + "报告书"
}

// BuildFunc renders one section. It must be pure: the same submission and
// context always produce the same blocks.
type BuildFunc func(sub submission.Submission, ctx Context) []Block

// Section is one fixed-layout page or table block of the document.
type Section struct {
	Key   string
	Title string
	Build BuildFunc
}

var defaultSections = []Section{
	{Key: KeyCover, Title: "封面", Build: Cover},
	{Key: KeyTaskSheet, Title: "任务书", Build: TaskSheet},
	{Key: KeyGuidanceLog, Title: "指导记录表", Build: GuidanceLog},
	{Key: KeyGradingForm, Title: "成绩评定表", Build: GradingForm},
	{Key: KeyTopicSummary, Title: "选题汇总表", Build: TopicSummary},
	{Key: KeyReportBody, Title: "报告撰写说明", Build: ReportBody},
}

// Default returns every section in document order.
func Default() []Section {
	return append([]Section(nil), defaultSections...)
}

// Keys lists the section keys in document order.
func Keys() []string {
	keys := make([]string, 0, len(defaultSections))
	for _, section := range defaultSections {
		keys = append(keys, section.Key)
	}
	return keys
}

// Lookup returns the section registered under key.
func Lookup(key string) (Section, bool) {
	for _, section := range defaultSections {
		if section.Key == key {
			return section, true
		}
	}
	return Section{}, false
}

// Select returns the named sections in document order regardless of the order
// keys are given in. Unknown keys are an error.
func Select(keys ...string) ([]Section, error) {
	wanted := make(map[string]struct{}, len(keys))
	for _, key := range keys {
		k := strings.TrimSpace(key)
		if k == "" {
			continue
		}
		if _, ok := Lookup(k); !ok {
			return nil, fmt.Errorf("sections: unknown section %q", k)
		}
		wanted[k] = struct{}{}
	}

	var out []Section
	for _, section := range defaultSections {
		if _, ok := wanted[section.Key]; ok {
			out = append(out, section)
		}
	}
	return out, nil
}

func formatFullDate(t time.Time) string {
	return fmt.Sprintf("%d年%d月%d日", t.Year(), int(t.Month()), t.Day())
}

func formatMonthDay(t time.Time) string {
	return fmt.Sprintf("%d月%d日", int(t.Month()), t.Day())
}

func startDate(sub submission.Submission) (time.Time, bool) {
	t, ok, err := sub.StartDate()
	if err != nil || !ok {
		return time.Time{}, false
	}
	return t, true
}

func endDate(sub submission.Submission) (time.Time, bool) {
	t, ok, err := sub.EndDate()
	if err != nil || !ok {
		return time.Time{}, false
	}
	return t, true
}
