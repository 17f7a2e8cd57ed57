package composer_test

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-docform/pkg/composer"
	"github.com/goliatone/go-docform/pkg/docx"
	"github.com/goliatone/go-docform/pkg/sections"
	"github.com/goliatone/go-docform/pkg/submission"
	"github.com/goliatone/go-docform/pkg/testsupport"
)

func scenario() submission.Submission {
	return submission.New(map[string]string{
		"name":         "Zhang San",
		"student_id":   "20230001",
		"college":      "X",
		"class":        "Y",
		"teacher":      "Z",
		"project_name": "Demo",
	})
}

func TestComposeScenario(t *testing.T) {
	result, err := composer.New().Compose(context.Background(), scenario())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if result.ContentType != docx.ContentType {
		t.Fatalf("unexpected content type %q", result.ContentType)
	}
	if want := "20230001ZhangSan岗前综合技能培训报告书.docx"; result.Filename != want {
		t.Fatalf("filename: want %q, got %q", want, result.Filename)
	}

	body := testsupport.DocumentXML(t, result.Data)
	for _, want := range []string{"20230001", "Demo", "学号：20230001", "学生姓名：Zhang San"} {
		if !strings.Contains(body, want) {
			t.Fatalf("document missing %q", want)
		}
	}
	if got := strings.Count(body, `w:type="page"`); got != 5 {
		t.Fatalf("expected 5 page breaks between 6 sections, got %d", got)
	}
}

func TestComposeScenarioPerSection(t *testing.T) {
	cases := []struct {
		section string
		want    []string
		absent  []string
	}{
		{section: sections.KeyTaskSheet, want: []string{"20230001", "Demo", "Zhang San"}},
		{section: sections.KeyGradingForm, want: []string{"项目名称：Demo"}, absent: []string{"20230001"}},
		{section: sections.KeyTopicSummary, want: []string{"20230001", "Demo"}},
	}
	for _, tc := range cases {
		t.Run(tc.section, func(t *testing.T) {
			result, err := composer.New(composer.WithSections(tc.section)).Compose(context.Background(), scenario())
			if err != nil {
				t.Fatalf("compose: %v", err)
			}
			body := testsupport.DocumentXML(t, result.Data)
			for _, want := range tc.want {
				if !strings.Contains(body, want) {
					t.Fatalf("%s missing %q", tc.section, want)
				}
			}
			for _, absent := range tc.absent {
				if strings.Contains(body, absent) {
					t.Fatalf("%s unexpectedly contains %q", tc.section, absent)
				}
			}
		})
	}
}

func TestComposeIsDeterministic(t *testing.T) {
	c := composer.New()
	first, err := c.Compose(context.Background(), scenario())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	second, err := c.Compose(context.Background(), scenario())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if !bytes.Equal(first.Data, second.Data) {
		t.Fatalf("expected identical bytes across runs")
	}
}

func TestComposeMajorPlaceholder(t *testing.T) {
	result, err := composer.New().Compose(context.Background(), scenario())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	body := testsupport.DocumentXML(t, result.Data)
	if !strings.Contains(body, "专业："+submission.MajorPlaceholder) {
		t.Fatalf("expected major placeholder on the cover")
	}
}

func TestComposeRejectsMissingFields(t *testing.T) {
	sub := submission.New(map[string]string{"name": "Zhang San", "college": "X"})

	result, err := composer.New().Compose(context.Background(), sub)
	var missing *submission.MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	want := []string{"student_id", "class", "teacher", "project_name"}
	if diff := cmp.Diff(want, missing.Fields); diff != "" {
		t.Fatalf("missing fields mismatch (-want +got):\n%s", diff)
	}
	if len(result.Data) != 0 {
		t.Fatalf("expected no output for rejected submission")
	}
}

func TestComposeRejectsMalformedDates(t *testing.T) {
	sub := scenario().With(submission.FieldStartDate, "2024/03/01")

	_, err := composer.New().Compose(context.Background(), sub)
	var invalid *submission.InvalidFieldsError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFieldsError, got %v", err)
	}
	if _, ok := invalid.Fields[submission.FieldStartDate]; !ok {
		t.Fatalf("expected start_date to be reported, got %v", invalid.Fields)
	}
}

func TestComposeWeeklyGuidanceDates(t *testing.T) {
	sub := scenario().With(submission.FieldStartDate, "2024-03-01")

	result, err := composer.New(
		composer.WithSections("guidance_log"),
		composer.WithGuidanceRows(3),
		composer.WithGuidanceInterval(14),
	).Compose(context.Background(), sub)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	body := testsupport.DocumentXML(t, result.Data)
	for _, want := range []string{"3月1日", "3月15日", "3月29日"} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected guidance date %q", want)
		}
	}
	if strings.Contains(body, "4月12日") {
		t.Fatalf("expected only three dated rows")
	}
	if strings.Contains(body, `w:type="page"`) {
		t.Fatalf("single section must not contain page breaks")
	}
}

func TestComposeOptions(t *testing.T) {
	result, err := composer.New(
		composer.WithSections("cover"),
		composer.WithInstitution("Example College"),
		composer.WithProgram("Internship"),
		composer.WithFont("SimSun"),
		composer.WithRequired(),
	).Compose(context.Background(), submission.New(map[string]string{"name": "Li"}))
	if err != nil {
		t.Fatalf("compose: %v", err)
	}

	if want := "LiInternship报告书.docx"; result.Filename != want {
		t.Fatalf("filename: want %q, got %q", want, result.Filename)
	}
	body := testsupport.DocumentXML(t, result.Data)
	for _, want := range []string{"Example College", "Internship报告书", `w:eastAsia="SimSun"`} {
		if !strings.Contains(body, want) {
			t.Fatalf("document missing %q", want)
		}
	}
}

func TestComposeUnknownSection(t *testing.T) {
	_, err := composer.New(composer.WithSections("appendix")).Compose(context.Background(), scenario())
	if err == nil || !strings.Contains(err.Error(), "appendix") {
		t.Fatalf("expected unknown section error, got %v", err)
	}
}

func TestComposeSanitizesValues(t *testing.T) {
	sub := scenario().With(submission.FieldProjectName, "<b>Demo</b> & co")

	result, err := composer.New().Compose(context.Background(), sub)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	body := testsupport.DocumentXML(t, result.Data)
	if strings.Contains(body, "&lt;b&gt;") {
		t.Fatalf("expected markup to be stripped")
	}
	if !strings.Contains(body, "Demo &amp; co") {
		t.Fatalf("expected sanitized project name in document")
	}
}

func TestComposeRejectsRequiredFieldEmptiedBySanitizing(t *testing.T) {
	sub := scenario().With(submission.FieldName, "<script>Zhang</script>")

	result, err := composer.New().Compose(context.Background(), sub)
	var missing *submission.MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if len(missing.Fields) != 1 || missing.Fields[0] != submission.FieldName {
		t.Fatalf("unexpected missing fields %v", missing.Fields)
	}
	if len(result.Data) != 0 {
		t.Fatalf("expected no document bytes")
	}
}

func TestComposeKeepsPlainAngleBrackets(t *testing.T) {
	sub := scenario().With(submission.FieldClass, "C<D")

	result, err := composer.New().Compose(context.Background(), sub)
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if body := testsupport.DocumentXML(t, result.Data); !strings.Contains(body, "C&lt;D") {
		t.Fatalf("expected class to be written literally")
	}
}

func TestComposeHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := composer.New().Compose(ctx, scenario())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestComposeLogsSections(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)

	_, err := composer.New(composer.WithLogger(zap.New(core))).Compose(context.Background(), scenario())
	if err != nil {
		t.Fatalf("compose: %v", err)
	}
	if got := logs.FilterMessage("section composed").Len(); got != 6 {
		t.Fatalf("expected 6 section log entries, got %d", got)
	}
}

func TestResultWriteTo(t *testing.T) {
	result := composer.Result{Data: []byte("payload")}
	var buf bytes.Buffer
	n, err := result.WriteTo(&buf)
	if err != nil {
		t.Fatalf("write: %v", err)
	}
	if n != int64(len("payload")) || buf.String() != "payload" {
		t.Fatalf("unexpected write result %d %q", n, buf.String())
	}
}
