package docform

import (
	"context"
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docform/pkg/formdef"
	"github.com/goliatone/go-docform/pkg/submission"
)

func sampleValues() map[string]string {
	return map[string]string{
		"name":         "Zhang San",
		"student_id":   "20230001",
		"college":      "X",
		"class":        "Y",
		"teacher":      "Z",
		"project_name": "Demo",
	}
}

func TestDefaultForm(t *testing.T) {
	form, err := DefaultForm(context.Background())
	if err != nil {
		t.Fatalf("default form: %v", err)
	}

	wantFields := []string{
		"name", "student_id", "college", "major", "class", "teacher",
		"teacher_major", "project_name", "start_date", "end_date",
		"training_content", "training_form",
	}
	if diff := cmp.Diff(wantFields, form.Names()); diff != "" {
		t.Fatalf("field order mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(submission.DefaultRequiredFields(), form.Required); diff != "" {
		t.Fatalf("required mismatch (-want +got):\n%s", diff)
	}
	if form.Method != "POST" || form.Path != "/generate" {
		t.Fatalf("unexpected endpoint %s %s", form.Method, form.Path)
	}
}

func TestLoadFormUnknownOperation(t *testing.T) {
	_, err := LoadForm(context.Background(), formdef.SourceFromFS(formdef.DefaultDocument), "missing")
	if err == nil || !strings.Contains(err.Error(), "docform: parse form") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestNewLoaderDefaultsToEmbeddedForms(t *testing.T) {
	doc, err := NewLoader().Load(context.Background(), formdef.SourceFromFS(formdef.DefaultDocument))
	if err != nil {
		t.Fatalf("load embedded: %v", err)
	}
	if !strings.Contains(string(doc.Raw()), formdef.DefaultOperationID) {
		t.Fatalf("expected embedded report form")
	}

	files := fstest.MapFS{"custom.yaml": {Data: []byte("openapi: 3.0.3")}}
	if _, err := NewLoader(formdef.WithFileSystem(files)).Load(context.Background(), formdef.SourceFromFS(formdef.DefaultDocument)); err == nil {
		t.Fatalf("expected caller file system to replace the embedded one")
	}
}

func TestLintForm(t *testing.T) {
	violations, err := LintForm(context.Background(), formdef.SourceFromFS(formdef.DefaultDocument))
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected embedded form to be clean, got %v", violations)
	}

	_, err = LintForm(context.Background(), formdef.SourceFromFS("absent.yaml"))
	if err == nil || !strings.Contains(err.Error(), "docform: load form") {
		t.Fatalf("expected load error, got %v", err)
	}
}

func TestGenerate(t *testing.T) {
	result, err := Generate(context.Background(), sampleValues())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if result.Filename != "20230001ZhangSan岗前综合技能培训报告书.docx" {
		t.Fatalf("unexpected filename %q", result.Filename)
	}
	if !strings.HasPrefix(string(result.Data), "PK") {
		t.Fatalf("expected zip payload")
	}
}

func TestGenerateCheckedAppliesFormRules(t *testing.T) {
	form, err := DefaultForm(context.Background())
	if err != nil {
		t.Fatalf("default form: %v", err)
	}
	values := sampleValues()
	values["start_date"] = "2024/03/01"

	_, err = GenerateChecked(context.Background(), form, values)
	var invalid *submission.InvalidFieldsError
	if !errors.As(err, &invalid) {
		t.Fatalf("expected InvalidFieldsError, got %v", err)
	}
	if _, ok := invalid.Fields["start_date"]; !ok {
		t.Fatalf("expected start_date to be flagged, got %v", invalid.Fields)
	}
}

func TestGenerateCheckedAcceptsFreeFormIdentity(t *testing.T) {
	form, err := DefaultForm(context.Background())
	if err != nil {
		t.Fatalf("default form: %v", err)
	}
	values := sampleValues()
	values["student_id"] = "2023 0001"
	values["name"] = strings.Repeat("张", 80)

	result, err := GenerateChecked(context.Background(), form, values)
	if err != nil {
		t.Fatalf("generate checked: %v", err)
	}
	if !strings.HasPrefix(result.Filename, "20230001") {
		t.Fatalf("unexpected filename %q", result.Filename)
	}
}

func TestEmbeddedFS(t *testing.T) {
	if _, err := fs.Stat(EmbeddedForms(), formdef.DefaultDocument); err != nil {
		t.Fatalf("embedded form missing: %v", err)
	}
	if _, err := fs.Stat(EmbeddedTemplates(), "page.tmpl"); err != nil {
		t.Fatalf("embedded page template missing: %v", err)
	}
}
