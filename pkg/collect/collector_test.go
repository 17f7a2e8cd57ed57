package collect_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-docform/pkg/collect"
	"github.com/goliatone/go-docform/pkg/formdef"
	"github.com/goliatone/go-docform/pkg/submission"
)

type fakeDriver struct {
	answers  map[string][]string
	confirm  bool
	err      error
	prompts  []string
	defaults map[string]string
	infos    []string
}

func (f *fakeDriver) next(message, def string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.prompts = append(f.prompts, message)
	if f.defaults == nil {
		f.defaults = make(map[string]string)
	}
	f.defaults[message] = def
	queue := f.answers[message]
	if len(queue) == 0 {
		return def, nil
	}
	f.answers[message] = queue[1:]
	return queue[0], nil
}

func (f *fakeDriver) Input(_ context.Context, cfg collect.InputConfig) (string, error) {
	return f.next(cfg.Message, cfg.Default)
}

func (f *fakeDriver) TextArea(_ context.Context, cfg collect.TextAreaConfig) (string, error) {
	return f.next("textarea:"+cfg.Message, cfg.Default)
}

func (f *fakeDriver) Confirm(_ context.Context, _ collect.ConfirmConfig) (bool, error) {
	return f.confirm, nil
}

func (f *fakeDriver) Info(_ context.Context, msg string) error {
	f.infos = append(f.infos, msg)
	return nil
}

func testForm() formdef.Form {
	return formdef.Form{
		Fields: []formdef.Field{
			{Name: "name", Label: "学生姓名", Required: true},
			{Name: "start_date", Label: "开始日期", Pattern: "^[0-9]{4}-[0-9]{2}-[0-9]{2}$", Message: "日期格式应为 YYYY-MM-DD"},
			{Name: "training_content", Label: "培训内容", Widget: formdef.WidgetTextArea},
		},
		Required: []string{"name"},
	}
}

func TestCollectPromptsInOrder(t *testing.T) {
	driver := &fakeDriver{answers: map[string][]string{
		"学生姓名 *":        {"Zhang San"},
		"开始日期":          {"2024-03-01"},
		"textarea:培训内容": {"Go 开发"},
	}}

	sub, err := collect.New(collect.WithPromptDriver(driver)).Collect(context.Background(), testForm(), submission.Submission{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}

	want := map[string]string{"name": "Zhang San", "start_date": "2024-03-01", "training_content": "Go 开发"}
	if diff := cmp.Diff(want, sub.Map()); diff != "" {
		t.Fatalf("values mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"学生姓名 *", "开始日期", "textarea:培训内容"}, driver.prompts); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectRepromptsRejectedAnswers(t *testing.T) {
	driver := &fakeDriver{answers: map[string][]string{
		"学生姓名 *": {"", "Li"},
		"开始日期":   {"March", "2024-03-01"},
	}}

	sub, err := collect.New(collect.WithPromptDriver(driver)).Collect(context.Background(), testForm(), submission.Submission{})
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if sub.Value("name") != "Li" || sub.Value("start_date") != "2024-03-01" {
		t.Fatalf("unexpected submission %v", sub.Map())
	}
	want := []string{"学生姓名为必填项", "开始日期：日期格式应为 YYYY-MM-DD"}
	if diff := cmp.Diff(want, driver.infos); diff != "" {
		t.Fatalf("info messages mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectGivesUpAfterMaxAttempts(t *testing.T) {
	driver := &fakeDriver{answers: map[string][]string{"学生姓名 *": {"", "", ""}}}

	_, err := collect.New(
		collect.WithPromptDriver(driver),
		collect.WithMaxAttempts(2),
	).Collect(context.Background(), testForm(), submission.Submission{})

	var missing *submission.MissingFieldsError
	if !errors.As(err, &missing) {
		t.Fatalf("expected MissingFieldsError, got %v", err)
	}
	if len(driver.prompts) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(driver.prompts))
	}
}

func TestCollectUsesSeedAsDefaults(t *testing.T) {
	driver := &fakeDriver{answers: map[string][]string{}}
	seed := submission.New(map[string]string{"name": "Seeded", "class": "C1"})

	sub, err := collect.New(collect.WithPromptDriver(driver)).Collect(context.Background(), testForm(), seed)
	if err != nil {
		t.Fatalf("collect: %v", err)
	}
	if driver.defaults["学生姓名 *"] != "Seeded" {
		t.Fatalf("expected seed as default, got %q", driver.defaults["学生姓名 *"])
	}
	if sub.Value("class") != "C1" {
		t.Fatalf("expected seed values outside the form to be kept")
	}
}

func TestCollectAbortAndDecline(t *testing.T) {
	driver := &fakeDriver{err: collect.ErrAborted}
	_, err := collect.New(collect.WithPromptDriver(driver)).Collect(context.Background(), testForm(), submission.Submission{})
	if !errors.Is(err, collect.ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}

	driver = &fakeDriver{answers: map[string][]string{"学生姓名 *": {"Li"}}, confirm: false}
	_, err = collect.New(
		collect.WithPromptDriver(driver),
		collect.WithConfirmation(true),
	).Collect(context.Background(), testForm(), submission.Submission{})
	if !errors.Is(err, collect.ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if len(driver.infos) != 1 || driver.infos[0] != "学生姓名：Li" {
		t.Fatalf("expected summary before confirmation, got %q", driver.infos)
	}
}
