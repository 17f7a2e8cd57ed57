package main

import (
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/goliatone/go-docform/internal/config"
	"github.com/goliatone/go-docform/pkg/collect"
)

const wantFilename = "20230001ZhangSan岗前综合技能培训报告书.docx"

var requiredSets = []string{
	"--set", "name=Zhang San",
	"--set", "student_id=20230001",
	"--set", "college=X",
	"--set", "class=Y",
	"--set", "teacher=Z",
	"--set", "project_name=Demo",
}

type defaultsDriver struct{}

func (defaultsDriver) Input(_ context.Context, cfg collect.InputConfig) (string, error) {
	return cfg.Default, nil
}

func (defaultsDriver) TextArea(_ context.Context, cfg collect.TextAreaConfig) (string, error) {
	return cfg.Default, nil
}

func (defaultsDriver) Confirm(context.Context, collect.ConfirmConfig) (bool, error) {
	return true, nil
}

func (defaultsDriver) Info(context.Context, string) error { return nil }

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	a := newApp()
	a.configPath = filepath.Join(t.TempDir(), "absent.yaml")
	a.newLogger = func(*config.Config, bool) (*zap.Logger, error) { return zap.NewNop(), nil }
	a.newDriver = func(io.Writer) collect.PromptDriver { return defaultsDriver{} }

	root := newRootCmd(a)
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)

	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

func TestGenerateWritesDerivedFilename(t *testing.T) {
	dir := t.TempDir()

	args := append([]string{"generate", "--output", dir}, requiredSets...)
	_, stderr, err := execute(t, "", args...)
	require.NoError(t, err)

	path := filepath.Join(dir, wantFilename)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("PK")))
	assert.Contains(t, stderr, path)
}

func TestGenerateFromJSONToStdout(t *testing.T) {
	input := filepath.Join(t.TempDir(), "student.json")
	payload := `{"name":"Zhang San","student_id":20230001,"college":"X","class":"Y","teacher":"Z","project_name":"Demo"}`
	require.NoError(t, os.WriteFile(input, []byte(payload), 0o600))

	stdout, _, err := execute(t, "", "generate", "--input", input, "--output", "-")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "PK"))
}

func TestGenerateFromStdinYAML(t *testing.T) {
	yamlInput := "name: Zhang San\nstudent_id: \"20230001\"\ncollege: X\nclass: Y\nteacher: Z\nproject_name: Demo\n"

	stdout, _, err := execute(t, yamlInput, "generate", "--input", "-", "--output", "-", "--set", "major=Software")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "PK"))
}

func TestGenerateReportsMissingFields(t *testing.T) {
	_, stderr, err := execute(t, "", "generate", "--set", "name=Zhang San", "--output", "-")
	require.Error(t, err)
	assert.Contains(t, stderr, "请填写以下必填项")
	assert.Contains(t, stderr, "学号为必填项")
}

func TestGenerateRejectsMalformedSet(t *testing.T) {
	_, _, err := execute(t, "", "generate", "--set", "name")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected key=value")
}

func TestGenerateHonoursConfigSections(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "docform.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("document:\n  sections: [cover]\n"), 0o600))

	args := append([]string{"--config", cfgPath, "generate", "--output", "-"}, requiredSets...)
	full, _, err := execute(t, "", append([]string{"generate", "--output", "-"}, requiredSets...)...)
	require.NoError(t, err)
	coverOnly, _, err := execute(t, "", args...)
	require.NoError(t, err)
	assert.Less(t, len(coverOnly), len(full))
}

func TestPromptUsesSeedValues(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "seed.yaml")
	seed := "name: Zhang San\nstudent_id: \"20230001\"\ncollege: X\nclass: Y\nteacher: Z\nproject_name: Demo\n"
	require.NoError(t, os.WriteFile(input, []byte(seed), 0o600))

	_, _, err := execute(t, "", "prompt", "--input", input, "--output", dir, "--yes")
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(dir, wantFilename))
	assert.NoError(t, err)
}

func TestFormPrintsPage(t *testing.T) {
	stdout, _, err := execute(t, "", "form", "--variant", "dark")
	require.NoError(t, err)
	assert.Contains(t, stdout, "<form")
	assert.Contains(t, stdout, `name="student_id"`)
	assert.Contains(t, stdout, `data-variant="dark"`)
}

func TestLint(t *testing.T) {
	stdout, _, err := execute(t, "", "lint")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ok")

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	document := `
openapi: 3.0.3
info: {title: Bad, version: 1.0.0}
paths:
  /submit:
    post:
      operationId: submit
      requestBody:
        content:
          application/x-www-form-urlencoded:
            schema:
              type: object
              properties:
                a: {type: string, x-formgen-color: red}
      responses:
        '204': {description: ok}
`
	require.NoError(t, os.WriteFile(bad, []byte(document), 0o600))

	_, stderr, err := execute(t, "", "lint", bad)
	require.Error(t, err)
	assert.Contains(t, stderr, `unsupported hint "color"`)
}
