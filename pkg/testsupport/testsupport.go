// Package testsupport holds helpers shared by the package tests: fixture
// loading, .docx part extraction and template output capture.
package testsupport

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/goliatone/go-docform/pkg/formdef"
)

// DocumentPart is the main body part of a .docx package.
const DocumentPart = "word/document.xml"

// LoadDocument reads a fixture and builds a formdef.Document using a file
// source.
func LoadDocument(t *testing.T, path string) formdef.Document {
	t.Helper()

	doc, err := LoadDocumentFromPath(path)
	if err != nil {
		t.Fatalf("load document: %v", err)
	}
	return doc
}

// LoadDocumentFromPath returns a Document without requiring testing.T.
func LoadDocumentFromPath(path string) (formdef.Document, error) {
	if path == "" {
		return formdef.Document{}, errors.New("testsupport: document path is required")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return formdef.Document{}, fmt.Errorf("testsupport: read document: %w", err)
	}
	doc, err := formdef.NewDocument(formdef.SourceFromFile(path), data)
	if err != nil {
		return formdef.Document{}, fmt.Errorf("testsupport: new document: %w", err)
	}
	return doc, nil
}

// ReadParts unpacks a .docx payload into part name and content.
func ReadParts(t *testing.T, data []byte) map[string]string {
	t.Helper()

	reader, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	parts := make(map[string]string, len(reader.File))
	for _, file := range reader.File {
		rc, err := file.Open()
		if err != nil {
			t.Fatalf("open %s: %v", file.Name, err)
		}
		content, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("read %s: %v", file.Name, err)
		}
		parts[file.Name] = string(content)
	}
	return parts
}

// DocumentXML returns the body part of a .docx payload.
func DocumentXML(t *testing.T, data []byte) string {
	t.Helper()

	body, ok := ReadParts(t, data)[DocumentPart]
	if !ok {
		t.Fatalf("%s not found", DocumentPart)
	}
	return body
}

// AssertWellFormed fails the test when content is not well-formed XML.
func AssertWellFormed(t *testing.T, name, content string) {
	t.Helper()

	decoder := xml.NewDecoder(strings.NewReader(content))
	for {
		_, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			return
		}
		if err != nil {
			t.Fatalf("%s is not well-formed XML: %v", name, err)
		}
	}
}

// Context returns a background context for tests.
func Context() context.Context {
	return context.Background()
}

// CaptureTemplateOutput executes a render function that writes to an io.Writer,
// returning both the string result and the writer contents. Tests can assert
// the renderer returns and writes the same payload without duplicating buffer
// setup.
func CaptureTemplateOutput(t *testing.T, render func(io.Writer) (string, error)) (string, string) {
	t.Helper()

	var buf bytes.Buffer
	out, err := render(&buf)
	if err != nil {
		t.Fatalf("render template: %v", err)
	}

	return out, buf.String()
}
