package submission

import (
	"strings"
	"unicode"
)

// DocumentExtension is appended to every generated file name.
const DocumentExtension = ".docx"

// Filename derives the download name by concatenating the student id, the
// student name, and suffix. Characters that are unsafe in file names are
// dropped. When both identifying fields are absent the suffix alone is used.
func (s Submission) Filename(suffix string) string {
	base := s.Value(FieldStudentID) + s.Value(FieldName) + strings.TrimSpace(suffix)
	base = cleanFilename(base)
	if base == "" {
		base = "document"
	}
	return base + DocumentExtension
}

func cleanFilename(name string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', ':', '*', '?', '"', '<', '>', '|':
			return -1
		}
		if unicode.IsControl(r) || unicode.IsSpace(r) {
			return -1
		}
		return r
	}, name)
}
