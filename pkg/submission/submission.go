package submission

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// Submission is the flat field mapping describing one student/training record.
// The zero value is an empty submission. Values are never mutated after
// construction, so a Submission can be shared between goroutines.
type Submission struct {
	values map[string]string
}

// New builds a Submission from values. Keys and values are trimmed; entries
// whose key or value ends up empty are dropped. The input map is copied.
func New(values map[string]string) Submission {
	out := make(map[string]string, len(values))
	for key, value := range values {
		k := strings.TrimSpace(key)
		if k == "" {
			continue
		}
		v := strings.TrimSpace(value)
		if v == "" {
			continue
		}
		out[k] = v
	}
	return Submission{values: out}
}

// Get returns the value stored for key.
func (s Submission) Get(key string) (string, bool) {
	value, ok := s.values[key]
	return value, ok
}

// Value returns the value stored for key or the empty string.
func (s Submission) Value(key string) string {
	return s.values[key]
}

// ValueOr returns the value stored for key or fallback when absent.
func (s Submission) ValueOr(key, fallback string) string {
	if value, ok := s.values[key]; ok {
		return value
	}
	return fallback
}

// Has reports whether key carries a non-empty value.
func (s Submission) Has(key string) bool {
	_, ok := s.values[key]
	return ok
}

// Len reports the number of populated fields.
func (s Submission) Len() int {
	return len(s.values)
}

// Keys returns the populated keys in sorted order.
func (s Submission) Keys() []string {
	keys := make([]string, 0, len(s.values))
	for key := range s.values {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the underlying values.
func (s Submission) Map() map[string]string {
	out := make(map[string]string, len(s.values))
	for key, value := range s.values {
		out[key] = value
	}
	return out
}

// With returns a copy of s with key set to value. An empty value removes key.
func (s Submission) With(key, value string) Submission {
	values := s.Map()
	values[key] = value
	return New(values)
}

// Major returns the major or MajorPlaceholder when none was supplied.
func (s Submission) Major() string {
	return s.ValueOr(FieldMajor, MajorPlaceholder)
}

// StartDate parses start_date. ok is false when the field is absent.
func (s Submission) StartDate() (time.Time, bool, error) {
	return s.date(FieldStartDate)
}

// EndDate parses end_date. ok is false when the field is absent.
func (s Submission) EndDate() (time.Time, bool, error) {
	return s.date(FieldEndDate)
}

func (s Submission) date(key string) (time.Time, bool, error) {
	raw, ok := s.values[key]
	if !ok {
		return time.Time{}, false, nil
	}
	parsed, err := time.Parse(DateLayout, raw)
	if err != nil {
		return time.Time{}, true, fmt.Errorf("submission: parse %s %q: %w", key, raw, err)
	}
	return parsed, true, nil
}

// Missing returns the keys from required that carry no value, preserving the
// order of required.
func (s Submission) Missing(required []string) []string {
	var missing []string
	for _, key := range required {
		k := strings.TrimSpace(key)
		if k == "" {
			continue
		}
		if _, ok := s.values[k]; !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

// Require returns a *MissingFieldsError when any key in required is absent.
func (s Submission) Require(required []string) error {
	if missing := s.Missing(required); len(missing) > 0 {
		return &MissingFieldsError{Fields: missing}
	}
	return nil
}

// CheckDates validates the shape of the date fields and that the range is not
// reversed. It returns a *InvalidFieldsError describing every problem found.
func (s Submission) CheckDates() error {
	problems := make(map[string]string)

	start, hasStart, err := s.StartDate()
	if err != nil {
		problems[FieldStartDate] = "日期格式应为 YYYY-MM-DD"
	}
	end, hasEnd, err := s.EndDate()
	if err != nil {
		problems[FieldEndDate] = "日期格式应为 YYYY-MM-DD"
	}
	if len(problems) == 0 && hasStart && hasEnd && end.Before(start) {
		problems[FieldEndDate] = "结束日期不能早于开始日期"
	}

	if len(problems) == 0 {
		return nil
	}
	return &InvalidFieldsError{Fields: problems}
}
