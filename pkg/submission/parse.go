package submission

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// FromValues builds a Submission from posted form values. For repeated keys the
// first non-empty value wins.
func FromValues(values url.Values) Submission {
	flat := make(map[string]string, len(values))
	for key, entries := range values {
		for _, entry := range entries {
			if strings.TrimSpace(entry) != "" {
				flat[key] = entry
				break
			}
		}
	}
	return New(flat)
}

// FromJSON decodes a JSON object of scalar values into a Submission.
func FromJSON(data []byte) (Submission, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()

	var raw map[string]any
	if err := decoder.Decode(&raw); err != nil {
		return Submission{}, fmt.Errorf("submission: decode json: %w", err)
	}
	return fromAny(raw)
}

// FromYAML decodes a YAML mapping of scalar values into a Submission.
func FromYAML(data []byte) (Submission, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return Submission{}, fmt.Errorf("submission: decode yaml: %w", err)
	}
	return fromAny(raw)
}

func fromAny(raw map[string]any) (Submission, error) {
	flat := make(map[string]string, len(raw))
	for key, value := range raw {
		text, err := scalarString(value)
		if err != nil {
			return Submission{}, fmt.Errorf("%w (field %q)", err, key)
		}
		flat[key] = text
	}
	return New(flat), nil
}

func scalarString(value any) (string, error) {
	switch v := value.(type) {
	case nil:
		return "", nil
	case string:
		return v, nil
	case json.Number:
		return v.String(), nil
	case bool:
		return strconv.FormatBool(v), nil
	case int:
		return strconv.Itoa(v), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	case time.Time:
		return v.Format(DateLayout), nil
	default:
		return "", ErrNestedValue
	}
}
