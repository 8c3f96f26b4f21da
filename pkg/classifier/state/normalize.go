package state

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// StringList decodes from a JSON string, an array of strings or null.
// A bare string becomes a one-element list and "" or null becomes empty.
type StringList []string

func (l *StringList) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*l = StringList{}
		return nil
	}

	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = Normalize(s)
		return nil
	case '[':
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return fmt.Errorf("list must contain only strings: %w", err)
		}
		*l = Normalize(items)
		return nil
	default:
		return fmt.Errorf("expected string or list of strings, got %s", string(data))
	}
}

// Normalize turns a string, a list of strings or nil into a list of strings.
// Empty strings are dropped.
func Normalize(v any) []string {
	switch t := v.(type) {
	case nil:
		return []string{}
	case string:
		if t == "" {
			return []string{}
		}
		return []string{t}
	case []string:
		out := make([]string, 0, len(t))
		for _, s := range t {
			if s != "" {
				out = append(out, s)
			}
		}
		return out
	case []any:
		out := make([]string, 0, len(t))
		for _, item := range t {
			if s, ok := item.(string); ok && s != "" {
				out = append(out, s)
			}
		}
		return out
	default:
		return []string{}
	}
}
