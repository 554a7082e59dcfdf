package dbtypes

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SpecMap holds the free-form attribute map attached to a catalog component.
// Values are strings or numbers depending on the category; the column is JSONB.
type SpecMap map[string]any

// Value marshals the map into its JSONB representation.
func (m SpecMap) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	data, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("SpecMap: marshal: %w", err)
	}
	return string(data), nil
}

// Scan decodes a JSONB column back into the map.
func (m *SpecMap) Scan(src any) error {
	if src == nil {
		*m = SpecMap{}
		return nil
	}

	var data []byte
	switch v := src.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("SpecMap: unsupported Scan type %T", src)
	}

	if len(data) == 0 {
		*m = SpecMap{}
		return nil
	}
	return json.Unmarshal(data, m)
}

// String returns the attribute as a string, or "" when absent.
func (m SpecMap) String(key string) string {
	v, ok := m[key]
	if !ok {
		return ""
	}
	switch t := v.(type) {
	case string:
		return t
	case float64:
		if t == math.Trunc(t) {
			return strconv.FormatInt(int64(t), 10)
		}
		return strconv.FormatFloat(t, 'f', -1, 64)
	default:
		return fmt.Sprint(t)
	}
}

// Int parses the attribute as an integer, returning fallback when the value
// is absent or unparseable. Numeric strings with trailing units ("125 W")
// parse their leading digits, matching how spec sheets are entered.
func (m SpecMap) Int(key string, fallback int) int {
	raw := strings.TrimSpace(m.String(key))
	if raw == "" {
		return fallback
	}
	end := 0
	if raw[0] == '-' {
		end = 1
	}
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	value, err := strconv.Atoi(raw[:end])
	if err != nil {
		return fallback
	}
	return value
}
