package main

import (
	"encoding/json"
	"strconv"
	"strings"
)

// flexFloat tolerates upstream APIs that serialize numbers as strings
// or null. Anything unparseable decodes to 0.
type flexFloat float64

func (f *flexFloat) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "" || s == "null" {
		*f = 0
		return nil
	}
	if s[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*f = 0
			return nil
		}
		*f = flexFloat(parseFloatOrZero(str))
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		*f = 0
		return nil
	}
	*f = flexFloat(v)
	return nil
}

type flexInt int

func (i *flexInt) UnmarshalJSON(data []byte) error {
	var f flexFloat
	if err := f.UnmarshalJSON(data); err != nil {
		*i = 0
		return nil
	}
	*i = flexInt(f)
	return nil
}

// parseFloatOrZero converts loosely formatted numeric text to a float,
// falling back to 0 rather than failing the enclosing aggregation.
// Accepts currency symbols and thousands separators ("£1,234.50").
func parseFloatOrZero(s string) float64 {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "£")
	s = strings.TrimPrefix(s, "$")
	s = strings.ReplaceAll(s, ",", "")
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return v
}

// percentOf returns part/whole*100, or 0 when the whole is 0.
func percentOf(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}

// changePercent returns the percent change from previous to current,
// or 0 when previous is 0.
func changePercent(current, previous float64) float64 {
	if previous == 0 {
		return 0
	}
	return (current - previous) / previous * 100
}
