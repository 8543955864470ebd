package service

import (
	"encoding/json"
	"strconv"
	"strings"
)

// GradeValue is the bulk-entry value field. Grade-entry UIs submit one cell
// per student and leave untouched cells blank, so the JSON value may be a
// number, a numeric string, an empty string or null. Blank means "no change
// intended" and is skipped without error; a non-numeric string is a
// per-item error, never a payload-level failure.
type GradeValue struct {
	present bool
	valid   bool
	value   float64
	raw     string
}

// UnmarshalJSON accepts number, string and null encodings. It never fails:
// malformed values are carried as invalid so one bad cell cannot abort the
// sibling items in a bulk payload.
func (v *GradeValue) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*v = GradeValue{}
		return nil
	}

	if strings.HasPrefix(trimmed, `"`) {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			*v = GradeValue{present: true, raw: trimmed}
			return nil
		}
		str = strings.TrimSpace(str)
		if str == "" {
			*v = GradeValue{}
			return nil
		}
		f, err := strconv.ParseFloat(str, 64)
		if err != nil {
			*v = GradeValue{present: true, raw: str}
			return nil
		}
		*v = GradeValue{present: true, valid: true, value: f}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		*v = GradeValue{present: true, raw: trimmed}
		return nil
	}
	*v = GradeValue{present: true, valid: true, value: f}
	return nil
}

// MarshalJSON renders the numeric value, or null when blank.
func (v GradeValue) MarshalJSON() ([]byte, error) {
	if !v.present || !v.valid {
		return []byte("null"), nil
	}
	return json.Marshal(v.value)
}

// Empty reports whether the cell was blank (null or empty string).
func (v GradeValue) Empty() bool {
	return !v.present
}

// Invalid reports whether a value was supplied but could not be parsed.
func (v GradeValue) Invalid() bool {
	return v.present && !v.valid
}

// Float returns the parsed numeric value.
func (v GradeValue) Float() float64 {
	return v.value
}

// Raw returns the original text of an invalid value.
func (v GradeValue) Raw() string {
	return v.raw
}

// NumberValue builds a set GradeValue, for tests and internal callers.
func NumberValue(f float64) GradeValue {
	return GradeValue{present: true, valid: true, value: f}
}
