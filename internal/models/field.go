package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Field is an optional scalar from a JSON request body. It records whether
// the key was present and whether it was an explicit null, so partial
// updates can tell "absent" from "cleared".
type Field struct {
	Set   bool
	Null  bool
	Value string

	number   float64
	isNumber bool
}

// NewField returns a present, non-null field holding s
func NewField(s string) Field {
	return Field{Set: true, Value: s}
}

// NullField returns a present field holding an explicit null
func NullField() Field {
	return Field{Set: true, Null: true}
}

// UnmarshalJSON accepts strings, numbers, booleans and null.
func (f *Field) UnmarshalJSON(data []byte) error {
	*f = Field{Set: true}

	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		f.Null = true
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return err
	}

	switch val := v.(type) {
	case string:
		f.Value = val
	case json.Number:
		f.Value = val.String()
		if n, err := val.Float64(); err == nil {
			f.number = n
			f.isNumber = true
		}
	case bool:
		f.Value = strconv.FormatBool(val)
	default:
		return fmt.Errorf("expected a scalar value, got %s", data)
	}
	return nil
}

// MarshalJSON writes the field back as a string or null. Absent fields
// marshal as null too.
func (f Field) MarshalJSON() ([]byte, error) {
	if !f.Set || f.Null {
		return []byte("null"), nil
	}
	if f.isNumber {
		return []byte(f.Value), nil
	}
	return json.Marshal(f.Value)
}

// Provided reports whether the field carries a non-null value
func (f Field) Provided() bool {
	return f.Set && !f.Null
}

// String returns the value, or "" when absent or null
func (f Field) String() string {
	if !f.Provided() {
		return ""
	}
	return f.Value
}

// Trimmed returns the value with surrounding whitespace removed
func (f Field) Trimmed() string {
	return strings.TrimSpace(f.String())
}

// Hours interprets the field as an hour estimate. See ParseHours.
func (f Field) Hours() float64 {
	if !f.Provided() {
		return 0
	}
	if f.isNumber {
		return sanitizeHours(f.number)
	}
	return ParseHours(f.Value)
}

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseHours reads the leading decimal number of s ("3.5h" is 3.5).
// Input with no numeric prefix, negatives and non-finite values yield 0.
func ParseHours(s string) float64 {
	m := leadingNumber.FindString(strings.TrimSpace(s))
	if m == "" {
		return 0
	}
	n, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return sanitizeHours(n)
}

func sanitizeHours(n float64) float64 {
	if math.IsNaN(n) || math.IsInf(n, 0) || n < 0 {
		return 0
	}
	return n
}
