package models

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Number is a client-supplied numeric field. It accepts a JSON number or a
// numeric string and remembers the raw text, so validation can tell an
// absent value from a malformed one.
type Number struct {
	raw string
	set bool
}

// NumberOf returns a Number holding f.
func NumberOf(f float64) Number {
	return Number{raw: strconv.FormatFloat(f, 'f', -1, 64), set: true}
}

// NumberFrom returns a Number holding *f, or an absent Number for nil.
func NumberFrom(f *float64) Number {
	if f == nil {
		return Number{}
	}
	return NumberOf(*f)
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*n = Number{}
		return nil
	}
	n.set = true
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		n.raw = strings.TrimSpace(s)
		return nil
	}
	n.raw = string(b)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n Number) MarshalJSON() ([]byte, error) {
	if f, ok := n.Float(); ok {
		return []byte(strconv.FormatFloat(f, 'f', -1, 64)), nil
	}
	if !n.Present() {
		return []byte("null"), nil
	}
	return json.Marshal(n.raw)
}

// Present reports whether a non-empty value was supplied.
func (n Number) Present() bool {
	return n.set && n.raw != ""
}

// Float returns the parsed value and whether it is a finite number.
func (n Number) Float() (float64, bool) {
	if !n.Present() {
		return 0, false
	}
	f, err := strconv.ParseFloat(n.raw, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// Invalid reports whether a value was supplied but is not numeric.
func (n Number) Invalid() bool {
	_, ok := n.Float()
	return n.Present() && !ok
}

// Ptr returns the parsed value as a pointer, nil when absent or invalid.
func (n Number) Ptr() *float64 {
	f, ok := n.Float()
	if !ok {
		return nil
	}
	return &f
}
