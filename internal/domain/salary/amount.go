package salary

import (
	"bytes"
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var leadingNumber = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?`)

// ParseAmount reads the leading number of raw the way form inputs are
// usually parsed: "1500" and "1500.50 PKR" both work, anything without a
// leading number is 0.
func ParseAmount(raw string) float64 {
	value, ok := parseLeading(raw)
	if !ok {
		return 0
	}
	return value
}

func parseLeading(raw string) (float64, bool) {
	match := leadingNumber.FindString(strings.TrimSpace(raw))
	if match == "" {
		return 0, false
	}
	value, err := strconv.ParseFloat(match, 64)
	if err != nil || math.IsNaN(value) || math.IsInf(value, 0) {
		return 0, false
	}
	return value, true
}

// Amount accepts a JSON number or numeric string; anything else decodes
// to 0 instead of failing the whole payload.
type Amount float64

func (a *Amount) UnmarshalJSON(data []byte) error {
	*a = Amount(decodeNumber(data))
	return nil
}

func (a Amount) Float() float64 {
	return float64(a)
}

// OptionalAmount distinguishes "not provided" from an explicit 0. Null,
// empty strings and unparseable input count as not provided.
type OptionalAmount struct {
	Value float64
	Valid bool
}

func Some(value float64) OptionalAmount {
	return OptionalAmount{Value: value, Valid: true}
}

func (o *OptionalAmount) UnmarshalJSON(data []byte) error {
	value, ok := decodeOptional(data)
	*o = OptionalAmount{Value: value, Valid: ok}
	return nil
}

func (o OptionalAmount) MarshalJSON() ([]byte, error) {
	if !o.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(o.Value)
}

// ParseOptional is the form-field counterpart of OptionalAmount.
func ParseOptional(raw string) OptionalAmount {
	value, ok := parseLeading(raw)
	return OptionalAmount{Value: value, Valid: ok}
}

// Flag accepts true/false, "true"/"false", "yes"/"no", "1"/"0".
type Flag bool

func (f *Flag) UnmarshalJSON(data []byte) error {
	*f = Flag(ParseFlag(string(bytes.Trim(data, `"`))))
	return nil
}

func ParseFlag(raw string) bool {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "yes", "1", "on":
		return true
	}
	return false
}

func decodeNumber(data []byte) float64 {
	value, _ := decodeOptional(data)
	return value
}

func decodeOptional(data []byte) (float64, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, false
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return 0, false
		}
		return parseLeading(s)
	}
	var n float64
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return 0, false
	}
	return n, true
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
