package pitches

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
)

// NotAvailable is the wire form of a Stat with no value.
const NotAvailable = "N/A"

// Stat is a float that may be unavailable.
type Stat struct {
	Value float64
	Valid bool
}

// Of returns an available Stat. NaN and infinities are treated as unavailable.
func Of(v float64) Stat {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Stat{}
	}
	return Stat{Value: v, Valid: true}
}

// NA returns an unavailable Stat.
func NA() Stat { return Stat{} }

// String renders the value with two decimals or "N/A".
func (s Stat) String() string {
	if !s.Valid {
		return NotAvailable
	}
	return strconv.FormatFloat(s.Value, 'f', 2, 64)
}

// MarshalJSON encodes as a number or the string "N/A".
func (s Stat) MarshalJSON() ([]byte, error) {
	if !s.Valid {
		return []byte(`"` + NotAvailable + `"`), nil
	}
	return []byte(strconv.FormatFloat(s.Value, 'f', -1, 64)), nil
}

// UnmarshalJSON accepts a number, null or "N/A".
func (s *Stat) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = Stat{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var raw string
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
		if raw == NotAvailable || raw == "" {
			*s = Stat{}
			return nil
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("pitches: invalid stat %q", raw)
		}
		*s = Of(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*s = Of(v)
	return nil
}
