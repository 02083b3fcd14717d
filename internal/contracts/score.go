package contracts

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MissingMarker is the literal rendered for a score with no data.
// Table and chart consumers rely on this exact string.
const MissingMarker = "-"

// Score is an optional rating value. A disclosure side that carried no
// usable rating is Missing and renders as "-"; everything else is a finite
// float. This replaces the upstream convention of mixing numbers with the
// "-" and "NA" placeholder strings.
type Score struct {
	value float64
	valid bool
}

// ScoreOf returns a valid Score. Non-finite input degrades to Missing.
func ScoreOf(v float64) Score {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Score{}
	}
	return Score{value: v, valid: true}
}

// MissingScore returns the "-" sentinel
func MissingScore() Score {
	return Score{}
}

// Valid reports whether the score carries a numeric value
func (s Score) Valid() bool {
	return s.valid
}

// Value returns the numeric value, or 0 when missing
func (s Score) Value() float64 {
	return s.value
}

// Float returns the value and whether it is present
func (s Score) Float() (float64, bool) {
	return s.value, s.valid
}

// String renders the score the way the table displays it
func (s Score) String() string {
	if !s.valid {
		return MissingMarker
	}
	return strconv.FormatFloat(s.value, 'f', 2, 64)
}

// MarshalJSON emits a JSON number, or the literal "-" when missing
func (s Score) MarshalJSON() ([]byte, error) {
	if !s.valid {
		return json.Marshal(MissingMarker)
	}
	return json.Marshal(s.value)
}

// UnmarshalJSON accepts a number, "-", "NA", null, or a numeric string.
// Anything unparseable degrades to Missing rather than erroring; a
// malformed rating must never abort decoding of a whole summary.
func (s *Score) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*s = Score{}
		return nil
	}

	var num float64
	if err := json.Unmarshal(data, &num); err == nil {
		*s = ScoreOf(num)
		return nil
	}

	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		*s = Score{}
		return nil
	}

	switch strings.ToUpper(strings.TrimSpace(str)) {
	case MissingMarker, "NA", "N/A", "":
		*s = Score{}
		return nil
	}

	if num, err := strconv.ParseFloat(strings.TrimSpace(str), 64); err == nil {
		*s = ScoreOf(num)
		return nil
	}

	*s = Score{}
	return nil
}

// ClampNonNegative treats a negative rating as "no signal" floor, not a
// sign-bearing value
func (s Score) ClampNonNegative() Score {
	if s.valid && s.value < 0 {
		return ScoreOf(0)
	}
	return s
}

// Format renders with the given number of decimals, "-" when missing
func (s Score) Format(decimals int) string {
	if !s.valid {
		return MissingMarker
	}
	return fmt.Sprintf("%.*f", decimals, s.value)
}
