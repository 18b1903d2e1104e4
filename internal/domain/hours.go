package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Hours is a duration in hundredths of an hour. Keeping it integral makes
// half-hour arithmetic exact.
type Hours int64

const (
	// HalfHour is the recording granularity for ordinary time.
	HalfHour Hours = 50
	// OneHour is a convenience for tests and fixtures.
	OneHour Hours = 100
)

// ParseHours reads a decimal hour amount such as "2.5", "2,5" or " 3 ".
// A comma is accepted as the decimal separator.
func ParseHours(s string) (Hours, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty hour value")
	}
	s = strings.ReplaceAll(s, ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("parsing hours %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("parsing hours %q: not a finite number", s)
	}
	return Hours(math.Round(f * 100)), nil
}

// HalfUnits returns the number of whole half-hours in h.
func (h Hours) HalfUnits() int64 {
	return int64(h / HalfHour)
}

// HoursFromHalfUnits converts a count of half-hours back to Hours.
func HoursFromHalfUnits(n int64) Hours {
	return Hours(n) * HalfHour
}

// IsHalfMultiple reports whether h is an exact multiple of 0.5.
func (h Hours) IsHalfMultiple() bool {
	return h%HalfHour == 0
}

// RoundHalf rounds h to the nearest half-hour, halves rounding up.
func (h Hours) RoundHalf() Hours {
	if h < 0 {
		return -(-h).RoundHalf()
	}
	return ((h + HalfHour/2) / HalfHour) * HalfHour
}

// Float returns h as a float64 number of hours.
func (h Hours) Float() float64 {
	return float64(h) / 100
}

// String renders h the way the legacy form expects: "0.5", "2", "2.5".
func (h Hours) String() string {
	return strconv.FormatFloat(h.Float(), 'f', -1, 64)
}

// MarshalJSON encodes hours as a JSON string.
func (h Hours) MarshalJSON() ([]byte, error) {
	return json.Marshal(h.String())
}

// UnmarshalJSON accepts both "2.5" and 2.5.
func (h *Hours) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		var f json.Number
		if numErr := json.Unmarshal(data, &f); numErr != nil {
			return fmt.Errorf("hours must be a string or number: %w", err)
		}
		s = f.String()
	}
	v, err := ParseHours(s)
	if err != nil {
		return err
	}
	*h = v
	return nil
}
