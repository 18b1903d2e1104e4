package importer

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Token is one loosely typed scalar from the extraction service. Strings and
// numbers are both accepted; null or an absent key leaves Valid false.
// Objects, arrays and booleans are rejected at decode time.
type Token struct {
	Text  string
	Valid bool
}

// Tok builds a valid Token. Handy in tests and fakes.
func Tok(s string) Token {
	return Token{Text: s, Valid: true}
}

func (t *Token) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*t = Token{}
		return nil
	}
	switch data[0] {
	case '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Token{Text: strings.TrimSpace(s), Valid: true}
		return nil
	case '-', '0', '1', '2', '3', '4', '5', '6', '7', '8', '9':
		var n json.Number
		if err := json.Unmarshal(data, &n); err != nil {
			return err
		}
		*t = Token{Text: numberText(n), Valid: true}
		return nil
	default:
		return fmt.Errorf("expected string or number, got %s", data)
	}
}

func (t Token) MarshalJSON() ([]byte, error) {
	if !t.Valid {
		return []byte("null"), nil
	}
	return json.Marshal(t.Text)
}

// Blank reports whether the token carries no usable text.
func (t Token) Blank() bool {
	return !t.Valid || t.Text == ""
}

// numberText renders integral numbers without a fractional part so that
// 7027.0 and 7027 read the same.
func numberText(n json.Number) string {
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return n.String()
	}
	if f == float64(int64(f)) {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// RawCandidate is one unvalidated record as returned by the extraction port.
// OP may be compound ("7027-7028-7029") and Duration is shared by every OP
// it names.
type RawCandidate struct {
	Date     Token `json:"fecha"`
	Operator Token `json:"operario"`
	OP       Token `json:"OP"`
	Activity Token `json:"actividad"`
	Duration Token `json:"tiempo"`
	Overtime Token `json:"tiempo_extra"`
}

// UnmarshalJSON accepts the shared duration under either "tiempo" or the
// legacy "tiempo_ordinario" key.
func (c *RawCandidate) UnmarshalJSON(data []byte) error {
	var wire struct {
		Date     Token `json:"fecha"`
		Operator Token `json:"operario"`
		OP       Token `json:"OP"`
		Activity Token `json:"actividad"`
		Duration Token `json:"tiempo"`
		Ordinary Token `json:"tiempo_ordinario"`
		Overtime Token `json:"tiempo_extra"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	duration := wire.Duration
	if duration.Blank() {
		duration = wire.Ordinary
	}
	*c = RawCandidate{
		Date:     wire.Date,
		Operator: wire.Operator,
		OP:       wire.OP,
		Activity: wire.Activity,
		Duration: duration,
		Overtime: wire.Overtime,
	}
	return nil
}

// DecodeCandidates decodes each element independently so that one malformed
// object does not discard its siblings. Order is preserved.
func DecodeCandidates(elems []json.RawMessage) ([]RawCandidate, []error) {
	out := make([]RawCandidate, 0, len(elems))
	var errs []error
	for i, raw := range elems {
		var c RawCandidate
		if err := json.Unmarshal(raw, &c); err != nil {
			errs = append(errs, fmt.Errorf("candidate %d: %w", i, err))
			continue
		}
		out = append(out, c)
	}
	return out, errs
}
