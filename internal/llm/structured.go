package llm

import (
	"encoding/json"
	"fmt"
	"strings"
)

// SchemaValidator checks a decoded value after JSON extraction.
type SchemaValidator[T any] func(T) error

// ExtractJSON decodes the first balanced JSON object in raw model output.
// Markdown fences and surrounding prose are ignored, and the usual model
// slips (comments, ".5" numbers, trailing commas) are repaired first.
func ExtractJSON[T any](raw string, validator SchemaValidator[T]) (T, error) {
	return decodeBlock(raw, '{', '}', validator)
}

// ExtractJSONArray is ExtractJSON for a top-level JSON array.
func ExtractJSONArray[T any](raw string, validator SchemaValidator[[]T]) ([]T, error) {
	return decodeBlock(raw, '[', ']', validator)
}

func decodeBlock[T any](raw string, open, end byte, validator SchemaValidator[T]) (T, error) {
	var out T

	block := balancedBlock(stripFences(raw), open, end)
	if block == "" {
		return out, fmt.Errorf("%w: no JSON %c...%c block found in response", ErrInvalidOutput, open, end)
	}
	if err := json.Unmarshal([]byte(repairJSON(block)), &out); err != nil {
		return out, fmt.Errorf("%w: %v", ErrInvalidOutput, err)
	}
	if validator != nil {
		if err := validator(out); err != nil {
			var zero T
			return zero, fmt.Errorf("%w: validation failed: %v", ErrInvalidOutput, err)
		}
	}
	return out, nil
}

// stripFences drops markdown fence lines, keeping what they enclose.
func stripFences(s string) string {
	lines := strings.Split(s, "\n")
	kept := lines[:0]
	for _, line := range lines {
		if !strings.HasPrefix(strings.TrimSpace(line), "```") {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}

// jsonScanner tracks whether a byte-by-byte walk is inside a string literal.
type jsonScanner struct {
	inString bool
	escaped  bool
}

// structural consumes c and reports whether it lies outside every string
// literal. Quotes themselves are not structural.
func (sc *jsonScanner) structural(c byte) bool {
	switch {
	case sc.escaped:
		sc.escaped = false
		return false
	case sc.inString && c == '\\':
		sc.escaped = true
		return false
	case c == '"':
		sc.inString = !sc.inString
		return false
	default:
		return !sc.inString
	}
}

// balancedBlock returns the first open...end block of s, or "" when the
// block never closes.
func balancedBlock(s string, open, end byte) string {
	start := strings.IndexByte(s, open)
	if start < 0 {
		return ""
	}
	var sc jsonScanner
	depth := 0
	for i := start; i < len(s); i++ {
		if !sc.structural(s[i]) {
			continue
		}
		switch s[i] {
		case open:
			depth++
		case end:
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

// repairJSON removes // and /* */ comments, writes ".5" as "0.5" and drops
// commas that directly precede a closing bracket. String contents are left
// untouched.
func repairJSON(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 8)

	var sc jsonScanner
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !sc.structural(c) {
			b.WriteByte(c)
			continue
		}

		switch {
		case strings.HasPrefix(s[i:], "//"):
			for i+1 < len(s) && s[i+1] != '\n' {
				i++
			}
			continue
		case strings.HasPrefix(s[i:], "/*"):
			if j := strings.Index(s[i+2:], "*/"); j >= 0 {
				i += j + 3
			} else {
				i = len(s)
			}
			continue
		case c == ',' && closesNext(s[i+1:]):
			continue
		case c == '.' && i+1 < len(s) && isDigit(s[i+1]) && startsValue(lastSignificant(b.String())):
			b.WriteByte('0')
		}
		b.WriteByte(c)
	}
	return b.String()
}

// closesNext reports whether the next non-blank byte of s closes a
// container.
func closesNext(s string) bool {
	t := strings.TrimLeft(s, " \t\r\n")
	return t != "" && (t[0] == ']' || t[0] == '}')
}

func lastSignificant(s string) byte {
	t := strings.TrimRight(s, " \t\r\n")
	if t == "" {
		return 0
	}
	return t[len(t)-1]
}

// startsValue reports whether a number may begin right after c.
func startsValue(c byte) bool {
	switch c {
	case 0, ':', ',', '[', '-':
		return true
	}
	return false
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}
