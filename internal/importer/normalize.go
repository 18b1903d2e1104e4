package importer

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Provisional is a single-OP record shaped like a canonical one but not yet
// validated. Hours stay textual so the validator can repair them.
type Provisional struct {
	Date          string
	OP            string
	Operator      string
	Activity      string
	OrdinaryHours string
	OvertimeHours *string
	Team          string
}

// Group is the set of provisional records derived from one candidate. For a
// compound reference Total is the shared duration the shares must add up to.
type Group struct {
	Compound bool
	Total    domain.Hours
	Records  []Provisional
}

var (
	opDelimiters  = func(r rune) bool { return r == '-' || r == '/' }
	datePattern   = regexp.MustCompile(`(\d{1,4})\s*[/\-.]\s*(\d{1,2})\s*[/\-.]\s*(\d{1,4})`)
	serialPattern = regexp.MustCompile(`(?i)^\s*(?:fecha\s*:\s*)?(\d{5})(?:\.0+)?\s*$`)
	hoursPattern  = regexp.MustCompile(`\d+(?:[.,]\d+)?`)
	labelPrefix   = regexp.MustCompile(`(?i)^\s*nombre\s*:\s*`)
)

// Engine expands raw candidates into provisional records: one per OP, with
// the shared duration split by Distribute.
type Engine struct {
	team   string
	title  cases.Caser
	logger *zap.Logger
}

// NewEngine creates an Engine that stamps every record with team.
func NewEngine(team string, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		team:   team,
		title:  cases.Title(language.Spanish),
		logger: logger,
	}
}

// Normalize turns one candidate into a group of provisional records, in OP
// order. An error means the whole candidate is dropped.
func (e *Engine) Normalize(raw RawCandidate) (Group, error) {
	ops := e.splitOPs(raw.OP)
	if len(ops) == 0 {
		return Group{}, fmt.Errorf("%w: %q", ErrNoOPs, raw.OP.Text)
	}

	date, err := NormalizeDate(raw.Date.Text)
	if err != nil {
		return Group{}, err
	}

	base := Provisional{
		Date:     date,
		Operator: e.normalizeOperator(raw.Operator.Text),
		Activity: collapseSpaces(raw.Activity.Text),
		Team:     e.team,
	}

	if raw.Duration.Blank() {
		return Group{}, fmt.Errorf("%w: duration missing for OP %s", ErrBadDuration, raw.OP.Text)
	}

	if len(ops) == 1 {
		rec := base
		rec.OP = ops[0]
		rec.OrdinaryHours = raw.Duration.Text
		if h, ok := recoverHours(raw.Duration.Text); ok {
			rec.OrdinaryHours = h.String()
		}
		rec.OvertimeHours = overtimeText(raw.Overtime)
		return Group{Records: []Provisional{rec}}, nil
	}

	total, ok := recoverHours(raw.Duration.Text)
	if !ok {
		return Group{}, fmt.Errorf("%w: %q shared by %d OPs", ErrBadDuration, raw.Duration.Text, len(ops))
	}
	total = total.RoundHalf()
	shares, err := Distribute(total, len(ops))
	if err != nil {
		return Group{}, err
	}

	group := Group{Compound: true, Total: total, Records: make([]Provisional, len(ops))}
	for i, op := range ops {
		rec := base
		rec.OP = op
		rec.OrdinaryHours = shares[i].String()
		if i == 0 {
			rec.OvertimeHours = overtimeText(raw.Overtime)
		}
		group.Records[i] = rec
	}
	return group, nil
}

// splitOPs splits a compound reference on '-' and '/', keeping numeric
// sub-tokens in order and dropping repeats.
func (e *Engine) splitOPs(tok Token) []string {
	if tok.Blank() {
		return nil
	}
	seen := make(map[string]bool)
	var ops []string
	for _, part := range strings.FieldsFunc(tok.Text, opDelimiters) {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if _, err := strconv.ParseUint(part, 10, 32); err != nil {
			e.logger.Warn("discarding non-numeric OP sub-token",
				zap.String("op", tok.Text), zap.String("token", part))
			continue
		}
		if seen[part] {
			e.logger.Warn("discarding repeated OP sub-token",
				zap.String("op", tok.Text), zap.String("token", part))
			continue
		}
		seen[part] = true
		ops = append(ops, part)
	}
	return ops
}

func (e *Engine) normalizeOperator(s string) string {
	s = labelPrefix.ReplaceAllString(s, "")
	return e.title.String(collapseSpaces(s))
}

// Serial day numbers accepted as Excel dates: 1954-10-03 to 2119-01-11.
const (
	minDateSerial = 20000
	maxDateSerial = 80000
)

// NormalizeDate reduces a sheet date to YY-MM-DD. Dates with a four-digit
// year may come day-first (DD/MM/YYYY, DD-MM-YYYY) or year-first
// (YYYY-MM-DD). Dates with a two-digit year are always day-first
// (DD/MM/YY, DD-MM-YY), the way the sheets are written. A bare Excel serial
// day number is also accepted. Surrounding text such as "FECHA:" is ignored.
func NormalizeDate(s string) (string, error) {
	if m := serialPattern.FindStringSubmatch(s); m != nil {
		return serialDate(m[1], s)
	}
	m := datePattern.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: %q", ErrBadDate, s)
	}
	first, middle, last := m[1], m[2], m[3]

	var y, mo, d int
	switch {
	case len(first) == 4:
		y, mo, d = atoi(first), atoi(middle), atoi(last)
	case len(last) == 4:
		d, mo, y = atoi(first), atoi(middle), atoi(last)
	case len(first) > 2 || len(last) > 2:
		return "", fmt.Errorf("%w: %q", ErrBadDate, s)
	default:
		d, mo, y = atoi(first), atoi(middle), 2000+atoi(last)
	}

	t := time.Date(y, time.Month(mo), d, 0, 0, 0, 0, time.UTC)
	if t.Year() != y || int(t.Month()) != mo || t.Day() != d {
		return "", fmt.Errorf("%w: %q is not a calendar date", ErrBadDate, s)
	}
	return t.Format(domain.DateLayout), nil
}

func serialDate(digits, s string) (string, error) {
	n := atoi(digits)
	if n < minDateSerial || n > maxDateSerial {
		return "", fmt.Errorf("%w: serial %q out of range", ErrBadDate, s)
	}
	t, err := excelize.ExcelDateToTime(float64(n), false)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %v", ErrBadDate, s, err)
	}
	return t.Format(domain.DateLayout), nil
}

// recoverHours reads a duration token, tolerating a comma decimal separator
// and trailing units ("1,5 h").
func recoverHours(s string) (domain.Hours, bool) {
	if h, err := domain.ParseHours(s); err == nil {
		return h, true
	}
	m := hoursPattern.FindString(s)
	if m == "" {
		return 0, false
	}
	h, err := domain.ParseHours(m)
	if err != nil {
		return 0, false
	}
	return h, true
}

func overtimeText(tok Token) *string {
	if tok.Blank() {
		return nil
	}
	s := tok.Text
	return &s
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}
