// Package sheet turns spreadsheet workbooks into flat, tab-joined text that
// the extraction port can read.
package sheet

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Sheet is one non-empty worksheet flattened to text lines.
type Sheet struct {
	Name  string
	Lines []string
}

// Text joins the sheet's lines with newlines.
func (s Sheet) Text() string {
	return strings.Join(s.Lines, "\n")
}

// Flatten converts rows of cells into tab-joined lines. Cells are trimmed and
// rows with no content are dropped; row order is preserved.
func Flatten(name string, rows [][]string) Sheet {
	s := Sheet{Name: name}
	for _, row := range rows {
		cells := make([]string, len(row))
		nonEmpty := false
		for i, c := range row {
			cells[i] = strings.TrimSpace(c)
			if cells[i] != "" {
				nonEmpty = true
			}
		}
		if !nonEmpty {
			continue
		}
		s.Lines = append(s.Lines, strings.Join(cells, "\t"))
	}
	return s
}

// DateLayout is how date-formatted cells are written into the flattened
// text, whatever number format the workbook gives them.
const DateLayout = "02/01/2006"

// ReadWorkbook opens an .xlsx file and returns every sheet that has at least
// one non-empty row, in workbook order. The second value is the total number
// of sheets in the workbook, empty ones included. Date cells are rendered
// with DateLayout.
func ReadWorkbook(path string) ([]Sheet, int, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, 0, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	dates, err := newDateRenderer(f)
	if err != nil {
		return nil, 0, err
	}

	names := f.GetSheetList()
	sheets := make([]Sheet, 0, len(names))
	for _, name := range names {
		rows, err := f.GetRows(name)
		if err != nil {
			return nil, 0, fmt.Errorf("reading sheet %q: %w", name, err)
		}
		if err := dates.render(name, rows); err != nil {
			return nil, 0, fmt.Errorf("reading sheet %q: %w", name, err)
		}
		s := Flatten(name, rows)
		if len(s.Lines) == 0 {
			continue
		}
		sheets = append(sheets, s)
	}
	return sheets, len(names), nil
}

// dateRenderer rewrites cells whose number format is a date. GetRows would
// otherwise apply the workbook's format, and built-in format 14 renders as
// mm-dd-yy.
type dateRenderer struct {
	f        *excelize.File
	date1904 bool
	isDate   map[int]bool
}

func newDateRenderer(f *excelize.File) (*dateRenderer, error) {
	props, err := f.GetWorkbookProps()
	if err != nil {
		return nil, fmt.Errorf("reading workbook properties: %w", err)
	}
	r := &dateRenderer{f: f, isDate: make(map[int]bool)}
	if props.Date1904 != nil {
		r.date1904 = *props.Date1904
	}
	return r, nil
}

func (r *dateRenderer) render(sheetName string, rows [][]string) error {
	for i, row := range rows {
		for j, cell := range row {
			if strings.TrimSpace(cell) == "" {
				continue
			}
			axis, err := excelize.CoordinatesToCellName(j+1, i+1)
			if err != nil {
				return err
			}
			date, err := r.dateStyled(sheetName, axis)
			if err != nil {
				return err
			}
			if !date {
				continue
			}
			raw, err := r.f.GetCellValue(sheetName, axis, excelize.Options{RawCellValue: true})
			if err != nil {
				return err
			}
			serial, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
			if err != nil || serial < 1 {
				continue
			}
			t, err := excelize.ExcelDateToTime(serial, r.date1904)
			if err != nil {
				continue
			}
			row[j] = t.Format(DateLayout)
		}
	}
	return nil
}

func (r *dateRenderer) dateStyled(sheetName, axis string) (bool, error) {
	id, err := r.f.GetCellStyle(sheetName, axis)
	if err != nil {
		return false, err
	}
	if date, ok := r.isDate[id]; ok {
		return date, nil
	}
	style, err := r.f.GetStyle(id)
	if err != nil {
		return false, err
	}
	date := isDateFormat(style)
	r.isDate[id] = date
	return date, nil
}

// isDateFormat reports whether a style shows a calendar date. Time-only
// formats (h:mm, mm:ss) are not dates; sheets use them for durations.
func isDateFormat(style *excelize.Style) bool {
	if style.CustomNumFmt != nil {
		code := strings.ToLower(stripLiterals(*style.CustomNumFmt))
		return strings.ContainsAny(code, "dy")
	}
	switch n := style.NumFmt; {
	case n >= 14 && n <= 17, n == 22:
		return true
	case n >= 27 && n <= 36, n >= 50 && n <= 58:
		return true
	}
	return false
}

// stripLiterals drops quoted text and bracketed sections ("[Red]",
// "[$-es-CO]") from a number format code.
func stripLiterals(code string) string {
	var b strings.Builder
	inQuote, inBracket := false, false
	for _, c := range code {
		switch {
		case c == '"' && !inBracket:
			inQuote = !inQuote
		case c == '[' && !inQuote:
			inBracket = true
		case c == ']' && inBracket:
			inBracket = false
		case !inQuote && !inBracket:
			b.WriteRune(c)
		}
	}
	return b.String()
}
