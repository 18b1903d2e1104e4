// Package recordfile reads and writes the persisted canonical record set.
package recordfile

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Jonatan1014/Automatizacion-Ingenieria-SCP/internal/domain"
)

const timestampLayout = "20060102_150405"

// FileName derives the record file name from the operator and the
// generation time: "nelson_rangel_20250403_101500.json".
func FileName(operator string, ts time.Time) string {
	name := strings.ToLower(strings.TrimSpace(operator))
	if name == "" {
		name = domain.UnknownOperator
	}
	name = strings.ReplaceAll(name, " ", "_")
	name = strings.Map(func(r rune) rune {
		if r == '/' || r == '\\' || r == os.PathSeparator {
			return '_'
		}
		return r
	}, name)
	return fmt.Sprintf("%s_%s.json", name, ts.Format(timestampLayout))
}

// Save writes records as an indented JSON array under dir, creating the
// directory if needed, and returns the file path.
func Save(dir, operator string, ts time.Time, records []domain.WorkLog) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}
	if records == nil {
		records = []domain.WorkLog{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(records); err != nil {
		return "", fmt.Errorf("encoding records: %w", err)
	}

	path := filepath.Join(dir, FileName(operator, ts))
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("writing record file: %w", err)
	}
	return path, nil
}

// Load reads a record file back in its stored order. Files are often edited
// by hand, so every record is checked again and any invalid record rejects
// the whole file; the error lists each offender by position.
func Load(path string) ([]domain.WorkLog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading record file: %w", err)
	}
	var records []domain.WorkLog
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parsing record file %s: %w", filepath.Base(path), err)
	}

	var errs []error
	for i, rec := range records {
		if err := rec.Check(); err != nil {
			errs = append(errs, fmt.Errorf("record %d: %w", i+1, err))
		}
	}
	if len(errs) > 0 {
		return nil, fmt.Errorf("record file %s: %w", filepath.Base(path), errors.Join(errs...))
	}
	return records, nil
}
