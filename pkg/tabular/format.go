// Package tabular reads and writes mapping tables in bulk: one mapping per
// line, either whitespace separated or as CSV.
package tabular

import (
	"bufio"
	"encoding/csv"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/walteh/insertsym/pkg/symbol"
	"gitlab.com/tozd/go/errors"
)

// Format selects a line encoding.
type Format int

const (
	// FormatAuto picks a format from the file extension.
	FormatAuto Format = iota
	// FormatWhitespace splits each line on runs of whitespace.
	FormatWhitespace
	// FormatCSV parses each line as one CSV record.
	FormatCSV
)

// String returns a string representation of Format
func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatWhitespace:
		return "whitespace"
	case FormatCSV:
		return "csv"
	default:
		return "unknown"
	}
}

// ParseFormat maps a config or flag value to a Format.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "auto":
		return FormatAuto, nil
	case "whitespace", "txt", "text":
		return FormatWhitespace, nil
	case "csv":
		return FormatCSV, nil
	default:
		return FormatAuto, errors.Errorf("unknown format %q", s)
	}
}

// FormatFromPath returns FormatCSV for .csv files and FormatWhitespace for
// everything else.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatWhitespace
}

func (f Format) resolve(path string) Format {
	if f == FormatAuto {
		return FormatFromPath(path)
	}
	return f
}

// 📖 Read returns one entry per input line. Blank lines are kept as empty
// entries so entry indices stay equal to line numbers.
func Read(r io.Reader, f Format) ([][]string, error) {
	var rows [][]string
	scanner := bufio.NewScanner(r)
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimPrefix(scanner.Text(), "\ufeff")
		fields, err := splitLine(text, f)
		if err != nil {
			return nil, errors.Errorf("line %d: %w", line, err)
		}
		rows = append(rows, fields)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Errorf("reading input: %w", err)
	}
	return rows, nil
}

func splitLine(text string, f Format) ([]string, error) {
	if strings.TrimSpace(text) == "" {
		return []string{}, nil
	}
	if f != FormatCSV {
		return strings.Fields(text), nil
	}

	cr := csv.NewReader(strings.NewReader(text))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	record, err := cr.Read()
	if err != nil {
		return nil, errors.Errorf("parsing csv: %w", err)
	}
	return record, nil
}

// ✍️ Write encodes mappings one per line. The whitespace format rejects a
// mapping with whitespace inside a field, since it would not read back.
func Write(w io.Writer, mappings []symbol.Mapping, f Format) error {
	if f == FormatCSV {
		cw := csv.NewWriter(w)
		for _, m := range mappings {
			if err := cw.Write(m.Fields()); err != nil {
				return errors.Errorf("writing %q: %w", m.Trigger, err)
			}
		}
		cw.Flush()
		if err := cw.Error(); err != nil {
			return errors.Errorf("flushing csv: %w", err)
		}
		return nil
	}

	for _, m := range mappings {
		if strings.ContainsFunc(m.Trigger, unicode.IsSpace) || strings.ContainsFunc(m.Replacement, unicode.IsSpace) {
			return errors.Errorf("%q contains whitespace and cannot be written as whitespace separated text; use csv", m.Trigger)
		}
	}

	bw := bufio.NewWriter(w)
	for _, m := range mappings {
		if _, err := bw.WriteString(m.Trigger + " " + m.Replacement + "\n"); err != nil {
			return errors.Errorf("writing %q: %w", m.Trigger, err)
		}
	}
	if err := bw.Flush(); err != nil {
		return errors.Errorf("flushing output: %w", err)
	}
	return nil
}
