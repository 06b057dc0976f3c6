package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// Records holds one raw input table: a header row and data rows, exactly as
// read from disk. Normalization and typing happen when the table builders
// convert records into core structures.
type Records struct {
	Name   string
	Header []string
	Rows   [][]string
}

// ReadRecords reads a tabular file by extension: .csv/.tsv via encoding/csv,
// .xlsx via the first worksheet. delim overrides delimiter sniffing when
// non-zero (ignored for xlsx).
func ReadRecords(path string, delim rune) (*Records, error) {
	lower := strings.ToLower(path)
	if strings.HasSuffix(lower, ".xlsx") {
		return ReadXLSX(path)
	}
	return ReadCSV(path, delim)
}

// ReadCSV reads a delimited text file. If delim is zero the delimiter is
// sniffed: .tsv means tab, everything else comma.
func ReadCSV(path string, delim rune) (*Records, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open csv: %w", err)
	}
	defer f.Close()

	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true
	r.Comma = delim

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("read header: %s is empty", path)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}
	rec := &Records{Name: path, Header: header}
	for {
		row, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, fmt.Errorf("read row %d: %w", len(rec.Rows)+2, err)
		}
		// Pad short rows so builders can index by header position.
		if len(row) < len(header) {
			tmp := make([]string, len(header))
			copy(tmp, row)
			row = tmp
		} else {
			cp := make([]string, len(row))
			copy(cp, row)
			row = cp
		}
		rec.Rows = append(rec.Rows, row)
	}
	return rec, nil
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}

// parseNumeric parses a numeric cell, accepting either decimal point or
// decimal comma. Instrument exports from localized software routinely mix
// the two within one batch.
func parseNumeric(s string) (float64, bool) {
	raw := strings.TrimSpace(s)
	if raw == "" {
		return 0, false
	}
	raw = strings.ReplaceAll(raw, " ", "")
	cpos := strings.LastIndex(raw, ",")
	dpos := strings.LastIndex(raw, ".")
	switch {
	case cpos >= 0 && dpos >= 0:
		if cpos > dpos { // 1.234,5
			raw = strings.ReplaceAll(raw, ".", "")
			raw = strings.ReplaceAll(raw, ",", ".")
		} else { // 1,234.5
			raw = strings.ReplaceAll(raw, ",", "")
		}
	case cpos >= 0:
		raw = strings.ReplaceAll(raw, ",", ".")
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
