// Package fetcher parses the raw CSV and XLSX tables the pipeline ingests.
package fetcher

import (
	"encoding/csv"
	"io"
	"strings"

	"github.com/rotisserie/eris"
)

// CSVOptions configures the CSV parser.
type CSVOptions struct {
	Delimiter  rune // default ','
	Comment    rune // comment character (0 = none)
	LazyQuotes bool
	TrimSpace  bool
}

// Table is a parsed tabular source: a header row plus data rows addressable
// by column name.
type Table struct {
	Header []string
	Rows   [][]string

	colIdx map[string]int
}

// Col returns the index of a named column, or -1 when absent.
func (t *Table) Col(name string) int {
	if idx, ok := t.colIdx[name]; ok {
		return idx
	}
	return -1
}

// Cell returns row[col] for a named column, or "" when the column is absent
// or the row is short.
func (t *Table) Cell(row []string, name string) string {
	idx := t.Col(name)
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}

// ReadCSV parses a CSV source into a Table. The first record is taken as the
// header row; variable field counts are tolerated.
func ReadCSV(r io.Reader, opts CSVOptions) (*Table, error) {
	reader := csv.NewReader(r)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	if opts.Comment != 0 {
		reader.Comment = opts.Comment
	}
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1 // allow variable fields

	records, err := reader.ReadAll()
	if err != nil {
		return nil, eris.Wrap(err, "csv: read")
	}
	if len(records) == 0 {
		return nil, eris.New("csv: empty source")
	}

	if opts.TrimSpace {
		for _, rec := range records {
			for i, field := range rec {
				rec[i] = strings.TrimSpace(field)
			}
		}
	}

	return newTable(records[0], records[1:]), nil
}

func newTable(header []string, rows [][]string) *Table {
	colIdx := make(map[string]int, len(header))
	for i, name := range header {
		colIdx[strings.TrimSpace(name)] = i
	}
	return &Table{Header: header, Rows: rows, colIdx: colIdx}
}
