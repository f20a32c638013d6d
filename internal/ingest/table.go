package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Kind is the inferred type of a cell.
type Kind int

const (
	KindNull Kind = iota
	KindNumber
	KindText
)

// numericCell matches cells that are numbers in their entirety: optional sign,
// digits with an optional fraction, optional exponent, surrounding blanks.
var numericCell = regexp.MustCompile(`^\s*-?(\d+\.?|\.\d+|\d+\.\d+)([eE][-+]?\d+)?\s*$`)

// Value is a typed cell. The raw text is always kept.
type Value struct {
	kind Kind
	num  float64
	text string
}

// ParseValue infers the type of a raw cell: empty is null, a cell that is
// numeric as a whole is a number, anything else is text.
func ParseValue(s string) Value {
	if s == "" {
		return Value{kind: KindNull}
	}
	if numericCell.MatchString(s) {
		// out-of-range numbers stay text so every number is finite
		if f, err := strconv.ParseFloat(strings.TrimSpace(s), 64); err == nil {
			return Value{kind: KindNumber, num: f, text: s}
		}
	}
	return Value{kind: KindText, text: s}
}

func (v Value) Kind() Kind   { return v.kind }
func (v Value) IsNull() bool { return v.kind == KindNull }

// Float returns the number held by a numeric cell.
func (v Value) Float() (float64, bool) {
	return v.num, v.kind == KindNumber
}

// String returns the cell text as it appeared in the extract.
func (v Value) String() string { return v.text }

// Record is one data row keyed by column header.
type Record struct {
	Line   int
	values map[string]Value
}

// NewRecord builds a record from header -> raw cell pairs.
func NewRecord(line int, cells map[string]string) Record {
	r := Record{Line: line, values: make(map[string]Value, len(cells))}
	for k, v := range cells {
		r.values[k] = ParseValue(v)
	}
	return r
}

// Get returns the cell under column. Missing columns read as null.
func (r Record) Get(column string) Value {
	return r.values[column]
}

// Has reports whether the row carried a cell for column.
func (r Record) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

// Table is a parsed extract.
type Table struct {
	Name    string
	Headers []string
	Records []Record
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// ParseTable reads a CSV extract. The first row is the header; an empty header
// is kept as the "" column. Blank lines are skipped. Rows shorter than the
// header simply lack the trailing columns.
func ParseTable(name string, r io.Reader) (*Table, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	table := &Table{Name: name}

	header, err := reader.Read()
	if err == io.EOF {
		return table, nil
	}
	if err != nil {
		return nil, newParseError(name, err)
	}
	table.Headers = header

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, newParseError(name, err)
		}
		line, _ := reader.FieldPos(0)

		cells := make(map[string]string, len(header))
		for i, col := range header {
			if i >= len(record) {
				break
			}
			cells[col] = record[i]
		}
		table.Records = append(table.Records, NewRecord(line, cells))
	}

	return table, nil
}

func newParseError(name string, err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Extract: name, Row: csvErr.Line, Err: csvErr.Err}
	}
	return &ParseError{Extract: name, Err: fmt.Errorf("failed to read CSV: %w", err)}
}
