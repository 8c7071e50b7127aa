package tabular

import (
	"fmt"
	"strconv"
	"strings"
)

// naValues mirror the default missing-value markers of common dataframe readers.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

func IsNull(cell string) bool {
	_, ok := naValues[strings.TrimSpace(cell)]
	return ok
}

type Table struct {
	Columns []string
	Rows    []Row
}

// Row is one data record keyed by column name.
type Row struct {
	line  int
	cells map[string]string
}

func NewRow(line int, cells map[string]string) Row {
	return Row{line: line, cells: cells}
}

// Line is the 1-based position of the record in the source file, header included.
func (r Row) Line() int {
	return r.line
}

// Has reports structural presence of the column, regardless of its content.
func (r Row) Has(column string) bool {
	_, ok := r.cells[column]
	return ok
}

// Raw returns the cell exactly as it appears in the file; ok is false for
// absent or null cells.
func (r Row) Raw(column string) (string, bool) {
	cell, ok := r.cells[column]
	if !ok || IsNull(cell) {
		return "", false
	}
	return cell, true
}

// Value is Raw with surrounding whitespace removed.
func (r Row) Value(column string) (string, bool) {
	cell, ok := r.Raw(column)
	if !ok {
		return "", false
	}
	return strings.TrimSpace(cell), true
}

// Optional is Value as a pointer, nil for null cells.
func (r Row) Optional(column string) *string {
	v, ok := r.Value(column)
	if !ok {
		return nil
	}
	return &v
}

// Missing lists the columns absent from the row, in the order they were asked for.
func (r Row) Missing(columns ...string) []string {
	var missing []string
	for _, column := range columns {
		if !r.Has(column) {
			missing = append(missing, column)
		}
	}
	return missing
}

type record struct {
	line  int
	cells []string
}

// newTable turns raw records into a table. The first record is the header,
// its names are kept verbatim.
// In strict mode a data record wider than the header is an error, otherwise
// the header is widened with unnamed columns.
func newTable(records []record, strict bool) (*Table, error) {
	if len(records) == 0 {
		return nil, ErrEmptyFile
	}

	header := records[0].cells
	width := len(header)
	for _, rec := range records[1:] {
		if len(rec.cells) <= width {
			continue
		}
		if strict {
			return nil, fmt.Errorf("line %d: expected %d fields, saw %d", rec.line, len(header), len(rec.cells))
		}
		width = len(rec.cells)
	}

	columns := headerColumns(header, width)
	table := &Table{Columns: columns}
	for _, rec := range records[1:] {
		if blankRecord(rec.cells) {
			continue
		}
		cells := make(map[string]string, len(columns))
		for i, column := range columns {
			if i < len(rec.cells) {
				cells[column] = rec.cells[i]
			} else {
				cells[column] = ""
			}
		}
		table.Rows = append(table.Rows, Row{line: rec.line, cells: cells})
	}

	if len(table.Rows) == 0 {
		return nil, ErrEmptyFile
	}
	return table, nil
}

func headerColumns(header []string, width int) []string {
	columns := make([]string, width)
	seen := make(map[string]bool, width)
	suffixes := make(map[string]int)
	for i := 0; i < width; i++ {
		name := ""
		if i < len(header) {
			name = header[i]
		}
		if strings.TrimSpace(name) == "" {
			name = "Unnamed: " + strconv.Itoa(i)
		}
		if seen[name] {
			base := name
			for seen[name] {
				suffixes[base]++
				name = base + "." + strconv.Itoa(suffixes[base])
			}
		}
		seen[name] = true
		columns[i] = name
	}
	return columns
}

func blankRecord(cells []string) bool {
	for _, cell := range cells {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
