package model

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// DataTable is an ordered sequence of numeric rows with a fixed column
// set. The column set is established at construction and never changes;
// rows are append-only. Row order is meaningful: it is the traversal
// order of the digitized curve and must not be re-sorted.
type DataTable struct {
	columns []string
	rows    [][]float64
}

// NewDataTable creates an empty table with the given column names.
func NewDataTable(columns ...string) *DataTable {
	return &DataTable{
		columns: append([]string(nil), columns...),
	}
}

// Columns returns the column names in their fixed order.
func (t *DataTable) Columns() []string {
	return append([]string(nil), t.columns...)
}

// Len returns the number of rows.
func (t *DataTable) Len() int {
	return len(t.rows)
}

// Append adds a row to the end of the table. The number of values must
// match the column count.
func (t *DataTable) Append(values ...float64) error {
	if len(values) != len(t.columns) {
		return fmt.Errorf("row has %d values, table has %d columns", len(values), len(t.columns))
	}
	t.rows = append(t.rows, append([]float64(nil), values...))
	return nil
}

// Row returns the values of the i-th row.
func (t *DataTable) Row(i int) []float64 {
	return append([]float64(nil), t.rows[i]...)
}

// Column returns all values of the named column in row order.
func (t *DataTable) Column(name string) ([]float64, error) {
	idx := -1
	for i, c := range t.columns {
		if c == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("no column %q in table", name)
	}

	values := make([]float64, len(t.rows))
	for i, row := range t.rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Get returns the value at row i, named column.
func (t *DataTable) Get(i int, name string) (float64, error) {
	if i < 0 || i >= len(t.rows) {
		return 0, fmt.Errorf("row index %d out of bounds", i)
	}
	for j, c := range t.columns {
		if c == name {
			return t.rows[i][j], nil
		}
	}
	return 0, fmt.Errorf("no column %q in table", name)
}

// WithColumn returns a new table with an additional column appended.
// The values slice must have one entry per existing row. The receiver is
// not modified.
func (t *DataTable) WithColumn(name string, values []float64) (*DataTable, error) {
	if len(values) != len(t.rows) {
		return nil, fmt.Errorf("column has %d values, table has %d rows", len(values), len(t.rows))
	}

	out := NewDataTable(append(t.Columns(), name)...)
	for i, row := range t.rows {
		out.rows = append(out.rows, append(append([]float64(nil), row...), values[i]))
	}
	return out, nil
}

// WriteCSV writes the table in CSV format with a header row. Values are
// formatted with the shortest representation that round-trips.
func (t *DataTable) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(t.columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(t.columns))
	for _, row := range t.rows {
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ToCSV returns the table in CSV format as a string.
func (t *DataTable) ToCSV() string {
	var sb strings.Builder
	// strings.Builder writes never fail
	_ = t.WriteCSV(&sb)
	return sb.String()
}
