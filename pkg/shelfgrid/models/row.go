package models

import (
	"bytes"
	"encoding/json"
)

// RawRow is one accepted data row: column name to raw cell value.
// A RawRow is immutable once built; accessors return copies.
type RawRow struct {
	row     int
	columns []string
	values  map[string]any
}

// NewRawRow builds a row from its physical row number, the column order and the values.
// Columns present in values but missing from columns are appended in the order given by extra.
func NewRawRow(row int, columns []string, values map[string]any, extra ...string) RawRow {
	cols := make([]string, 0, len(columns)+len(extra))
	seen := make(map[string]bool, len(columns)+len(extra))
	for _, c := range append(append([]string(nil), columns...), extra...) {
		if seen[c] {
			continue
		}
		seen[c] = true
		cols = append(cols, c)
	}
	vals := make(map[string]any, len(values))
	for k, v := range values {
		vals[k] = v
	}
	return RawRow{row: row, columns: cols, values: vals}
}

// Row returns the originating physical row number (1-based).
func (r RawRow) Row() int { return r.row }

// Columns returns the column names in output order.
func (r RawRow) Columns() []string {
	return append([]string(nil), r.columns...)
}

// Value returns the raw value for a column. Blank cells are nil.
func (r RawRow) Value(column string) (any, bool) {
	v, ok := r.values[column]
	return v, ok
}

// Values returns a copy of the column to value mapping.
func (r RawRow) Values() map[string]any {
	out := make(map[string]any, len(r.values))
	for k, v := range r.values {
		out[k] = v
	}
	return out
}

// MarshalJSON writes the row as {"row": n, "values": {...}} keeping column order.
func (r RawRow) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`{"row":`)
	rowJSON, err := json.Marshal(r.row)
	if err != nil {
		return nil, err
	}
	buf.Write(rowJSON)
	buf.WriteString(`,"values":{`)
	for i, c := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[c])
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteString("}}")
	return buf.Bytes(), nil
}
