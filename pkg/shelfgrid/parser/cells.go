package parser

import (
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Grid is a fully resident worksheet: one string slice per physical row.
type Grid struct {
	rows    [][]string
	lastRow int
}

// ReadGrid loads every row of a sheet.
func ReadGrid(f *excelize.File, sheetName string) (*Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}
	return NewGrid(rows), nil
}

// NewGrid wraps rows (index 0 is physical row 1).
func NewGrid(rows [][]string) *Grid {
	return &Grid{rows: rows, lastRow: len(rows)}
}

// Row returns the cells of a 1-based physical row, nil when the row is blank or out of range.
func (g *Grid) Row(n int) []string {
	if n < 1 || n > len(g.rows) {
		return nil
	}
	return g.rows[n-1]
}

// LastRow is the last physical row of the sheet.
func (g *Grid) LastRow() int {
	return g.lastRow
}

// Extend makes sure row n is counted as part of the sheet.
func (g *Grid) Extend(n int) {
	if n > g.lastRow {
		g.lastRow = n
	}
}

// isBlank reports whether a cell carries no content.
func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// countNonEmpty counts non-blank cells.
func countNonEmpty(cells []string) int {
	n := 0
	for _, c := range cells {
		if !isBlank(c) {
			n++
		}
	}
	return n
}

// fitCells returns exactly width cells: truncated, or padded with blanks.
func fitCells(cells []string, width int) []string {
	out := make([]string, width)
	copy(out, cells)
	return out
}

// tail returns the cells from offset onward.
func tail(cells []string, offset int) []string {
	if offset >= len(cells) {
		return nil
	}
	return cells[offset:]
}

// CellValue converts cell text to a raw value.
// Blank cells are nil; plain integers become int64 and plain decimals float64.
// Anything else, including zero-padded codes, stays a trimmed string.
func CellValue(s string) any {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if !isPlainNumber(s) {
		return s
	}
	if !strings.Contains(s, ".") {
		// Integers too wide for int64 stay text rather than lose digits as floats.
		if i, err := strconv.ParseInt(s, 10, 64); err == nil && strconv.FormatInt(i, 10) == s {
			return i
		}
		return s
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return f
	}
	return s
}

// isPlainNumber accepts an optional sign, digits and at most one decimal point.
// Leading zeros before another digit are rejected so codes keep their padding.
func isPlainNumber(s string) bool {
	if s[0] == '-' || s[0] == '+' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	digits, dots := 0, 0
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			digits++
		case c == '.':
			dots++
		default:
			return false
		}
	}
	if digits == 0 || dots > 1 {
		return false
	}
	if len(s) > 1 && s[0] == '0' && s[1] != '.' {
		return false
	}
	return true
}
