// Package testkit builds workbook fixtures for tests.
package testkit

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Sheet describes one worksheet of a fixture workbook.
type Sheet struct {
	Name string
	// Rows holds cell values from column A; index 0 is row 1. Nil values and nil rows stay blank.
	Rows [][]any
	// Merges are ranges such as "A1:W1". The top-left value comes from Rows.
	Merges []string
}

// HeaderRow is a header matching the default vocabulary nine times.
var HeaderRow = []any{"Brand", "Flavor", "Facings", "Segment", "Product", "Price", "Photo", "Shelf Location", "Notes"}

// Offset prefixes n blank cells to values.
func Offset(n int, values ...any) []any {
	return append(make([]any, n), values...)
}

// WriteWorkbook saves the sheets to a temporary .xlsx file and returns its path.
func WriteWorkbook(t testing.TB, sheets ...Sheet) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	for i, sheet := range sheets {
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet.Name); err != nil {
				t.Fatalf("rename sheet: %v", err)
			}
		} else if _, err := f.NewSheet(sheet.Name); err != nil {
			t.Fatalf("new sheet %q: %v", sheet.Name, err)
		}

		for r, row := range sheet.Rows {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				if err != nil {
					t.Fatalf("cell name: %v", err)
				}
				if err := f.SetCellValue(sheet.Name, cell, v); err != nil {
					t.Fatalf("set %s!%s: %v", sheet.Name, cell, err)
				}
			}
		}
		for _, ref := range sheet.Merges {
			start, end, ok := strings.Cut(ref, ":")
			if !ok {
				t.Fatalf("bad merge range %q", ref)
			}
			if err := f.MergeCell(sheet.Name, start, end); err != nil {
				t.Fatalf("merge %s: %v", ref, err)
			}
		}
	}

	path := filepath.Join(t.TempDir(), "fixture.xlsx")
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("Failed to save test file: %v", err)
	}
	return path
}

// Open opens a fixture and closes it when the test ends.
func Open(t testing.TB, path string) *excelize.File {
	t.Helper()
	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("Failed to open test file: %v", err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}
