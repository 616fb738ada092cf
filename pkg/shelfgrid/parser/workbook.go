// Package parser infers the structure of shelf-audit worksheets: separators,
// header, column names, sections and per-row classification.
package parser

import (
	"errors"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrNoSheets indicates a workbook without worksheets.
var ErrNoSheets = errors.New("workbook has no sheets")

// OpenWorkbook opens a workbook from disk.
func OpenWorkbook(path string) (*excelize.File, error) {
	return excelize.OpenFile(path)
}

// OpenWorkbookReader opens a workbook from a stream.
func OpenWorkbookReader(r io.Reader) (*excelize.File, error) {
	return excelize.OpenReader(r)
}

// SelectSheet picks the sheet whose name equals preferred (case-insensitive), else the first sheet.
func SelectSheet(f *excelize.File, preferred string) (string, error) {
	return selectSheet(f.GetSheetList(), preferred)
}

func selectSheet(names []string, preferred string) (string, error) {
	if len(names) == 0 {
		return "", ErrNoSheets
	}
	if preferred = strings.TrimSpace(preferred); preferred != "" {
		for _, name := range names {
			if strings.EqualFold(name, preferred) {
				return name, nil
			}
		}
	}
	return names[0], nil
}
