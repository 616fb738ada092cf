package parser

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// DataRange returns the range (e.g. "F2:AB40") covering the header row through the
// last row, from the zero-based data-start column across width columns.
func DataRange(headerRow, dataStart, width, lastRow int) string {
	if headerRow < 1 || width < 1 || lastRow < headerRow {
		return ""
	}
	startCell, err := excelize.CoordinatesToCellName(dataStart+1, headerRow)
	if err != nil {
		return ""
	}
	endCell, err := excelize.CoordinatesToCellName(dataStart+width, lastRow)
	if err != nil {
		return ""
	}
	return fmt.Sprintf("%s:%s", startCell, endCell)
}
