package parser

import (
	"github.com/thedatashed/xlsxreader"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/models"
	"github.com/xuri/excelize/v2"
)

// ProbeSheets lists the sheets of a workbook with their populated row count and widest column.
// Rows are streamed, so the workbook model is never built.
func ProbeSheets(path string) ([]models.SheetSummary, error) {
	xl, err := xlsxreader.OpenFile(path)
	if err != nil {
		return nil, err
	}
	defer xl.Close()

	summaries := make([]models.SheetSummary, 0, len(xl.Sheets))
	for _, name := range xl.Sheets {
		summary := models.SheetSummary{Name: name}
		var readErr error
		// The channel must be drained even after an error.
		for row := range xl.ReadRows(name) {
			if row.Error != nil {
				if readErr == nil {
					readErr = row.Error
				}
				continue
			}
			if len(row.Cells) == 0 {
				continue
			}
			summary.RowCount++
			for _, cell := range row.Cells {
				col, err := excelize.ColumnNameToNumber(cell.Column)
				if err == nil && col > summary.ColumnCount {
					summary.ColumnCount = col
				}
			}
		}
		if readErr != nil {
			return nil, readErr
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
