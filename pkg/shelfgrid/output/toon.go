package output

import (
	toon "github.com/mateuszkardas/toon-go"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/models"
)

// ToTOON serializes an extraction result as TOON. Rows become a column table
// (one value list per row, aligned with "columns") to keep the payload compact.
func ToTOON(result *models.ExtractionResult) (string, error) {
	return toon.Marshal(toonPayload(result), nil)
}

func toonPayload(result *models.ExtractionResult) map[string]interface{} {
	columns := append([]string(nil), result.Columns...)
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		seen[c] = true
	}
	for _, row := range result.Rows {
		for _, c := range row.Columns() {
			if !seen[c] {
				seen[c] = true
				columns = append(columns, c)
			}
		}
	}

	rows := make([]interface{}, 0, len(result.Rows))
	for _, row := range result.Rows {
		values := make([]interface{}, 0, len(columns)+1)
		values = append(values, row.Row())
		for _, c := range columns {
			v, _ := row.Value(c)
			values = append(values, v)
		}
		rows = append(rows, values)
	}

	sections := make([]interface{}, 0, len(result.Sections))
	for _, s := range result.Sections {
		sec := map[string]interface{}{
			"source":    string(s.Source),
			"start_row": s.StartRow,
			"end_row":   s.EndRow,
			"raw_text":  s.RawText,
		}
		if s.Photo != nil {
			sec["photo"] = *s.Photo
		}
		if s.ShelfLocation != nil {
			sec["shelf_location"] = *s.ShelfLocation
		}
		if s.LinearMeters != nil {
			sec["linear_meters"] = *s.LinearMeters
		}
		if s.ShelfLevelCount != nil {
			sec["shelf_level_count"] = *s.ShelfLevelCount
		}
		sections = append(sections, sec)
	}

	skipped := make([]interface{}, 0, len(result.Skipped))
	for _, s := range result.Skipped {
		skipped = append(skipped, map[string]interface{}{
			"row":    s.Row,
			"kind":   string(s.Kind),
			"reason": s.Reason,
		})
	}

	return map[string]interface{}{
		"source":            result.Source,
		"sheet":             result.SheetName,
		"header_row":        result.HeaderRow,
		"data_start_column": result.DataStartColumn,
		"last_row":          result.LastRow,
		"columns":           append([]string{"row"}, columns...),
		"rows":              rows,
		"sections":          sections,
		"skipped":           skipped,
		"warnings":          result.Warnings,
		"errors":            result.Errors,
	}
}
