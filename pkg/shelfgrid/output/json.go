// Package output serializes extraction results.
package output

import (
	"encoding/json"

	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/models"
)

// ToJSON serializes an extraction result.
func ToJSON(result *models.ExtractionResult, pretty bool) ([]byte, error) {
	return marshal(result, pretty)
}

// SheetsToJSON serializes a sheet probe.
func SheetsToJSON(sheets []models.SheetSummary, pretty bool) ([]byte, error) {
	return marshal(sheets, pretty)
}

func marshal(v any, pretty bool) ([]byte, error) {
	if pretty {
		return json.MarshalIndent(v, "", "  ")
	}
	return json.Marshal(v)
}
