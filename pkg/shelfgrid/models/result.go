package models

// SkipKind classifies why a physical row did not produce a data row.
type SkipKind string

const (
	SkipSeparator      SkipKind = "separator"
	SkipRepeatedHeader SkipKind = "repeated_header"
	SkipTooSparse      SkipKind = "too_sparse"
	SkipEmpty          SkipKind = "empty"
	SkipContextOnly    SkipKind = "context_only"
)

// SkippedRow records a physical row excluded from the output rows.
type SkippedRow struct {
	// Row is the physical row number (1-based).
	Row int `json:"row"`
	// Kind is the machine-readable skip category.
	Kind SkipKind `json:"kind"`
	// Reason is the human-readable reason. Empty rows carry no reason.
	Reason string `json:"reason,omitempty"`
}

// ExtractionResult is the outcome of one extraction call over a single worksheet.
type ExtractionResult struct {
	// Source is the workbook file name (no path).
	Source string `json:"source"`
	// SheetName is the worksheet that was read.
	SheetName string `json:"sheet_name"`
	// HeaderRow is the detected header row (1-based, 0 if none).
	HeaderRow int `json:"header_row"`
	// DataStartColumn is the zero-based column offset where data begins.
	DataStartColumn int `json:"data_start_column"`
	// LastRow is the last physical row of the sheet.
	LastRow int `json:"last_row"`
	// DataRange is the A1 range from the header row to the last row.
	DataRange string `json:"data_range,omitempty"`
	// Columns is the authoritative column-name list read from the header row.
	Columns []string `json:"columns"`
	// Rows contains the accepted data rows in physical order.
	Rows []RawRow `json:"rows"`
	// Sections contains the sections sorted by start row.
	Sections []Section `json:"sections"`
	// Skipped lists every row after the header that did not become a data row.
	Skipped []SkippedRow `json:"skipped"`
	// Warnings holds non-fatal findings such as schema drift.
	Warnings []string `json:"warnings,omitempty"`
	// Errors holds fatal error messages.
	Errors []string `json:"errors,omitempty"`
}

// SheetSummary describes one worksheet for probing.
type SheetSummary struct {
	// Name is the worksheet name.
	Name string `json:"name"`
	// RowCount is the number of populated rows.
	RowCount int `json:"row_count"`
	// ColumnCount is the widest populated row.
	ColumnCount int `json:"column_count"`
}
