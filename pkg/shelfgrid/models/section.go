// Package models defines data structures produced by shelf-audit extraction.
package models

// SectionSource tells where a section's metadata came from.
type SectionSource string

const (
	// SourceSeparator marks a section derived from a wide merged separator row.
	SourceSeparator SectionSource = "separator"
	// SourceContext marks a section derived from a context-only row.
	SourceContext SectionSource = "context"
)

// SectionFields holds the context metadata a section carries.
// Nil pointers mean the value was absent or could not be parsed.
type SectionFields struct {
	// Photo is the photo reference (file name) for the section.
	Photo *string `json:"photo,omitempty"`
	// ShelfLocation is the free-text shelf location.
	ShelfLocation *string `json:"shelf_location,omitempty"`
	// LinearMeters is the estimated linear meters of shelf.
	LinearMeters *float64 `json:"linear_meters,omitempty"`
	// ShelfLevelCount is the number of shelf levels.
	ShelfLevelCount *int `json:"shelf_level_count,omitempty"`
}

// IsEmpty reports whether no field is set.
func (f SectionFields) IsEmpty() bool {
	return f.Photo == nil && f.ShelfLocation == nil && f.LinearMeters == nil && f.ShelfLevelCount == nil
}

// Section is a contiguous run of physical rows sharing one set of context metadata.
type Section struct {
	SectionFields
	// RawText is the text the section was parsed from.
	RawText string `json:"raw_text"`
	// StartRow is the first row owned by the section (1-based).
	StartRow int `json:"start_row"`
	// EndRow is the last row owned by the section (1-based, inclusive).
	EndRow int `json:"end_row"`
	// Source is the kind of row the section was derived from.
	Source SectionSource `json:"source"`
	// AnchorRow is the separator row or the context row the section came from.
	AnchorRow int `json:"anchor_row"`
}
