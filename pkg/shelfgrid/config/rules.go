// Package config holds the static vocabulary and thresholds the extractor is
// built with, plus process settings for the command line and server.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"gopkg.in/yaml.v3"
)

// Field identifies one piece of section context metadata.
type Field int

const (
	FieldPhoto Field = iota
	FieldShelfLocation
	FieldLinearMeters
	FieldShelfLevels
	numFields
)

// Fields lists every context field in output order.
var Fields = []Field{FieldPhoto, FieldShelfLocation, FieldLinearMeters, FieldShelfLevels}

func (f Field) String() string {
	switch f {
	case FieldPhoto:
		return "photo"
	case FieldShelfLocation:
		return "shelf_location"
	case FieldLinearMeters:
		return "linear_meters"
	case FieldShelfLevels:
		return "shelf_levels"
	default:
		return fmt.Sprintf("field(%d)", int(f))
	}
}

// ContextColumns maps each context field to the header names that carry it.
// The first name of each list is the canonical column used when a sheet has no such column.
type ContextColumns struct {
	Photo         []string `yaml:"photo" validate:"required,min=1,dive,required"`
	ShelfLocation []string `yaml:"shelf_location" validate:"required,min=1,dive,required"`
	LinearMeters  []string `yaml:"linear_meters" validate:"required,min=1,dive,required"`
	ShelfLevels   []string `yaml:"shelf_levels" validate:"required,min=1,dive,required"`
}

func (c ContextColumns) names(f Field) []string {
	switch f {
	case FieldPhoto:
		return c.Photo
	case FieldShelfLocation:
		return c.ShelfLocation
	case FieldLinearMeters:
		return c.LinearMeters
	case FieldShelfLevels:
		return c.ShelfLevels
	}
	return nil
}

// Rules is the serializable form of the extractor configuration.
type Rules struct {
	// HeaderVocabulary is the set of recognized column header names (case-insensitive).
	HeaderVocabulary []string `yaml:"header_vocabulary" validate:"required,min=1,dive,required"`
	// SKUIndicatorColumns are columns whose presence marks a row as a product record.
	SKUIndicatorColumns []string `yaml:"sku_indicator_columns" validate:"required,min=1,dive,required"`
	// ContextColumns are columns carrying section metadata.
	ContextColumns ContextColumns `yaml:"context_columns"`
	// HeaderThreshold is the minimum vocabulary matches for a header row.
	HeaderThreshold int `yaml:"header_threshold" validate:"gte=1"`
	// HeaderScanRows bounds the header search window.
	HeaderScanRows int `yaml:"header_scan_rows" validate:"gte=1"`
	// MinNonEmptyCells is the sparsity cutoff for data rows.
	MinNonEmptyCells int `yaml:"min_non_empty_cells" validate:"gte=1"`
	// SeparatorMinColumns is the minimum column span of a separator merge.
	SeparatorMinColumns int `yaml:"separator_min_columns" validate:"gte=2"`
	// PreferredSheet is matched case-insensitively; empty means first sheet.
	PreferredSheet string `yaml:"preferred_sheet"`
}

// DefaultRules returns the built-in shelf-audit configuration.
func DefaultRules() Rules {
	return Rules{
		HeaderVocabulary: []string{
			"brand", "sub brand", "flavor", "flavour", "variant", "facings", "segment", "sub segment",
			"category", "manufacturer", "product", "product name", "description", "sku", "barcode", "ean",
			"pack size", "size", "pack type", "price", "rsp", "promo price", "promo", "promotion",
			"stock", "out of stock", "oos", "position", "shelf level", "notes", "comments",
			"photo", "photo file name", "location", "shelf location",
			"est. linear meters", "est linear meters", "linear meters", "shelf levels", "levels",
		},
		SKUIndicatorColumns: []string{"brand", "flavor", "flavour", "facings", "segment"},
		ContextColumns: ContextColumns{
			Photo:         []string{"Photo", "Photo File Name"},
			ShelfLocation: []string{"Shelf Location", "Location"},
			LinearMeters:  []string{"Est. Linear Meters", "Est Linear Meters", "Linear Meters"},
			ShelfLevels:   []string{"Shelf Levels", "Levels"},
		},
		HeaderThreshold:     5,
		HeaderScanRows:      30,
		MinNonEmptyCells:    3,
		SeparatorMinColumns: 10,
	}
}

// LoadRules reads a YAML rules file over the defaults. Keys absent from the file keep their default.
func LoadRules(path string) (Rules, error) {
	rules := DefaultRules()
	data, err := os.ReadFile(path)
	if err != nil {
		return rules, fmt.Errorf("read rules %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &rules); err != nil {
		return rules, fmt.Errorf("parse rules %s: %w", path, err)
	}
	return rules, nil
}

var validate = validator.New()

// Validate checks the rules for missing or out-of-range values.
func (r Rules) Validate() error {
	if err := validate.Struct(r); err != nil {
		return fmt.Errorf("invalid rules: %w", err)
	}
	return nil
}

// Normalize trims and case-folds a header or column name for comparison.
func Normalize(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	if s == "" {
		return ""
	}
	return cases.Fold().String(s)
}
