package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Est.   Linear  METERS ", "est. linear meters"},
		{"Brand", "brand"},
		{"\tShelf\nLocation", "shelf location"},
		{"   ", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, Normalize(tt.input), "Normalize(%q)", tt.input)
	}
}

func TestDefaultVocabulary(t *testing.T) {
	v := Default()

	term, ok := v.HeaderTerm("  BRAND ")
	assert.True(t, ok)
	assert.Equal(t, "brand", term)
	_, ok = v.HeaderTerm("Store Number")
	assert.False(t, ok)
	_, ok = v.HeaderTerm("")
	assert.False(t, ok)

	assert.True(t, v.IsSKUIndicator("Facings"))
	assert.False(t, v.IsSKUIndicator("Shelf Location"))

	f, ok := v.ContextField("photo file name")
	assert.True(t, ok)
	assert.Equal(t, FieldPhoto, f)
	f, ok = v.ContextField("Est Linear Meters")
	assert.True(t, ok)
	assert.Equal(t, FieldLinearMeters, f)
	_, ok = v.ContextField("Brand")
	assert.False(t, ok)

	assert.Equal(t, "Est. Linear Meters", v.CanonicalColumn(FieldLinearMeters))
	assert.Equal(t, "Shelf Levels", v.CanonicalColumn(FieldShelfLevels))
	assert.Equal(t, 5, v.HeaderThreshold)
	assert.Equal(t, 30, v.HeaderScanRows)
	assert.Equal(t, 3, v.MinNonEmptyCells)
	assert.Equal(t, 10, v.SeparatorMinColumns)
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadRulesOverlaysDefaults(t *testing.T) {
	path := writeFile(t, "rules.yaml", `
header_threshold: 3
preferred_sheet: Audit
sku_indicator_columns: [product, ean]
context_columns:
  photo: [Picture]
  shelf_location: [Bay]
  linear_meters: [Meters]
  shelf_levels: [Shelves]
`)

	rules, err := LoadRules(path)
	require.NoError(t, err)
	assert.Equal(t, 3, rules.HeaderThreshold)
	assert.Equal(t, 30, rules.HeaderScanRows)
	assert.Equal(t, "Audit", rules.PreferredSheet)
	assert.Equal(t, DefaultRules().HeaderVocabulary, rules.HeaderVocabulary)

	v, err := rules.Compile()
	require.NoError(t, err)
	assert.True(t, v.IsSKUIndicator("EAN"))
	assert.False(t, v.IsSKUIndicator("Brand"))
	assert.Equal(t, "Picture", v.CanonicalColumn(FieldPhoto))
	_, ok := v.ContextField("Photo")
	assert.False(t, ok)
}

func TestLoadRulesErrors(t *testing.T) {
	_, err := LoadRules(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = LoadRules(writeFile(t, "bad.yaml", "header_threshold: [1, 2"))
	assert.Error(t, err)
}

func TestCompileRejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Rules)
	}{
		{"zero threshold", func(r *Rules) { r.HeaderThreshold = 0 }},
		{"no vocabulary", func(r *Rules) { r.HeaderVocabulary = nil }},
		{"blank vocabulary term", func(r *Rules) { r.HeaderVocabulary = []string{"brand", ""} }},
		{"no sku columns", func(r *Rules) { r.SKUIndicatorColumns = []string{} }},
		{"no photo column", func(r *Rules) { r.ContextColumns.Photo = nil }},
		{"narrow separators", func(r *Rules) { r.SeparatorMinColumns = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := DefaultRules()
			tt.mutate(&rules)
			_, err := rules.Compile()
			assert.Error(t, err)
		})
	}
}

func TestFieldString(t *testing.T) {
	assert.Equal(t, "shelf_location", FieldShelfLocation.String())
	assert.Equal(t, "field(9)", Field(9).String())
}
