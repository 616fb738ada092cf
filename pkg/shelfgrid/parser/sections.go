package parser

import (
	"sort"

	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/config"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/models"
)

// SectionTracker keeps the sections of a sheet ordered by start row.
//
// Separator sections start on the row after their separator, but never before
// firstRow; context sections start on the context row itself. A section ends on
// the row before the next section's anchor row, and the last section ends on
// the sheet's last row.
type SectionTracker struct {
	sections []models.Section
	firstRow int
	lastRow  int
}

// NewSectionTracker creates an empty tracker for the data rows firstRow..lastRow.
func NewSectionTracker(firstRow, lastRow int) *SectionTracker {
	return &SectionTracker{firstRow: firstRow, lastRow: lastRow}
}

// AddSeparators parses every separator into a section and returns the parse warnings.
func (t *SectionTracker) AddSeparators(seps []Separator) []string {
	var warnings []string
	for i, sep := range seps {
		end := t.lastRow
		if i+1 < len(seps) {
			end = seps[i+1].Row - 1
		}
		fields, w := ParseSectionText(sep.Text)
		warnings = append(warnings, w...)
		t.insert(models.Section{
			SectionFields: fields,
			RawText:       sep.Text,
			StartRow:      max(sep.Row+1, t.firstRow),
			EndRow:        end,
			Source:        models.SourceSeparator,
			AnchorRow:     sep.Row,
		})
	}
	return warnings
}

// AddContext records a section opened by a context-only row.
func (t *SectionTracker) AddContext(row int, fields models.SectionFields, rawText string) {
	t.insert(models.Section{
		SectionFields: fields,
		RawText:       rawText,
		StartRow:      row,
		Source:        models.SourceContext,
		AnchorRow:     row,
	})
}

// insert places s after every section starting at or before it.
func (t *SectionTracker) insert(s models.Section) {
	i := sort.Search(len(t.sections), func(i int) bool {
		return t.sections[i].StartRow > s.StartRow
	})
	t.sections = append(t.sections, models.Section{})
	copy(t.sections[i+1:], t.sections[i:])
	t.sections[i] = s
}

// Owner returns the last section starting at or before row.
func (t *SectionTracker) Owner(row int) (models.Section, bool) {
	i := sort.Search(len(t.sections), func(i int) bool {
		return t.sections[i].StartRow > row
	})
	if i == 0 {
		return models.Section{}, false
	}
	return t.sections[i-1], true
}

// Sections returns the sections with their end rows resolved.
func (t *SectionTracker) Sections() []models.Section {
	out := make([]models.Section, len(t.sections))
	for i, s := range t.sections {
		s.EndRow = t.lastRow
		if i+1 < len(t.sections) {
			s.EndRow = t.sections[i+1].AnchorRow - 1
		}
		out[i] = s
	}
	return out
}

// RowBuilder turns fitted data cells into immutable rows, filling blank
// context fields from the owning section.
type RowBuilder struct {
	columns []string
	fields  map[config.Field]int
	vocab   *config.Vocabulary
}

// NewRowBuilder indexes the context columns of the column list.
func NewRowBuilder(columns []string, vocab *config.Vocabulary) *RowBuilder {
	b := &RowBuilder{columns: columns, fields: make(map[config.Field]int), vocab: vocab}
	for i, name := range columns {
		if f, ok := vocab.ContextField(name); ok {
			if _, seen := b.fields[f]; !seen {
				b.fields[f] = i
			}
		}
	}
	return b
}

// Build creates the row for physical row n. A populated cell is never overwritten;
// when the sheet has no column for a field, the section value is added under the
// field's canonical column name.
func (b *RowBuilder) Build(n int, cells []string, owner *models.Section) models.RawRow {
	values := make(map[string]any, len(b.columns))
	for i, name := range b.columns {
		v := CellValue(cells[i])
		if prev, dup := values[name]; dup && prev != nil {
			continue
		}
		values[name] = v
	}
	if owner == nil {
		return models.NewRawRow(n, b.columns, values)
	}

	var extra []string
	for _, f := range config.Fields {
		v, ok := sectionValue(owner.SectionFields, f)
		if !ok {
			continue
		}
		name := b.vocab.CanonicalColumn(f)
		if i, ok := b.fields[f]; ok {
			name = b.columns[i]
		} else if _, exists := values[name]; !exists {
			extra = append(extra, name)
		}
		if values[name] == nil {
			values[name] = v
		}
	}
	return models.NewRawRow(n, b.columns, values, extra...)
}

func sectionValue(s models.SectionFields, f config.Field) (any, bool) {
	switch f {
	case config.FieldPhoto:
		if s.Photo != nil {
			return *s.Photo, true
		}
	case config.FieldShelfLocation:
		if s.ShelfLocation != nil {
			return *s.ShelfLocation, true
		}
	case config.FieldLinearMeters:
		if s.LinearMeters != nil {
			return *s.LinearMeters, true
		}
	case config.FieldShelfLevels:
		if s.ShelfLevelCount != nil {
			return *s.ShelfLevelCount, true
		}
	}
	return nil, false
}
