package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/config"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/models"
)

// RowKind is the outcome of classifying one physical row.
type RowKind int

const (
	RowData RowKind = iota
	RowSeparator
	RowRepeatedHeader
	RowTooSparse
	RowEmpty
	RowContextOnly
)

func (k RowKind) String() string {
	switch k {
	case RowData:
		return "data"
	case RowSeparator:
		return "separator"
	case RowRepeatedHeader:
		return "repeated_header"
	case RowTooSparse:
		return "too_sparse"
	case RowEmpty:
		return "empty"
	case RowContextOnly:
		return "context_only"
	default:
		return fmt.Sprintf("RowKind(%d)", int(k))
	}
}

// Decision is the classification of one row. Which fields are set depends on Kind.
type Decision struct {
	Kind RowKind
	Row  int

	// NonEmpty is the non-blank cell count from the data-start column (RowTooSparse).
	NonEmpty int
	// Missing and Added are the vocabulary terms that drifted from the first header (RowRepeatedHeader).
	Missing []string
	Added   []string
	// Context and ContextText describe the section a context-only row opens (RowContextOnly).
	Context     models.SectionFields
	ContextText string
	// Cells are the row's cells fitted to the column list (RowData).
	Cells []string
	// Warnings are field parse failures (RowContextOnly).
	Warnings []string
}

// Drifted reports whether a repeated header matched different terms than the first header.
func (d Decision) Drifted() bool {
	return len(d.Missing) > 0 || len(d.Added) > 0
}

// Skip converts a non-data decision into a skipped-row record.
func (d Decision) Skip() (models.SkippedRow, bool) {
	s := models.SkippedRow{Row: d.Row}
	switch d.Kind {
	case RowSeparator:
		s.Kind, s.Reason = models.SkipSeparator, "merged section separator"
	case RowRepeatedHeader:
		s.Kind, s.Reason = models.SkipRepeatedHeader, "repeated header row"
	case RowTooSparse:
		s.Kind, s.Reason = models.SkipTooSparse, fmt.Sprintf("too few non-empty cells (%d)", d.NonEmpty)
	case RowEmpty:
		s.Kind = models.SkipEmpty
	case RowContextOnly:
		s.Kind, s.Reason = models.SkipContextOnly, "context-only row (section metadata)"
	case RowData:
		return models.SkippedRow{}, false
	}
	return s, true
}

type contextColumn struct {
	index int
	name  string
	field config.Field
}

// Classifier decides, in priority order, what each row after the header is:
// separator, repeated header, too sparse (or empty), context-only, or data.
type Classifier struct {
	vocab      *config.Vocabulary
	header     Header
	width      int
	separators map[int]bool
	sku        []int
	context    []contextColumn
}

// NewClassifier prepares a classifier for one sheet.
func NewClassifier(vocab *config.Vocabulary, header Header, columns []string, separators []Separator) *Classifier {
	c := &Classifier{
		vocab:      vocab,
		header:     header,
		width:      len(columns),
		separators: separatorRows(separators),
	}
	for i, name := range columns {
		if vocab.IsSKUIndicator(name) {
			c.sku = append(c.sku, i)
		}
		if f, ok := vocab.ContextField(name); ok {
			c.context = append(c.context, contextColumn{index: i, name: name, field: f})
		}
	}
	return c
}

// Classify decides what physical row n is.
func (c *Classifier) Classify(n int, cells []string) Decision {
	if c.separators[n] {
		return Decision{Kind: RowSeparator, Row: n}
	}

	if m := MatchHeader(cells, c.vocab); m.Count >= c.vocab.HeaderThreshold {
		d := Decision{Kind: RowRepeatedHeader, Row: n}
		d.Missing, d.Added = termDrift(c.header.Terms, m.Terms)
		return d
	}

	data := tail(cells, c.header.DataStartColumn)
	if nonEmpty := countNonEmpty(data); nonEmpty < c.vocab.MinNonEmptyCells {
		if nonEmpty == 0 {
			return Decision{Kind: RowEmpty, Row: n}
		}
		return Decision{Kind: RowTooSparse, Row: n, NonEmpty: nonEmpty}
	}

	fitted := fitCells(data, c.width)
	if c.isContextOnly(fitted) {
		d := Decision{Kind: RowContextOnly, Row: n}
		d.Context, d.ContextText, d.Warnings = c.contextFields(fitted)
		return d
	}
	return Decision{Kind: RowData, Row: n, Cells: fitted}
}

func (c *Classifier) isContextOnly(cells []string) bool {
	for _, i := range c.sku {
		if !isBlank(cells[i]) {
			return false
		}
	}
	for _, col := range c.context {
		if !isBlank(cells[col.index]) {
			return true
		}
	}
	return false
}

// contextFields reads section metadata from the context columns of a row.
// When several columns carry the same field the first non-blank one wins.
func (c *Classifier) contextFields(cells []string) (models.SectionFields, string, []string) {
	var (
		fields   models.SectionFields
		parts    []string
		warnings []string
		set      = make(map[config.Field]bool)
	)
	for _, col := range c.context {
		value := strings.TrimSpace(cells[col.index])
		if value == "" {
			continue
		}
		parts = append(parts, col.name+": "+value)
		if set[col.field] {
			continue
		}
		set[col.field] = true
		if w := setField(&fields, col.field, value); w != "" {
			warnings = append(warnings, w)
		}
	}
	return fields, strings.Join(parts, " | "), warnings
}
