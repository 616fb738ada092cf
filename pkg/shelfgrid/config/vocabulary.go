package config

import "fmt"

type set map[string]struct{}

func newSet(values []string) set {
	s := make(set, len(values))
	for _, v := range values {
		if n := Normalize(v); n != "" {
			s[n] = struct{}{}
		}
	}
	return s
}

func (s set) has(v string) bool {
	_, ok := s[v]
	return ok
}

// Vocabulary is the compiled, read-only form of Rules.
// It is safe for concurrent use.
type Vocabulary struct {
	header    set
	sku       set
	context   [numFields]set
	canonical [numFields]string

	HeaderThreshold     int
	HeaderScanRows      int
	MinNonEmptyCells    int
	SeparatorMinColumns int
	PreferredSheet      string
}

// Compile validates the rules and builds lookup sets.
func (r Rules) Compile() (*Vocabulary, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	v := &Vocabulary{
		header:              newSet(r.HeaderVocabulary),
		sku:                 newSet(r.SKUIndicatorColumns),
		HeaderThreshold:     r.HeaderThreshold,
		HeaderScanRows:      r.HeaderScanRows,
		MinNonEmptyCells:    r.MinNonEmptyCells,
		SeparatorMinColumns: r.SeparatorMinColumns,
		PreferredSheet:      r.PreferredSheet,
	}
	for _, f := range Fields {
		names := r.ContextColumns.names(f)
		v.context[f] = newSet(names)
		v.canonical[f] = names[0]
	}
	return v, nil
}

// Default returns the compiled built-in vocabulary.
func Default() *Vocabulary {
	v, err := DefaultRules().Compile()
	if err != nil {
		panic(fmt.Sprintf("config: default rules invalid: %v", err))
	}
	return v
}

// HeaderTerm reports whether the cell text is a vocabulary term and returns its normalized form.
func (v *Vocabulary) HeaderTerm(cell string) (string, bool) {
	n := Normalize(cell)
	if n == "" {
		return "", false
	}
	return n, v.header.has(n)
}

// IsSKUIndicator reports whether the column name marks product data.
func (v *Vocabulary) IsSKUIndicator(column string) bool {
	return v.sku.has(Normalize(column))
}

// ContextField returns the context field a column carries, if any.
func (v *Vocabulary) ContextField(column string) (Field, bool) {
	n := Normalize(column)
	for _, f := range Fields {
		if v.context[f].has(n) {
			return f, true
		}
	}
	return 0, false
}

// CanonicalColumn is the column name used for a field when the sheet has none.
func (v *Vocabulary) CanonicalColumn(f Field) string {
	return v.canonical[f]
}
