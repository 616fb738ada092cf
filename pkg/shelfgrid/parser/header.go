package parser

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/config"
)

// ErrNoHeaderRowFound indicates no row in the scan window matched the header vocabulary.
var ErrNoHeaderRowFound = errors.New("no header row found")

// HeaderMatch is the vocabulary match of one row.
type HeaderMatch struct {
	// Count is the number of cells whose text is a vocabulary term.
	Count int
	// FirstColumn is the zero-based offset of the first matching cell, -1 if none.
	FirstColumn int
	// Terms is the sorted set of matched normalized terms.
	Terms []string
}

// MatchHeader counts the vocabulary terms in a row.
func MatchHeader(cells []string, vocab *config.Vocabulary) HeaderMatch {
	m := HeaderMatch{FirstColumn: -1}
	seen := make(map[string]bool)
	for i, cell := range cells {
		term, ok := vocab.HeaderTerm(cell)
		if !ok {
			continue
		}
		m.Count++
		if m.FirstColumn < 0 {
			m.FirstColumn = i
		}
		if !seen[term] {
			seen[term] = true
			m.Terms = append(m.Terms, term)
		}
	}
	sort.Strings(m.Terms)
	return m
}

// Header is the located header row.
type Header struct {
	// Row is the physical header row (1-based).
	Row int
	// DataStartColumn is the zero-based column where data begins.
	DataStartColumn int
	// Terms is the set of vocabulary terms the header matched.
	Terms []string
}

// LocateHeader scans the first vocab.HeaderScanRows rows, skipping separators,
// and returns the first row with at least vocab.HeaderThreshold vocabulary matches.
func LocateHeader(g *Grid, vocab *config.Vocabulary, separators []Separator) (Header, error) {
	skip := separatorRows(separators)
	limit := min(vocab.HeaderScanRows, g.LastRow())
	for r := 1; r <= limit; r++ {
		if skip[r] {
			continue
		}
		m := MatchHeader(g.Row(r), vocab)
		if m.Count >= vocab.HeaderThreshold {
			return Header{Row: r, DataStartColumn: m.FirstColumn, Terms: m.Terms}, nil
		}
	}
	return Header{}, fmt.Errorf("%w in first %d rows", ErrNoHeaderRowFound, limit)
}

// ReadColumnNames reads header cells from start onward.
// Blank cells become "_unnamed_N" with N counting from 1.
func ReadColumnNames(cells []string, start int) []string {
	header := tail(cells, start)
	names := make([]string, 0, len(header))
	unnamed := 0
	for _, cell := range header {
		name := strings.TrimSpace(cell)
		if name == "" {
			unnamed++
			name = fmt.Sprintf("_unnamed_%d", unnamed)
		}
		names = append(names, name)
	}
	return names
}

// termDrift lists terms present in only one of two sorted term sets.
func termDrift(want, got []string) (missing, added []string) {
	in := func(set []string, t string) bool {
		i := sort.SearchStrings(set, t)
		return i < len(set) && set[i] == t
	}
	for _, t := range want {
		if !in(got, t) {
			missing = append(missing, t)
		}
	}
	for _, t := range got {
		if !in(want, t) {
			added = append(added, t)
		}
	}
	return missing, added
}
