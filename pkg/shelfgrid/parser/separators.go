package parser

import (
	"sort"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Separator is a wide single-row merged range dividing the sheet into sections.
type Separator struct {
	// Row is the physical row of the merge (1-based).
	Row int
	// Text is the value of the merge's top-left cell.
	Text string
	// FirstCol and LastCol are the 1-based column bounds.
	FirstCol int
	LastCol  int
}

// DetectSeparators returns the sheet's separator merges ordered by row.
// A merge qualifies when it spans at least minColumns columns and exactly one row.
func DetectSeparators(f *excelize.File, sheetName string, minColumns int) ([]Separator, error) {
	merged, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, err
	}

	var seps []Separator
	for _, mc := range merged {
		sep, ok := separatorFromRange(mc.GetStartAxis(), mc.GetEndAxis(), mc.GetCellValue(), minColumns)
		if ok {
			seps = append(seps, sep)
		}
	}
	return orderSeparators(seps), nil
}

// separatorFromRange checks a merge given as start/end cell names.
func separatorFromRange(start, end, text string, minColumns int) (Separator, bool) {
	c1, r1, err := excelize.CellNameToCoordinates(start)
	if err != nil {
		return Separator{}, false
	}
	c2, r2, err := excelize.CellNameToCoordinates(end)
	if err != nil {
		return Separator{}, false
	}
	if c2 < c1 {
		c1, c2 = c2, c1
	}
	if r1 != r2 || c2-c1+1 < minColumns {
		return Separator{}, false
	}
	return Separator{Row: r1, Text: strings.TrimSpace(text), FirstCol: c1, LastCol: c2}, true
}

// orderSeparators sorts by row then column and keeps one separator per row.
func orderSeparators(seps []Separator) []Separator {
	sort.SliceStable(seps, func(i, j int) bool {
		if seps[i].Row != seps[j].Row {
			return seps[i].Row < seps[j].Row
		}
		return seps[i].FirstCol < seps[j].FirstCol
	})
	out := seps[:0]
	for _, s := range seps {
		if len(out) > 0 && out[len(out)-1].Row == s.Row {
			continue
		}
		out = append(out, s)
	}
	return out
}

// separatorRows indexes separators by row.
func separatorRows(seps []Separator) map[int]bool {
	rows := make(map[int]bool, len(seps))
	for _, s := range seps {
		rows[s.Row] = true
	}
	return rows
}
