package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/config"
)

var headerCells = []string{"Brand", "Flavor", "Facings", "Segment", "Product", "Price", "Photo", "Shelf Location", "Notes"}

func offset(n int, cells ...string) []string {
	return append(make([]string, n), cells...)
}

func TestMatchHeader(t *testing.T) {
	vocab := config.Default()

	m := MatchHeader([]string{"", "  BRAND ", "flavor", "Colour", "Facings", "brand"}, vocab)
	assert.Equal(t, 4, m.Count)
	assert.Equal(t, 1, m.FirstColumn)
	assert.Equal(t, []string{"brand", "facings", "flavor"}, m.Terms)

	m = MatchHeader([]string{"Store 12", "2024-05-01"}, vocab)
	assert.Equal(t, 0, m.Count)
	assert.Equal(t, -1, m.FirstColumn)
	assert.Empty(t, m.Terms)
}

func TestLocateHeaderFlat(t *testing.T) {
	g := NewGrid([][]string{
		headerCells,
		{"Coca-Cola", "Cherry", "4", "Soft Drinks"},
	})

	h, err := LocateHeader(g, config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, 1, h.Row)
	assert.Equal(t, 0, h.DataStartColumn)
	assert.Len(t, h.Terms, 9)
}

func TestLocateHeaderOffset(t *testing.T) {
	g := NewGrid([][]string{
		{"Store audit - week 12"},
		{"Auditor:", "J. Smith"},
		offset(5, headerCells...),
	})

	h, err := LocateHeader(g, config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, 3, h.Row)
	assert.Equal(t, 5, h.DataStartColumn)
}

func TestLocateHeaderThreshold(t *testing.T) {
	g := NewGrid([][]string{
		{"Brand", "Flavor", "Facings", "Segment", "Store"},
		{"Brand", "Flavor", "Facings", "Segment", "Price"},
	})

	h, err := LocateHeader(g, config.Default(), nil)
	require.NoError(t, err)
	assert.Equal(t, 2, h.Row)
}

func TestLocateHeaderSkipsSeparators(t *testing.T) {
	g := NewGrid([][]string{
		headerCells,
		offset(2, headerCells...),
	})

	h, err := LocateHeader(g, config.Default(), []Separator{{Row: 1}})
	require.NoError(t, err)
	assert.Equal(t, 2, h.Row)
	assert.Equal(t, 2, h.DataStartColumn)
}

func TestLocateHeaderNotFound(t *testing.T) {
	rows := make([][]string, 31)
	rows[30] = headerCells
	g := NewGrid(rows)

	_, err := LocateHeader(g, config.Default(), nil)
	assert.ErrorIs(t, err, ErrNoHeaderRowFound)

	_, err = LocateHeader(NewGrid(nil), config.Default(), nil)
	assert.ErrorIs(t, err, ErrNoHeaderRowFound)
}

func TestReadColumnNames(t *testing.T) {
	names := ReadColumnNames([]string{"x", "", "Brand", " Flavor ", "", "Facings", "  "}, 2)
	assert.Equal(t, []string{"Brand", "Flavor", "_unnamed_1", "Facings", "_unnamed_2"}, names)

	assert.Empty(t, ReadColumnNames([]string{"Brand"}, 3))
}

func TestTermDrift(t *testing.T) {
	missing, added := termDrift([]string{"brand", "flavor", "photo"}, []string{"barcode", "brand", "flavor"})
	assert.Equal(t, []string{"photo"}, missing)
	assert.Equal(t, []string{"barcode"}, added)

	missing, added = termDrift([]string{"brand"}, []string{"brand"})
	assert.Empty(t, missing)
	assert.Empty(t, added)
}
