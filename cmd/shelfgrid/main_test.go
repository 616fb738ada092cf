package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
	"github.com/ukaji3/shelfgrid-go/internal/testkit"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/models"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--log-level", "error"))
	err := cmd.Execute()
	return out.String(), err
}

func auditFixture(t *testing.T) string {
	return testkit.WriteWorkbook(t, testkit.Sheet{
		Name: "Audit",
		Rows: [][]any{
			testkit.HeaderRow,
			{"Coca-Cola", "Original", 4, "Cola"},
		},
	})
}

func TestExtractCommandWritesOutput(t *testing.T) {
	out := filepath.Join(t.TempDir(), "result.json")

	_, err := execute(t, "extract", auditFixture(t), "-o", out)
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, "Audit", gjson.GetBytes(data, "sheet_name").String())
	assert.Equal(t, "Coca-Cola", gjson.GetBytes(data, "rows.0.values.Brand").String())
}

func TestExtractCommandTOON(t *testing.T) {
	stdout, err := execute(t, "extract", auditFixture(t), "--format", "toon")
	require.NoError(t, err)
	assert.Contains(t, stdout, "header_row")
	assert.Contains(t, stdout, "Coca-Cola")
}

func TestExtractCommandErrors(t *testing.T) {
	_, err := execute(t, "extract", filepath.Join(t.TempDir(), "missing.xlsx"))
	assert.ErrorContains(t, err, "file not found")

	_, err = execute(t, "extract", auditFixture(t), "--format", "csv")
	assert.ErrorContains(t, err, "invalid format")

	_, err = execute(t, "extract", auditFixture(t), "--log-format", "xml")
	assert.Error(t, err)
}

func TestExtractCommandNoHeaderStillWritesResult(t *testing.T) {
	path := testkit.WriteWorkbook(t, testkit.Sheet{Name: "Audit", Rows: [][]any{{"no", "header"}}})
	out := filepath.Join(t.TempDir(), "result.json")

	_, err := execute(t, "extract", path, "-o", out)
	require.ErrorIs(t, err, shelfgrid.ErrNoHeaderRowFound)

	data, readErr := os.ReadFile(out)
	require.NoError(t, readErr)
	assert.Contains(t, gjson.GetBytes(data, "errors.0").String(), "no header row found")
}

func TestBatchCommand(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(t.TempDir(), "missing.xlsx")

	stderr, err := execute(t, "batch", auditFixture(t), auditFixture(t), missing, "--out-dir", dir, "--concurrency", "2")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 3 files failed")
	assert.Contains(t, stderr, missing)

	for _, name := range []string{"fixture.json", "fixture_2.json", "missing.json"} {
		_, err := os.Stat(filepath.Join(dir, name))
		assert.NoError(t, err, name)
	}
}

func TestWriteBatchFiles(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	report := shelfgrid.BatchReport{
		RunID: "run",
		Items: []shelfgrid.BatchItem{
			{Path: "/a/store.xlsx", Result: &models.ExtractionResult{Source: "store.xlsx"}},
			{Path: "/b/store.xlsx", Result: &models.ExtractionResult{Source: "store.xlsx", HeaderRow: 2}},
			{Path: "/c/skipped.xlsx"},
		},
	}

	require.NoError(t, writeBatchFiles(report, dir))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.Equal(t, []string{"store.json", "store_2.json"}, names)

	data, err := os.ReadFile(filepath.Join(dir, "store_2.json"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), gjson.GetBytes(data, "header_row").Int())
}

func TestSheetsCommand(t *testing.T) {
	stdout, err := execute(t, "sheets", auditFixture(t))
	require.NoError(t, err)
	assert.Equal(t, "Audit", gjson.Get(stdout, "0.name").String())
	assert.Equal(t, int64(9), gjson.Get(stdout, "0.column_count").Int())
}
