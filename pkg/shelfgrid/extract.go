package shelfgrid

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/models"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/parser"
	"github.com/xuri/excelize/v2"
)

// Extract runs one structure-inference pass over a single worksheet of the workbook at path.
// On fatal errors the returned result is still non-nil, with no rows and Errors set.
func Extract(path string, opts Options) (*models.ExtractionResult, error) {
	result := newResult(filepath.Base(path))
	f, err := parser.OpenWorkbook(path)
	if err != nil {
		return fail(result, opts.logger(), NewExtractionError(path, "", StageOpen, cannotOpen(err)))
	}
	defer f.Close()

	return extract(f, path, result, opts)
}

// ExtractReader is Extract over a workbook stream; name labels the result and errors.
func ExtractReader(r io.Reader, name string, opts Options) (*models.ExtractionResult, error) {
	result := newResult(filepath.Base(name))
	f, err := parser.OpenWorkbookReader(r)
	if err != nil {
		return fail(result, opts.logger(), NewExtractionError(name, "", StageOpen, cannotOpen(err)))
	}
	defer f.Close()

	return extract(f, name, result, opts)
}

func newResult(source string) *models.ExtractionResult {
	return &models.ExtractionResult{
		Source:   source,
		Columns:  []string{},
		Rows:     []models.RawRow{},
		Sections: []models.Section{},
		Skipped:  []models.SkippedRow{},
	}
}

func fail(result *models.ExtractionResult, log *slog.Logger, err *ExtractionError) (*models.ExtractionResult, error) {
	result.Rows = []models.RawRow{}
	result.Errors = append(result.Errors, err.Error())
	log.Error("extraction failed", "file", result.Source, "stage", string(err.Stage), "error", err.Err)
	return result, err
}

func extract(f *excelize.File, path string, result *models.ExtractionResult, opts Options) (*models.ExtractionResult, error) {
	vocab := opts.vocabulary()
	log := opts.logger().With("file", result.Source)

	sheet, err := parser.SelectSheet(f, opts.PreferredSheet())
	if err != nil {
		return fail(result, log, NewExtractionError(path, "", StageSheet, cannotOpen(err)))
	}
	result.SheetName = sheet
	log = log.With("sheet", sheet)

	seps, err := parser.DetectSeparators(f, sheet, vocab.SeparatorMinColumns)
	if err != nil {
		return fail(result, log, NewExtractionError(path, sheet, StageSeparators, cannotOpen(err)))
	}
	grid, err := parser.ReadGrid(f, sheet)
	if err != nil {
		return fail(result, log, NewExtractionError(path, sheet, StageRows, cannotOpen(err)))
	}
	for _, sep := range seps {
		grid.Extend(sep.Row)
	}
	result.LastRow = grid.LastRow()

	header, err := parser.LocateHeader(grid, vocab, seps)
	if err != nil {
		return fail(result, log, NewExtractionError(path, sheet, StageHeader, err))
	}
	result.HeaderRow = header.Row
	result.DataStartColumn = header.DataStartColumn
	result.Columns = parser.ReadColumnNames(grid.Row(header.Row), header.DataStartColumn)
	result.DataRange = parser.DataRange(header.Row, header.DataStartColumn, len(result.Columns), grid.LastRow())
	log.Debug("header located", "row", header.Row, "data_start_column", header.DataStartColumn,
		"columns", len(result.Columns), "separators", len(seps))

	tracker := parser.NewSectionTracker(header.Row+1, grid.LastRow())
	for _, w := range tracker.AddSeparators(seps) {
		warn(result, log, w)
	}

	classifier := parser.NewClassifier(vocab, header, result.Columns, seps)
	builder := parser.NewRowBuilder(result.Columns, vocab)
	for r := header.Row + 1; r <= grid.LastRow(); r++ {
		d := classifier.Classify(r, grid.Row(r))
		switch d.Kind {
		case parser.RowData:
			var owner *models.Section
			if s, ok := tracker.Owner(r); ok {
				owner = &s
			}
			result.Rows = append(result.Rows, builder.Build(r, d.Cells, owner))
			continue
		case parser.RowContextOnly:
			tracker.AddContext(r, d.Context, d.ContextText)
			for _, w := range d.Warnings {
				warn(result, log, fmt.Sprintf("row %d: %s", r, w))
			}
		case parser.RowRepeatedHeader:
			if d.Drifted() {
				warn(result, log, fmt.Sprintf("row %d: repeated header differs from row %d (missing %v, added %v)",
					r, header.Row, d.Missing, d.Added))
			}
		case parser.RowSeparator, parser.RowTooSparse, parser.RowEmpty:
		}

		skip, _ := d.Skip()
		result.Skipped = append(result.Skipped, skip)
		if skip.Reason != "" {
			log.Debug("row skipped", "row", r, "reason", skip.Reason)
		}
	}
	result.Sections = tracker.Sections()

	log.Info("sheet extracted", "header_row", header.Row, "rows", len(result.Rows),
		"sections", len(result.Sections), "skipped", len(result.Skipped), "warnings", len(result.Warnings))
	return result, nil
}

func warn(result *models.ExtractionResult, log *slog.Logger, msg string) {
	result.Warnings = append(result.Warnings, msg)
	log.Warn(msg)
}

// ProbeSheets lists the worksheets of a workbook without running extraction.
func ProbeSheets(path string) ([]models.SheetSummary, error) {
	sheets, err := parser.ProbeSheets(path)
	if err != nil {
		return nil, NewExtractionError(path, "", StageOpen, cannotOpen(err))
	}
	return sheets, nil
}
