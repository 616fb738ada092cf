package shelfgrid

import (
	"errors"
	"fmt"

	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/parser"
)

// ErrCannotOpenFile indicates the workbook could not be opened or parsed.
var ErrCannotOpenFile = errors.New("cannot open file")

// ErrNoHeaderRowFound indicates no header row was found in the scan window.
var ErrNoHeaderRowFound = parser.ErrNoHeaderRowFound

// Stage names the extraction step an error occurred in.
type Stage string

const (
	StageOpen       Stage = "open"
	StageSheet      Stage = "sheet"
	StageSeparators Stage = "separators"
	StageRows       Stage = "rows"
	StageHeader     Stage = "header"
)

// ExtractionError represents a fatal error during extraction.
type ExtractionError struct {
	Path      string
	SheetName string
	Stage     Stage
	Err       error
}

func (e *ExtractionError) Error() string {
	if e.SheetName == "" {
		return fmt.Sprintf("extraction error in %s (%s): %v", e.Path, e.Stage, e.Err)
	}
	return fmt.Sprintf("extraction error in %s sheet %q (%s): %v", e.Path, e.SheetName, e.Stage, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// NewExtractionError creates a new ExtractionError.
func NewExtractionError(path, sheetName string, stage Stage, err error) *ExtractionError {
	return &ExtractionError{
		Path:      path,
		SheetName: sheetName,
		Stage:     stage,
		Err:       err,
	}
}

// cannotOpen tags a workbook access failure so it matches ErrCannotOpenFile.
func cannotOpen(err error) error {
	return fmt.Errorf("%w: %w", ErrCannotOpenFile, err)
}
