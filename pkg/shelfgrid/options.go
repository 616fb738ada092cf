// Package shelfgrid extracts uniform rows from shelf-audit workbooks whose layout
// (header position, data offset, section separators) is not known in advance.
package shelfgrid

import (
	"log/slog"

	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/config"
)

// Options configures extraction behavior.
type Options struct {
	// Vocabulary holds the header vocabulary, indicator columns and thresholds.
	// If nil, config.Default() is used.
	Vocabulary *config.Vocabulary
	// Sheet is the preferred worksheet name. If empty, the vocabulary's preferred sheet is used.
	Sheet string
	// Logger receives extraction diagnostics. If nil, slog.Default() is used.
	Logger *slog.Logger
}

// DefaultOptions returns default extraction options.
func DefaultOptions() Options {
	return Options{Vocabulary: config.Default()}
}

func (o Options) vocabulary() *config.Vocabulary {
	if o.Vocabulary != nil {
		return o.Vocabulary
	}
	return config.Default()
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// PreferredSheet returns the sheet name to look for first.
func (o Options) PreferredSheet() string {
	if o.Sheet != "" {
		return o.Sheet
	}
	return o.vocabulary().PreferredSheet
}
