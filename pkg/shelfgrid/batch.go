package shelfgrid

import (
	"context"

	"github.com/google/uuid"
	"github.com/ukaji3/shelfgrid-go/pkg/shelfgrid/models"
	"golang.org/x/sync/errgroup"
)

// BatchItem is the outcome of extracting one file in a batch.
type BatchItem struct {
	Path   string
	Result *models.ExtractionResult
	Err    error
}

// BatchReport collects a batch run.
type BatchReport struct {
	RunID string
	Items []BatchItem
}

// Failed counts items that ended with an error.
func (r BatchReport) Failed() int {
	n := 0
	for _, it := range r.Items {
		if it.Err != nil {
			n++
		}
	}
	return n
}

// ExtractAll extracts each file independently, at most concurrency at a time.
// Items keep the order of paths. A failing file does not stop the others;
// a cancelled ctx stops files that have not started yet.
func ExtractAll(ctx context.Context, paths []string, opts Options, concurrency int) BatchReport {
	report := BatchReport{
		RunID: uuid.NewString(),
		Items: make([]BatchItem, len(paths)),
	}
	opts.Logger = opts.logger().With("run_id", report.RunID)
	if concurrency < 1 {
		concurrency = 1
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, path := range paths {
		report.Items[i].Path = path
		if err := ctx.Err(); err != nil {
			report.Items[i].Err = err
			continue
		}
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				report.Items[i].Err = err
				return nil
			}
			result, err := Extract(path, opts)
			report.Items[i].Result = result
			report.Items[i].Err = err
			return nil
		})
	}
	_ = g.Wait()
	return report
}
