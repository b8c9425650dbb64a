package sheetflat

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
	"golang.org/x/sync/errgroup"
)

// BatchResult is the outcome of one file in a batch.
type BatchResult struct {
	InputPath string          `json:"input_path"`
	Summary   *models.Summary `json:"summary,omitempty"`
	Error     string          `json:"error,omitempty"`
	Err       error           `json:"-"`
}

// ListInputs returns the .xlsx files directly under dir, sorted by name.
// Lock files left by spreadsheet editors (~$name.xlsx) are skipped.
func ListInputs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read input directory: %w", err)
	}
	var inputs []string
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || !strings.EqualFold(filepath.Ext(name), ".xlsx") || strings.HasPrefix(name, "~$") {
			continue
		}
		inputs = append(inputs, filepath.Join(dir, name))
	}
	sort.Strings(inputs)
	return inputs, nil
}

// OutputPath maps an input file to its cleaned counterpart in outDir.
func OutputPath(input, outDir, ext string) string {
	base := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	if ext == "" {
		ext = ".xlsx"
	}
	return filepath.Join(outDir, base+"_cleaned"+ext)
}

// Batch cleans every input concurrently, at most workers at a time. Each file
// runs its own pipeline; a failure is recorded in its result and does not
// stop the others. Results are in input order. Cancelling ctx stops files
// that have not started yet.
func Batch(ctx context.Context, inputs []string, outDir, ext string, workers int, opts Options) ([]BatchResult, error) {
	bopts, err := opts.prepare()
	if err != nil {
		return nil, NewStageError("", StageOptions, err)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	if workers < 1 {
		workers = 1
	}

	results := make([]BatchResult, len(inputs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, input := range inputs {
		results[i].InputPath = input
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				results[i].Err = err
				results[i].Error = err.Error()
				return nil
			}
			summary, err := cleanSpreadsheet(input, OutputPath(input, outDir, ext), opts, bopts)
			if err != nil {
				results[i].Err = err
				results[i].Error = err.Error()
				return nil
			}
			results[i].Summary = summary
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
