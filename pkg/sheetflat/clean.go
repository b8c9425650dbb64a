package sheetflat

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/ukaji3/sheetflat/pkg/sheetflat/header"
	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
	"github.com/ukaji3/sheetflat/pkg/sheetflat/output"
	"github.com/ukaji3/sheetflat/pkg/sheetflat/parser"
	"github.com/ukaji3/sheetflat/pkg/sheetflat/rows"
	"github.com/xuri/excelize/v2"
)

// ReadGrid opens an xlsx file and loads the selected sheet.
func ReadGrid(path string, opts Options) (*models.Grid, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, NewStageError(path, StageOpen, fmt.Errorf("%w: %v", ErrFileNotReadable, err))
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, NewStageError(path, StageOpen, fmt.Errorf("%w: %v", ErrFileNotReadable, err))
	}
	defer f.Close()

	sheet, err := parser.SheetName(f, opts.Sheet)
	if err != nil {
		return nil, NewStageError(path, StageRead, err)
	}

	grid, err := parser.ReadGrid(f, sheet, parser.ReadOptions{PrintArea: opts.PrintArea})
	if err != nil {
		return nil, NewStageError(path, StageRead, fmt.Errorf("%w: %v", ErrFileNotReadable, err))
	}
	return grid, nil
}

// Clean flattens the header of an in-memory grid and filters its data rows.
// The grid is not modified.
func Clean(grid *models.Grid, opts Options) (*models.DataTable, *models.Summary, error) {
	bopts, err := opts.prepare()
	if err != nil {
		return nil, nil, NewStageError("", StageOptions, err)
	}
	return clean(grid, opts, bopts)
}

func clean(grid *models.Grid, opts Options, bopts header.BoundaryOptions) (*models.DataTable, *models.Summary, error) {
	start := time.Now()
	idx, err := header.NewMergeIndex(grid.Merges)
	if err != nil {
		return nil, nil, NewStageError("", StageMerges, err)
	}

	bound, err := header.Detect(grid, idx, bopts)
	if err != nil {
		return nil, nil, NewStageError("", StageBoundary, err)
	}
	opts.debugf("boundary %s: H=%d, last header row %d", opts.Strategy, bound.H, bound.LastHeaderRow)

	frags := header.Accumulate(grid, idx, bound.LastHeaderRow)
	flat := header.CombineAll(frags, opts.HeaderPolicy)

	startRow := bound.DataStartRow()
	if grid.Empty() {
		startRow = 1
	}
	kept, dropped := rows.Filter(grid, startRow, len(flat))
	opts.debugf("rows: %d kept, %d dropped in %s", len(kept), dropped, time.Since(start))

	table := &models.DataTable{Header: flat, Rows: kept}
	summary := &models.Summary{
		RunID:         uuid.NewString(),
		Sheet:         grid.Sheet,
		Strategy:      string(opts.Strategy),
		Policy:        string(opts.HeaderPolicy),
		HeaderRow:     bound.H,
		LastHeaderRow: bound.LastHeaderRow,
		DataStartRow:  startRow,
		Header:        flat,
		RowsKept:      len(kept),
		RowsDropped:   dropped,
	}
	return table, summary, nil
}

// CleanSpreadsheet reads inputPath, flattens its header, drops empty rows and
// writes the result to outputPath. The output format follows the output
// extension (.csv, otherwise xlsx). Nothing is written when any stage fails.
func CleanSpreadsheet(inputPath, outputPath string, opts Options) (*models.Summary, error) {
	bopts, err := opts.prepare()
	if err != nil {
		return nil, NewStageError(inputPath, StageOptions, err)
	}
	return cleanSpreadsheet(inputPath, outputPath, opts, bopts)
}

func cleanSpreadsheet(inputPath, outputPath string, opts Options, bopts header.BoundaryOptions) (*models.Summary, error) {
	start := time.Now()

	grid, err := ReadGrid(inputPath, opts)
	if err != nil {
		return nil, err
	}
	opts.debugf("read %s: sheet %q, %d rows x %d cols, %d merges in %s",
		inputPath, grid.Sheet, grid.MaxRow, grid.MaxCol, len(grid.Merges), time.Since(start))

	table, summary, err := clean(grid, opts, bopts)
	if err != nil {
		var se *StageError
		if errors.As(err, &se) {
			se.Path = inputPath
		}
		return nil, err
	}

	if err := output.WriteFile(outputPath, output.FormatFor(outputPath), table); err != nil {
		return nil, NewStageError(outputPath, StageWrite, err)
	}

	summary.InputPath = inputPath
	summary.OutputPath = outputPath
	summary.Duration = time.Since(start).String()
	opts.infof("cleaned %s -> %s: %d columns, %d rows kept, %d dropped",
		inputPath, outputPath, len(summary.Header), summary.RowsKept, summary.RowsDropped)
	return summary, nil
}
