package parser

import (
	"fmt"

	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
	"github.com/xuri/excelize/v2"
)

// ReadOptions controls how a worksheet is loaded.
type ReadOptions struct {
	// PrintArea clips the grid to the sheet's print area when one is defined.
	PrintArea bool
}

// SheetName returns name when it exists in the workbook, or the first sheet
// when name is empty.
func SheetName(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("workbook has no sheets")
	}
	if name == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == name {
			return s, nil
		}
	}
	return "", fmt.Errorf("sheet %q not found", name)
}

// ReadGrid loads the full cell grid and merge ranges of one sheet.
// The grid extent covers every row excelize reports, including rows holding
// only whitespace, and every merge range.
func ReadGrid(f *excelize.File, sheetName string, opts ReadOptions) (*models.Grid, error) {
	rows, err := f.GetRows(sheetName)
	if err != nil {
		return nil, err
	}

	cells, err := ExtractCells(f, sheetName, rows)
	if err != nil {
		return nil, err
	}

	merges, err := ExtractMerges(f, sheetName)
	if err != nil {
		return nil, err
	}

	grid := models.NewGrid(sheetName, cells, merges)

	if opts.PrintArea {
		if area, ok := PrintArea(f, sheetName); ok {
			grid = Clip(grid, area)
		}
	}

	return grid, nil
}
