package parser

import (
	"fmt"
	"strings"

	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
	"github.com/xuri/excelize/v2"
)

// ExtractMerges returns the merged ranges of a sheet in file order.
// Bounds are returned as stored; callers validate them.
func ExtractMerges(f *excelize.File, sheetName string) ([]models.MergeRange, error) {
	cells, err := f.GetMergeCells(sheetName)
	if err != nil {
		return nil, err
	}

	merges := make([]models.MergeRange, 0, len(cells))
	for _, mc := range cells {
		if len(mc) == 0 {
			continue
		}
		m, err := parseMergeRef(mc[0])
		if err != nil {
			return nil, err
		}
		merges = append(merges, m)
	}
	return merges, nil
}

// parseMergeRef parses a range string like A1:C2 (or a single cell A1).
func parseMergeRef(ref string) (models.MergeRange, error) {
	rect, err := parseRangeToRect(ref)
	if err != nil {
		return models.MergeRange{}, fmt.Errorf("merge range %q: %w", ref, err)
	}
	return models.MergeRange{
		MinRow: rect.R1,
		MaxRow: rect.R2,
		MinCol: rect.C1,
		MaxCol: rect.C2,
	}, nil
}

// parseRangeToRect parses $A$1:$D$10, A1:D10 or A1 into a Rect.
// The order of the two corners is preserved.
func parseRangeToRect(rangeStr string) (models.Rect, error) {
	rangeStr = strings.ReplaceAll(strings.TrimSpace(rangeStr), "$", "")

	parts := strings.Split(rangeStr, ":")
	if len(parts) == 1 {
		parts = append(parts, parts[0])
	}
	if len(parts) != 2 {
		return models.Rect{}, fmt.Errorf("invalid range %q", rangeStr)
	}

	startCol, startRow, err := excelize.CellNameToCoordinates(parts[0])
	if err != nil {
		return models.Rect{}, err
	}
	endCol, endRow, err := excelize.CellNameToCoordinates(parts[1])
	if err != nil {
		return models.Rect{}, err
	}

	return models.Rect{R1: startRow, C1: startCol, R2: endRow, C2: endCol}, nil
}
