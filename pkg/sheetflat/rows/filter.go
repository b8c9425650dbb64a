// Package rows drops fully empty data rows.
package rows

import "github.com/ukaji3/sheetflat/pkg/sheetflat/models"

// IsEmpty reports whether every value is blank after trimming whitespace.
func IsEmpty(row []models.Value) bool {
	for _, v := range row {
		if !v.IsBlank() {
			return false
		}
	}
	return true
}

// Filter reads rows startRow..MaxRow of the grid, width columns wide, and
// drops the empty ones. Kept rows are copied verbatim, padded with Empty to
// width, and indexed densely from 0 in their original order.
func Filter(g *models.Grid, startRow, width int) (kept [][]models.Value, dropped int) {
	kept = make([][]models.Value, 0)
	if startRow < 1 {
		startRow = 1
	}
	for r := startRow; r <= g.MaxRow; r++ {
		row := make([]models.Value, width)
		for c := 1; c <= width; c++ {
			row[c-1] = g.Cell(r, c)
		}
		if IsEmpty(row) {
			dropped++
			continue
		}
		kept = append(kept, row)
	}
	return kept, dropped
}
