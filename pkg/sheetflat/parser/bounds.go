package parser

import "github.com/ukaji3/sheetflat/pkg/sheetflat/models"

// Clip restricts a grid to the given area and rebases it so the area's
// top-left cell becomes (1, 1). Merges whose anchor lies outside the area are
// dropped; the others are cut to the area.
func Clip(g *models.Grid, area models.Rect) *models.Grid {
	area = normalizeRect(area)

	var cells [][]models.Value
	for r := area.R1; r <= area.R2 && r <= g.MaxRow; r++ {
		row := make([]models.Value, 0, area.C2-area.C1+1)
		for c := area.C1; c <= area.C2 && c <= g.MaxCol; c++ {
			row = append(row, g.Cell(r, c))
		}
		cells = append(cells, row)
	}

	var merges []models.MergeRange
	for _, m := range g.Merges {
		if !(models.MergeRange{MinRow: area.R1, MaxRow: area.R2, MinCol: area.C1, MaxCol: area.C2}).Contains(m.MinRow, m.MinCol) {
			continue
		}
		merges = append(merges, models.MergeRange{
			MinRow: m.MinRow - area.R1 + 1,
			MaxRow: min(m.MaxRow, area.R2) - area.R1 + 1,
			MinCol: m.MinCol - area.C1 + 1,
			MaxCol: min(m.MaxCol, area.C2) - area.C1 + 1,
		})
	}

	return models.NewGrid(g.Sheet, cells, merges)
}
