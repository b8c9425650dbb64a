package header

import "github.com/ukaji3/sheetflat/pkg/sheetflat/models"

// gridOf builds a grid from text rows; "" is an empty cell.
func gridOf(rows [][]string, merges ...models.MergeRange) *models.Grid {
	cells := make([][]models.Value, len(rows))
	for r, row := range rows {
		cells[r] = make([]models.Value, len(row))
		for c, text := range row {
			cells[r][c] = models.StringValue(text)
		}
	}
	return models.NewGrid("Sheet1", cells, merges)
}

func mr(minRow, maxRow, minCol, maxCol int) models.MergeRange {
	return models.MergeRange{MinRow: minRow, MaxRow: maxRow, MinCol: minCol, MaxCol: maxCol}
}

// contactGrid is a two-row header: "Contact" merged over A1:B1, leaves in
// row 2, an empty row 4.
func contactGrid() *models.Grid {
	return gridOf([][]string{
		{"Contact", ""},
		{"Name", "Phone"},
		{"Alice", "555-1000"},
		{"", ""},
		{"Bob", "555-2000"},
	}, mr(1, 1, 1, 2))
}
