package models

// Grid is the in-memory cell grid and merge metadata of one worksheet.
// It is not modified after it has been read.
type Grid struct {
	// Sheet is the worksheet name.
	Sheet string `json:"sheet"`
	// MaxRow is the number of rows (0 for an empty sheet).
	MaxRow int `json:"max_row"`
	// MaxCol is the number of columns.
	MaxCol int `json:"max_col"`
	// Cells holds row-major values; Cells[r-1][c-1] is cell (r, c).
	// Rows may be shorter than MaxCol.
	Cells [][]Value `json:"cells"`
	// Merges lists the merged ranges of the sheet.
	Merges []MergeRange `json:"merges,omitempty"`
}

// NewGrid builds a Grid from row-major values and merge ranges, sizing it to
// cover both.
func NewGrid(sheet string, cells [][]Value, merges []MergeRange) *Grid {
	g := &Grid{Sheet: sheet, Cells: cells, Merges: merges}
	g.MaxRow = len(cells)
	for _, row := range cells {
		if len(row) > g.MaxCol {
			g.MaxCol = len(row)
		}
	}
	for _, m := range merges {
		if m.MaxRow > g.MaxRow {
			g.MaxRow = m.MaxRow
		}
		if m.MaxCol > g.MaxCol {
			g.MaxCol = m.MaxCol
		}
	}
	return g
}

// Cell returns the value at (row, col), 1-based. Cells outside the stored
// region are Empty.
func (g *Grid) Cell(row, col int) Value {
	if row < 1 || col < 1 || row > len(g.Cells) {
		return Empty
	}
	r := g.Cells[row-1]
	if col > len(r) {
		return Empty
	}
	return r[col-1]
}

// Empty reports whether the grid has no rows or no columns.
func (g *Grid) Empty() bool {
	return g.MaxRow == 0 || g.MaxCol == 0
}
