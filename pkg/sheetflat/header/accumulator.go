package header

import "github.com/ukaji3/sheetflat/pkg/sheetflat/models"

// Fragments holds, per column, the header text contributed by each header
// row in row order. Fragments[c-1][r-1] is the text row r gave column c.
type Fragments [][]string

// Accumulate collects header fragments from rows 1..lastRow.
//
// A merge starting inside the region contributes its resolved value once, at
// its first row, to every column it spans; its other rows stay "". Cells
// outside any merge contribute their own text. Every column ends up with
// exactly lastRow entries, so slot i always belongs to row i+1 regardless of
// the order merges and plain cells are visited in.
func Accumulate(g *models.Grid, idx *MergeIndex, lastRow int) Fragments {
	frags := make(Fragments, g.MaxCol)
	if lastRow <= 0 {
		return frags
	}
	for c := range frags {
		frags[c] = make([]string, lastRow)
	}

	for _, m := range idx.Ranges() {
		if m.MinRow > lastRow {
			continue
		}
		value := Resolve(g, m)
		for c := m.MinCol; c <= m.MaxCol && c <= g.MaxCol; c++ {
			frags[c-1][m.MinRow-1] = value
		}
	}

	for c := 1; c <= g.MaxCol; c++ {
		for r := 1; r <= lastRow; r++ {
			if idx.Covered(r, c) {
				continue
			}
			frags[c-1][r-1] = g.Cell(r, c).String()
		}
	}

	return frags
}

// Column returns the fragments of sheet column c (1-based).
func (f Fragments) Column(c int) []string {
	if c < 1 || c > len(f) {
		return nil
	}
	return f[c-1]
}
