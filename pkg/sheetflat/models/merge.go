package models

import "fmt"

// Rect represents cell coordinate bounds (1-based, inclusive).
type Rect struct {
	// R1 is the start row.
	R1 int `json:"r1"`
	// C1 is the start column.
	C1 int `json:"c1"`
	// R2 is the end row.
	R2 int `json:"r2"`
	// C2 is the end column.
	C2 int `json:"c2"`
}

// MergeRange is a rectangular block of cells presented as one logical cell.
// Only the top-left cell carries a value.
type MergeRange struct {
	MinRow int `json:"min_row"`
	MaxRow int `json:"max_row"`
	MinCol int `json:"min_col"`
	MaxCol int `json:"max_col"`
}

// Validate reports an error when the bounds are inverted or not positive.
func (m MergeRange) Validate() error {
	if m.MinRow < 1 || m.MinCol < 1 {
		return fmt.Errorf("merge range %s starts outside the sheet", m)
	}
	if m.MinRow > m.MaxRow || m.MinCol > m.MaxCol {
		return fmt.Errorf("merge range %s has inverted bounds", m)
	}
	return nil
}

// Contains reports whether the cell (row, col) lies inside the range.
func (m MergeRange) Contains(row, col int) bool {
	return row >= m.MinRow && row <= m.MaxRow && col >= m.MinCol && col <= m.MaxCol
}

// Overlaps reports whether two ranges share at least one cell.
func (m MergeRange) Overlaps(o MergeRange) bool {
	return m.MinRow <= o.MaxRow && o.MinRow <= m.MaxRow &&
		m.MinCol <= o.MaxCol && o.MinCol <= m.MaxCol
}

func (m MergeRange) String() string {
	return fmt.Sprintf("R%dC%d:R%dC%d", m.MinRow, m.MinCol, m.MaxRow, m.MaxCol)
}
