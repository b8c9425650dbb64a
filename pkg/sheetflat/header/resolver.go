// Package header rebuilds a flat, one-row header from a multi-row header
// region with merged cells.
package header

import (
	"errors"
	"fmt"
	"sort"

	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
)

// ErrMalformedMerge is returned for inverted or overlapping merge ranges.
var ErrMalformedMerge = errors.New("malformed merge range")

type coord struct{ row, col int }

// MergeIndex maps every covered cell to its owning merge range.
type MergeIndex struct {
	ranges []models.MergeRange
	owner  map[coord]int
}

// NewMergeIndex validates the ranges and precomputes the cell lookup.
// Ranges are kept sorted by (MinRow, MinCol).
func NewMergeIndex(ranges []models.MergeRange) (*MergeIndex, error) {
	sorted := make([]models.MergeRange, len(ranges))
	copy(sorted, ranges)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].MinRow != sorted[j].MinRow {
			return sorted[i].MinRow < sorted[j].MinRow
		}
		return sorted[i].MinCol < sorted[j].MinCol
	})

	idx := &MergeIndex{ranges: sorted, owner: make(map[coord]int)}
	for i, m := range sorted {
		if err := m.Validate(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedMerge, err)
		}
		for r := m.MinRow; r <= m.MaxRow; r++ {
			for c := m.MinCol; c <= m.MaxCol; c++ {
				key := coord{r, c}
				if prev, ok := idx.owner[key]; ok {
					return nil, fmt.Errorf("%w: %s overlaps %s", ErrMalformedMerge, m, sorted[prev])
				}
				idx.owner[key] = i
			}
		}
	}
	return idx, nil
}

// Ranges returns the ranges sorted by (MinRow, MinCol).
func (x *MergeIndex) Ranges() []models.MergeRange {
	return x.ranges
}

// Len returns the number of ranges.
func (x *MergeIndex) Len() int {
	return len(x.ranges)
}

// Owner returns the range covering (row, col), if any.
func (x *MergeIndex) Owner(row, col int) (models.MergeRange, bool) {
	i, ok := x.owner[coord{row, col}]
	if !ok {
		return models.MergeRange{}, false
	}
	return x.ranges[i], true
}

// Covered reports whether (row, col) belongs to a merge range.
func (x *MergeIndex) Covered(row, col int) bool {
	_, ok := x.owner[coord{row, col}]
	return ok
}

// IsAnchor reports whether (row, col) is the top-left cell of a range.
func (x *MergeIndex) IsAnchor(row, col int) bool {
	m, ok := x.Owner(row, col)
	return ok && m.MinRow == row && m.MinCol == col
}

// Resolve returns the authoritative text of a range: the value of its
// top-left cell, or "" when absent.
func Resolve(g *models.Grid, m models.MergeRange) string {
	return g.Cell(m.MinRow, m.MinCol).String()
}

// Covers reports whether the range contains (row, col).
func Covers(m models.MergeRange, row, col int) bool {
	return m.Contains(row, col)
}

// ResolvedCell returns the value shown at (row, col): the authoritative value
// of the owning merge, or the cell itself.
func (x *MergeIndex) ResolvedCell(g *models.Grid, row, col int) models.Value {
	if m, ok := x.Owner(row, col); ok {
		return g.Cell(m.MinRow, m.MinCol)
	}
	return g.Cell(row, col)
}
