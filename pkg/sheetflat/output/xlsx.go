package output

import (
	"fmt"
	"io"

	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
	"github.com/xuri/excelize/v2"
)

// SheetName is the name of the single sheet written to xlsx output.
const SheetName = "Sheet1"

// WriteXLSX streams the table into a new workbook. Numbers and booleans keep
// their type, and numbers keep their source number format; every other
// value, dates included, is written as text.
func WriteXLSX(w io.Writer, table *models.DataTable) error {
	f := excelize.NewFile()
	defer f.Close()
	styles := newStyleCache(f)

	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("create stream writer: %w", err)
	}

	if table.Width() > 0 {
		headerRow := make([]interface{}, table.Width())
		for i, h := range table.Header {
			headerRow[i] = h
		}
		if err := sw.SetRow("A1", headerRow); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}

	for i, row := range table.Rows {
		rowData := make([]interface{}, len(row))
		for j, v := range row {
			if !v.Formatted() {
				rowData[j] = v.Interface()
				continue
			}
			styleID, err := styles.numFmt(v.NumFmt, v.NumFmtCode)
			if err != nil {
				return fmt.Errorf("number format of row %d: %w", i+2, err)
			}
			rowData[j] = excelize.Cell{Value: v.Number, StyleID: styleID}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, rowData); err != nil {
			return fmt.Errorf("write row %d: %w", i+2, err)
		}
	}

	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return f.Write(w)
}

// styleCache creates one style per distinct number format.
type styleCache struct {
	f   *excelize.File
	ids map[string]int
}

func newStyleCache(f *excelize.File) *styleCache {
	return &styleCache{f: f, ids: make(map[string]int)}
}

// numFmt returns the style ID for a built-in format ID, or for code when id
// is 0.
func (c *styleCache) numFmt(id int, code string) (int, error) {
	key := fmt.Sprintf("%d_%s", id, code)
	if styleID, ok := c.ids[key]; ok {
		return styleID, nil
	}
	style := &excelize.Style{NumFmt: id}
	if id == 0 {
		style.CustomNumFmt = &code
	}
	styleID, err := c.f.NewStyle(style)
	if err != nil {
		return 0, err
	}
	c.ids[key] = styleID
	return styleID, nil
}
