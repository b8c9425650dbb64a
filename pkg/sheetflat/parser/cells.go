// Package parser reads worksheet cells and merge metadata through excelize.
package parser

import (
	"strconv"
	"strings"

	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
	"github.com/xuri/excelize/v2"
)

// cellReader is the subset of *excelize.File used to type a cell.
type cellReader interface {
	styleReader
	GetCellType(sheet, cell string) (excelize.CellType, error)
	GetCellValue(sheet, cell string, opts ...excelize.Options) (string, error)
}

// ExtractCells reads every non-empty cell of a sheet as a typed value.
// The result is row-major and 1:1 with sheet rows; rows keep their trailing
// empty cells trimmed.
//
// Numbers stored with a date or time format become date values holding the
// displayed text; other numbers keep their number format.
func ExtractCells(f cellReader, sheetName string, rows [][]string) ([][]models.Value, error) {
	formats := newNumFormats(f)
	result := make([][]models.Value, len(rows))
	for rowIdx, row := range rows {
		values := make([]models.Value, len(row))
		for colIdx, text := range row {
			if text == "" {
				continue
			}
			cellName, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+1)
			if err != nil {
				return nil, err
			}
			cellType, err := f.GetCellType(sheetName, cellName)
			if err != nil {
				return nil, err
			}
			raw := text
			var nf numFormat
			if cellType == excelize.CellTypeNumber || cellType == excelize.CellTypeUnset {
				if v, err := f.GetCellValue(sheetName, cellName, excelize.Options{RawCellValue: true}); err == nil {
					raw = v
				}
				nf = formats.lookup(sheetName, cellName)
			}
			values[colIdx] = parseValue(text, raw, cellType, nf)
		}
		result[rowIdx] = values
	}
	return result, nil
}

// parseValue converts a formatted cell text into a typed value.
// raw is the unformatted stored value, used to recover numbers; nf is the
// cell's number format.
func parseValue(text, raw string, cellType excelize.CellType, nf numFormat) models.Value {
	switch cellType {
	case excelize.CellTypeBool:
		return models.BoolValue(raw == "1" || strings.EqualFold(text, "true"))
	case excelize.CellTypeDate:
		return models.DateValue(text)
	case excelize.CellTypeNumber, excelize.CellTypeUnset:
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			break
		}
		switch {
		case nf.isDate():
			return models.DateValue(text)
		case nf.general():
			return models.NumberValue(n, text)
		case nf.builtIn():
			return models.NumberValue(n, text).WithFormat(nf.id, "")
		default:
			return models.NumberValue(n, text).WithFormat(0, nf.code)
		}
	}
	return models.StringValue(text)
}
