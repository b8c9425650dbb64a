package parser

import (
	"strings"

	"github.com/ukaji3/sheetflat/pkg/sheetflat/models"
	"github.com/xuri/excelize/v2"
)

// PrintArea returns the first print area defined for the sheet.
func PrintArea(f *excelize.File, sheetName string) (models.Rect, bool) {
	for _, dn := range f.GetDefinedName() {
		if !strings.EqualFold(dn.Name, "_xlnm.Print_Area") {
			continue
		}
		sheet, areas := parsePrintAreaReference(dn.RefersTo)
		if sheet == "" && dn.Scope != "" && !strings.EqualFold(dn.Scope, "Workbook") {
			sheet = dn.Scope
		}
		if sheet == sheetName && len(areas) > 0 {
			return areas[0], true
		}
	}
	return models.Rect{}, false
}

// parsePrintAreaReference parses a print area reference string.
// Format: 'SheetName'!$A$1:$D$10 or SheetName!$A$1:$D$10
func parsePrintAreaReference(ref string) (string, []models.Rect) {
	var areas []models.Rect

	var sheetName string
	for _, part := range strings.Split(ref, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		idx := strings.LastIndex(part, "!")
		if idx < 0 {
			continue
		}
		sheet := strings.Trim(part[:idx], "'")
		if sheetName == "" {
			sheetName = sheet
		}

		rect, err := parseRangeToRect(part[idx+1:])
		if err != nil {
			continue
		}
		areas = append(areas, normalizeRect(rect))
	}

	return sheetName, areas
}

func normalizeRect(r models.Rect) models.Rect {
	if r.R1 > r.R2 {
		r.R1, r.R2 = r.R2, r.R1
	}
	if r.C1 > r.C2 {
		r.C1, r.C2 = r.C2, r.C1
	}
	return r
}
