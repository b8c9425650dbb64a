package parser

import (
	"strings"

	"github.com/xuri/excelize/v2"
)

// firstCustomNumFmt is the lowest number format ID a workbook defines itself.
const firstCustomNumFmt = 164

// numFormat is the number format applied to a cell through its style.
type numFormat struct {
	id   int
	code string
}

// general reports whether the format leaves numbers unformatted.
func (nf numFormat) general() bool {
	return nf.id == 0 && (nf.code == "" || strings.EqualFold(nf.code, "General"))
}

// builtIn reports whether the format is one of the predefined IDs.
func (nf numFormat) builtIn() bool {
	return nf.id > 0 && nf.id < firstCustomNumFmt
}

func (nf numFormat) isDate() bool {
	return isDateFormat(nf.id) || isDateFormatCode(nf.code)
}

// isDateFormat reports whether a built-in number format ID renders a date or
// time, including the East Asian locale date formats.
func isDateFormat(fmtID int) bool {
	switch {
	case fmtID >= 14 && fmtID <= 22,
		fmtID >= 27 && fmtID <= 36,
		fmtID >= 45 && fmtID <= 47,
		fmtID >= 50 && fmtID <= 58:
		return true
	}
	return false
}

// isDateFormatCode reports whether a format code contains date or time tokens
// outside quoted literals, bracketed sections and escaped characters.
func isDateFormatCode(code string) bool {
	if code == "" || strings.EqualFold(code, "General") {
		return false
	}
	var b strings.Builder
	inQuote, inBracket := false, false
	for i := 0; i < len(code); i++ {
		ch := code[i]
		switch {
		case inQuote:
			if ch == '"' {
				inQuote = false
			}
		case inBracket:
			if ch == ']' {
				inBracket = false
			}
		case ch == '"':
			inQuote = true
		case ch == '[':
			// [h], [mm] and [ss] are elapsed time sections.
			if end := strings.IndexByte(code[i:], ']'); end > 0 {
				inner := strings.ToLower(code[i+1 : i+end])
				if strings.Trim(inner, "hms") == "" && inner != "" {
					return true
				}
			}
			inBracket = true
		case ch == '\\' || ch == '_' || ch == '*':
			i++
		case ch == ';':
			// The first section formats positive numbers.
			i = len(code)
		default:
			b.WriteByte(ch)
		}
	}
	return strings.ContainsAny(strings.ToLower(b.String()), "ymdhs")
}

// styleReader is the subset of *excelize.File used to find number formats.
type styleReader interface {
	GetCellStyle(sheet, cell string) (int, error)
	GetStyle(idx int) (*excelize.Style, error)
}

// numFormats caches the number format of each style ID of one workbook.
type numFormats struct {
	f     styleReader
	cache map[int]numFormat
}

func newNumFormats(f styleReader) *numFormats {
	return &numFormats{f: f, cache: make(map[int]numFormat)}
}

// lookup returns the number format of a cell. Lookup failures report General.
func (n *numFormats) lookup(sheet, cell string) numFormat {
	styleID, err := n.f.GetCellStyle(sheet, cell)
	if err != nil || styleID == 0 {
		return numFormat{}
	}
	if nf, ok := n.cache[styleID]; ok {
		return nf
	}
	var nf numFormat
	if style, err := n.f.GetStyle(styleID); err == nil && style != nil {
		nf.id = style.NumFmt
		if style.CustomNumFmt != nil {
			nf.code = *style.CustomNumFmt
		}
	}
	n.cache[styleID] = nf
	return nf
}
