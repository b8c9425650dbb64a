// Package models defines data structures for header flattening.
package models

import (
	"strconv"
	"strings"
)

// Kind identifies the scalar type held by a Value.
type Kind int

const (
	KindEmpty Kind = iota
	KindString
	KindNumber
	KindBool
	KindDate
)

// String returns a human-readable name for the Kind.
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindDate:
		return "date"
	default:
		return "unknown"
	}
}

// Value is a typed, nullable cell value.
type Value struct {
	// Kind is the value type. KindEmpty means the cell is absent.
	Kind Kind `json:"kind"`
	// Text is the formatted text as displayed by the spreadsheet.
	Text string `json:"text,omitempty"`
	// Number is set for KindNumber.
	Number float64 `json:"number,omitempty"`
	// Bool is set for KindBool.
	Bool bool `json:"bool,omitempty"`
	// NumFmt is the built-in number format ID of a KindNumber value.
	NumFmt int `json:"num_fmt,omitempty"`
	// NumFmtCode is the number format code when it is not built in.
	NumFmtCode string `json:"num_fmt_code,omitempty"`
}

// Empty is the absent value.
var Empty = Value{}

// StringValue returns a KindString value, or Empty for "".
func StringValue(s string) Value {
	if s == "" {
		return Empty
	}
	return Value{Kind: KindString, Text: s}
}

// NumberValue returns a KindNumber value with the given display text.
// An empty text is rendered with strconv.
func NumberValue(n float64, text string) Value {
	if text == "" {
		text = strconv.FormatFloat(n, 'f', -1, 64)
	}
	return Value{Kind: KindNumber, Number: n, Text: text}
}

// WithFormat returns a copy of a KindNumber value carrying a number format:
// a built-in ID, or a custom code when id is not built in.
func (v Value) WithFormat(id int, code string) Value {
	if v.Kind != KindNumber {
		return v
	}
	v.NumFmt, v.NumFmtCode = id, code
	return v
}

// Formatted reports whether the value carries a non-General number format.
func (v Value) Formatted() bool {
	return v.Kind == KindNumber && (v.NumFmt != 0 || v.NumFmtCode != "")
}

// BoolValue returns a KindBool value.
func BoolValue(b bool) Value {
	text := "FALSE"
	if b {
		text = "TRUE"
	}
	return Value{Kind: KindBool, Bool: b, Text: text}
}

// DateValue returns a KindDate value carrying its formatted text.
func DateValue(text string) Value {
	if text == "" {
		return Empty
	}
	return Value{Kind: KindDate, Text: text}
}

// String returns the text used for header fragments; "" for Empty.
func (v Value) String() string {
	if v.Kind == KindEmpty {
		return ""
	}
	return v.Text
}

// IsBlank reports whether the value is absent or only whitespace.
func (v Value) IsBlank() bool {
	return v.Kind == KindEmpty || strings.TrimSpace(v.Text) == ""
}

// Interface returns the value as a Go scalar for writers: nil, string,
// float64 or bool.
func (v Value) Interface() any {
	switch v.Kind {
	case KindEmpty:
		return nil
	case KindNumber:
		return v.Number
	case KindBool:
		return v.Bool
	default:
		return v.Text
	}
}
