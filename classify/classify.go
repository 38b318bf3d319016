// Package classify turns the raw bytes of a BKN metadata field into a value and an optional unit.
//
// Three rules exist, selected by the schema's format.FieldType:
//
//   - FieldPlain: the whole trimmed text is the value.
//     "  Kinetics run 7 " -> value "Kinetics run 7"
//   - FieldLabeled: "<label>:<ws><value>", the value is everything after the first colon.
//     "Operator Name:   Jane Doe" -> value "Jane Doe"
//   - FieldValueUnit: "<label><3+ ws><value> (<unit>)", the unit group is optional.
//     "Wavelength      340.0 (nm)   " -> value "340.0", unit "nm"
//     "Ordinate Mode      Absorbance" -> value "Absorbance", unit ""
//     "Temperature      25.0 (°C) nominal" -> value "25.0", unit "°C"
//
// Labeled and value-with-unit fields report errs.ErrPatternMismatch when the
// value portion cannot be located. A missing unit is never an error.
package classify

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/format"
)

// cutset of incidental whitespace around field text and extracted parts.
const cutset = " \t\r\n"

// valueUnitPattern captures the text up to the first '(' after the first run
// of 3+ whitespace characters, and the interior of the first parenthesized
// group that follows it. Anything after that group is ignored.
var valueUnitPattern = regexp.MustCompile(`(?s)^(.*?)[ \t\r\n]{3,}([^(]*)(?:\(([^)]*)\))?`)

// Result is the outcome of classifying one field.
type Result struct {
	// Value is the extracted value, possibly empty for plain fields.
	Value string
	// Unit is the extracted unit; only value-with-unit fields set it.
	Unit string
	// Text is the bounded, trimmed field text the rules were applied to.
	Text string
}

// Trim removes leading and trailing space, tab, CR and LF characters.
// The result is a substring of s; nothing is copied.
func Trim(s string) string {
	return strings.Trim(s, cutset)
}

// Text interprets raw field bytes as text.
//
// The bytes are truncated to maxLen (when maxLen > 0), cut at the first NUL
// byte, and trimmed.
func Text(raw []byte, maxLen int) string {
	if maxLen > 0 && len(raw) > maxLen {
		raw = raw[:maxLen]
	}
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}

	return Trim(string(raw))
}

// Stored returns the field bytes as text up to the first NUL byte, untrimmed
// and without a length bound.
func Stored(raw []byte) string {
	if i := bytes.IndexByte(raw, 0); i >= 0 {
		raw = raw[:i]
	}

	return string(raw)
}

// Classify applies the rule for ft to the raw field bytes.
//
// Parameters:
//   - raw: Field bytes as read from the file
//   - ft: Classification rule from the schema
//   - maxLen: Bound on the text length; longer fields lose their trailing bytes
//
// Returns:
//   - Result: Extracted value, unit and the classified text
//   - error: ErrPatternMismatch or ErrInvalidFieldType
func Classify(raw []byte, ft format.FieldType, maxLen int) (Result, error) {
	text := Text(raw, maxLen)

	switch ft {
	case format.FieldPlain:
		return Result{Value: text, Text: text}, nil
	case format.FieldLabeled:
		value, err := Labeled(text)
		if err != nil {
			return Result{Text: text}, err
		}

		return Result{Value: value, Text: text}, nil
	case format.FieldValueUnit:
		value, unit, err := ValueUnit(text)
		if err != nil {
			return Result{Text: text}, err
		}

		return Result{Value: value, Unit: unit, Text: text}, nil
	default:
		return Result{Text: text}, fmt.Errorf("%w: %d", errs.ErrInvalidFieldType, ft)
	}
}

// Labeled extracts the value of a "<label>:<ws><value>" text.
func Labeled(text string) (string, error) {
	_, value, ok := strings.Cut(text, ":")
	if !ok {
		return "", fmt.Errorf("%w: no ':' in labeled field %q", errs.ErrPatternMismatch, text)
	}

	return Trim(value), nil
}

// ValueUnit extracts the value and optional unit of a "<label><3+ ws><value> (<unit>)" text.
func ValueUnit(text string) (string, string, error) {
	m := valueUnitPattern.FindStringSubmatch(Trim(text))
	if m == nil {
		return "", "", fmt.Errorf("%w: no 3+ whitespace run before a value in %q", errs.ErrPatternMismatch, text)
	}

	value := Trim(m[2])
	if value == "" {
		return "", "", fmt.Errorf("%w: empty value in %q", errs.ErrPatternMismatch, text)
	}

	return value, Trim(m[3]), nil
}
