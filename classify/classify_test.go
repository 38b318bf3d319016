package classify

import (
	"strings"
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/format"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name  string
		raw   string
		ft    format.FieldType
		value string
		unit  string
	}{
		{"labeled", "Operator Name:   Jane Doe", format.FieldLabeled, "Jane Doe", ""},
		{"labeled keeps later colons", "Collection Time: 10:15:03 AM\r\n", format.FieldLabeled, "10:15:03 AM", ""},
		{"labeled empty value", "Operator Name:", format.FieldLabeled, "", ""},
		{"value with unit", "Wavelength      340.0 (nm)   ", format.FieldValueUnit, "340.0", "nm"},
		{"value without unit", "Ordinate Mode      Absorbance", format.FieldValueUnit, "Absorbance", ""},
		{"label with parens", "Ave Time (sec)      0.1000", format.FieldValueUnit, "0.1000", ""},
		{"tabs and padded unit", "Temperature\t\t\t25.0\t( °C )", format.FieldValueUnit, "25.0", "°C"},
		{"multi word value", "Cycle Time   12.5 min total (min)", format.FieldValueUnit, "12.5 min total", "min"},
		{"text after unit", "Temperature      25.0 (°C) nominal", format.FieldValueUnit, "25.0", "°C"},
		{"second group ignored", "Temperature      25.0 (°C) (set)", format.FieldValueUnit, "25.0", "°C"},
		{"unit glued to value", "Instrument Version   3.00(339) build 7", format.FieldValueUnit, "3.00", "339"},
		{"unclosed group", "Stop Time   60.0 (sec", format.FieldValueUnit, "60.0", ""},
		{"plain", "  Kinetics run 7 \n", format.FieldPlain, "Kinetics run 7", ""},
		{"plain empty", "", format.FieldPlain, "", ""},
		{"plain keeps colon", "End Method", format.FieldPlain, "End Method", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify([]byte(tt.raw), tt.ft, 512)
			require.NoError(t, err)
			require.Equal(t, tt.value, res.Value)
			require.Equal(t, tt.unit, res.Unit)
			require.Equal(t, Trim(tt.raw), res.Text)
		})
	}
}

func TestClassify_PatternMismatch(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		ft   format.FieldType
	}{
		{"labeled without colon", "Operator Name Jane Doe", format.FieldLabeled},
		{"value unit single spaces", "Wavelength 340.0 (nm)", format.FieldValueUnit},
		{"value unit only label", "Wavelength", format.FieldValueUnit},
		{"value unit empty value", "Wavelength      (nm)", format.FieldValueUnit},
		{"value unit empty text", "   ", format.FieldValueUnit},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Classify([]byte(tt.raw), tt.ft, 512)
			require.ErrorIs(t, err, errs.ErrPatternMismatch)
			require.Empty(t, res.Value)
			require.Empty(t, res.Unit)
		})
	}
}

func TestClassify_InvalidFieldType(t *testing.T) {
	_, err := Classify([]byte("x"), format.FieldType(99), 512)
	require.ErrorIs(t, err, errs.ErrInvalidFieldType)
}

func TestText_TruncatesAndStopsAtNUL(t *testing.T) {
	long := strings.Repeat("a", 600)
	require.Len(t, Text([]byte(long), 512), 512)
	require.Len(t, Text([]byte(long), 0), 600, "non-positive bound disables truncation")

	require.Equal(t, "Sample", Text([]byte("Sample\x00garbage"), 512))
	require.Equal(t, "abc", Text([]byte("  abcdef"), 5))
}

func TestStored(t *testing.T) {
	require.Equal(t, "  Sample\t", Stored([]byte("  Sample\t\x00rest")))
	require.Equal(t, "", Stored([]byte("\x00")))

	long := strings.Repeat("b", 700)
	require.Equal(t, long, Stored([]byte(long)))
}

func TestClassify_TruncationDropsUnit(t *testing.T) {
	raw := []byte("Wavelength      340.0 (nm)")

	res, err := Classify(raw, format.FieldValueUnit, 21)
	require.NoError(t, err)
	require.Equal(t, "340.0", res.Value)
	require.Empty(t, res.Unit)
}

func TestTrim(t *testing.T) {
	require.Equal(t, "a b", Trim(" \t\r\na b\n\r\t "))
	require.Equal(t, "", Trim(" \t "))

	s := "  keep  "
	trimmed := Trim(s)
	require.Equal(t, "keep", trimmed)
	require.True(t, unsafe.StringData(trimmed) == unsafe.StringData(s[2:]), "trim must not copy")
}

func BenchmarkClassifyValueUnit(b *testing.B) {
	raw := []byte("Wavelength      340.0 (nm)   ")

	b.ResetTimer()
	for b.Loop() {
		_, _ = Classify(raw, format.FieldValueUnit, 512)
	}
}
