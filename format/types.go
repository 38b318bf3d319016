package format

import (
	"fmt"
	"strings"

	"github.com/arloliu/bkn/errs"
)

type (
	FieldType       uint8
	PointOrder      uint8
	ByteOrder       uint8
	MetadataMode    uint8
	CompressionType uint8
)

const (
	FieldPlain     FieldType = 0x1 // FieldPlain stores the whole trimmed text as the value.
	FieldLabeled   FieldType = 0x2 // FieldLabeled stores the text after "<label>:" as the value.
	FieldValueUnit FieldType = 0x3 // FieldValueUnit stores "<label>   <value> (<unit>)" as value and unit.

	TimeFirst       PointOrder = 0x1 // TimeFirst means the first stored float of a point is the time.
	AbsorbanceFirst PointOrder = 0x2 // AbsorbanceFirst means the first stored float of a point is the absorbance.

	LittleEndian ByteOrder = 0x1 // LittleEndian is the byte order observed in BKN files.
	BigEndian    ByteOrder = 0x2 // BigEndian is accepted for hand-built test files.

	MetadataTyped MetadataMode = 0x1 // MetadataTyped renders {name, value, units} objects.
	MetadataPlain MetadataMode = 0x2 // MetadataPlain renders the trimmed field texts as strings.

	CompressionNone CompressionType = 0x1 // CompressionNone represents no compression.
	CompressionZstd CompressionType = 0x2 // CompressionZstd represents Zstandard compression.
	CompressionS2   CompressionType = 0x3 // CompressionS2 represents S2 compression.
	CompressionLZ4  CompressionType = 0x4 // CompressionLZ4 represents LZ4 compression.
)

func (t FieldType) String() string {
	switch t {
	case FieldPlain:
		return "plain"
	case FieldLabeled:
		return "labeled"
	case FieldValueUnit:
		return "value-unit"
	default:
		return "unknown"
	}
}

// ParseFieldType parses the names produced by FieldType.String.
func ParseFieldType(s string) (FieldType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "plain":
		return FieldPlain, nil
	case "labeled", "labelled":
		return FieldLabeled, nil
	case "value-unit", "value_unit", "valueunit":
		return FieldValueUnit, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrInvalidFieldType, s)
	}
}

func (t *FieldType) UnmarshalText(text []byte) error {
	v, err := ParseFieldType(string(text))
	if err != nil {
		return err
	}
	*t = v

	return nil
}

func (t FieldType) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (o PointOrder) String() string {
	switch o {
	case TimeFirst:
		return "time-absorbance"
	case AbsorbanceFirst:
		return "absorbance-time"
	default:
		return "unknown"
	}
}

// ParsePointOrder parses "time-absorbance" or "absorbance-time".
func ParsePointOrder(s string) (PointOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "time-absorbance", "time":
		return TimeFirst, nil
	case "absorbance-time", "absorbance":
		return AbsorbanceFirst, nil
	default:
		return 0, fmt.Errorf("%w: point order %q", errs.ErrInvalidConfig, s)
	}
}

func (o *PointOrder) UnmarshalText(text []byte) error {
	v, err := ParsePointOrder(string(text))
	if err != nil {
		return err
	}
	*o = v

	return nil
}

func (o PointOrder) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

func (b ByteOrder) String() string {
	switch b {
	case LittleEndian:
		return "little"
	case BigEndian:
		return "big"
	default:
		return "unknown"
	}
}

// ParseByteOrder parses "little" or "big".
func ParseByteOrder(s string) (ByteOrder, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "little", "le":
		return LittleEndian, nil
	case "big", "be":
		return BigEndian, nil
	default:
		return 0, fmt.Errorf("%w: byte order %q", errs.ErrInvalidConfig, s)
	}
}

func (b *ByteOrder) UnmarshalText(text []byte) error {
	v, err := ParseByteOrder(string(text))
	if err != nil {
		return err
	}
	*b = v

	return nil
}

func (b ByteOrder) MarshalText() ([]byte, error) {
	return []byte(b.String()), nil
}

func (m MetadataMode) String() string {
	switch m {
	case MetadataTyped:
		return "typed"
	case MetadataPlain:
		return "plain"
	default:
		return "unknown"
	}
}

// ParseMetadataMode parses "typed" or "plain".
func ParseMetadataMode(s string) (MetadataMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "typed", "meta":
		return MetadataTyped, nil
	case "plain", "metadata":
		return MetadataPlain, nil
	default:
		return 0, fmt.Errorf("%w: metadata mode %q", errs.ErrInvalidConfig, s)
	}
}

func (m *MetadataMode) UnmarshalText(text []byte) error {
	v, err := ParseMetadataMode(string(text))
	if err != nil {
		return err
	}
	*m = v

	return nil
}

func (m MetadataMode) MarshalText() ([]byte, error) {
	return []byte(m.String()), nil
}

func (c CompressionType) String() string {
	switch c {
	case CompressionNone:
		return "None"
	case CompressionZstd:
		return "Zstd"
	case CompressionS2:
		return "S2"
	case CompressionLZ4:
		return "LZ4"
	default:
		return "Unknown"
	}
}

// ParseCompression parses a compression name, case-insensitive.
func ParseCompression(s string) (CompressionType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "none":
		return CompressionNone, nil
	case "zstd", "zst":
		return CompressionZstd, nil
	case "s2":
		return CompressionS2, nil
	case "lz4":
		return CompressionLZ4, nil
	default:
		return 0, fmt.Errorf("%w: %q", errs.ErrUnknownCompression, s)
	}
}

func (c *CompressionType) UnmarshalText(text []byte) error {
	v, err := ParseCompression(string(text))
	if err != nil {
		return err
	}
	*c = v

	return nil
}

func (c CompressionType) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(c.String())), nil
}

// CompressionFromExtension maps a file name suffix to a compression type.
// Unknown suffixes map to CompressionNone.
func CompressionFromExtension(name string) CompressionType {
	lower := strings.ToLower(name)
	switch {
	case strings.HasSuffix(lower, ".zst"), strings.HasSuffix(lower, ".zstd"):
		return CompressionZstd
	case strings.HasSuffix(lower, ".s2"):
		return CompressionS2
	case strings.HasSuffix(lower, ".lz4"):
		return CompressionLZ4
	default:
		return CompressionNone
	}
}
