package layout

import (
	"fmt"
	"slices"

	"github.com/arloliu/bkn/endian"
	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/format"
)

// FieldSpec describes one metadata field of the schema.
type FieldSpec struct {
	// Name is the schema name reported for the field.
	Name string `yaml:"name"`
	// Type selects the classification rule applied to the field text.
	Type format.FieldType `yaml:"type"`
	// Padding is the number of bytes skipped before the field's length prefix.
	Padding int `yaml:"padding"`
}

// Schema is the ordered list of metadata fields of a method record.
type Schema []FieldSpec

// Names returns the field names in schema order.
func (s Schema) Names() []string {
	names := make([]string, len(s))
	for i, f := range s {
		names[i] = f.Name
	}

	return names
}

// Layout carries every constant needed to decode a method record.
type Layout struct {
	Marker           []byte
	PointCountOffset int
	PointArrayOffset int
	ByteOrder        format.ByteOrder
	PointOrder       format.PointOrder
	MaxFieldLength   int
	Schema           Schema
}

// defaultSchema mirrors the metadata run written by the kinetics application.
var defaultSchema = Schema{
	{Name: FieldSampleName, Type: format.FieldPlain},
	{Name: FieldCollectionTime, Type: format.FieldLabeled},
	{Name: FieldOperatorName, Type: format.FieldLabeled},
	{Name: FieldInstrument, Type: format.FieldLabeled},
	{Name: FieldInstrumentVersion, Type: format.FieldLabeled},
	{Name: FieldWavelength, Type: format.FieldValueUnit},
	{Name: FieldOrdinateMode, Type: format.FieldValueUnit},
	{Name: FieldAveTime, Type: format.FieldValueUnit},
	{Name: FieldCycleTime, Type: format.FieldValueUnit},
	{Name: FieldStopTime, Type: format.FieldValueUnit},
	{Name: FieldTemperature, Type: format.FieldValueUnit},
	{Name: FieldComments, Type: format.FieldPlain},
	{Name: FieldEndMethod, Type: format.FieldPlain},
}

// DefaultSchema returns a copy of the built-in schema.
func DefaultSchema() Schema {
	return slices.Clone(defaultSchema)
}

// Default returns the layout of BKN files produced by the kinetics application.
func Default() Layout {
	return Layout{
		Marker:           []byte(DefaultMarker),
		PointCountOffset: PointCountOffset,
		PointArrayOffset: PointArrayOffset,
		ByteOrder:        format.LittleEndian,
		PointOrder:       format.TimeFirst,
		MaxFieldLength:   MaxFieldTextLength,
		Schema:           DefaultSchema(),
	}
}

// Clone returns a deep copy of the layout.
func (l Layout) Clone() Layout {
	l.Marker = slices.Clone(l.Marker)
	l.Schema = slices.Clone(l.Schema)

	return l
}

// Engine returns the endian engine for the layout's byte order.
func (l Layout) Engine() endian.EndianEngine {
	return endian.ForByteOrder(l.ByteOrder)
}

// Validate checks that the layout can describe a method record.
//
// Returns:
//   - error: ErrInvalidLayout or ErrInvalidFieldType wrapped with the offending value
func (l Layout) Validate() error {
	if len(l.Marker) == 0 {
		return fmt.Errorf("%w: empty marker", errs.ErrInvalidLayout)
	}
	if l.PointCountOffset < 0 {
		return fmt.Errorf("%w: negative point count offset %d", errs.ErrInvalidLayout, l.PointCountOffset)
	}
	if l.PointArrayOffset < PointCountSize {
		return fmt.Errorf("%w: point array offset %d overlaps the point count", errs.ErrInvalidLayout, l.PointArrayOffset)
	}
	if l.ByteOrder != format.LittleEndian && l.ByteOrder != format.BigEndian {
		return fmt.Errorf("%w: byte order %d", errs.ErrInvalidLayout, l.ByteOrder)
	}
	if l.PointOrder != format.TimeFirst && l.PointOrder != format.AbsorbanceFirst {
		return fmt.Errorf("%w: point order %d", errs.ErrInvalidLayout, l.PointOrder)
	}
	if l.MaxFieldLength <= 0 {
		return fmt.Errorf("%w: max field length %d", errs.ErrInvalidLayout, l.MaxFieldLength)
	}
	if len(l.Schema) == 0 {
		return fmt.Errorf("%w: empty schema", errs.ErrInvalidLayout)
	}

	for i, f := range l.Schema {
		if f.Name == "" {
			return fmt.Errorf("%w: schema entry %d has no name", errs.ErrInvalidLayout, i)
		}
		switch f.Type {
		case format.FieldPlain, format.FieldLabeled, format.FieldValueUnit:
		default:
			return fmt.Errorf("%w: schema entry %q type %d", errs.ErrInvalidFieldType, f.Name, f.Type)
		}
		if f.Padding < 0 {
			return fmt.Errorf("%w: schema entry %q has negative padding %d", errs.ErrInvalidLayout, f.Name, f.Padding)
		}
	}

	return nil
}
