package extract

import (
	"fmt"

	"github.com/arloliu/bkn/classify"
	"github.com/arloliu/bkn/encoding"
	"github.com/arloliu/bkn/internal/hash"
	"github.com/arloliu/bkn/record"
)

// ExtractRecord decodes the method record whose marker ends at markerEnd.
//
// The stages run in a fixed order with no branching on content:
//  1. skip PointCountOffset and read the uint32 point count
//  2. skip PointArrayOffset from the count field and read the points
//  3. for each schema field: skip its padding, read the length-prefixed
//     text and classify it
//  4. assemble the record
//
// Parameters:
//   - buf: Whole file buffer, never modified
//   - markerEnd: Offset immediately following the record marker
//
// Returns:
//   - record.Record: The decoded record
//   - error: ErrFormat, ErrPatternMismatch or ErrInvalidFieldType wrapped with the failing stage
func (e *Extractor) ExtractRecord(buf []byte, markerEnd int) (record.Record, error) {
	countOff, err := encoding.Skip(buf, markerEnd, e.layout.PointCountOffset, "point count header")
	if err != nil {
		return record.Record{}, fmt.Errorf("record at %d: %w", markerEnd, err)
	}

	count, err := encoding.ReadUint32(buf, countOff, e.engine)
	if err != nil {
		return record.Record{}, fmt.Errorf("record at %d: point count: %w", markerEnd, err)
	}

	pointsOff, err := encoding.Skip(buf, countOff, e.layout.PointArrayOffset, "point array header")
	if err != nil {
		return record.Record{}, fmt.Errorf("record at %d: %w", markerEnd, err)
	}

	points, n, err := encoding.ReadPoints(buf, pointsOff, count, e.layout.PointOrder, e.engine)
	if err != nil {
		return record.Record{}, fmt.Errorf("record at %d: points: %w", markerEnd, err)
	}

	cursor := pointsOff + n
	metadata := make([]record.MetadataField, 0, len(e.layout.Schema))

	for _, spec := range e.layout.Schema {
		cursor, err = encoding.Skip(buf, cursor, spec.Padding, "field padding")
		if err != nil {
			return record.Record{}, fmt.Errorf("record at %d: field %q: %w", markerEnd, spec.Name, err)
		}

		raw, n, err := encoding.ReadLengthPrefixed(buf, cursor, e.engine)
		if err != nil {
			return record.Record{}, fmt.Errorf("record at %d: field %q: %w", markerEnd, spec.Name, err)
		}
		cursor += n

		res, err := classify.Classify(raw, spec.Type, e.layout.MaxFieldLength)
		if err != nil {
			return record.Record{}, fmt.Errorf("record at %d: field %q: %w", markerEnd, spec.Name, err)
		}

		metadata = append(metadata, record.MetadataField{
			Name:  spec.Name,
			Value: res.Value,
			Unit:  res.Unit,
			Raw:   classify.Stored(raw),
		})
	}

	return record.Record{
		Offset:   markerEnd,
		End:      cursor,
		Points:   points,
		Metadata: metadata,
		Checksum: hash.Sum(buf[markerEnd:cursor]),
	}, nil
}
