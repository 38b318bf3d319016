package encoding

import (
	"fmt"

	"github.com/arloliu/bkn/endian"
	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/format"
	"github.com/arloliu/bkn/layout"
	"github.com/arloliu/bkn/record"
)

// ReadPoints reads count consecutive points starting at offset.
//
// Each point is two float32 values; order selects which one is the time.
//
// Parameters:
//   - buf: Whole file buffer
//   - offset: Offset of the first point
//   - count: Number of points declared by the record
//   - order: Storage order of the two values of a point
//   - engine: Byte order of the file
//
// Returns:
//   - []record.Point: Decoded points, len == count
//   - int: Number of bytes consumed (count × 8)
//   - error: ErrFormat if the array runs past the end of buf
func ReadPoints(buf []byte, offset int, count uint32, order format.PointOrder, engine endian.EndianEngine) ([]record.Point, int, error) {
	avail, err := remaining(buf, offset, "point array")
	if err != nil {
		return nil, 0, err
	}

	need := uint64(count) * layout.PointSize
	if need > uint64(avail) {
		return nil, 0, fmt.Errorf("%w: point array of %d points needs %d bytes at offset %d, have %d",
			errs.ErrFormat, count, need, offset, avail)
	}

	points := make([]record.Point, count)
	pos := offset
	for i := range points {
		first := endian.Float32(engine, buf[pos:])
		second := endian.Float32(engine, buf[pos+layout.PointValueSize:])
		if order == format.AbsorbanceFirst {
			points[i] = record.Point{Absorbance: first, Time: second}
		} else {
			points[i] = record.Point{Time: first, Absorbance: second}
		}
		pos += layout.PointSize
	}

	return points, int(need), nil
}

// AppendPoints appends the encoding of points to dst in the given order.
func AppendPoints(dst []byte, points []record.Point, order format.PointOrder, engine endian.EndianEngine) []byte {
	for _, p := range points {
		if order == format.AbsorbanceFirst {
			dst = endian.AppendFloat32(engine, dst, p.Absorbance)
			dst = endian.AppendFloat32(engine, dst, p.Time)
		} else {
			dst = endian.AppendFloat32(engine, dst, p.Time)
			dst = endian.AppendFloat32(engine, dst, p.Absorbance)
		}
	}

	return dst
}
