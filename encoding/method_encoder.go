package encoding

import (
	"fmt"

	"github.com/arloliu/bkn/endian"
	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/internal/pool"
	"github.com/arloliu/bkn/layout"
	"github.com/arloliu/bkn/record"
)

// MethodEncoder writes method records in the BKN layout.
//
// It is the inverse of the extraction pipeline and is used to build synthetic
// files. Unused layout regions are written as zero bytes.
//
// Each method is encoded as:
//   - marker
//   - PointCountOffset zero bytes
//   - point count (uint32)
//   - PointArrayOffset - 4 zero bytes
//   - points (count × 8 bytes)
//   - per schema field: Padding zero bytes, uint32 length, text
type MethodEncoder struct {
	buf    *pool.ByteBuffer
	layout layout.Layout
	engine endian.EndianEngine
	count  int
}

// NewMethodEncoder creates a method encoder for the given layout.
//
// Returns:
//   - *MethodEncoder: A new encoder backed by a pooled buffer
//   - error: The layout validation error, if any
func NewMethodEncoder(l layout.Layout) (*MethodEncoder, error) {
	if err := l.Validate(); err != nil {
		return nil, err
	}

	return &MethodEncoder{
		buf:    pool.GetMethodBuffer(),
		layout: l,
		engine: l.Engine(),
	}, nil
}

// WriteFiller appends arbitrary bytes between methods, such as file headers.
func (e *MethodEncoder) WriteFiller(data []byte) {
	e.buf.MustWrite(data)
}

// WriteMethod appends one complete method record.
//
// Parameters:
//   - points: Points to store; the count field is set to len(points)
//   - fields: Raw field texts, one per schema entry in schema order
//
// Returns:
//   - error: ErrInvalidLayout if len(fields) does not match the schema
func (e *MethodEncoder) WriteMethod(points []record.Point, fields []string) error {
	if len(fields) != len(e.layout.Schema) {
		return fmt.Errorf("%w: %d field texts for a schema of %d fields",
			errs.ErrInvalidLayout, len(fields), len(e.layout.Schema))
	}

	e.buf.MustWrite(e.layout.Marker)
	e.buf.WriteZeros(e.layout.PointCountOffset)
	e.buf.B = e.engine.AppendUint32(e.buf.B, uint32(len(points))) //nolint:gosec
	e.buf.WriteZeros(e.layout.PointArrayOffset - layout.PointCountSize)

	e.buf.Grow(len(points) * layout.PointSize)
	e.buf.B = AppendPoints(e.buf.B, points, e.layout.PointOrder, e.engine)

	for i, spec := range e.layout.Schema {
		e.buf.WriteZeros(spec.Padding)
		e.buf.B = AppendLengthPrefixed(e.buf.B, []byte(fields[i]), e.engine)
	}

	e.count++

	return nil
}

// Bytes returns the encoded data.
//
// The returned slice shares the underlying buffer with the encoder and is
// only valid until Reset.
func (e *MethodEncoder) Bytes() []byte {
	return e.buf.Bytes()
}

// Len returns the number of methods written.
func (e *MethodEncoder) Len() int {
	return e.count
}

// Size returns the total size of encoded data in bytes.
func (e *MethodEncoder) Size() int {
	return e.buf.Len()
}

// Reset returns the buffer to the pool. The encoder must not be used afterwards.
func (e *MethodEncoder) Reset() {
	if e.buf != nil {
		pool.PutMethodBuffer(e.buf)
		e.buf = nil
	}
	e.count = 0
}
