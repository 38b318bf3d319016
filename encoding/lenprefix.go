package encoding

import (
	"fmt"

	"github.com/arloliu/bkn/endian"
	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/layout"
)

// ReadLengthPrefixed reads one metadata field: a uint32 length L followed by L raw bytes.
//
// The returned slice aliases buf; interpretation as text is left to the classifier.
//
// Returns:
//   - []byte: The L field bytes
//   - int: Number of bytes consumed (4 + L)
//   - error: ErrFormat if the prefix or the field body runs past the end of buf
func ReadLengthPrefixed(buf []byte, offset int, engine endian.EndianEngine) ([]byte, int, error) {
	avail, err := remaining(buf, offset, "field length")
	if err != nil {
		return nil, 0, err
	}
	if avail < layout.LengthPrefixSize {
		return nil, 0, fmt.Errorf("%w: need %d bytes for field length at offset %d, have %d",
			errs.ErrFormat, layout.LengthPrefixSize, offset, avail)
	}

	length := uint64(engine.Uint32(buf[offset:]))
	body := avail - layout.LengthPrefixSize
	if length > uint64(body) {
		return nil, 0, fmt.Errorf("%w: field of %d bytes at offset %d, have %d",
			errs.ErrFormat, length, offset+layout.LengthPrefixSize, body)
	}

	start := offset + layout.LengthPrefixSize
	end := start + int(length)

	return buf[start:end], layout.LengthPrefixSize + int(length), nil
}

// AppendLengthPrefixed appends the uint32 length of data followed by data to dst.
func AppendLengthPrefixed(dst, data []byte, engine endian.EndianEngine) []byte {
	dst = engine.AppendUint32(dst, uint32(len(data))) //nolint:gosec
	return append(dst, data...)
}
