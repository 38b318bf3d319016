package encoding

import (
	"fmt"

	"github.com/arloliu/bkn/endian"
	"github.com/arloliu/bkn/errs"
)

// remaining returns the number of bytes available at offset, or an ErrFormat
// when offset lies outside the buffer.
func remaining(buf []byte, offset int, what string) (int, error) {
	if offset < 0 || offset > len(buf) {
		return 0, fmt.Errorf("%w: %s offset %d outside buffer of %d bytes", errs.ErrFormat, what, offset, len(buf))
	}

	return len(buf) - offset, nil
}

// Skip returns offset+n after checking that the skipped region lies inside buf.
func Skip(buf []byte, offset, n int, what string) (int, error) {
	avail, err := remaining(buf, offset, what)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > avail {
		return 0, fmt.Errorf("%w: cannot skip %d bytes of %s at offset %d (have %d)", errs.ErrFormat, n, what, offset, avail)
	}

	return offset + n, nil
}

// ReadUint32 reads a 32-bit unsigned integer at offset.
//
// Returns:
//   - uint32: Decoded value
//   - error: ErrFormat if fewer than 4 bytes are available at offset
func ReadUint32(buf []byte, offset int, engine endian.EndianEngine) (uint32, error) {
	avail, err := remaining(buf, offset, "uint32")
	if err != nil {
		return 0, err
	}
	if avail < 4 {
		return 0, fmt.Errorf("%w: need 4 bytes for uint32 at offset %d, have %d", errs.ErrFormat, offset, avail)
	}

	return engine.Uint32(buf[offset:]), nil
}
