// Package encoding provides the low-level readers and writers of the BKN binary layout.
//
// The readers work on a whole file held in memory and never panic on short
// input: every read is bounds-checked against the buffer and reports
// errs.ErrFormat with the offset that failed.
//
//   - FindMarker: naive restart byte scanner locating record markers
//   - ReadUint32: bounds-checked 32-bit integer read
//   - ReadPoints: fixed-size (float32, float32) point array reader
//   - ReadLengthPrefixed: uint32 length + raw bytes field reader
//
// The writers (AppendPoints, AppendLengthPrefixed and MethodEncoder) produce
// the same layout and are used to build synthetic files.
//
// For record-level decoding, see: github.com/arloliu/bkn/extract
package encoding
