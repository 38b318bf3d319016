package compress

// ZstdCompressor reads and writes zstd frames.
//
// The pure Go implementation is used unless the module is built with
// -tags gozstd, which switches to the cgo binding of the reference library.
type ZstdCompressor struct{}

var _ Codec = (*ZstdCompressor)(nil)

// NewZstdCompressor creates a new Zstd codec.
func NewZstdCompressor() ZstdCompressor {
	return ZstdCompressor{}
}
