// Package compress provides the codecs used for compressed BKN inputs and JSON outputs.
//
// Instrument exports are often archived compressed, and a converted batch of
// kinetics runs compresses well. All codecs produce and accept the standard
// container format of their algorithm, so files written by the zstd, s2 and
// lz4 command line tools can be read back and vice versa:
//
//   - None: data passes through unchanged
//   - Zstd: zstd frames (klauspost/compress, or valyala/gozstd with -tags gozstd)
//   - S2: s2 stream format (klauspost/compress/s2)
//   - LZ4: lz4 frame format (pierrec/lz4/v4)
//
// # Usage
//
//	codec, err := compress.CreateCodec(format.CompressionZstd, "output")
//	if err != nil {
//	    return err
//	}
//	packed, err := codec.Compress(jsonBytes)
//
// Codecs are stateless values and safe for concurrent use; encoders and
// decoders that benefit from reuse are pooled internally.
package compress
