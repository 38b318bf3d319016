// Package endian provides byte order utilities for reading and writing BKN files.
//
// The BKN layout stores every integer and float in the byte order of the
// instrument PC, which is little-endian for all files observed so far. The
// engine is still threaded through the readers so a big-endian profile can be
// selected from configuration without touching the decoding code.
//
// # Basic Usage
//
//	engine := endian.GetLittleEndianEngine()
//	count := engine.Uint32(buf[off:])
//	time := endian.Float32(engine, buf[off+4:])
//
// # Thread Safety
//
// All functions in this package are safe for concurrent use. The returned
// EndianEngine instances are immutable and stateless.
package endian

import (
	"encoding/binary"
	"math"

	"github.com/arloliu/bkn/format"
)

// EndianEngine combines ByteOrder and AppendByteOrder interfaces from encoding/binary
// into a single interface for convenient byte order operations.
//
// This interface is satisfied by binary.LittleEndian and binary.BigEndian.
type EndianEngine interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

// GetLittleEndianEngine returns the little-endian engine.
func GetLittleEndianEngine() EndianEngine {
	return binary.LittleEndian
}

// GetBigEndianEngine returns the big-endian engine.
func GetBigEndianEngine() EndianEngine {
	return binary.BigEndian
}

// ForByteOrder returns the engine for a configured byte order.
// Unknown values fall back to little-endian.
func ForByteOrder(order format.ByteOrder) EndianEngine {
	if order == format.BigEndian {
		return GetBigEndianEngine()
	}

	return GetLittleEndianEngine()
}

// Float32 decodes an IEEE-754 single precision value from the first 4 bytes of b.
// It panics if b is shorter than 4 bytes, like the engine's Uint32.
func Float32(engine EndianEngine, b []byte) float32 {
	return math.Float32frombits(engine.Uint32(b))
}

// AppendFloat32 appends the IEEE-754 encoding of v to b.
func AppendFloat32(engine EndianEngine, b []byte, v float32) []byte {
	return engine.AppendUint32(b, math.Float32bits(v))
}
