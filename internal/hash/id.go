// Package hash wraps the xxHash64 function used for record checksums.
package hash

import "github.com/cespare/xxhash/v2"

// Sum computes the xxHash64 of a byte span, used as the record checksum.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
