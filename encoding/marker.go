package encoding

// FindMarker scans buf for marker starting at start and returns the offset
// immediately following the first full match.
//
// The scan compares bytes positionally. When a partial match fails, the
// position is rewound by the number of matched bytes and matching restarts,
// so overlapping candidates such as "AAB" inside "AAAB" are still found. The
// worst case is O(len(buf)·len(marker)).
//
// Parameters:
//   - buf: Buffer to scan
//   - marker: Byte sequence to find (an empty marker is never found)
//   - start: Offset to start scanning from (negative values scan from 0)
//
// Returns:
//   - int: Offset one past the match, or len(buf) when no match was found
//   - bool: Whether a match was found
func FindMarker(buf, marker []byte, start int) (int, bool) {
	if len(marker) == 0 {
		return len(buf), false
	}

	pos := max(start, 0)
	matched := 0

	for pos < len(buf) {
		if buf[pos] == marker[matched] {
			matched++
			if matched == len(marker) {
				return pos + 1, true
			}
		} else {
			pos -= matched
			matched = 0
		}
		pos++
	}

	return len(buf), false
}

// FindAllMarkers returns the offsets following every marker occurrence in buf,
// in buffer order. Each scan resumes at the previous returned offset.
func FindAllMarkers(buf, marker []byte) []int {
	var offsets []int

	cursor := 0
	for {
		next, ok := FindMarker(buf, marker, cursor)
		if !ok {
			return offsets
		}
		offsets = append(offsets, next)
		cursor = next
	}
}
