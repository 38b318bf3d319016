// Package collision detects records that repeat within one file.
package collision

// Kind classifies a tracked record against the ones seen before it.
type Kind uint8

const (
	// Unique means neither the checksum nor the sample name was seen before.
	Unique Kind = iota
	// Duplicate means an earlier record has the same bytes.
	Duplicate
	// NameReused means an earlier record with different bytes has the same sample name.
	NameReused
)

func (k Kind) String() string {
	switch k {
	case Unique:
		return "unique"
	case Duplicate:
		return "duplicate"
	case NameReused:
		return "name-reused"
	default:
		return "unknown"
	}
}

// Tracker tracks record checksums and sample names in discovery order.
//
// A Tracker is not safe for concurrent use; records are tracked after
// extraction has finished.
type Tracker struct {
	checksums  map[uint64]int // checksum → first record index
	names      map[string]int // sample name → first record index
	count      int
	duplicates int
	reused     int
}

// NewTracker creates a new tracker sized for capacity records.
func NewTracker(capacity int) *Tracker {
	return &Tracker{
		checksums: make(map[uint64]int, capacity),
		names:     make(map[string]int, capacity),
	}
}

// Track records one record.
//
// Parameters:
//   - index: The record's position in the set
//   - checksum: The record's checksum
//   - name: The record's sample name; empty names are not compared
//
// Returns:
//   - Kind: How the record relates to earlier ones
//   - int: Index of the earlier record for Duplicate and NameReused, -1 otherwise
func (t *Tracker) Track(index int, checksum uint64, name string) (Kind, int) {
	t.count++

	if first, exists := t.checksums[checksum]; exists {
		t.duplicates++
		return Duplicate, first
	}
	t.checksums[checksum] = index

	if name == "" {
		return Unique, -1
	}
	if first, exists := t.names[name]; exists {
		t.reused++
		return NameReused, first
	}
	t.names[name] = index

	return Unique, -1
}

// Count returns the number of tracked records.
func (t *Tracker) Count() int {
	return t.count
}

// Duplicates returns the number of records that repeat an earlier record's bytes.
func (t *Tracker) Duplicates() int {
	return t.duplicates
}

// NameReuses returns the number of distinct records that reuse an earlier sample name.
func (t *Tracker) NameReuses() int {
	return t.reused
}

// Reset clears all tracked records while keeping the map capacity.
func (t *Tracker) Reset() {
	clear(t.checksums)
	clear(t.names)
	t.count = 0
	t.duplicates = 0
	t.reused = 0
}
