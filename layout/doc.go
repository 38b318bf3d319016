// Package layout defines the fixed, reverse-engineered byte layout of a BKN method record.
//
// BKN files carry no index and no self-describing structure. A method record
// is found by a repeating ASCII marker, and everything after the marker sits
// at constant distances that were measured from sample files. This package is
// the single table of those distances, so a layout correction touches one
// declared constant or one Layout value.
//
// # Method Record Structure
//
//	┌─────────────────────────────────────────────────────────┐
//	│ Marker "TContinuumStore" (15 bytes)                     │
//	├─────────────────────────────────────────────────────────┤  <- marker end (record offset)
//	│ Unused (PointCountOffset = 0x1C bytes)                  │
//	├─────────────────────────────────────────────────────────┤
//	│ Point count (uint32)                                    │
//	│ Unused (PointArrayOffset - 4 bytes)                     │
//	├─────────────────────────────────────────────────────────┤  <- count offset + 0x3EC
//	│ Points (count × 8 bytes)                                │
//	│  - float32, float32 in PointOrder                       │
//	├─────────────────────────────────────────────────────────┤
//	│ Metadata fields, one per schema entry, in order:        │
//	│  - Padding (FieldSpec.Padding bytes, usually 0)         │
//	│  - Length (uint32)                                      │
//	│  - Text (Length bytes, not NUL terminated)              │
//	└─────────────────────────────────────────────────────────┘
//
// # Schema
//
// The metadata run has a fixed field count. Each FieldSpec names the field,
// declares how its text is classified (plain, labeled or value-with-unit),
// and declares any padding that precedes it. The last default entry is the
// "End Method" field; it is read like any other field and is never used as a
// sentinel.
package layout
