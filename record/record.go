// Package record defines the kinetics records produced by the extractor.
//
// Every value here is written once by the extraction pipeline and treated as
// read-only afterwards.
package record

// Point is one (time, absorbance) sample of a kinetics run.
type Point struct {
	Time       float32
	Absorbance float32
}

// MetadataField is one schema-named metadata entry of a method.
//
// Name comes from the schema, not from the file. Unit is only set for
// value-with-unit fields. Raw is the field text exactly as stored in the file,
// cut at the first NUL byte.
type MetadataField struct {
	Name  string
	Value string
	Unit  string
	Raw   string
}

// Record is one method/run found in a BKN file.
type Record struct {
	// Offset is the buffer offset immediately following the record marker.
	Offset int
	// End is the buffer offset immediately following the last metadata field.
	End int
	// Points holds exactly the number of points declared by the file.
	Points []Point
	// Metadata holds one entry per schema field, in schema order.
	Metadata []MetadataField
	// Checksum is the xxHash64 of the record bytes [Offset, End).
	Checksum uint64
}

// Field returns the metadata entry with the given schema name.
func (r Record) Field(name string) (MetadataField, bool) {
	for _, f := range r.Metadata {
		if f.Name == name {
			return f, true
		}
	}

	return MetadataField{}, false
}

// Len returns the number of points in the record.
func (r Record) Len() int {
	return len(r.Points)
}

// RecordSet is the ordered list of records of one file, in marker discovery order.
type RecordSet []Record

// TotalPoints returns the number of points across all records.
func (s RecordSet) TotalPoints() int {
	total := 0
	for _, r := range s {
		total += len(r.Points)
	}

	return total
}
