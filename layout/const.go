package layout

// DefaultMarker is the byte sequence that starts every method record.
const DefaultMarker = "TContinuumStore"

// offsets and sizes within a method record
const (
	PointCountOffset   = 0x1C  // distance from the marker end to the uint32 point count
	PointArrayOffset   = 0x3EC // distance from the point count field to the first point
	PointValueSize     = 4     // size of one float32 component of a point
	PointSize          = 2 * PointValueSize
	PointCountSize     = 4   // size of the point count field
	LengthPrefixSize   = 4   // size of the uint32 length prefix of a metadata field
	MaxFieldTextLength = 512 // bound on classified field text; longer fields are truncated
)

// default schema field names
const (
	FieldSampleName        = "Sample Name"
	FieldCollectionTime    = "Collection Time"
	FieldOperatorName      = "Operator Name"
	FieldInstrument        = "Instrument"
	FieldInstrumentVersion = "Instrument Version"
	FieldWavelength        = "Wavelength"
	FieldOrdinateMode      = "Ordinate Mode"
	FieldAveTime           = "Ave Time"
	FieldCycleTime         = "Cycle Time"
	FieldStopTime          = "Stop Time"
	FieldTemperature       = "Temperature"
	FieldComments          = "Comments"
	FieldEndMethod         = "End Method"
)
