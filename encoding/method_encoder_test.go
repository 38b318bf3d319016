package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/format"
	"github.com/arloliu/bkn/layout"
	"github.com/arloliu/bkn/record"
)

func testLayout() layout.Layout {
	l := layout.Default()
	l.Schema = layout.Schema{
		{Name: "Sample Name", Type: format.FieldPlain},
		{Name: "Operator Name", Type: format.FieldLabeled, Padding: 3},
	}

	return l
}

func TestMethodEncoder_Layout(t *testing.T) {
	l := testLayout()
	enc, err := NewMethodEncoder(l)
	require.NoError(t, err)
	defer enc.Reset()

	enc.WriteFiller([]byte("HDR"))
	points := []record.Point{{Time: 1.5, Absorbance: 0.1}}
	require.NoError(t, enc.WriteMethod(points, []string{"S1", "Operator Name: Jane"}))
	require.Equal(t, 1, enc.Len())

	buf := enc.Bytes()
	require.Equal(t, enc.Size(), len(buf))

	markerEnd, ok := FindMarker(buf, l.Marker, 0)
	require.True(t, ok)
	require.Equal(t, 3+len(layout.DefaultMarker), markerEnd)

	engine := l.Engine()
	countOff := markerEnd + layout.PointCountOffset
	count, err := ReadUint32(buf, countOff, engine)
	require.NoError(t, err)
	require.Equal(t, uint32(1), count)

	got, n, err := ReadPoints(buf, countOff+layout.PointArrayOffset, count, l.PointOrder, engine)
	require.NoError(t, err)
	require.Equal(t, points, got)

	off := countOff + layout.PointArrayOffset + n
	field, n, err := ReadLengthPrefixed(buf, off, engine)
	require.NoError(t, err)
	require.Equal(t, "S1", string(field))

	off += n + 3
	field, n, err = ReadLengthPrefixed(buf, off, engine)
	require.NoError(t, err)
	require.Equal(t, "Operator Name: Jane", string(field))
	require.Equal(t, len(buf), off+n)
}

func TestMethodEncoder_FieldCountMismatch(t *testing.T) {
	enc, err := NewMethodEncoder(testLayout())
	require.NoError(t, err)
	defer enc.Reset()

	err = enc.WriteMethod(nil, []string{"only one"})
	require.ErrorIs(t, err, errs.ErrInvalidLayout)
	require.Equal(t, 0, enc.Len())
	require.Equal(t, 0, enc.Size())
}

func TestNewMethodEncoder_InvalidLayout(t *testing.T) {
	l := testLayout()
	l.Marker = nil

	_, err := NewMethodEncoder(l)
	require.ErrorIs(t, err, errs.ErrInvalidLayout)
}
