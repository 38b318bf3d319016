package render

import (
	"bytes"
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/format"
	"github.com/arloliu/bkn/record"
	"github.com/arloliu/bkn/regression"
)

func sampleSet() record.RecordSet {
	return record.RecordSet{
		{
			Offset: 15,
			End:    1200,
			Points: []record.Point{
				{Time: 1.5, Absorbance: 0.1},
				{Time: 2.5, Absorbance: 0.2},
			},
			Metadata: []record.MetadataField{
				{Name: "Sample Name", Value: "S1", Raw: "S1"},
				{Name: "Wavelength", Value: "340.0", Unit: "nm", Raw: "Wavelength   340.0 (nm)"},
			},
			Checksum: 0x9f3a6d2c11b04e7a,
		},
	}
}

func TestJSON_TypedMetadata(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, JSON(&out, sampleSet()))

	want := `[{"points":[{"time":1.5000000000,"absorbance":0.1000000015},{"time":2.5000000000,"absorbance":0.2000000030}],` +
		`"meta":[{"name":"Sample Name","value":"S1","units":""},{"name":"Wavelength","value":"340.0","units":"nm"}]}]` + "\n"
	require.Equal(t, want, out.String())
}

func TestJSON_PlainMetadataWithChecksum(t *testing.T) {
	var out bytes.Buffer
	err := JSON(&out, sampleSet(), WithMetadataMode(format.MetadataPlain), WithChecksum(true))
	require.NoError(t, err)

	want := `[{"points":[{"time":1.5000000000,"absorbance":0.1000000015},{"time":2.5000000000,"absorbance":0.2000000030}],` +
		`"metadata":["S1","Wavelength   340.0 (nm)"],"checksum":"9f3a6d2c11b04e7a"}]` + "\n"
	require.Equal(t, want, out.String())
}

func TestJSON_PlainMetadataKeepsStoredText(t *testing.T) {
	set := record.RecordSet{{
		Metadata: []record.MetadataField{
			{Name: "Sample Name", Value: "S1", Raw: "  S1\t"},
			{Name: "Comments", Value: "note", Raw: "note   "},
		},
	}}

	out, err := Marshal(set, WithMetadataMode(format.MetadataPlain))
	require.NoError(t, err)
	require.Equal(t, `[{"points":[],"metadata":["  S1\t","note   "]}]`+"\n", string(out))
}

func TestJSON_AbsorbanceFirstKeyOrder(t *testing.T) {
	out, err := Marshal(sampleSet(), WithPointOrder(format.AbsorbanceFirst))
	require.NoError(t, err)
	require.Contains(t, string(out), `{"absorbance":0.1000000015,"time":1.5000000000}`)
}

func TestJSON_Indent(t *testing.T) {
	out, err := Marshal(sampleSet(), WithIndent(true))
	require.NoError(t, err)
	require.Contains(t, string(out), "\n  {\n    \"points\": [\n")

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 1)
}

func TestJSON_EmptySet(t *testing.T) {
	out, err := Marshal(nil)
	require.NoError(t, err)
	require.Equal(t, "[]\n", string(out))

	out, err = Marshal(record.RecordSet{{}})
	require.NoError(t, err)
	require.Equal(t, `[{"points":[]}]`+"\n", string(out))
}

func TestJSON_ChecksumIsZeroPadded(t *testing.T) {
	set := sampleSet()
	set[0].Checksum = 0xab

	out, err := Marshal(set, WithChecksum(true))
	require.NoError(t, err)
	require.Contains(t, string(out), `"checksum":"00000000000000ab"`)
}

func TestJSON_EscapesText(t *testing.T) {
	set := record.RecordSet{{
		Metadata: []record.MetadataField{{Name: "Comments", Value: `a "quoted" <note>`}},
	}}

	out, err := Marshal(set)
	require.NoError(t, err)
	require.Contains(t, string(out), `"value":"a \"quoted\" <note>"`)
}

func TestJSON_InvalidOptions(t *testing.T) {
	var out bytes.Buffer

	err := JSON(&out, sampleSet(), WithMetadataMode(format.MetadataMode(9)))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
	require.Zero(t, out.Len())

	err = JSON(&out, sampleSet(), WithPointOrder(format.PointOrder(0)))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
	require.Zero(t, out.Len())
}

func TestJSON_Fit(t *testing.T) {
	set := sampleSet()
	set = append(set, record.Record{Points: []record.Point{{Time: 1, Absorbance: 0.5}}})

	out, err := Marshal(set, WithFit(regression.WithModels(regression.ModelTypeLinear)))
	require.NoError(t, err)

	var decoded []struct {
		Fit *struct {
			Model        string    `json:"model"`
			Coefficients []float64 `json:"coefficients"`
			RSquared     float64   `json:"r2"`
			Rate         float64   `json:"rate"`
			Points       int       `json:"points"`
		} `json:"fit"`
	}
	require.NoError(t, json.Unmarshal(out, &decoded))
	require.Len(t, decoded, 2)

	fit := decoded[0].Fit
	require.NotNil(t, fit)
	require.Equal(t, "linear", fit.Model)
	require.Equal(t, 2, fit.Points)
	require.InDelta(t, 0.1, fit.Rate, 1e-6)
	require.Len(t, fit.Coefficients, 2)
	require.Nil(t, decoded[1].Fit, "a single point cannot be fitted")

	_, err = Marshal(set, WithFit(regression.WithTimeWindow(5, 1)))
	require.ErrorIs(t, err, errs.ErrInvalidConfig)
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("disk full")
}

func TestJSON_WriteFailure(t *testing.T) {
	err := JSON(failingWriter{}, sampleSet())
	require.ErrorIs(t, err, errs.ErrIO)
	require.Contains(t, err.Error(), "disk full")
}

func TestAppendDecimal(t *testing.T) {
	tests := []struct {
		in   float32
		want string
	}{
		{0, "0.0000000000"},
		{1.5, "1.5000000000"},
		{-0.25, "-0.2500000000"},
		{0.1, "0.1000000015"},
		{1e6, "1000000.0000000000"},
		{float32(math.NaN()), "null"},
		{float32(math.Inf(1)), "null"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			require.Equal(t, tt.want, string(AppendDecimal(nil, tt.in)))
		})
	}

	raw, err := json.Marshal(struct {
		V Decimal `json:"v"`
	}{V: 2.5})
	require.NoError(t, err)
	require.Equal(t, `{"v":2.5000000000}`, string(raw))

	raw, err = json.Marshal([]Decimal{Decimal(math.NaN()), 1})
	require.NoError(t, err)
	require.Equal(t, `[null,1.0000000000]`, string(raw))
}

func BenchmarkMarshal(b *testing.B) {
	rec := sampleSet()[0]
	rec.Points = make([]record.Point, 2000)
	for i := range rec.Points {
		rec.Points[i] = record.Point{Time: float32(i) * 0.5, Absorbance: float32(i) * 0.001}
	}
	set := record.RecordSet{rec, rec, rec}

	b.ReportAllocs()
	for b.Loop() {
		_, _ = Marshal(set)
	}
}
