package render

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/format"
	"github.com/arloliu/bkn/internal/options"
	"github.com/arloliu/bkn/internal/pool"
	"github.com/arloliu/bkn/record"
	"github.com/arloliu/bkn/regression"
)

// FractionDigits is the number of digits printed after the decimal point.
const FractionDigits = 10

// Decimal is a float32 rendered with FractionDigits fixed digits.
// NaN and infinities have no JSON literal and render as null.
type Decimal float32

// AppendDecimal appends v formatted the way Decimal renders it.
func AppendDecimal(dst []byte, v float32) []byte {
	f := float64(v)
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return append(dst, "null"...)
	}

	return strconv.AppendFloat(dst, f, 'f', FractionDigits, 64)
}

// MarshalJSON implements json.Marshaler.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return AppendDecimal(make([]byte, 0, 24), float32(d)), nil
}

// pointList renders points with keys in storage order.
type pointList struct {
	points []record.Point
	order  format.PointOrder
}

func (p pointList) MarshalJSON() ([]byte, error) {
	out := make([]byte, 0, 2+len(p.points)*48)
	out = append(out, '[')
	for i, pt := range p.points {
		if i > 0 {
			out = append(out, ',')
		}
		if p.order == format.AbsorbanceFirst {
			out = append(out, `{"absorbance":`...)
			out = AppendDecimal(out, pt.Absorbance)
			out = append(out, `,"time":`...)
			out = AppendDecimal(out, pt.Time)
		} else {
			out = append(out, `{"time":`...)
			out = AppendDecimal(out, pt.Time)
			out = append(out, `,"absorbance":`...)
			out = AppendDecimal(out, pt.Absorbance)
		}
		out = append(out, '}')
	}

	return append(out, ']'), nil
}

type typedField struct {
	Name  string `json:"name"`
	Value string `json:"value"`
	Units string `json:"units"`
}

type fitDoc struct {
	Model        string    `json:"model"`
	Formula      string    `json:"formula"`
	Coefficients []float64 `json:"coefficients"`
	RSquared     float64   `json:"r2"`
	RMSE         float64   `json:"rmse"`
	Rate         float64   `json:"rate"`
	Points       int       `json:"points"`
}

type recordDoc struct {
	Points   pointList    `json:"points"`
	Meta     []typedField `json:"meta,omitempty"`
	Metadata []string     `json:"metadata,omitempty"`
	Checksum string       `json:"checksum,omitempty"`
	Fit      *fitDoc      `json:"fit,omitempty"`
}

func newFitDoc(result *regression.Result) *fitDoc {
	if result == nil {
		return nil
	}

	return &fitDoc{
		Model:        result.BestFit.Type.String(),
		Formula:      result.BestFit.Formula,
		Coefficients: result.BestFit.Coefficients,
		RSquared:     result.BestFit.RSquared,
		RMSE:         result.BestFit.RMSE,
		Rate:         result.Rate,
		Points:       result.Points,
	}
}

func newRecordDoc(rec record.Record, fit *regression.Result, cfg *RendererConfig) recordDoc {
	doc := recordDoc{Points: pointList{points: rec.Points, order: cfg.pointOrder}}

	switch cfg.metadataMode {
	case format.MetadataPlain:
		doc.Metadata = make([]string, len(rec.Metadata))
		for i, f := range rec.Metadata {
			doc.Metadata[i] = f.Raw
		}
	default:
		doc.Meta = make([]typedField, len(rec.Metadata))
		for i, f := range rec.Metadata {
			doc.Meta[i] = typedField{Name: f.Name, Value: f.Value, Units: f.Unit}
		}
	}

	if cfg.checksum {
		doc.Checksum = fmt.Sprintf("%016x", rec.Checksum)
	}
	doc.Fit = newFitDoc(fit)

	return doc
}

func encode(bb *pool.ByteBuffer, set record.RecordSet, opts []Option) error {
	cfg := defaultConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return err
	}

	var fits []*regression.Result
	if cfg.fit {
		var err error
		if fits, err = regression.AnalyzeEach(set, cfg.fitOptions...); err != nil {
			return err
		}
	}

	docs := make([]recordDoc, len(set))
	for i, rec := range set {
		var fit *regression.Result
		if fits != nil {
			fit = fits[i]
		}
		docs[i] = newRecordDoc(rec, fit, cfg)
	}

	enc := json.NewEncoder(bb)
	enc.SetEscapeHTML(false)
	if cfg.indent {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(docs); err != nil {
		return fmt.Errorf("%w: encode json: %w", errs.ErrIO, err)
	}

	return nil
}

// Marshal renders set and returns the JSON document, terminated by a newline.
func Marshal(set record.RecordSet, opts ...Option) ([]byte, error) {
	bb := pool.GetOutputBuffer()
	defer pool.PutOutputBuffer(bb)

	if err := encode(bb, set, opts); err != nil {
		return nil, err
	}

	return bytes.Clone(bb.Bytes()), nil
}

// JSON renders set and writes the document to w.
//
// Parameters:
//   - w: Destination; nothing is written when rendering fails
//   - set: Records in output order
//   - opts: Rendering options
//
// Returns:
//   - error: ErrInvalidConfig for a bad option, ErrIO for encoding or write failures
func JSON(w io.Writer, set record.RecordSet, opts ...Option) error {
	bb := pool.GetOutputBuffer()
	defer pool.PutOutputBuffer(bb)

	if err := encode(bb, set, opts); err != nil {
		return err
	}

	if _, err := bb.WriteTo(w); err != nil {
		return fmt.Errorf("%w: write output: %w", errs.ErrIO, err)
	}

	return nil
}
