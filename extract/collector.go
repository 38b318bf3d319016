package extract

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/arloliu/bkn/encoding"
	"github.com/arloliu/bkn/internal/collision"
	"github.com/arloliu/bkn/layout"
	"github.com/arloliu/bkn/record"
)

// Offsets returns the offset following every marker in buf, in buffer order.
func (e *Extractor) Offsets(buf []byte) []int {
	return encoding.FindAllMarkers(buf, e.layout.Marker)
}

// ExtractAll decodes every method record in buf.
//
// Scanning starts at offset 0 and resumes at each returned marker offset
// until no marker is left. Any record failure aborts the run.
//
// Returns:
//   - record.RecordSet: Records in marker discovery order (empty when buf has no marker)
//   - error: The first record error; the set is nil in that case
func (e *Extractor) ExtractAll(buf []byte) (record.RecordSet, error) {
	var (
		set record.RecordSet
		err error
	)

	if e.workers > 1 {
		set, err = e.extractParallel(buf)
	} else {
		set, err = e.extractSequential(buf)
	}
	if err != nil {
		e.sugar.Errorw("extraction failed", "bytes", len(buf), "error", err)
		return nil, err
	}

	e.reportDuplicates(set)
	e.sugar.Infow("extraction finished",
		"bytes", len(buf),
		"records", len(set),
		"points", set.TotalPoints(),
		"workers", e.workers,
	)

	return set, nil
}

func (e *Extractor) extractSequential(buf []byte) (record.RecordSet, error) {
	set := record.RecordSet{}

	cursor := 0
	for {
		next, ok := encoding.FindMarker(buf, e.layout.Marker, cursor)
		if !ok {
			return set, nil
		}

		rec, err := e.ExtractRecord(buf, next)
		if err != nil {
			return nil, err
		}
		e.logRecord(len(set), rec)

		set = append(set, rec)
		cursor = next
	}
}

func (e *Extractor) extractParallel(buf []byte) (record.RecordSet, error) {
	offsets := e.Offsets(buf)
	set := make(record.RecordSet, len(offsets))

	g, ctx := errgroup.WithContext(context.Background())
	g.SetLimit(e.workers)

	for i, off := range offsets {
		g.Go(func() error {
			// Records queued behind a failure are skipped.
			if err := ctx.Err(); err != nil {
				return err
			}

			rec, err := e.ExtractRecord(buf, off)
			if err != nil {
				return err
			}
			e.logRecord(i, rec)
			set[i] = rec

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return set, nil
}

func (e *Extractor) logRecord(index int, rec record.Record) {
	e.sugar.Debugw("record extracted",
		"index", index,
		"offset", rec.Offset,
		"end", rec.End,
		"points", len(rec.Points),
		"checksum", rec.Checksum,
	)
}

// reportDuplicates warns about records with identical bytes, which usually
// means the instrument saved the same run twice, and about distinct records
// sharing a sample name.
func (e *Extractor) reportDuplicates(set record.RecordSet) {
	tracker := collision.NewTracker(len(set))
	for i, rec := range set {
		name := ""
		if f, ok := rec.Field(layout.FieldSampleName); ok {
			name = f.Value
		}

		switch kind, first := tracker.Track(i, rec.Checksum, name); kind {
		case collision.Duplicate:
			e.sugar.Warnw("duplicate record", "index", i, "duplicate_of", first, "checksum", rec.Checksum)
		case collision.NameReused:
			e.sugar.Infow("sample name reused", "index", i, "first", first, "sample_name", name)
		}
	}
}
