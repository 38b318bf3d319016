// Package extract decodes every method record of a BKN file held in memory.
//
// The Extractor combines the marker scanner, the point and field readers of
// the encoding package, and the field classifier:
//
//	ext, err := extract.NewExtractor(
//	    extract.WithLayout(layout.Default()),
//	    extract.WithLogger(logger),
//	)
//	set, err := ext.ExtractAll(data)
//
// Extraction is fail-fast. A record whose layout does not fit the buffer stops
// the whole run, because the constant skips no longer describe the bytes
// around it. No partial RecordSet is returned on error.
//
// # Concurrency
//
// The buffer is never written. With WithWorkers(n > 1), ExtractAll first
// collects every marker offset sequentially and then decodes the records on
// up to n goroutines, each writing only its own slot, so the result order is
// the marker discovery order.
package extract
