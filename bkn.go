// Package bkn extracts kinetics records from BKN instrument files.
//
// A BKN file is an undifferentiated byte stream in which every method (one
// kinetics run) starts with the ASCII marker "TContinuumStore". Each method
// carries a fixed-layout block of (time, absorbance) float32 pairs followed
// by a run of length-prefixed text fields holding the run metadata.
//
// # Basic Usage
//
//	set, err := bkn.ParseFile("run.bkn")
//	if err != nil {
//	    return err
//	}
//	for _, rec := range set {
//	    wl, _ := rec.Field(layout.FieldWavelength)
//	    fmt.Printf("%d points at %s %s\n", rec.Len(), wl.Value, wl.Unit)
//	}
//
//	// Render the whole file as JSON
//	err = bkn.WriteJSON(os.Stdout, set, render.WithChecksum(true))
//
// # Package Structure
//
// This package provides convenient top-level wrappers. The extract package
// holds the extraction pipeline, layout the format constants and schema,
// render the JSON output, and compress the codecs for compressed files.
package bkn

import (
	"fmt"
	"io"
	"os"

	"github.com/arloliu/bkn/compress"
	"github.com/arloliu/bkn/errs"
	"github.com/arloliu/bkn/extract"
	"github.com/arloliu/bkn/format"
	"github.com/arloliu/bkn/record"
	"github.com/arloliu/bkn/render"
)

// NewExtractor creates an extractor with the given options.
//
// With no options it decodes the default layout on a single goroutine and
// discards log output.
func NewExtractor(opts ...extract.Option) (*extract.Extractor, error) {
	return extract.NewExtractor(opts...)
}

// ReadFile loads a whole file into memory and decompresses it.
//
// Parameters:
//   - path: File to read
//   - compression: Codec the file was written with, CompressionNone for raw files
//
// Returns:
//   - []byte: The raw BKN bytes
//   - error: ErrIO if the file cannot be opened, is not a regular file, is read short,
//     or fails to decompress
func ReadFile(path string, compression format.CompressionType) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrIO, err)
	}
	// Pipes and devices report no usable size.
	if !info.Mode().IsRegular() {
		return nil, fmt.Errorf("%w: %s: not a regular file (%s)", errs.ErrIO, path, info.Mode().Type())
	}

	data := make([]byte, info.Size())
	n, err := io.ReadFull(f, data)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: read %d of %d bytes: %w", errs.ErrIO, path, n, len(data), err)
	}

	if compression == format.CompressionNone {
		return data, nil
	}

	return compress.Decompress(data, compression)
}

// Parse extracts every record from an in-memory BKN file.
func Parse(data []byte, opts ...extract.Option) (record.RecordSet, error) {
	ex, err := extract.NewExtractor(opts...)
	if err != nil {
		return nil, err
	}

	return ex.ExtractAll(data)
}

// ParseFile reads path, decompressing it when the name ends in .zst, .s2 or
// .lz4, and extracts every record.
func ParseFile(path string, opts ...extract.Option) (record.RecordSet, error) {
	ex, err := extract.NewExtractor(opts...)
	if err != nil {
		return nil, err
	}

	data, err := ReadFile(path, format.CompressionFromExtension(path))
	if err != nil {
		return nil, err
	}

	return ex.ExtractAll(data)
}

// WriteJSON renders set as JSON to w. Nothing is written if rendering fails.
func WriteJSON(w io.Writer, set record.RecordSet, opts ...render.Option) error {
	return render.JSON(w, set, opts...)
}
