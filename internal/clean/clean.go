// Package clean repairs messy historical CSV exports: decodes Latin-1 to
// UTF-8 and drops rows that do not match the header width.
package clean

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"golang.org/x/text/encoding/charmap"
)

// Result reports what a cleaning pass kept and dropped.
type Result struct {
	Kept    int
	Skipped int
}

// File reads inPath as ISO-8859-1 CSV and writes a clean UTF-8 copy to
// outPath, skipping malformed and ragged rows.
func File(inPath, outPath string) (Result, error) {
	in, err := os.Open(inPath)
	if err != nil {
		return Result{}, fmt.Errorf("opening %s: %w", inPath, err)
	}
	defer in.Close()

	out, err := os.Create(outPath)
	if err != nil {
		return Result{}, fmt.Errorf("creating %s: %w", outPath, err)
	}
	defer out.Close()

	r := csv.NewReader(charmap.ISO8859_1.NewDecoder().Reader(in))
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	w := csv.NewWriter(out)

	header, err := r.Read()
	if err != nil {
		return Result{}, fmt.Errorf("reading header of %s: %w", inPath, err)
	}
	if err := w.Write(header); err != nil {
		return Result{}, fmt.Errorf("writing header: %w", err)
	}

	var res Result
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			res.Skipped++
			continue
		}
		if len(record) != len(header) {
			res.Skipped++
			continue
		}
		if err := w.Write(record); err != nil {
			return Result{}, fmt.Errorf("writing row: %w", err)
		}
		res.Kept++
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return Result{}, fmt.Errorf("flushing %s: %w", outPath, err)
	}
	return res, out.Close()
}
