package seqio

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sync"

	gzip "github.com/klauspost/pgzip"
)

// Writer is the shared output sink for accepted reads. Writes are
// serialized by an internal mutex, so any number of workers may call Write
// concurrently; records land in whatever order the workers finish.
//
// Close must be called exactly once when the stream ends: it flushes the
// buffer and, for gzip sinks, writes the compression trailer. Skipping it
// corrupts the output file.
type Writer struct {
	mu      sync.Mutex
	w       *bufio.Writer
	closers []io.Closer
}

// NewWriter creates the output file at path, gzip-compressing when the
// format calls for it.
func NewWriter(path string, format Format) (*Writer, error) {
	fh, err := os.Create(path)
	if err != nil {
		return nil, err
	}
	if format == FormatFastqGz {
		gz := gzip.NewWriter(fh)
		return &Writer{w: bufio.NewWriter(gz), closers: []io.Closer{gz, fh}}, nil
	}
	return &Writer{w: bufio.NewWriter(fh), closers: []io.Closer{fh}}, nil
}

// Write appends one record to the sink in FASTQ form, or FASTA form when
// the record has no quality string.
func (w *Writer) Write(rec Record) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	var err error
	if rec.Qual == nil {
		_, err = fmt.Fprintf(w.w, ">%s\n%s\n", rec.Name, rec.Seq)
	} else {
		_, err = fmt.Fprintf(w.w, "@%s\n%s\n+\n%s\n", rec.Name, rec.Seq, rec.Qual)
	}
	return err
}

// Close flushes buffered output and finalizes every layer of the sink,
// innermost first, guaranteeing the gzip trailer is written.
func (w *Writer) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	err := w.w.Flush()
	for _, c := range w.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
