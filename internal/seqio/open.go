package seqio

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	gzip "github.com/klauspost/pgzip"
)

// Format identifies a supported read-source encoding.
type Format int

const (
	FormatFastq Format = iota
	FormatFastqGz
	FormatBam
)

// Extension returns the output file suffix matching the format, so output
// files mirror the encoding of their input.
func (f Format) Extension() string {
	switch f {
	case FormatFastqGz:
		return ".fastq.gz"
	case FormatBam:
		return ".bam"
	default:
		return ".fastq"
	}
}

// ErrBamUnsupported marks the aligned-read container format, which is
// recognized but cannot be processed yet.
var ErrBamUnsupported = errors.New("BAM inputs are not yet supported but will be soon")

// DetectFormat determines the read-source encoding from the file name.
func DetectFormat(path string) (Format, error) {
	if _, err := os.Stat(path); err != nil {
		return 0, fmt.Errorf("input file %q: %w", path, err)
	}
	switch {
	case strings.HasSuffix(path, ".fastq.gz") || strings.HasSuffix(path, ".fq.gz"):
		return FormatFastqGz, nil
	case strings.HasSuffix(path, ".fastq") || strings.HasSuffix(path, ".fq"):
		return FormatFastq, nil
	case strings.HasSuffix(path, ".bam"):
		return FormatBam, nil
	default:
		return 0, fmt.Errorf("could not determine a supported file type from %q", path)
	}
}

// multiReadCloser closes every wrapped closer when Close is called.
type multiReadCloser struct {
	io.Reader
	closers []io.Closer
}

func (m *multiReadCloser) Close() error {
	var err error
	for _, c := range m.closers {
		if cerr := c.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}

// openReader opens path, transparently decompressing gzip detected by magic
// number (1F 8B) or by suffix.
func openReader(path string) (io.ReadCloser, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	var sig [2]byte
	n, _ := fh.Read(sig[:])
	_, _ = fh.Seek(0, io.SeekStart)
	if (n == 2 && sig[0] == 0x1f && sig[1] == 0x8b) || strings.HasSuffix(path, ".gz") {
		gr, err := gzip.NewReader(fh)
		if err != nil {
			_ = fh.Close()
			return nil, err
		}
		return &multiReadCloser{Reader: gr, closers: []io.Closer{gr, fh}}, nil
	}
	return fh, nil
}
