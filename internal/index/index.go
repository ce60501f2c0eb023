// Package index computes and caches per-sample amplicon statistics: the
// prevalence of every unique trimmed sequence, keyed by the scheme that
// produced it. The cache lives in a sidecar file next to the input reads
// and is only trusted while the scheme fingerprint still matches.
package index

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/cheggaaa/pb/v3"
	gzip "github.com/klauspost/pgzip"

	"github.com/nrminor/amplicon-tk/internal/amplicon"
	"github.com/nrminor/amplicon-tk/internal/match"
	"github.com/nrminor/amplicon-tk/internal/seqio"
	"github.com/nrminor/amplicon-tk/internal/trim"
)

// Frequency is the per-sample prevalence table: for each unique trimmed
// sequence, the fraction of trimmed reads equal to it. Fingerprint ties the
// table to the amplicon scheme it was computed under.
type Frequency struct {
	Fingerprint string
	UniqueSeqs  map[string]float64
}

// SidecarPath returns the index file path for an input read file.
func SidecarPath(input string) string { return input + ".ampidx" }

// Build runs a full matching-and-trimming pass over the reads in path and
// tallies trimmed-sequence prevalence. No frequency filter applies here;
// the filter is what this index later feeds. Reads without a unique
// amplicon match never enter the table. When progress is true a bar tracks
// the pass, sized by a counting pre-pass.
func Build(ctx context.Context, path string, scheme *amplicon.Scheme, progress bool) (*Frequency, error) {
	var bar *pb.ProgressBar
	if progress {
		if total, err := seqio.CountReads(path); err == nil && total > 0 {
			bar = pb.Full.Start64(total)
			defer bar.Finish()
		}
	}

	counts := make(map[string]int64)
	var total int64
	err := seqio.StreamReads(ctx, path, func(rec seqio.Record) error {
		if bar != nil {
			bar.Increment()
		}
		bounds, ok := match.FindAmplicon(rec.Seq, scheme)
		if !ok {
			return nil
		}
		trimmed, err := trim.ToBounds(rec, bounds)
		if err != nil {
			return err
		}
		counts[string(trimmed.Seq)]++
		total++
		return nil
	})
	if err != nil {
		return nil, err
	}

	unique := make(map[string]float64, len(counts))
	for seq, n := range counts {
		unique[seq] = float64(n) / float64(total)
	}
	return &Frequency{Fingerprint: scheme.Fingerprint(), UniqueSeqs: unique}, nil
}

// Persist writes the index as a gob blob through gzip.
func (ix *Frequency) Persist(path string) error {
	fh, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() { _ = fh.Close() }()
	gz := gzip.NewWriter(fh)
	if err := gob.NewEncoder(gz).Encode(ix); err != nil {
		_ = gz.Close()
		return fmt.Errorf("encoding index %s: %w", path, err)
	}
	if err := gz.Close(); err != nil {
		return err
	}
	return fh.Close()
}

// Load reads the sidecar at path and validates it against the current
// scheme fingerprint. An absent sidecar is not an error: filtering is
// simply unavailable until `index` has been run. A stale sidecar (stored
// fingerprint differs) is discarded with a warning rather than reused.
func Load(path, currentFingerprint string, warn io.Writer) (*Frequency, error) {
	fh, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening index sidecar %s: %w", path, err)
	}
	defer func() { _ = fh.Close() }()

	gz, err := gzip.NewReader(fh)
	if err != nil {
		return nil, fmt.Errorf("index sidecar %s is unreadable: %w", path, err)
	}
	defer func() { _ = gz.Close() }()

	var ix Frequency
	if err := gob.NewDecoder(gz).Decode(&ix); err != nil {
		return nil, fmt.Errorf("index sidecar %s is unreadable: %w", path, err)
	}
	if ix.Fingerprint != currentFingerprint {
		fmt.Fprintf(warn,
			"WARN: index sidecar %s was built for a different amplicon scheme; ignoring it. Re-run `amplicon-tk index` to rebuild it before filtering.\n",
			path)
		return nil, nil
	}
	return &ix, nil
}
