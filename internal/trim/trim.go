// Package trim cuts matched reads down to their primer-free interior and
// decides, against an optional prevalence filter, whether the trimmed read
// is worth keeping.
package trim

import (
	"fmt"
	"math"

	"github.com/nrminor/amplicon-tk/internal/match"
	"github.com/nrminor/amplicon-tk/internal/seqio"
)

// ToBounds returns a copy of rec cut to the half-open range b over both
// sequence and quality. The original record is never mutated; trimmed
// records own their bytes so concurrent workers cannot alias each other.
//
// A record whose quality string disagrees in length with its sequence is an
// internal-consistency fault, not user error: the returned error carries
// both originals so the record can be debugged, and the caller isolates the
// fault to this record.
func ToBounds(rec seqio.Record, b match.Bounds) (seqio.Record, error) {
	if b.Start < 0 || b.Stop > len(rec.Seq) || b.Stop <= b.Start {
		return seqio.Record{}, fmt.Errorf(
			"record %q: bounds [%d, %d) outside sequence of length %d",
			rec.Name, b.Start, b.Stop, len(rec.Seq))
	}
	if rec.Qual != nil && len(rec.Qual) != len(rec.Seq) {
		return seqio.Record{}, fmt.Errorf(
			"record %q: sequence and quality lengths diverged before trimming (%d vs %d)\nsequence: %s\nquality:  %s",
			rec.Name, len(rec.Seq), len(rec.Qual), rec.Seq, rec.Qual)
	}

	out := seqio.Record{
		Name: rec.Name,
		Seq:  append([]byte(nil), rec.Seq[b.Start:b.Stop]...),
	}
	if rec.Qual != nil {
		out.Qual = append([]byte(nil), rec.Qual[b.Start:b.Stop]...)
	}
	if out.Qual != nil && len(out.Qual) != len(out.Seq) {
		return seqio.Record{}, fmt.Errorf(
			"record %q: sequence and quality lengths diverged after trimming (%d vs %d)\nsequence: %s\nquality:  %s",
			rec.Name, len(out.Seq), len(out.Qual), rec.Seq, rec.Qual)
	}
	return out, nil
}

// Settings is the frequency/length filter applied to trimmed reads. It can
// only be built when a prevalence table is available; a nil *Settings means
// no filtering, accept everything post-trim.
type Settings struct {
	MinFreq    float64
	MaxLen     int
	UniqueSeqs map[string]float64
}

// NewSettings bundles the requested thresholds with a prevalence table.
// Without a table, or with neither threshold requested, there is nothing to
// filter on and it returns nil. A missing threshold defaults to the
// permissive end of its range.
func NewSettings(minFreq *float64, maxLen *int, uniqueSeqs map[string]float64) *Settings {
	if uniqueSeqs == nil || (minFreq == nil && maxLen == nil) {
		return nil
	}
	s := &Settings{MinFreq: 0, MaxLen: math.MaxInt, UniqueSeqs: uniqueSeqs}
	if minFreq != nil {
		s.MinFreq = *minFreq
	}
	if maxLen != nil {
		s.MaxLen = *maxLen
	}
	return s
}

// ShouldWrite reports whether a trimmed sequence passes the filter. A
// sequence absent from the prevalence table is unknown and rejected, never
// accepted by default.
func (s *Settings) ShouldWrite(seq []byte) bool {
	if s == nil {
		return true
	}
	freq, known := s.UniqueSeqs[string(seq)]
	if !known {
		return false
	}
	return freq >= s.MinFreq && len(seq) <= s.MaxLen
}
