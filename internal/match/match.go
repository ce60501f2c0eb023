// Package match resolves a read against an amplicon scheme: which amplicon,
// if any, the read belongs to, and where its primer-free interior lies.
package match

import (
	"bytes"

	"github.com/nrminor/amplicon-tk/internal/amplicon"
)

// Bounds is a half-open [Start, Stop) range into one read's sequence.
// Whenever produced, Stop > Start; degenerate matches are never surfaced.
type Bounds struct {
	Start int
	Stop  int
}

// matchPrimer searches seq for p, then for its reverse complement prc.
// A read carrying both orientations of the same primer is ambiguous and
// yields no match. Exactly one orientation yields its first offset and the
// matched pattern length.
func matchPrimer(seq []byte, p, prc string) (pos, length int, ok bool) {
	i := bytes.Index(seq, []byte(p))
	j := bytes.Index(seq, []byte(prc))
	switch {
	case i >= 0 && j >= 0:
		return 0, 0, false
	case i >= 0:
		return i, len(p), true
	case j >= 0:
		return j, len(prc), true
	default:
		return 0, 0, false
	}
}

// candidate computes the interior bounds for one definition, if the read
// carries both of its primers unambiguously. The interior starts just past
// the leftmost primer and stops at the start of the rightmost one, and is
// kept only when it is longer than either primer.
func candidate(seq []byte, def *amplicon.Definition) (Bounds, bool) {
	fwdPos, fwdLen, ok := matchPrimer(seq, def.Fwd, def.FwdRC)
	if !ok {
		return Bounds{}, false
	}
	revPos, revLen, ok := matchPrimer(seq, def.Rev, def.RevRC)
	if !ok {
		return Bounds{}, false
	}

	var b Bounds
	if fwdPos < revPos {
		b = Bounds{Start: fwdPos + fwdLen, Stop: revPos}
	} else {
		b = Bounds{Start: revPos + revLen, Stop: fwdPos}
	}

	span := b.Stop - b.Start
	if span <= len(def.Fwd) || span <= len(def.Rev) || b.Stop == b.Start {
		return Bounds{}, false
	}
	return b, true
}

// FindAmplicon returns the trim bounds for seq if exactly one amplicon in
// the scheme matches it. Zero candidates and multiple distinct candidates
// both resolve to no match: ambiguity never silently picks a winner.
// Identical bounds reached through different definitions count once.
func FindAmplicon(seq []byte, scheme *amplicon.Scheme) (Bounds, bool) {
	var (
		found Bounds
		n     int
	)
	for i := range scheme.Definitions {
		b, ok := candidate(seq, &scheme.Definitions[i])
		if !ok {
			continue
		}
		if n > 0 && b == found {
			continue
		}
		found = b
		n++
		if n > 1 {
			return Bounds{}, false
		}
	}
	if n != 1 {
		return Bounds{}, false
	}
	return found, true
}
