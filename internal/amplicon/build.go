package amplicon

import (
	"fmt"
	"io"
	"strings"

	"github.com/nrminor/amplicon-tk/internal/primer"
)

type primerSeq struct {
	label string
	seq   string
}

// BuildScheme resolves primer coordinates against a reference dictionary
// into an amplicon scheme.
//
// A coordinate that names a missing reference, or whose range falls outside
// the reference, is skipped with a diagnostic written to warn; only that
// coordinate is lost, not the run. Candidate amplicon names are derived by
// removing both suffixes from every label; a name becomes a definition only
// when exactly two coordinates share it and exactly one of the two labels
// carries each suffix. Any other shape drops the candidate silently.
func BuildScheme(coords []Coordinate, refs map[string][]byte, fwdSuffix, revSuffix string, warn io.Writer) *Scheme {
	seqs := collectPrimerSeqs(coords, refs, warn)

	var order []string
	groups := make(map[string][]primerSeq, len(seqs))
	for _, ps := range seqs {
		name := strings.ReplaceAll(ps.label, fwdSuffix, "")
		name = strings.ReplaceAll(name, revSuffix, "")
		if _, seen := groups[name]; !seen {
			order = append(order, name)
		}
		groups[name] = append(groups[name], ps)
	}

	scheme := &Scheme{}
	for _, name := range order {
		group := groups[name]
		if len(group) != 2 {
			continue
		}
		var fwd, rev *primerSeq
		nFwd, nRev := 0, 0
		for i := range group {
			if strings.Contains(group[i].label, fwdSuffix) {
				nFwd++
				fwd = &group[i]
			}
			if strings.Contains(group[i].label, revSuffix) {
				nRev++
				rev = &group[i]
			}
		}
		if nFwd != 1 || nRev != 1 {
			continue
		}
		scheme.Definitions = append(scheme.Definitions, Definition{
			Name:  name,
			Fwd:   fwd.seq,
			FwdRC: primer.RevCompString(fwd.seq),
			Rev:   rev.seq,
			RevRC: primer.RevCompString(rev.seq),
		})
	}
	return scheme
}

func collectPrimerSeqs(coords []Coordinate, refs map[string][]byte, warn io.Writer) []primerSeq {
	out := make([]primerSeq, 0, len(coords))
	for _, c := range coords {
		ref, ok := refs[c.Ref]
		if !ok {
			fmt.Fprintf(warn, "WARN: primer %q names reference %q, which is not in the provided reference file; skipping\n",
				c.Label, c.Ref)
			continue
		}
		// A definition needs non-empty primers, so zero-width ranges are
		// just as unusable as out-of-bounds ones.
		if c.Start < 0 || c.Stop <= c.Start || c.Stop > len(ref) {
			fmt.Fprintf(warn,
				"WARN: positions %d and %d for %s are not present in the reference sequence %s (length %d); skipping. The reference sequence is:\n\n%s\n",
				c.Start, c.Stop, c.Label, c.Ref, len(ref), ref)
			continue
		}
		out = append(out, primerSeq{label: c.Label, seq: string(ref[c.Start:c.Stop])})
	}
	return out
}
