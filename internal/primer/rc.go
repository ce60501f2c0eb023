// Package primer holds the reverse-complement rules shared by scheme
// building and read matching.
package primer

var complement [256]byte

func init() {
	complement['A'] = 'T'
	complement['T'] = 'A'
	complement['G'] = 'C'
	complement['C'] = 'G'
	// RNA uracil maps onto the DNA complement; it does not round-trip.
	complement['U'] = 'A'
}

// RevComp returns the reverse complement of seq under A<->T, G<->C, U->A.
// Bases outside that alphabet are dropped from the output, not substituted,
// so the result may be shorter than the input.
func RevComp(seq []byte) []byte {
	n := len(seq)
	if n == 0 {
		return nil
	}
	out := make([]byte, 0, n)
	for i := n - 1; i >= 0; i-- {
		if c := complement[seq[i]]; c != 0 {
			out = append(out, c)
		}
	}
	return out
}

// RevCompString is the string convenience wrapper used by the scheme builder.
func RevCompString(seq string) string {
	return string(RevComp([]byte(seq)))
}
