// Package amplicon defines primer schemes: the set of forward/reverse
// primer pairs that bound the amplicons of a sequencing protocol, resolved
// from primer coordinates and a reference sequence.
package amplicon

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Coordinate is one primer position row: a half-open, 0-based [Start, Stop)
// range into the named reference sequence, labelled with the primer name.
type Coordinate struct {
	Label string
	Ref   string
	Start int
	Stop  int
}

// Definition is one resolved amplicon: the forward and reverse primer
// sequences in 5'->3' orientation plus their reverse complements.
// Immutable once built.
type Definition struct {
	Name  string
	Fwd   string
	FwdRC string
	Rev   string
	RevRC string
}

// Scheme is an ordered list of amplicon definitions. Order is irrelevant to
// matching; it only makes the fingerprint reproducible.
type Scheme struct {
	Definitions []Definition
}

// Fingerprint returns the hex form of a SHA-256 digest over the scheme's
// canonical serialization. Identical scheme content always yields the same
// fingerprint, regardless of process or platform.
func (s *Scheme) Fingerprint() string {
	h := sha256.New()
	var n [8]byte
	field := func(v string) {
		binary.BigEndian.PutUint64(n[:], uint64(len(v)))
		h.Write(n[:])
		h.Write([]byte(v))
	}
	for _, d := range s.Definitions {
		field(d.Name)
		field(d.Fwd)
		field(d.FwdRC)
		field(d.Rev)
		field(d.RevRC)
	}
	return hex.EncodeToString(h.Sum(nil))
}
