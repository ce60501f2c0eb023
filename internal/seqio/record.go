// Package seqio reads and writes sequencing records: BED primer
// coordinates, FASTA references, and FASTQ read streams, plain or gzipped.
package seqio

// Record is one sequencing read. Qual is nil for quality-less sources
// (FASTA); whenever present it is exactly as long as Seq, and every
// operation on a record preserves that.
type Record struct {
	Name string
	Seq  []byte
	Qual []byte
}
