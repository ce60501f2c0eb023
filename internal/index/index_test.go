package index

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nrminor/amplicon-tk/internal/amplicon"
	"github.com/nrminor/amplicon-tk/internal/primer"
)

func testScheme() *amplicon.Scheme {
	return &amplicon.Scheme{Definitions: []amplicon.Definition{{
		Name:  "AMP1",
		Fwd:   "TGGAGGAT",
		FwdRC: primer.RevCompString("TGGAGGAT"),
		Rev:   "TACTATGG",
		RevRC: primer.RevCompString("TACTATGG"),
	}}}
}

func fastqRecord(name, seq string) string {
	return "@" + name + "\n" + seq + "\n+\n" + strings.Repeat("I", len(seq)) + "\n"
}

func TestBuildPrevalence(t *testing.T) {
	const matching = "TGTTTCCACTGGAGGATACTCACCCCTCTTGCACTCAAGTTAAACAGTTTCCAAAGCGTACTATGGTTAAGCCACAGCCT"
	// Same amplicon with one interior substitution.
	variant := strings.Replace(matching, "ACTCACCCC", "ACTCACCCA", 1)

	path := filepath.Join(t.TempDir(), "sample.fastq")
	content := fastqRecord("r1", matching) +
		fastqRecord("r2", matching) +
		fastqRecord("r3", variant) +
		fastqRecord("r4", "ACGTACGTACGTACGTACGT") // no primers at all
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ix, err := Build(context.Background(), path, testScheme(), false)
	if err != nil {
		t.Fatal(err)
	}
	if len(ix.UniqueSeqs) != 2 {
		t.Fatalf("got %d unique sequences, want 2", len(ix.UniqueSeqs))
	}
	const interior = "ACTCACCCCTCTTGCACTCAAGTTAAACAGTTTCCAAAGCG"
	if f := ix.UniqueSeqs[interior]; math.Abs(f-2.0/3.0) > 1e-9 {
		t.Errorf("prevalence of dominant interior = %f, want 2/3", f)
	}
	// The unmatched read contributes nothing, not even to the denominator.
	for seq := range ix.UniqueSeqs {
		if strings.Contains(seq, "ACGTACGTACGT") {
			t.Error("read without primers must not appear in the index")
		}
	}
	if ix.Fingerprint != testScheme().Fingerprint() {
		t.Error("index must carry the scheme fingerprint")
	}
}

func TestPersistLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	sidecar := SidecarPath(filepath.Join(dir, "sample.fastq"))

	ix := &Frequency{
		Fingerprint: testScheme().Fingerprint(),
		UniqueSeqs:  map[string]float64{"ACGT": 0.25, "TTTT": 0.75},
	}
	if err := ix.Persist(sidecar); err != nil {
		t.Fatal(err)
	}

	var warn bytes.Buffer
	back, err := Load(sidecar, testScheme().Fingerprint(), &warn)
	if err != nil {
		t.Fatal(err)
	}
	if back == nil {
		t.Fatal("matching fingerprint should load the index")
	}
	if back.UniqueSeqs["TTTT"] != 0.75 {
		t.Errorf("round trip lost data: %+v", back.UniqueSeqs)
	}
	if warn.Len() != 0 {
		t.Errorf("unexpected warning: %s", warn.String())
	}
}

func TestLoadStaleFingerprint(t *testing.T) {
	dir := t.TempDir()
	sidecar := SidecarPath(filepath.Join(dir, "sample.fastq"))
	ix := &Frequency{Fingerprint: "somethingelse", UniqueSeqs: map[string]float64{"ACGT": 1}}
	if err := ix.Persist(sidecar); err != nil {
		t.Fatal(err)
	}

	var warn bytes.Buffer
	back, err := Load(sidecar, testScheme().Fingerprint(), &warn)
	if err != nil {
		t.Fatal(err)
	}
	if back != nil {
		t.Error("stale index must never be returned")
	}
	msg := warn.String()
	if !strings.Contains(msg, sidecar) || !strings.Contains(msg, "index") {
		t.Errorf("warning should name the sidecar and instruct a rebuild: %s", msg)
	}
}

func TestLoadAbsentSidecar(t *testing.T) {
	var warn bytes.Buffer
	back, err := Load(filepath.Join(t.TempDir(), "missing.fastq.ampidx"), "fp", &warn)
	if err != nil || back != nil {
		t.Errorf("absent sidecar should be silently nothing, got %v, %v", back, err)
	}
	if warn.Len() != 0 {
		t.Errorf("absent sidecar should not warn: %s", warn.String())
	}
}

func TestLoadCorruptSidecar(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.fastq.ampidx")
	if err := os.WriteFile(path, []byte("not an index"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path, "fp", new(bytes.Buffer)); err == nil {
		t.Error("corrupt sidecar should be an error, not silently ignored")
	}
}
