package trim

import (
	"strings"
	"testing"

	"github.com/nrminor/amplicon-tk/internal/amplicon"
	"github.com/nrminor/amplicon-tk/internal/match"
	"github.com/nrminor/amplicon-tk/internal/primer"
	"github.com/nrminor/amplicon-tk/internal/seqio"
)

func TestToBoundsTrimScenario(t *testing.T) {
	seq := "TGTTTCCACTGGAGGATACTCACCCCTCTTGCACTCAAGTTAAACAGTTTCCAAAGCGTACTATGGTTAAGCCACAGCCT"
	qual := strings.Repeat("I", 17) + strings.Repeat("J", 41) + strings.Repeat("I", 22)
	scheme := &amplicon.Scheme{Definitions: []amplicon.Definition{{
		Name:  "AMP1",
		Fwd:   "TGGAGGAT",
		FwdRC: primer.RevCompString("TGGAGGAT"),
		Rev:   "TACTATGG",
		RevRC: primer.RevCompString("TACTATGG"),
	}}}

	b, ok := match.FindAmplicon([]byte(seq), scheme)
	if !ok {
		t.Fatal("expected a unique match")
	}
	rec, err := ToBounds(seqio.Record{Name: "r1", Seq: []byte(seq), Qual: []byte(qual)}, b)
	if err != nil {
		t.Fatal(err)
	}
	if got := string(rec.Seq); got != "ACTCACCCCTCTTGCACTCAAGTTAAACAGTTTCCAAAGCG" {
		t.Errorf("trimmed sequence = %q", got)
	}
	if got := string(rec.Qual); got != strings.Repeat("J", 41) {
		t.Errorf("quality not sliced identically: %q", got)
	}
	if strings.Contains(string(rec.Seq), "TGGAGGAT") || strings.Contains(string(rec.Seq), "TACTATGG") {
		t.Error("trimmed sequence still contains a primer")
	}
}

func TestToBoundsPreservesLengthInvariant(t *testing.T) {
	rec := seqio.Record{Name: "r1", Seq: []byte("ACGTACGTACGT"), Qual: []byte("IIIIIIIIIIII")}
	out, err := ToBounds(rec, match.Bounds{Start: 2, Stop: 9})
	if err != nil {
		t.Fatal(err)
	}
	if len(out.Seq) != len(out.Qual) {
		t.Errorf("seq len %d != qual len %d", len(out.Seq), len(out.Qual))
	}
	// Copy-on-trim: the original record is untouched.
	if string(rec.Seq) != "ACGTACGTACGT" {
		t.Error("original record mutated")
	}
}

func TestToBoundsQualityMismatchIsFault(t *testing.T) {
	rec := seqio.Record{Name: "r1", Seq: []byte("ACGTACGT"), Qual: []byte("III")}
	_, err := ToBounds(rec, match.Bounds{Start: 1, Stop: 5})
	if err == nil {
		t.Fatal("length mismatch must be reported, never swallowed")
	}
	if !strings.Contains(err.Error(), "ACGTACGT") || !strings.Contains(err.Error(), "III") {
		t.Errorf("fault should carry both original strings: %v", err)
	}
}

func TestToBoundsRejectsBadBounds(t *testing.T) {
	rec := seqio.Record{Name: "r1", Seq: []byte("ACGT")}
	for _, b := range []match.Bounds{
		{Start: 2, Stop: 2},
		{Start: 3, Stop: 1},
		{Start: 0, Stop: 99},
		{Start: -1, Stop: 2},
	} {
		if _, err := ToBounds(rec, b); err == nil {
			t.Errorf("bounds %+v should be rejected", b)
		}
	}
}

func TestShouldWriteNoFilters(t *testing.T) {
	var s *Settings
	if !s.ShouldWrite([]byte("ACGT")) {
		t.Error("absent settings accept everything")
	}
}

func TestShouldWriteFrequencyAndLength(t *testing.T) {
	table := map[string]float64{
		"ACGTACGT": 0.5,
		"ACGT":     0.05,
	}
	minFreq := 0.1
	maxLen := 8
	s := NewSettings(&minFreq, &maxLen, table)

	cases := []struct {
		name string
		seq  string
		want bool
	}{
		{"prevalent and short enough", "ACGTACGT", true},
		{"below min_freq", "ACGT", false},
		{"unknown sequence rejected", "TTTT", false},
	}
	for _, tc := range cases {
		if got := s.ShouldWrite([]byte(tc.seq)); got != tc.want {
			t.Errorf("%s: ShouldWrite = %v, want %v", tc.name, got, tc.want)
		}
	}

	long := NewSettings(&minFreq, new(int), table)
	long.MaxLen = 4
	if long.ShouldWrite([]byte("ACGTACGT")) {
		t.Error("sequence longer than max_len must be rejected")
	}
}

func TestNewSettingsRequiresIndex(t *testing.T) {
	minFreq := 0.1
	if s := NewSettings(&minFreq, nil, nil); s != nil {
		t.Error("settings must not be constructible without a prevalence table")
	}
	if s := NewSettings(nil, nil, map[string]float64{}); s != nil {
		t.Error("settings without any threshold mean no filtering")
	}
	if s := NewSettings(&minFreq, nil, map[string]float64{}); s == nil || s.MaxLen <= 0 {
		t.Error("missing max_len should default to no length limit")
	}
}
