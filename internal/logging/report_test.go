package logging

import (
	"strings"
	"testing"

	"github.com/jero-scafati/roomwaves/internal/acoustic"
)

func sampleResult() acoustic.AnalysisResult {
	return acoustic.AnalysisResult{
		Bands: map[string]acoustic.BandParameters{
			"500":  {EDT: 0.35, T60FromT20: 0.4, T60FromT30: 0.42, C50: 3.1, D50: 70},
			"1000": {EDT: 0.9, T60FromT20: 1.1, T60FromT30: 1.2, C50: -3.5, D50: 35},
		},
	}
}

func TestReportStringIncludesAllBands(t *testing.T) {
	r := NewReport(sampleResult(), nil)
	out := r.String()
	if !strings.Contains(out, "500 Hz") || !strings.Contains(out, "1000 Hz") {
		t.Fatalf("report missing band headers:\n%s", out)
	}
	if !strings.Contains(out, "EDT") || !strings.Contains(out, "C50") || !strings.Contains(out, "D50") {
		t.Fatalf("report missing parameter rows:\n%s", out)
	}
}

func TestReportFlagsShowAsNotComputable(t *testing.T) {
	result := sampleResult()
	result.Bands["2000"] = acoustic.BandParameters{Flag: "non-decaying"}
	r := NewReport(result, nil)
	out := r.String()
	if !strings.Contains(out, NotComputable) {
		t.Fatalf("expected flagged band to render as %q:\n%s", NotComputable, out)
	}
}

func TestReportIncludesSNRWhenProvided(t *testing.T) {
	r := NewReport(sampleResult(), map[string]float64{"500": 42.0, "1000": 18.0})
	out := r.String()
	if !strings.Contains(out, "SNR") {
		t.Fatalf("expected SNR section:\n%s", out)
	}
}

func TestInterpretRT60(t *testing.T) {
	cases := map[float64]string{0.2: "good", 0.6: "typical", 1.5: "poor"}
	for v, want := range cases {
		if got := interpretRT60(v); got != want {
			t.Errorf("interpretRT60(%v) = %q, want %q", v, got, want)
		}
	}
}

func TestBuildMainsHumAdvisoryFlagsNearbyBand(t *testing.T) {
	bands := map[string]acoustic.BandParameters{
		"50":   {},
		"1000": {},
	}
	flags := BuildMainsHumAdvisory(bands, 2.0)
	if len(flags) != 1 || flags[0].CenterFreq != 50 {
		t.Fatalf("got %+v, want a single flag on the 50 Hz band", flags)
	}
}

func TestBuildMainsHumAdvisoryNoFlagsWhenFarFromMains(t *testing.T) {
	bands := map[string]acoustic.BandParameters{"1000": {}, "2000": {}}
	flags := BuildMainsHumAdvisory(bands, 2.0)
	if len(flags) != 0 {
		t.Fatalf("got %+v, want no flags", flags)
	}
}
