package logging

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/jero-scafati/roomwaves/internal/acoustic"
	"github.com/jero-scafati/roomwaves/internal/mains"
)

// Report renders an acoustic.AnalysisResult as a human-readable multi-band
// table plus a short narrative interpretation, matching a listener's
// expectations of EDT/T60/C50/D50 "good/typical/poor" ranges for speech and
// music spaces.
type Report struct {
	Result           acoustic.AnalysisResult
	SNRByBand        map[string]float64 // dB, keyed by acoustic.FcKey; absent if not computed
	MainsHumAdvisory []acoustic.MainsHumFlag
}

// NewReport builds a Report from a pipeline result. snrByBand may be nil if
// SNR estimation was not run for this analysis.
func NewReport(result acoustic.AnalysisResult, snrByBand map[string]float64) Report {
	return Report{
		Result:    result,
		SNRByBand: snrByBand,
	}
}

// sortedBandKeys returns the result's band keys ordered by center frequency.
func (r Report) sortedBandKeys() []string {
	keys := make([]string, 0, len(r.Result.Bands))
	for k := range r.Result.Bands {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		fi, _ := strconv.Atoi(keys[i])
		fj, _ := strconv.Atoi(keys[j])
		return fi < fj
	})
	return keys
}

// String renders the full report: one table per parameter, plus a mains-hum
// advisory section if any bands were flagged.
func (r Report) String() string {
	keys := r.sortedBandKeys()
	if len(keys) == 0 {
		return "no bands analyzed\n"
	}

	headers := make([]string, len(keys))
	for i, k := range keys {
		headers[i] = k + " Hz"
	}

	var sb strings.Builder

	sb.WriteString("Room Acoustic Parameters\n")
	sb.WriteString("========================\n\n")

	sb.WriteString(r.buildTable(keys, headers, "EDT", "s", func(p acoustic.BandParameters) float64 { return p.EDT },
		interpretRT60).String())
	sb.WriteString("\n")
	sb.WriteString(r.buildTable(keys, headers, "T60 (from T20)", "s", func(p acoustic.BandParameters) float64 { return p.T60FromT20 },
		interpretRT60).String())
	sb.WriteString("\n")
	sb.WriteString(r.buildTable(keys, headers, "T60 (from T30)", "s", func(p acoustic.BandParameters) float64 { return p.T60FromT30 },
		interpretRT60).String())
	sb.WriteString("\n")
	sb.WriteString(r.buildTable(keys, headers, "C50", "dB", func(p acoustic.BandParameters) float64 { return p.C50 },
		interpretC50).String())
	sb.WriteString("\n")
	sb.WriteString(r.buildTable(keys, headers, "D50", "%", func(p acoustic.BandParameters) float64 { return p.D50 },
		interpretD50).String())

	if len(r.SNRByBand) > 0 {
		sb.WriteString("\n")
		sb.WriteString(r.buildSNRTable(keys, headers).String())
	}

	if len(r.MainsHumAdvisory) > 0 {
		sb.WriteString("\n")
		sb.WriteString(r.mainsHumSection())
	}

	return sb.String()
}

func (r Report) buildTable(keys, headers []string, label, unit string, extract func(acoustic.BandParameters) float64, interpret func(float64) string) *MetricTable {
	t := NewMetricTable(headers)
	values := make([]string, len(keys))
	worstInterpretation := ""
	for i, k := range keys {
		p := r.Result.Bands[k]
		if p.Flag != "" {
			values[i] = NotComputable
			continue
		}
		values[i] = formatMetric(extract(p), 2)
		worstInterpretation = worstOf(worstInterpretation, interpret(extract(p)))
	}
	t.AddRow(label, values, unit, worstInterpretation)
	return t
}

func (r Report) buildSNRTable(keys, headers []string) *MetricTable {
	t := NewMetricTable(headers)
	values := make([]string, len(keys))
	for i, k := range keys {
		db, ok := r.SNRByBand[k]
		if !ok {
			values[i] = NotComputable
			continue
		}
		if math.IsInf(db, 1) {
			values[i] = "silent tail"
			continue
		}
		values[i] = formatMetric(db, 1)
	}
	t.AddRow("SNR", values, "dB", interpretWorstSNR(r.SNRByBand))
	return t
}

func (r Report) mainsHumSection() string {
	var sb strings.Builder
	sb.WriteString("Mains hum advisory\n")
	for _, f := range r.MainsHumAdvisory {
		sb.WriteString(fmt.Sprintf("  band %d Hz is within %.1f Hz of the local %d Hz mains frequency\n",
			f.CenterFreq, f.DeltaHz, f.MainsHz))
	}
	return sb.String()
}

// BuildMainsHumAdvisory flags bands whose center frequency sits within
// toleranceHz of the local mains frequency (or its second harmonic), since a
// hum component that close to an analysis band can bias its decay-curve
// regression. This is purely an annotation on the report: it never alters
// the pipeline's computed parameters.
func BuildMainsHumAdvisory(bands map[string]acoustic.BandParameters, toleranceHz float64) []acoustic.MainsHumFlag {
	harmonics := mains.Harmonics(mains.Frequency())

	var flags []acoustic.MainsHumFlag
	for key := range bands {
		fc, err := strconv.Atoi(key)
		if err != nil {
			continue
		}
		for _, h := range harmonics {
			delta := math.Abs(float64(fc - h))
			if delta <= toleranceHz {
				flags = append(flags, acoustic.MainsHumFlag{CenterFreq: fc, MainsHz: h, DeltaHz: delta})
				break
			}
		}
	}
	sort.Slice(flags, func(i, j int) bool { return flags[i].CenterFreq < flags[j].CenterFreq })
	return flags
}

func worstOf(current, candidate string) string {
	rank := map[string]int{"": 0, "good": 1, "typical": 2, "poor": 3}
	if rank[candidate] > rank[current] {
		return candidate
	}
	return current
}

// interpretRT60 gives a rough qualitative read on a reverberation time,
// calibrated to small-to-medium listening/speech rooms rather than concert
// halls.
func interpretRT60(seconds float64) string {
	switch {
	case seconds <= 0:
		return ""
	case seconds < 0.4:
		return "good"
	case seconds < 0.8:
		return "typical"
	default:
		return "poor"
	}
}

// interpretC50 reads clarity for speech intelligibility (ISO 3382-1 C50).
func interpretC50(db float64) string {
	switch {
	case db >= 2:
		return "good"
	case db >= -2:
		return "typical"
	default:
		return "poor"
	}
}

// interpretD50 reads definition for speech intelligibility (ISO 3382-1 D50).
func interpretD50(pct float64) string {
	switch {
	case pct >= 60:
		return "good"
	case pct >= 40:
		return "typical"
	default:
		return "poor"
	}
}

func interpretWorstSNR(byBand map[string]float64) string {
	worst := math.Inf(1)
	for _, db := range byBand {
		if db < worst {
			worst = db
		}
	}
	switch {
	case math.IsInf(worst, 1):
		return ""
	case worst >= 45:
		return "good"
	case worst >= 25:
		return "typical"
	default:
		return "poor"
	}
}
