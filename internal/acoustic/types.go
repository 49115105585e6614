package acoustic

import (
	"strconv"

	"github.com/jero-scafati/roomwaves/internal/acoustic/params"
)

// ImpulseResponse is a finite, ordered, immutable sequence of real
// amplitudes plus its integer sample rate.
type ImpulseResponse struct {
	Samples []float64
	Fs      int
}

// BandParameters is the per-band scalar descriptor set. Re-exported from
// package params so callers of package acoustic never need to import it
// directly.
type BandParameters = params.BandParameters

// MainsHumFlag marks a band whose nominal center sits within flagging
// distance of the local AC mains hum frequency, a plausible Lundeby
// noise-floor confound. This is ambient report metadata, never a pipeline
// input — it cannot affect any BandParameters value.
type MainsHumFlag struct {
	CenterFreq int
	MainsHz    int
	DeltaHz    float64
}

// AnalysisResult maps a band's center frequency (its decimal string
// rendering, per spec §6) to its descriptor set. Insertion order carries no
// meaning.
type AnalysisResult struct {
	Bands            map[string]BandParameters
	MainsHumAdvisory []MainsHumFlag
}

// FcKey renders a center frequency as the integer decimal string key spec
// §6 specifies for AnalysisResult.
func FcKey(fc int) string {
	return strconv.Itoa(fc)
}
