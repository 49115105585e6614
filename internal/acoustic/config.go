package acoustic

import (
	"fmt"

	"github.com/jero-scafati/roomwaves/internal/acoustic/bank"
	"github.com/jero-scafati/roomwaves/internal/acoustic/decay"
	"github.com/jero-scafati/roomwaves/internal/acoustic/envelope"
)

// Config is the per-run configuration surface spec §6 exposes: filter
// resolution, smoothing window, and the Lundeby block length (set by the
// CLI's --block-ms flag), all flat fields with documented defaults, following the
// teacher's FilterChainConfig shape sized to this domain's much smaller
// configuration surface.
type Config struct {
	FilterType        bank.FilterType
	SmoothingWindowMS float64
	BlockMS           float64
}

// DefaultConfig returns the recommended configuration: third-octave bands,
// a 5ms smoothing window, and a 20ms Lundeby block length.
func DefaultConfig() Config {
	return Config{
		FilterType:        bank.ThirdOctave,
		SmoothingWindowMS: envelope.DefaultWindowMS,
		BlockMS:           decay.DefaultBlockMS,
	}
}

// Validate checks the configuration surface, returning ErrInvalidArgument
// wrapped with the offending field when invalid.
func (c Config) Validate() error {
	if c.FilterType != bank.Octave && c.FilterType != bank.ThirdOctave {
		return fmt.Errorf("filter_type must be 1 or 3, got %d: %w", c.FilterType, ErrInvalidArgument)
	}
	if c.SmoothingWindowMS <= 0 {
		return fmt.Errorf("smoothing_window_ms must be positive, got %v: %w", c.SmoothingWindowMS, ErrInvalidArgument)
	}
	if c.BlockMS <= 0 {
		return fmt.Errorf("block_ms must be positive, got %v: %w", c.BlockMS, ErrInvalidArgument)
	}
	return nil
}
