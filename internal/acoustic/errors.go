// Package acoustic holds the shared domain types and error kinds for the
// room-acoustic analysis pipeline.
package acoustic

import "errors"

// Error kind sentinels, per spec §7. They classify a pipeline outcome, not
// a specific failure site — wrap them with fmt.Errorf("...: %w", ...) for
// context and compare with errors.Is.
var (
	// ErrInvalidArgument covers an unknown filter_type, a window length < 1,
	// a tail_fraction outside (0,1), or a non-positive fs.
	ErrInvalidArgument = errors.New("acoustic: invalid argument")

	// ErrDegenerateInput covers an empty IR, an all-zero IR, an IR shorter
	// than 100ms for operations that need it, or an empty regression mask.
	ErrDegenerateInput = errors.New("acoustic: degenerate input")

	// ErrNumericNonConvergence marks a regression slope that is
	// non-negative on a decay window, leaving EDT/T60 undefined for that
	// band. The pipeline does not raise this as an error by default (see
	// params.BandParameters.Flag); it is exported for callers that prefer
	// to treat non-convergence as fatal.
	ErrNumericNonConvergence = errors.New("acoustic: decay regression did not converge")

	// ErrNotComputable covers deconvolution/SNR results with no valid
	// signal to report (zero result, peak below the noise floor).
	ErrNotComputable = errors.New("acoustic: not computable")
)
