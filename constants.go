package resampler

// Version is the library version.
const Version = "0.2.0"

// Common fingerprint sample rates in pixels per inch.
const (
	// Rate500 is the standard fingerprint capture resolution.
	Rate500 = 500

	// Rate600 is a common flatbed scanner resolution.
	Rate600 = 600

	// Rate1000 is the high-resolution fingerprint capture rate.
	Rate1000 = 1000

	// Rate1200 is the high-resolution flatbed scanner rate.
	Rate1200 = 1200
)

// Operation names used in errors.
const (
	opRates         = "rates"
	opInput         = "input"
	opInterpolation = "interpolation"
	opFilterShape   = "filter-shape"
	opResizer       = "resizer"
	opCancel        = "cancel"
	opPanic         = "panic"
)

// Recap messages recorded in the runtime log.
const (
	recapUpUser      = "Interpolation method specified by user."
	recapUpDefault   = "Using recommended interpolation method."
	recapDownUser    = "Filter shape and interpolation method specified by user."
	recapDownDefault = "Using recommended filter shape and interpolation method."
)
