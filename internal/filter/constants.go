package filter

// Mask construction constants
const (
	// evenDivisor splits each axis at its midpoint.
	evenDivisor = 2

	// Ellipse vertices are width/(2r) and height/(2r).
	vertexDivisor = 2.0

	// Mask weights.
	passWeight = 1.0
	stopWeight = 0.0

	// Gaussian σ is r·size/2 along each axis.
	sigmaDivisor = 2.0

	// Below this min-max spread the Gaussian is treated as flat.
	flatRangeThreshold = 1e-300
)
