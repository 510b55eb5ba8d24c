package engine

// Cubic convolution constants
const (
	// Cubic interpolation uses a 4-point window
	cubicInterpolationPoints = 4

	// cubicA is the cubic convolution free parameter. -0.75 matches the
	// kernel OpenCV uses for INTER_CUBIC.
	cubicA = -0.75

	// Offsets of the first cubic tap and of the cubic polynomial terms.
	cubicTapOffset = 1
	cubicCoeff2    = 2.0
	cubicCoeff3    = 3.0
	cubicCoeff4    = 4.0
	cubicCoeff5    = 5.0
	cubicCoeff8    = 8.0
)

// Linear interpolation constants
const (
	// Linear interpolation uses a 2-point window
	linearInterpolationPoints = 2
)

// Sampling grid constants
const (
	// Pixel centers sit half a pixel from the edges.
	pixelCenterOffset = 0.5

	maxPixelValue = 255
)

// Resizer registry names
const (
	NameNative = "native"
	NameNfnt   = "nfnt"
	NameOpenCV = "opencv"

	// DefaultName is the resizer used when none is configured.
	DefaultName = NameNative
)
