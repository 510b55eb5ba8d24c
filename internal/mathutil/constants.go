package mathutil

// Gaussian kernel constants (same fallback formula as OpenCV getGaussianKernel)
const (
	// Exponent scale for exp(-x²/(2σ²))
	gaussianExpScale = -0.5

	// Fallback σ when a non-positive σ is requested: ((n-1)/2 - 1)*0.3 + 0.8
	gaussianSigmaHalf   = 0.5
	gaussianSigmaOffset = 1.0
	gaussianSigmaSlope  = 0.3
	gaussianSigmaBase   = 0.8
)

// DFT size factorization constants
const (
	// Radices the transform handles natively; sizes composed only of these are fast.
	radix2 = 2
	radix3 = 3
	radix5 = 5
)

// Common division constants
const (
	halfDivisor = 2.0 // Division by 2
)
