// Package mathutil provides numeric helpers shared by the mask builders and
// the padding policy.
package mathutil

import (
	"math"

	"github.com/tphakala/simd/f64"
)

// GaussianKernel returns an n-tap sampled Gaussian centered at (n-1)/2 with
// standard deviation sigma, normalized so that its coefficients sum to 1.
//
//	G[i] = α · exp(-(i - (n-1)/2)² / (2σ²))
//
// A non-positive sigma falls back to ((n-1)/2 - 1)·0.3 + 0.8.
// Returns an empty slice for n < 1.
func GaussianKernel(n int, sigma float64) []float64 {
	if n < 1 {
		return []float64{}
	}

	if sigma <= 0 {
		sigma = (float64(n-1)*gaussianSigmaHalf-gaussianSigmaOffset)*gaussianSigmaSlope + gaussianSigmaBase
	}

	kernel := make([]float64, n)
	center := float64(n-1) / halfDivisor
	scale := gaussianExpScale / (sigma * sigma)

	for i := range n {
		x := float64(i) - center
		kernel[i] = math.Exp(scale * x * x)
	}

	sum := f64.Sum(kernel)
	if sum > 0 {
		f64.Scale(kernel, kernel, 1.0/sum)
	}

	return kernel
}
