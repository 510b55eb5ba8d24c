// Package engine implements the image resize backends used as the final step
// of both resampling directions.
package engine

import (
	"fmt"
	"math"
)

// Interpolation selects the resize kernel.
type Interpolation int

const (
	// Bicubic uses 4×4 cubic convolution.
	Bicubic Interpolation = iota + 1

	// Bilinear uses 2×2 linear interpolation.
	Bilinear
)

// String returns the configuration token for the method.
func (i Interpolation) String() string {
	switch i {
	case Bicubic:
		return "bicubic"
	case Bilinear:
		return "bilinear"
	default:
		return fmt.Sprintf("Interpolation(%d)", int(i))
	}
}

// ParseInterpolation maps a configuration token to an Interpolation.
// Tokens are case sensitive: "bicubic" or "bilinear".
func ParseInterpolation(token string) (Interpolation, error) {
	switch token {
	case "bicubic":
		return Bicubic, nil
	case "bilinear":
		return Bilinear, nil
	default:
		return 0, fmt.Errorf("unknown interpolation method %q", token)
	}
}

// OutputSize returns the size of a width×height image scaled by factor.
// Each dimension is rounded half to even.
func OutputSize(width, height int, factor float64) (int, int) {
	return int(math.RoundToEven(float64(width) * factor)),
		int(math.RoundToEven(float64(height) * factor))
}
