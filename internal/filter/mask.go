// Package filter builds the frequency-domain low-pass masks applied before
// downsampling.
//
// A mask has the same dimensions as the padded image spectrum and holds one
// weight in [0, 1] per frequency bin. Masks are laid out like the unshifted
// transform output: the DC term sits at index (0, 0) and frequencies past the
// midpoint of each axis wrap to negative values.
package filter

import (
	"fmt"

	"github.com/tphakala/go-ppi-resampler/internal/simdops"
)

// Shape enumerates the supported low-pass mask shapes.
type Shape int

const (
	// ShapeIdeal is a binary elliptical mask: 1 inside the cutoff, 0 outside.
	ShapeIdeal Shape = iota + 1

	// ShapeGaussian is a separable Gaussian mask normalized to [0, 1].
	ShapeGaussian
)

// String returns the configuration token for the shape.
func (s Shape) String() string {
	switch s {
	case ShapeIdeal:
		return "ideal"
	case ShapeGaussian:
		return "gaussian"
	default:
		return fmt.Sprintf("Shape(%d)", int(s))
	}
}

// ParseShape maps a configuration token to a Shape.
// Tokens are case sensitive: "ideal" or "gaussian".
func ParseShape(token string) (Shape, error) {
	switch token {
	case "ideal":
		return ShapeIdeal, nil
	case "gaussian":
		return ShapeGaussian, nil
	default:
		return 0, fmt.Errorf("unknown filter shape %q", token)
	}
}

// Mask is a 2-D weight array in row-major order.
type Mask struct {
	Shape  Shape
	Width  int
	Height int
	Data   []float64
}

// At returns the weight at column x, row y.
func (m *Mask) At(x, y int) float64 {
	return m.Data[y*m.Width+x]
}

// Row returns row y as a slice sharing the mask storage.
func (m *Mask) Row(y int) []float64 {
	return m.Data[y*m.Width : (y+1)*m.Width]
}

// CountAbove returns the number of weights strictly greater than threshold.
func (m *Mask) CountAbove(threshold float64) int {
	n := 0
	for _, v := range m.Data {
		if v > threshold {
			n++
		}
	}
	return n
}

// Energy returns the sum of squared weights, the white-noise power gain of
// the mask times the number of bins.
func (m *Mask) Energy() float64 {
	return simdops.Energy(m.Data)
}

// Builder constructs a mask for a given padded image size.
// Implementations are pure: equal inputs yield bit-identical masks.
type Builder interface {
	// Build returns a width×height mask.
	Build(width, height int) (*Mask, error)

	// Shape reports the mask shape this builder produces.
	Shape() Shape

	// RadiusFactor returns targetRate/sourceRate, the cutoff scale.
	RadiusFactor() float64
}

// New returns the builder for shape and the given rate pair.
func New(shape Shape, srcRate, tgtRate int) (Builder, error) {
	if srcRate <= 0 || tgtRate <= 0 {
		return nil, fmt.Errorf("sample rates must be positive: source=%d target=%d", srcRate, tgtRate)
	}

	switch shape {
	case ShapeIdeal:
		return NewIdeal(srcRate, tgtRate), nil
	case ShapeGaussian:
		return NewGaussian(srcRate, tgtRate), nil
	default:
		return nil, fmt.Errorf("unsupported filter shape: %v", shape)
	}
}

// radiusFactor computes targetRate/sourceRate.
func radiusFactor(srcRate, tgtRate int) float64 {
	return float64(tgtRate) / float64(srcRate)
}

// validateSize checks that width and height are positive and even, which
// the quadrant layout requires.
func validateSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("invalid mask size %dx%d", width, height)
	}
	if width%evenDivisor != 0 || height%evenDivisor != 0 {
		return fmt.Errorf("mask size %dx%d must be even in both dimensions", width, height)
	}
	return nil
}
