package filter

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tphakala/go-ppi-resampler/internal/mathutil"
	"github.com/tphakala/go-ppi-resampler/internal/simdops"
)

// GaussianBuilder builds separable Gaussian low-pass masks.
type GaussianBuilder struct {
	srcRate int
	tgtRate int
	radius  float64
}

// NewGaussian creates a Gaussian mask builder for the rate pair.
func NewGaussian(srcRate, tgtRate int) *GaussianBuilder {
	return &GaussianBuilder{
		srcRate: srcRate,
		tgtRate: tgtRate,
		radius:  radiusFactor(srcRate, tgtRate),
	}
}

// Shape returns ShapeGaussian.
func (b *GaussianBuilder) Shape() Shape { return ShapeGaussian }

// RadiusFactor returns targetRate/sourceRate.
func (b *GaussianBuilder) RadiusFactor() float64 { return b.radius }

// Build returns the Gaussian mask for a width×height spectrum.
//
// The 2-D Gaussian is the outer product of a height-tap kernel with
// σ = r·height/2 and a width-tap kernel with σ = r·width/2. It is min-max
// normalized to [0, 1] and quadrant swapped so that its peak moves from the
// center of the array to the DC bin at (0, 0).
func (b *GaussianBuilder) Build(width, height int) (*Mask, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}

	sigmaHeight := b.radius * float64(height) / sigmaDivisor
	sigmaWidth := b.radius * float64(width) / sigmaDivisor

	colKernel := mat.NewVecDense(height, mathutil.GaussianKernel(height, sigmaHeight))
	rowKernel := mat.NewVecDense(width, mathutil.GaussianKernel(width, sigmaWidth))

	var outer mat.Dense
	outer.Outer(1, colKernel, rowKernel)

	raw := outer.RawMatrix()
	data := make([]float64, width*height)
	for y := range height {
		copy(data[y*width:(y+1)*width], raw.Data[y*raw.Stride:y*raw.Stride+width])
	}

	normalizeMinMax(data)

	m := &Mask{
		Shape:  ShapeGaussian,
		Width:  width,
		Height: height,
		Data:   data,
	}
	QuadrantSwap(m)

	return m, nil
}

// normalizeMinMax rescales data in place to span [0, 1].
// A flat input becomes all ones.
func normalizeMinMax(data []float64) {
	lo := floats.Min(data)
	hi := floats.Max(data)
	spread := hi - lo
	if spread <= flatRangeThreshold {
		for i := range data {
			data[i] = passWeight
		}
		return
	}
	floats.AddConst(-lo, data)
	simdops.Float64Ops().Scale(data, data, 1/spread)
}
