package engine

import (
	"fmt"
	"image"
	"math"
)

// NativeResizer is a pure-Go separable resizer using the same sampling grid
// and kernels as OpenCV's INTER_CUBIC and INTER_LINEAR: pixel centers are
// aligned, the cubic kernel uses a = -0.75 and edge pixels are replicated.
// Arithmetic is done in float64, so results can differ by one gray level
// from OpenCV's fixed-point path.
type NativeResizer struct{}

// Name returns NameNative.
func (*NativeResizer) Name() string { return NameNative }

// Resize scales src by factor.
func (*NativeResizer) Resize(src *image.Gray, factor float64, method Interpolation) (*image.Gray, error) {
	dw, dh, err := targetSize(src, factor)
	if err != nil {
		return nil, err
	}

	var weights func(frac float64, dst []float64)
	var points int
	switch method {
	case Bicubic:
		weights, points = cubicWeights, cubicInterpolationPoints
	case Bilinear:
		weights, points = linearWeights, linearInterpolationPoints
	default:
		return nil, fmt.Errorf("unsupported interpolation: %v", method)
	}

	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	cols := newAxisTaps(sw, dw, factor, points, weights)
	rows := newAxisTaps(sh, dh, factor, points, weights)

	// Horizontal pass into a float buffer of sh rows by dw columns.
	tmp := make([]float64, sh*dw)
	for y := range sh {
		in := src.Pix[y*src.Stride : y*src.Stride+sw]
		out := tmp[y*dw : (y+1)*dw]
		for x := range dw {
			var acc float64
			for k, idx := range cols.index[x] {
				acc += cols.weight[x][k] * float64(in[idx])
			}
			out[x] = acc
		}
	}

	// Vertical pass.
	dst := image.NewGray(image.Rect(0, 0, dw, dh))
	for y := range dh {
		out := dst.Pix[y*dst.Stride : y*dst.Stride+dw]
		for x := range dw {
			var acc float64
			for k, idx := range rows.index[y] {
				acc += rows.weight[y][k] * tmp[idx*dw+x]
			}
			out[x] = clampPixel(acc)
		}
	}

	return dst, nil
}

// axisTaps holds, per output position, the clamped source indices and the
// kernel weights applied to them.
type axisTaps struct {
	index  [][]int
	weight [][]float64
}

// newAxisTaps maps every output position onto the source axis. Output pixel
// d samples the source at (d + 0.5)/factor - 0.5.
func newAxisTaps(srcLen, dstLen int, factor float64, points int, weights func(float64, []float64)) axisTaps {
	taps := axisTaps{
		index:  make([][]int, dstLen),
		weight: make([][]float64, dstLen),
	}
	scale := 1 / factor
	first := points/linearInterpolationPoints - 1

	for d := range dstLen {
		pos := (float64(d)+pixelCenterOffset)*scale - pixelCenterOffset
		base := math.Floor(pos)
		frac := pos - base

		idx := make([]int, points)
		w := make([]float64, points)
		weights(frac, w)
		for k := range points {
			idx[k] = clampIndex(int(base)-first+k, srcLen)
		}
		taps.index[d] = idx
		taps.weight[d] = w
	}
	return taps
}

// cubicWeights fills dst with the four cubic convolution weights for a
// sample at fractional offset x past the second tap.
func cubicWeights(x float64, dst []float64) {
	const a = cubicA
	x0 := x + cubicTapOffset
	dst[0] = ((a*x0-cubicCoeff5*a)*x0+cubicCoeff8*a)*x0 - cubicCoeff4*a
	dst[1] = ((a+cubicCoeff2)*x-(a+cubicCoeff3))*x*x + 1
	x2 := 1 - x
	dst[2] = ((a+cubicCoeff2)*x2-(a+cubicCoeff3))*x2*x2 + 1
	dst[3] = 1 - dst[0] - dst[1] - dst[2]
}

// linearWeights fills dst with the two linear interpolation weights.
func linearWeights(x float64, dst []float64) {
	dst[0] = 1 - x
	dst[1] = x
}

func clampIndex(i, n int) int {
	return min(max(i, 0), n-1)
}

func clampPixel(v float64) uint8 {
	r := math.Round(v)
	switch {
	case r <= 0:
		return 0
	case r >= maxPixelValue:
		return maxPixelValue
	default:
		return uint8(r)
	}
}
