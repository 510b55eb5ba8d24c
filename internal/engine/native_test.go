package engine

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-ppi-resampler/internal/testutil"
)

// TestCubicWeights verifies the kernel sums to one and is interpolating.
func TestCubicWeights(t *testing.T) {
	w := make([]float64, cubicInterpolationPoints)

	cubicWeights(0, w)
	assert.InDelta(t, 0, w[0], testutil.DefaultTolerance)
	assert.InDelta(t, 1, w[1], testutil.DefaultTolerance)
	assert.InDelta(t, 0, w[2], testutil.DefaultTolerance)
	assert.InDelta(t, 0, w[3], testutil.DefaultTolerance)

	for _, x := range []float64{0.1, 0.25, 0.5, 0.75, 0.9} {
		cubicWeights(x, w)
		assert.InDelta(t, 1, w[0]+w[1]+w[2]+w[3], testutil.DefaultTolerance, "x=%v", x)
	}

	// Symmetric about the midpoint.
	cubicWeights(0.5, w)
	assert.InDelta(t, w[0], w[3], testutil.DefaultTolerance)
	assert.InDelta(t, w[1], w[2], testutil.DefaultTolerance)
	assert.InDelta(t, -0.09375, w[0], testutil.DefaultTolerance)
}

// TestNative_IdentityFactor verifies factor 1 returns the source pixels.
func TestNative_IdentityFactor(t *testing.T) {
	img := testutil.Noise(23, 17, 3)
	r := &NativeResizer{}

	for _, method := range []Interpolation{Bicubic, Bilinear} {
		out, err := r.Resize(img, 1, method)
		require.NoError(t, err)
		assert.Equal(t, img.Pix, out.Pix, method.String())
	}
}

// TestNative_HalveBilinearAverages verifies halving with bilinear weights is
// a 2×2 box average.
func TestNative_HalveBilinearAverages(t *testing.T) {
	img := testutil.Noise(16, 12, 11)

	out, err := (&NativeResizer{}).Resize(img, 0.5, Bilinear)
	require.NoError(t, err)

	for y := range 6 {
		for x := range 8 {
			sum := float64(img.GrayAt(2*x, 2*y).Y) + float64(img.GrayAt(2*x+1, 2*y).Y) +
				float64(img.GrayAt(2*x, 2*y+1).Y) + float64(img.GrayAt(2*x+1, 2*y+1).Y)
			assert.Equal(t, uint8(math.Round(sum/4)), out.GrayAt(x, y).Y, "pixel (%d,%d)", x, y)
		}
	}
}

// TestNative_RampStaysMonotone verifies a horizontal ramp upsampled with the
// cubic kernel stays non-decreasing away from the borders.
func TestNative_RampStaysMonotone(t *testing.T) {
	const w, h = 32, 4
	img := testutil.Uniform(w, h, 0)
	for y := range h {
		for x := range w {
			img.Pix[y*img.Stride+x] = uint8(x * 8)
		}
	}

	out, err := (&NativeResizer{}).Resize(img, 1.5, Bicubic)
	require.NoError(t, err)

	row := out.Pix[:out.Bounds().Dx()]
	for x := 3; x < len(row)-3; x++ {
		assert.GreaterOrEqual(t, row[x], row[x-1], "column %d", x)
	}
}

// TestClampPixel verifies rounding and saturation.
func TestClampPixel(t *testing.T) {
	assert.Equal(t, uint8(0), clampPixel(-20))
	assert.Equal(t, uint8(3), clampPixel(2.5))
	assert.Equal(t, uint8(255), clampPixel(255.4))
	assert.Equal(t, uint8(255), clampPixel(999))
}
