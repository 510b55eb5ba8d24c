package testutil

import (
	"image"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

// Synthetic image parameters.
const (
	ridgeMid       = 127.5
	ridgeAmplitude = 127.5
	maxGray        = 255
)

// Uniform returns a w×h gray image filled with value v.
func Uniform(w, h int, v uint8) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = v
	}
	return img
}

// Ridges returns a w×h image of diagonal sinusoidal ridges with the given
// period in pixels, a rough stand-in for a fingerprint impression.
func Ridges(w, h int, period float64) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	omega := 2 * math.Pi / period
	for y := range h {
		for x := range w {
			v := ridgeMid + ridgeAmplitude*math.Cos(omega*float64(x+y)/math.Sqrt2)
			img.Pix[y*img.Stride+x] = uint8(math.Round(v))
		}
	}
	return img
}

// Stripes returns vertical stripes alternating between 0 and 255 every
// period/2 columns.
func Stripes(w, h, period int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			if (x/(period/2))%2 == 0 {
				img.Pix[y*img.Stride+x] = maxGray
			}
		}
	}
	return img
}

// Noise returns a w×h image of uniformly distributed values from a fixed seed.
func Noise(w, h int, seed uint64) *image.Gray {
	rng := rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.IntN(maxGray + 1))
	}
	return img
}

// AssertSize verifies image bounds are w×h.
func AssertSize(t *testing.T, img image.Image, w, h int, msgAndArgs ...any) bool {
	t.Helper()
	b := img.Bounds()
	ok := assert.Equal(t, w, b.Dx(), "width")
	return assert.Equal(t, h, b.Dy(), "height") && ok
}

// AssertSizeWithin verifies image bounds are within ±tol of w×h.
func AssertSizeWithin(t *testing.T, img image.Image, w, h, tol int) bool {
	t.Helper()
	b := img.Bounds()
	ok := assert.InDelta(t, w, b.Dx(), float64(tol), "width")
	return assert.InDelta(t, h, b.Dy(), float64(tol), "height") && ok
}

// MeanAbsDiff returns the mean absolute pixel difference of two equally sized images.
func MeanAbsDiff(a, b *image.Gray) float64 {
	w, h := a.Bounds().Dx(), a.Bounds().Dy()
	var sum float64
	for y := range h {
		for x := range w {
			da := float64(a.Pix[y*a.Stride+x])
			db := float64(b.Pix[y*b.Stride+x])
			sum += math.Abs(da - db)
		}
	}
	return sum / float64(w*h)
}
