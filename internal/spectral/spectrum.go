// Package spectral implements the 2-D discrete Fourier transform path used
// by the low-pass stage: forward transform of an 8-bit image, scaling,
// pointwise masking, inverse transform and conversion back to 8-bit.
package spectral

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/tphakala/go-ppi-resampler/internal/filter"
	"github.com/tphakala/go-ppi-resampler/internal/simdops"
)

// ErrEmptyImage is returned when a transform is requested for an image with
// no pixels.
var ErrEmptyImage = errors.New("spectral: empty image")

// Spectrum holds the complex DFT coefficients of a Width×Height plane in
// row-major order, with the DC term at index 0.
type Spectrum struct {
	Width  int
	Height int
	Data   []complex128
}

// Forward computes the complex 2-D DFT of img.
// Pixel values enter the transform unscaled (0..255) with zero imaginary part.
func Forward(img *image.Gray) (*Spectrum, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, ErrEmptyImage
	}

	data := make([]complex128, w*h)
	for y := range h {
		row := img.Pix[y*img.Stride : y*img.Stride+w]
		out := data[y*w : (y+1)*w]
		for x, p := range row {
			out[x] = complex(float64(p), 0)
		}
	}

	s := &Spectrum{Width: w, Height: h, Data: data}
	if err := s.transform(false); err != nil {
		return nil, err
	}
	return s, nil
}

// Normalize divides every coefficient by Width·Height.
func (s *Spectrum) Normalize() {
	scale := complex(1/float64(s.Width*s.Height), 0)
	for i := range s.Data {
		s.Data[i] *= scale
	}
}

// ApplyMask multiplies each coefficient by complex(w, w), where w is the
// mask weight at the same position. The weight enters both the real and the
// imaginary channel of the multiplier.
func (s *Spectrum) ApplyMask(m *filter.Mask) error {
	if m.Width != s.Width || m.Height != s.Height {
		return fmt.Errorf("spectral: mask %dx%d does not match spectrum %dx%d",
			m.Width, m.Height, s.Width, s.Height)
	}

	weights := make([]complex128, len(m.Data))
	for i, w := range m.Data {
		weights[i] = complex(w, w)
	}

	product := make([]complex128, len(s.Data))
	simdops.Complex128Ops().Mul(product, s.Data, weights)
	s.Data = product

	return nil
}

// Inverse computes the unscaled inverse 2-D DFT and returns its real part.
// The spectrum is consumed: its coefficients are overwritten.
func (s *Spectrum) Inverse() (*Plane, error) {
	if err := s.transform(true); err != nil {
		return nil, err
	}

	out := make([]float64, len(s.Data))
	for i, c := range s.Data {
		out[i] = real(c)
	}
	return &Plane{Width: s.Width, Height: s.Height, Data: out}, nil
}

// Plane is a real-valued Width×Height array in row-major order.
type Plane struct {
	Width  int
	Height int
	Data   []float64
}

// Gray converts the plane to an 8-bit image, rounding half to even and
// saturating to [0, 255].
func (p *Plane) Gray() *image.Gray {
	img := image.NewGray(image.Rect(0, 0, p.Width, p.Height))
	for i, v := range p.Data {
		img.Pix[i] = saturateUint8(v)
	}
	return img
}

func saturateUint8(v float64) uint8 {
	r := math.RoundToEven(v)
	switch {
	case math.IsNaN(r) || r <= 0:
		return 0
	case r >= math.MaxUint8:
		return math.MaxUint8
	default:
		return uint8(r)
	}
}
