package pipeline

import (
	"fmt"
	"image"

	"github.com/tphakala/go-ppi-resampler/internal/mathutil"
)

// Padding describes the margins added around an image before the forward
// transform. Only Bottom and Right are ever non-zero.
type Padding struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// String formats the padding for log output.
func (p Padding) String() string {
	return fmt.Sprintf("top=%d left=%d bottom=%d right=%d", p.Top, p.Left, p.Bottom, p.Right)
}

// ComputePadding returns the bottom and right margins that grow a
// width×height image to the smallest even, DFT-friendly size.
func ComputePadding(width, height int) Padding {
	return Padding{
		Bottom: mathutil.OptimalEvenDFTSize(height) - height,
		Right:  mathutil.OptimalEvenDFTSize(width) - width,
	}
}

// Pad returns a copy of img grown by p. New pixels are white.
func Pad(img *image.Gray, p Padding) *image.Gray {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	out := image.NewGray(image.Rect(0, 0, w+p.Left+p.Right, h+p.Top+p.Bottom))
	for i := range out.Pix {
		out.Pix[i] = padValue
	}
	for y := range h {
		src := img.Pix[y*img.Stride : y*img.Stride+w]
		dst := out.Pix[(y+p.Top)*out.Stride+p.Left:]
		copy(dst[:w], src)
	}
	return out
}

// Crop returns a copy of the width×height region at the origin of img.
func Crop(img *image.Gray, width, height int) (*image.Gray, error) {
	b := img.Bounds()
	if width > b.Dx() || height > b.Dy() || width < 0 || height < 0 {
		return nil, fmt.Errorf("crop %dx%d out of bounds %dx%d", width, height, b.Dx(), b.Dy())
	}

	out := image.NewGray(image.Rect(0, 0, width, height))
	for y := range height {
		copy(out.Pix[y*out.Stride:y*out.Stride+width], img.Pix[y*img.Stride:y*img.Stride+width])
	}
	return out, nil
}
