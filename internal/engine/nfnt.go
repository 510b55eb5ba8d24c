package engine

import (
	"fmt"
	"image"

	"github.com/nfnt/resize"
	"golang.org/x/image/draw"
)

// NfntResizer delegates to github.com/nfnt/resize. Its kernels widen on
// reduction, so downsampled output is smoother than NativeResizer's.
type NfntResizer struct{}

// Name returns NameNfnt.
func (*NfntResizer) Name() string { return NameNfnt }

// Resize scales src by factor.
func (*NfntResizer) Resize(src *image.Gray, factor float64, method Interpolation) (*image.Gray, error) {
	dw, dh, err := targetSize(src, factor)
	if err != nil {
		return nil, err
	}

	var interp resize.InterpolationFunction
	switch method {
	case Bicubic:
		interp = resize.Bicubic
	case Bilinear:
		interp = resize.Bilinear
	default:
		return nil, fmt.Errorf("unsupported interpolation: %v", method)
	}

	out := resize.Resize(uint(dw), uint(dh), src, interp)
	if gray, ok := out.(*image.Gray); ok {
		return gray, nil
	}

	gray := image.NewGray(image.Rect(0, 0, dw, dh))
	draw.Draw(gray, gray.Bounds(), out, out.Bounds().Min, draw.Src)
	return gray, nil
}
