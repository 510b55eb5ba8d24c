//go:build opencv

package engine

import (
	"fmt"
	"image"

	"gocv.io/x/gocv"
)

// OpenCVResizer delegates to cv::resize through gocv.
// Only available when built with the opencv tag.
type OpenCVResizer struct{}

// Name returns NameOpenCV.
func (*OpenCVResizer) Name() string { return NameOpenCV }

// Resize scales src by factor with cv::resize(src, dst, Size(), factor, factor, method).
func (*OpenCVResizer) Resize(src *image.Gray, factor float64, method Interpolation) (*image.Gray, error) {
	dw, dh, err := targetSize(src, factor)
	if err != nil {
		return nil, err
	}

	var flag gocv.InterpolationFlags
	switch method {
	case Bicubic:
		flag = gocv.InterpolationCubic
	case Bilinear:
		flag = gocv.InterpolationLinear
	default:
		return nil, fmt.Errorf("unsupported interpolation: %v", method)
	}

	b := src.Bounds()
	sw, sh := b.Dx(), b.Dy()
	pix := make([]byte, sw*sh)
	for y := range sh {
		copy(pix[y*sw:(y+1)*sw], src.Pix[y*src.Stride:y*src.Stride+sw])
	}

	in, err := gocv.NewMatFromBytes(sh, sw, gocv.MatTypeCV8U, pix)
	if err != nil {
		return nil, fmt.Errorf("wrap source: %w", err)
	}
	defer in.Close()

	out := gocv.NewMat()
	defer out.Close()

	gocv.Resize(in, &out, image.Point{}, factor, factor, flag)
	if out.Cols() != dw || out.Rows() != dh {
		return nil, fmt.Errorf("opencv produced %dx%d, expected %dx%d", out.Cols(), out.Rows(), dw, dh)
	}

	dst := image.NewGray(image.Rect(0, 0, dw, dh))
	copy(dst.Pix, out.ToBytes())
	return dst, nil
}

func init() {
	Register(NameOpenCV, func() Resizer { return &OpenCVResizer{} })
}
