package resampler

import (
	"image"
)

// New600to500 creates a resampler for 600 ppi scans to 500 ppi using the
// recommended ideal filter and bicubic interpolation.
func New600to500() (Resampler, error) {
	return New(Config{SourceRate: Rate600, TargetRate: Rate500})
}

// New1000to500 creates a resampler for 1000 ppi captures to 500 ppi using
// the recommended ideal filter and bilinear interpolation.
func New1000to500() (Resampler, error) {
	return New(Config{SourceRate: Rate1000, TargetRate: Rate500})
}

// New1200to500 creates a resampler for 1200 ppi scans to 500 ppi using the
// recommended Gaussian filter and bilinear interpolation.
func New1200to500() (Resampler, error) {
	return New(Config{SourceRate: Rate1200, TargetRate: Rate500})
}

// NewSimple creates a resampler between arbitrary rates with recommended
// settings.
func NewSimple(srcRate, tgtRate int) (Resampler, error) {
	return New(Config{SourceRate: srcRate, TargetRate: tgtRate})
}

// ResampleSimple resamples img between two rates with recommended settings
// and returns only the image.
//
// Example:
//
//	out, err := resampler.ResampleSimple(img, resampler.Rate1000, resampler.Rate500)
func ResampleSimple(img *image.Gray, srcRate, tgtRate int) (*image.Gray, error) {
	res, err := Resample(img, Config{SourceRate: srcRate, TargetRate: tgtRate})
	if err != nil {
		return nil, err
	}
	return res.Image, nil
}

// DownsampleTo500 resamples img from srcRate to the standard 500 ppi.
func DownsampleTo500(img *image.Gray, srcRate int) (*image.Gray, error) {
	return ResampleSimple(img, srcRate, Rate500)
}
