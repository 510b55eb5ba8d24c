package pipeline

import (
	"errors"

	"github.com/tphakala/go-ppi-resampler/internal/engine"
	"github.com/tphakala/go-ppi-resampler/internal/filter"
	"github.com/tphakala/go-ppi-resampler/internal/spectral"
)

var errStageOrder = errors.New("stage input missing")

type padStage struct{}

func (padStage) Name() string { return StagePad }

func (padStage) Process(f *Frame) error {
	f.Padding = ComputePadding(f.Width, f.Height)
	f.Image = Pad(f.Image, f.Padding)
	return nil
}

type maskStage struct {
	builder filter.Builder
}

func (maskStage) Name() string { return StageMask }

func (s maskStage) Process(f *Frame) error {
	b := f.Image.Bounds()
	m, err := s.builder.Build(b.Dx(), b.Dy())
	if err != nil {
		return err
	}
	f.Mask = m
	return nil
}

type forwardStage struct{}

func (forwardStage) Name() string { return StageForward }

func (forwardStage) Process(f *Frame) error {
	s, err := spectral.Forward(f.Image)
	if err != nil {
		return err
	}
	f.Spectrum = s
	return nil
}

type normalizeStage struct{}

func (normalizeStage) Name() string { return StageNormalize }

func (normalizeStage) Process(f *Frame) error {
	if f.Spectrum == nil {
		return errStageOrder
	}
	f.Spectrum.Normalize()
	return nil
}

type filterStage struct{}

func (filterStage) Name() string { return StageFilter }

func (filterStage) Process(f *Frame) error {
	if f.Spectrum == nil || f.Mask == nil {
		return errStageOrder
	}
	return f.Spectrum.ApplyMask(f.Mask)
}

type inverseStage struct{}

func (inverseStage) Name() string { return StageInverse }

func (inverseStage) Process(f *Frame) error {
	if f.Spectrum == nil {
		return errStageOrder
	}
	p, err := f.Spectrum.Inverse()
	if err != nil {
		return err
	}
	f.Plane = p
	f.Spectrum = nil
	f.Image = p.Gray()
	return nil
}

type cropStage struct{}

func (cropStage) Name() string { return StageCrop }

func (cropStage) Process(f *Frame) error {
	img, err := Crop(f.Image, f.Width, f.Height)
	if err != nil {
		return err
	}
	f.Image = img
	f.Filtered = img
	return nil
}

type resizeStage struct {
	resizer engine.Resizer
	method  engine.Interpolation
	factor  float64
}

func (resizeStage) Name() string { return StageResize }

func (s resizeStage) Process(f *Frame) error {
	img, err := s.resizer.Resize(f.Image, s.factor, s.method)
	if err != nil {
		return err
	}
	f.Image = img
	return nil
}
