// Package pipeline chains the processing stages that turn a source image into
// a resampled one.
//
// A downsampling pipeline pads the image to a DFT-friendly size, builds the
// low-pass mask, transforms, scales, masks and inverse-transforms the image,
// crops the padding away and finally resizes. An upsampling pipeline is a
// single resize stage.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/tphakala/go-ppi-resampler/internal/engine"
	"github.com/tphakala/go-ppi-resampler/internal/filter"
	"github.com/tphakala/go-ppi-resampler/internal/spectral"
)

// ErrNilImage is returned when Run is given no image.
var ErrNilImage = errors.New("pipeline: nil image")

// StageError reports which stage failed.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// Frame carries the working state between stages.
type Frame struct {
	// Width and Height are the source dimensions.
	Width  int
	Height int

	// Image is the current spatial-domain image. After the last stage it
	// holds the output.
	Image *image.Gray

	Padding  Padding
	Mask     *filter.Mask
	Spectrum *spectral.Spectrum
	Plane    *spectral.Plane

	// Filtered is the low-passed image at source resolution, set by the
	// crop stage.
	Filtered *image.Gray
}

// Stage represents a single processing step.
type Stage interface {
	// Name identifies the stage in errors and observer callbacks.
	Name() string

	// Process advances the frame.
	Process(f *Frame) error
}

// Observer is called after every completed stage.
type Observer func(stage string, elapsed time.Duration)

// Pipeline is an ordered list of stages.
type Pipeline struct {
	stages   []Stage
	observer Observer
}

// New creates a pipeline from stages.
func New(stages ...Stage) *Pipeline {
	p := &Pipeline{stages: make([]Stage, 0, defaultStageCapacity)}
	p.stages = append(p.stages, stages...)
	return p
}

// BuildDownsample returns the filter-then-resize pipeline.
func BuildDownsample(mask filter.Builder, resizer engine.Resizer, method engine.Interpolation, factor float64) *Pipeline {
	return New(
		padStage{},
		maskStage{builder: mask},
		forwardStage{},
		normalizeStage{},
		filterStage{},
		inverseStage{},
		cropStage{},
		resizeStage{resizer: resizer, method: method, factor: factor},
	)
}

// BuildUpsample returns the resize-only pipeline.
func BuildUpsample(resizer engine.Resizer, method engine.Interpolation, factor float64) *Pipeline {
	return New(resizeStage{resizer: resizer, method: method, factor: factor})
}

// WithObserver sets the per-stage callback and returns p.
func (p *Pipeline) WithObserver(o Observer) *Pipeline {
	p.observer = o
	return p
}

// Stages returns the stage names in execution order.
func (p *Pipeline) Stages() []string {
	names := make([]string, len(p.stages))
	for i, s := range p.stages {
		names[i] = s.Name()
	}
	return names
}

// Run executes every stage on img. The input image is never modified.
// Cancellation is checked between stages.
func (p *Pipeline) Run(ctx context.Context, img *image.Gray) (*Frame, error) {
	if img == nil {
		return nil, ErrNilImage
	}

	b := img.Bounds()
	f := &Frame{Width: b.Dx(), Height: b.Dy(), Image: img}

	for _, s := range p.stages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		start := time.Now()
		if err := s.Process(f); err != nil {
			return nil, &StageError{Stage: s.Name(), Err: err}
		}
		if p.observer != nil {
			p.observer(s.Name(), time.Since(start))
		}
	}

	return f, nil
}
