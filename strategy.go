package resampler

import (
	"context"
	"errors"
	"fmt"
	"image"
	"time"

	"github.com/tphakala/go-ppi-resampler/internal/engine"
	"github.com/tphakala/go-ppi-resampler/internal/filter"
	"github.com/tphakala/go-ppi-resampler/internal/pipeline"
)

// strategy builds the stage pipeline for one resampling direction.
type strategy interface {
	pipeline() *pipeline.Pipeline
	resizerName() string
}

// upsampler enlarges with a single interpolated resize.
type upsampler struct {
	res     resolution
	resizer engine.Resizer
}

func (u *upsampler) resizerName() string { return u.resizer.Name() }

func (u *upsampler) pipeline() *pipeline.Pipeline {
	return pipeline.BuildUpsample(u.resizer, u.res.method, u.res.factor)
}

// downsampler low-passes in the frequency domain before resizing.
type downsampler struct {
	res     resolution
	resizer engine.Resizer
	mask    filter.Builder
}

func (d *downsampler) resizerName() string { return d.resizer.Name() }

func (d *downsampler) pipeline() *pipeline.Pipeline {
	return pipeline.BuildDownsample(d.mask, d.resizer, d.res.method, d.res.factor)
}

// newStrategy creates the strategy for a resolved configuration.
func newStrategy(cfg Config, res resolution) (strategy, error) {
	resizer, err := engine.New(cfg.Resizer)
	if err != nil {
		return nil, configError(opResizer, "%v", err)
	}

	if res.direction == Upsample {
		return &upsampler{res: res, resizer: resizer}, nil
	}

	mask, err := filter.New(res.shape, cfg.SourceRate, cfg.TargetRate)
	if err != nil {
		return nil, configError(opFilterShape, "%v", err)
	}
	return &downsampler{res: res, resizer: resizer, mask: mask}, nil
}

// execute runs the strategy pipeline on img. Stage failures and panics
// raised by the numeric primitives become processing errors.
func execute(ctx context.Context, s strategy, img *image.Gray) (frame *pipeline.Frame, timings []StageTiming, err error) {
	defer func() {
		if r := recover(); r != nil {
			frame, timings = nil, nil
			err = processingError(opPanic, "unexpected failure", fmt.Errorf("%v", r))
		}
	}()

	p := s.pipeline().WithObserver(func(stage string, elapsed time.Duration) {
		timings = append(timings, StageTiming{Name: stage, Elapsed: elapsed})
	})

	frame, err = p.Run(ctx, img)
	if err == nil {
		return frame, timings, nil
	}

	var stageErr *pipeline.StageError
	switch {
	case errors.As(err, &stageErr):
		return nil, nil, processingError(stageErr.Stage, "stage failed", stageErr.Err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return nil, nil, processingError(opCancel, "resampling canceled", err)
	default:
		return nil, nil, processingError(opInput, "pipeline failed", err)
	}
}
