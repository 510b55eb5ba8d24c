package resampler

import (
	"context"
	"fmt"
	"image"
	"strings"
	"time"

	"github.com/tphakala/go-ppi-resampler/internal/pipeline"
)

// Resampler resamples grayscale images between a fixed pair of rates.
// A Resampler is immutable; every call allocates its own buffers, so one
// instance may be used from multiple goroutines.
type Resampler interface {
	// Resample processes a single image.
	Resample(img *image.Gray) (*Result, error)

	// ResampleContext is like Resample but stops between stages when ctx
	// is done.
	ResampleContext(ctx context.Context, img *image.Gray) (*Result, error)

	// Info describes the resolved configuration.
	Info() Info
}

// Config holds resampling configuration.
type Config struct {
	// SourceRate is the sample rate of the input image in pixels per inch.
	SourceRate int

	// TargetRate is the desired sample rate in pixels per inch.
	TargetRate int

	// Interpolation is "bicubic", "bilinear" or empty for the recommended
	// method.
	Interpolation string

	// FilterShape is "ideal", "gaussian" or empty for the recommended shape.
	// Ignored when upsampling. When downsampling, Interpolation and
	// FilterShape must be both set or both empty.
	FilterShape string

	// Resizer selects the resize backend by registry name. Empty selects
	// the pure-Go default.
	Resizer string

	// KeepFiltered returns the low-passed image at source resolution in
	// Result.Filtered when downsampling.
	KeepFiltered bool
}

// Validate checks the sample rates.
func (c Config) Validate() error {
	if c.SourceRate == c.TargetRate {
		return configError(opRates, "source and target sample rates cannot be equal (%d)", c.SourceRate)
	}
	if c.SourceRate <= 0 || c.TargetRate <= 0 {
		return configError(opRates, "sample rates must be positive: source=%d target=%d",
			c.SourceRate, c.TargetRate)
	}
	return nil
}

// Padding is the margin added around the source image before the forward
// transform. Only Bottom and Right are ever non-zero.
type Padding struct {
	Top    int
	Left   int
	Bottom int
	Right  int
}

// String formats the padding for log output.
func (p Padding) String() string {
	return pipeline.Padding(p).String()
}

// Info describes a resolved configuration.
type Info struct {
	Direction     Direction
	SourceRate    int
	TargetRate    int
	ResizeFactor  float64
	Interpolation string
	FilterShape   string // empty when upsampling
	Resizer       string
	Recap         string

	// Padding is set on Result.Info after a downsample run.
	Padding Padding
}

// String renders the configuration as a multi-line report.
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s configuration:\n", strings.ToUpper(i.Direction.String()))
	fmt.Fprintf(&b, "  source sample rate:    %d\n", i.SourceRate)
	fmt.Fprintf(&b, "  target sample rate:    %d\n", i.TargetRate)
	fmt.Fprintf(&b, "  resize factor:         %g\n", i.ResizeFactor)
	fmt.Fprintf(&b, "  recap:                 %s\n", i.Recap)
	if i.FilterShape != "" {
		fmt.Fprintf(&b, "  filter/mask shape:     %s\n", i.FilterShape)
	}
	fmt.Fprintf(&b, "  interpolation method:  %s\n", i.Interpolation)
	fmt.Fprintf(&b, "  resizer:               %s\n", i.Resizer)
	return b.String()
}

// StageTiming records how long one pipeline stage took.
type StageTiming struct {
	Name    string
	Elapsed time.Duration
}

// Result is the output of one resampling call.
type Result struct {
	// Image is the resampled image.
	Image *image.Gray

	// Filtered is the low-passed image before the final resize. Only set
	// when downsampling with Config.KeepFiltered.
	Filtered *image.Gray

	// Log lists the configuration decisions made, in order.
	Log []string

	Info   Info
	Stages []StageTiming
}

// imageResampler is the Resampler implementation.
type imageResampler struct {
	cfg   Config
	res   resolution
	strat strategy
	info  Info
}

// New creates a Resampler after validating and resolving cfg.
func New(cfg Config) (Resampler, error) {
	res, err := resolve(cfg)
	if err != nil {
		return nil, err
	}

	strat, err := newStrategy(cfg, res)
	if err != nil {
		return nil, err
	}

	return &imageResampler{
		cfg:   cfg,
		res:   res,
		strat: strat,
		info:  newInfo(cfg, res, strat.resizerName()),
	}, nil
}

// Resample resamples img once with cfg.
func Resample(img *image.Gray, cfg Config) (*Result, error) {
	r, err := New(cfg)
	if err != nil {
		return nil, err
	}
	return r.Resample(img)
}

// Describe resolves cfg without processing an image.
func Describe(cfg Config) (Info, error) {
	r, err := New(cfg)
	if err != nil {
		return Info{}, err
	}
	return r.Info(), nil
}

func newInfo(cfg Config, res resolution, resizer string) Info {
	info := Info{
		Resizer:       resizer,
		Direction:     res.direction,
		SourceRate:    cfg.SourceRate,
		TargetRate:    cfg.TargetRate,
		ResizeFactor:  res.factor,
		Interpolation: res.method.String(),
		Recap:         res.recap,
	}
	if res.direction == Downsample {
		info.FilterShape = res.shape.String()
	}
	return info
}

// Info returns the resolved configuration.
func (r *imageResampler) Info() Info {
	return r.info
}

// Resample processes img.
func (r *imageResampler) Resample(img *image.Gray) (*Result, error) {
	return r.ResampleContext(context.Background(), img)
}

// ResampleContext processes img, checking ctx between stages.
func (r *imageResampler) ResampleContext(ctx context.Context, img *image.Gray) (*Result, error) {
	if img == nil {
		return nil, configError(opInput, "nil image")
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, configError(opInput, "empty image %dx%d", b.Dx(), b.Dy())
	}

	info := r.info
	log := []string{
		fmt.Sprintf("%s: source %d ppi, target %d ppi, resize factor %g",
			info.Direction, info.SourceRate, info.TargetRate, info.ResizeFactor),
		info.Recap,
		"interpolation method: " + info.Interpolation,
	}
	if info.FilterShape != "" {
		log = append(log, "filter shape: "+info.FilterShape)
	}
	log = append(log, "resizer: "+info.Resizer)

	frame, timings, err := execute(ctx, r.strat, img)
	if err != nil {
		return nil, err
	}

	if r.res.direction == Downsample {
		info.Padding = Padding(frame.Padding)
		log = append(log,
			"padding: "+info.Padding.String(),
			fmt.Sprintf("padded size: %dx%d",
				frame.Width+frame.Padding.Left+frame.Padding.Right,
				frame.Height+frame.Padding.Top+frame.Padding.Bottom))
	}
	out := frame.Image.Bounds()
	log = append(log, fmt.Sprintf("output size: %dx%d", out.Dx(), out.Dy()))

	result := &Result{
		Image:  frame.Image,
		Log:    log,
		Info:   info,
		Stages: timings,
	}
	if r.cfg.KeepFiltered {
		result.Filtered = frame.Filtered
	}
	return result, nil
}
