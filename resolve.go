package resampler

import (
	"github.com/tphakala/go-ppi-resampler/internal/engine"
	"github.com/tphakala/go-ppi-resampler/internal/filter"
)

// Direction tells whether an image is enlarged or reduced.
type Direction int

const (
	// Upsample enlarges: the target rate exceeds the source rate.
	Upsample Direction = iota + 1

	// Downsample reduces: the target rate is below the source rate.
	Downsample
)

// String returns "upsample" or "downsample".
func (d Direction) String() string {
	switch d {
	case Upsample:
		return "upsample"
	case Downsample:
		return "downsample"
	default:
		return "unknown"
	}
}

// resolution is the fully resolved processing plan for a Config.
type resolution struct {
	direction Direction
	factor    float64
	method    engine.Interpolation
	shape     filter.Shape // zero when upsampling
	recap     string
}

// downsampleDefault is the recommended filter and interpolation for a source rate.
type downsampleDefault struct {
	shape  filter.Shape
	method engine.Interpolation
}

// recommendedDownsample holds the best experimental combinations by source
// rate. Other rates fall back to fallbackDownsample.
var recommendedDownsample = map[int]downsampleDefault{
	Rate600:  {shape: filter.ShapeIdeal, method: engine.Bicubic},
	Rate1000: {shape: filter.ShapeIdeal, method: engine.Bilinear},
	Rate1200: {shape: filter.ShapeGaussian, method: engine.Bilinear},
}

var fallbackDownsample = downsampleDefault{shape: filter.ShapeIdeal, method: engine.Bilinear}

// upsampleDefault is the interpolation used when none is configured.
const upsampleDefault = engine.Bicubic

// resolve validates cfg and picks direction, interpolation and filter.
func resolve(cfg Config) (resolution, error) {
	if err := cfg.Validate(); err != nil {
		return resolution{}, err
	}

	res := resolution{factor: float64(cfg.TargetRate) / float64(cfg.SourceRate)}
	if cfg.TargetRate > cfg.SourceRate {
		res.direction = Upsample
		return res, resolveUpsample(cfg, &res)
	}
	res.direction = Downsample
	return res, resolveDownsample(cfg, &res)
}

func resolveUpsample(cfg Config, res *resolution) error {
	if cfg.Interpolation == "" {
		res.method = upsampleDefault
		res.recap = recapUpDefault
		return nil
	}

	m, err := engine.ParseInterpolation(cfg.Interpolation)
	if err != nil {
		return configError(opInterpolation, "invalid interpolation method: %q", cfg.Interpolation)
	}
	res.method = m
	res.recap = recapUpUser
	return nil
}

// resolveDownsample applies the both-or-neither rule: either both tokens are
// set and parsed, or both are empty and the recommendation for the source
// rate is used.
func resolveDownsample(cfg Config, res *resolution) error {
	im, fs := cfg.Interpolation, cfg.FilterShape

	switch {
	case im == "" && fs == "":
		d, ok := recommendedDownsample[cfg.SourceRate]
		if !ok {
			d = fallbackDownsample
		}
		res.method, res.shape = d.method, d.shape
		res.recap = recapDownDefault
		return nil

	case im == "" || fs == "":
		return configError(opInterpolation,
			"interpolation method (%q) and filter shape (%q) must be set together or both left empty", im, fs)
	}

	m, err := engine.ParseInterpolation(im)
	if err != nil {
		return configError(opInterpolation, "invalid interpolation method: %q", im)
	}
	s, err := filter.ParseShape(fs)
	if err != nil {
		return configError(opFilterShape, "invalid filter shape: %q", fs)
	}

	res.method, res.shape = m, s
	res.recap = recapDownUser
	return nil
}
