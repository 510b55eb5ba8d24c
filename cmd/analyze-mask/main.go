// Command analyze-mask reports statistics of the low-pass masks used when
// downsampling, and how much spectral power survives them on a noise image.
//
// Usage:
//
//	analyze-mask --src 1000 --tgt 500 --width 800 --height 750
//	analyze-mask --src 1200 --tgt 500 --shape gaussian --json
package main

import (
	"errors"
	"fmt"
	"image"
	"math/rand/v2"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	resampler "github.com/tphakala/go-ppi-resampler"
	"github.com/tphakala/go-ppi-resampler/internal/filter"
	"github.com/tphakala/go-ppi-resampler/internal/pipeline"
	"github.com/tphakala/go-ppi-resampler/internal/spectral"
)

const (
	defaultSrcRate = resampler.Rate1000
	defaultTgtRate = resampler.Rate500
	defaultWidth   = 800
	defaultHeight  = 750

	passThreshold = 0.5    // mask value counted as passband
	noiseSeed     = 0x4e46 // fixed so reports are reproducible
	noiseLevels   = 256
	probeMethod   = "bilinear"
)

var errUpsample = errors.New("masks are only built when downsampling")

// report holds the statistics of one mask shape.
type report struct {
	Shape         string
	Width, Height int
	PaddedWidth   int
	PaddedHeight  int
	Radius        float64
	Passband      int
	PassFraction  float64
	Min, Max      float64
	Mean          float64
	PowerGain     float64
	DC            float64
	Cutoff        float64 // ideal only
	PowerBefore   float64
	PowerAfter    float64
	Log           []string
}

func main() {
	var (
		src     = pflag.Int("src", defaultSrcRate, "source sample rate in ppi")
		tgt     = pflag.Int("tgt", defaultTgtRate, "target sample rate in ppi")
		width   = pflag.Int("width", defaultWidth, "image width in pixels")
		height  = pflag.Int("height", defaultHeight, "image height in pixels")
		shape   = pflag.String("shape", "", "mask shape [ideal | gaussian], empty for both")
		asJSON  = pflag.Bool("json", false, "emit JSON records")
		verbose = pflag.Bool("verbose", false, "also log the resampler decisions")
	)
	pflag.Parse()

	logger := newLogger(*asJSON, *verbose)

	shapes := []filter.Shape{filter.ShapeIdeal, filter.ShapeGaussian}
	if *shape != "" {
		s, err := filter.ParseShape(*shape)
		if err != nil {
			logger.WithError(err).Fatal("invalid shape")
		}
		shapes = []filter.Shape{s}
	}

	for _, s := range shapes {
		r, err := analyze(s, *src, *tgt, *width, *height)
		if err != nil {
			logger.WithError(err).WithField("shape", s.String()).Fatal("analysis failed")
		}
		for _, line := range r.Log {
			logger.WithField("shape", r.Shape).Debug(line)
		}
		logger.WithFields(r.fields()).Info("mask")
	}
}

func newLogger(asJSON, verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	if asJSON {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	}
	return logger
}

// analyze builds the mask for shape at the padded size of a width×height
// image and measures it.
func analyze(shape filter.Shape, src, tgt, width, height int) (report, error) {
	if tgt >= src {
		return report{}, fmt.Errorf("%w: %d to %d ppi", errUpsample, src, tgt)
	}
	if width <= 0 || height <= 0 {
		return report{}, fmt.Errorf("invalid size %dx%d", width, height)
	}

	b, err := filter.New(shape, src, tgt)
	if err != nil {
		return report{}, err
	}
	p := pipeline.ComputePadding(width, height)
	pw, ph := width+p.Left+p.Right, height+p.Top+p.Bottom

	m, err := b.Build(pw, ph)
	if err != nil {
		return report{}, err
	}

	pass := m.CountAbove(passThreshold)
	r := report{
		Shape:        shape.String(),
		Width:        width,
		Height:       height,
		PaddedWidth:  pw,
		PaddedHeight: ph,
		Radius:       b.RadiusFactor(),
		Passband:     pass,
		PassFraction: float64(pass) / float64(len(m.Data)),
		Min:          floats.Min(m.Data),
		Max:          floats.Max(m.Data),
		Mean:         stat.Mean(m.Data, nil),
		PowerGain:    m.Energy() / float64(len(m.Data)),
		DC:           m.At(0, 0),
	}

	if ideal, ok := b.(*filter.IdealBuilder); ok {
		r.Cutoff = ideal.Cutoff(pw, ph)
	}

	probe := noise(width, height)
	res, err := resampler.Resample(probe, resampler.Config{
		SourceRate:    src,
		TargetRate:    tgt,
		Interpolation: probeMethod,
		FilterShape:   shape.String(),
		KeepFiltered:  true,
	})
	if err != nil {
		return report{}, err
	}
	r.Log = res.Log
	if r.PowerBefore, err = spectral.PowerAbove(probe, r.Radius); err != nil {
		return report{}, err
	}
	if r.PowerAfter, err = spectral.PowerAbove(res.Filtered, r.Radius); err != nil {
		return report{}, err
	}
	return r, nil
}

func (r report) fields() logrus.Fields {
	return logrus.Fields{
		"shape":         r.Shape,
		"size":          fmt.Sprintf("%dx%d", r.Width, r.Height),
		"padded":        fmt.Sprintf("%dx%d", r.PaddedWidth, r.PaddedHeight),
		"radius":        r.Radius,
		"passband":      r.Passband,
		"pass_fraction": r.PassFraction,
		"min":           r.Min,
		"max":           r.Max,
		"mean":          r.Mean,
		"power_gain":    r.PowerGain,
		"dc":            r.DC,
		"cutoff":        r.Cutoff,
		"power_before":  r.PowerBefore,
		"power_after":   r.PowerAfter,
	}
}

// noise returns a mid-gray uniform noise image that stays clear of clipping.
func noise(w, h int) *image.Gray {
	rng := rand.New(rand.NewPCG(noiseSeed, noiseSeed))
	img := image.NewGray(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = uint8(rng.IntN(noiseLevels)/4 + noiseLevels*3/8)
	}
	return img
}
