package resampler

import (
	"context"
	"fmt"
	"image"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-ppi-resampler/internal/engine"
	"github.com/tphakala/go-ppi-resampler/internal/pipeline"
	"github.com/tphakala/go-ppi-resampler/internal/spectral"
	"github.com/tphakala/go-ppi-resampler/internal/testutil"
)

const (
	// 64 and 48 are already even and 5-smooth, so no padding is added.
	unpaddedWidth  = 64
	unpaddedHeight = 48

	noiseSeed = 2024
)

// TestConfig_Validate verifies rate validation.
func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name     string
		src, tgt int
		wantErr  bool
	}{
		{"down", 1000, 500, false},
		{"up", 300, 600, false},
		{"equal", 500, 500, true},
		{"equal_zero", 0, 0, true},
		{"zero_source", 0, 500, true},
		{"zero_target", 500, 0, true},
		{"negative_source", -600, 500, true},
		{"negative_target", 600, -500, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Config{SourceRate: tt.src, TargetRate: tt.tgt}.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.True(t, IsConfigError(err))

			_, err = Resample(testutil.Uniform(8, 8, 1), Config{SourceRate: tt.src, TargetRate: tt.tgt})
			assert.True(t, IsConfigError(err), "equal or non-positive rates must never be a no-op")
		})
	}
}

// TestResample_UpsampleDimensions verifies output size for enlarging pairs.
func TestResample_UpsampleDimensions(t *testing.T) {
	pairs := [][2]int{{300, 600}, {500, 600}, {500, 1000}, {333, 1000}, {500, 1200}}
	sizes := [][2]int{{37, 23}, {64, 48}, {101, 7}}

	for _, pr := range pairs {
		for _, sz := range sizes {
			t.Run(fmt.Sprintf("%dto%d_%dx%d", pr[0], pr[1], sz[0], sz[1]), func(t *testing.T) {
				res, err := Resample(testutil.Noise(sz[0], sz[1], noiseSeed), Config{SourceRate: pr[0], TargetRate: pr[1]})
				require.NoError(t, err)

				f := float64(pr[1]) / float64(pr[0])
				testutil.AssertSizeWithin(t, res.Image,
					int(math.Round(float64(sz[0])*f)), int(math.Round(float64(sz[1])*f)), 1)
			})
		}
	}
}

// TestResample_DownsampleDimensions verifies the crop fully removes padding
// and the resize applies the factor to the source size.
func TestResample_DownsampleDimensions(t *testing.T) {
	pairs := [][2]int{{600, 500}, {1000, 500}, {1200, 500}, {1000, 333}, {750, 500}}
	sizes := [][2]int{{37, 23}, {64, 48}, {97, 61}}

	for _, pr := range pairs {
		for _, sz := range sizes {
			t.Run(fmt.Sprintf("%dto%d_%dx%d", pr[0], pr[1], sz[0], sz[1]), func(t *testing.T) {
				res, err := Resample(testutil.Noise(sz[0], sz[1], noiseSeed), Config{
					SourceRate:   pr[0],
					TargetRate:   pr[1],
					KeepFiltered: true,
				})
				require.NoError(t, err)

				testutil.AssertSize(t, res.Filtered, sz[0], sz[1])
				w, h := engine.OutputSize(sz[0], sz[1], float64(pr[1])/float64(pr[0]))
				testutil.AssertSize(t, res.Image, w, h)
			})
		}
	}
}

// quietNoise returns noise confined to 96..159 so that filtering never clips.
func quietNoise(w, h int) *image.Gray {
	img := testutil.Noise(w, h, noiseSeed)
	for i, p := range img.Pix {
		img.Pix[i] = p/4 + 96
	}
	return img
}

// TestResample_600to500 checks the defaults and that nothing survives above
// the target Nyquist frequency.
func TestResample_600to500(t *testing.T) {
	src := quietNoise(unpaddedWidth, unpaddedHeight)

	res, err := Resample(src, Config{SourceRate: Rate600, TargetRate: Rate500, KeepFiltered: true})
	require.NoError(t, err)

	assert.Equal(t, Downsample, res.Info.Direction)
	assert.Equal(t, "ideal", res.Info.FilterShape)
	assert.Equal(t, "bicubic", res.Info.Interpolation)
	assert.Equal(t, Padding{}, res.Info.Padding)

	cutoff := float64(Rate500) / float64(Rate600) * 1.02
	before, err := spectral.PowerAbove(src, cutoff)
	require.NoError(t, err)
	after, err := spectral.PowerAbove(res.Filtered, cutoff)
	require.NoError(t, err)

	assert.Greater(t, before, 0.2, "noise should carry high-frequency power")
	assert.Less(t, after, 0.005, "filtered image keeps power above the cutoff")
}

// TestResample_1200to500 checks the Gaussian default attenuates high frequencies.
func TestResample_1200to500(t *testing.T) {
	src := quietNoise(unpaddedWidth, unpaddedHeight)

	res, err := Resample(src, Config{SourceRate: Rate1200, TargetRate: Rate500, KeepFiltered: true})
	require.NoError(t, err)

	assert.Equal(t, "gaussian", res.Info.FilterShape)
	assert.Equal(t, "bilinear", res.Info.Interpolation)
	assert.Equal(t, recapDownDefault, res.Info.Recap)

	cutoff := float64(Rate500) / float64(Rate1200)
	before, err := spectral.PowerAbove(src, cutoff)
	require.NoError(t, err)
	after, err := spectral.PowerAbove(res.Filtered, cutoff)
	require.NoError(t, err)
	assert.Less(t, after, before)
}

// TestResample_300to600 checks the upsample path runs no filter.
func TestResample_300to600(t *testing.T) {
	src := testutil.Noise(40, 30, noiseSeed)

	res, err := Resample(src, Config{
		SourceRate:    300,
		TargetRate:    600,
		Interpolation: "bilinear",
		KeepFiltered:  true,
	})
	require.NoError(t, err)

	testutil.AssertSize(t, res.Image, 80, 60)
	assert.Nil(t, res.Filtered)
	assert.Equal(t, Upsample, res.Info.Direction)
	assert.Empty(t, res.Info.FilterShape)
	require.Len(t, res.Stages, 1)
	assert.Equal(t, pipeline.StageResize, res.Stages[0].Name)
}

// TestResample_RoundTrip verifies down then up returns the source size without
// reproducing the source exactly.
func TestResample_RoundTrip(t *testing.T) {
	src := testutil.Ridges(120, 90, 6)

	down, err := ResampleSimple(src, Rate1000, Rate500)
	require.NoError(t, err)
	up, err := ResampleSimple(down, Rate500, Rate1000)
	require.NoError(t, err)

	testutil.AssertSize(t, up, 120, 90)
	assert.NotEqual(t, src.Pix, up.Pix)
}

// TestResample_Log verifies the runtime log records the decisions.
func TestResample_Log(t *testing.T) {
	res, err := Resample(testutil.Noise(97, 61, noiseSeed), Config{SourceRate: Rate1000, TargetRate: Rate500})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"downsample: source 1000 ppi, target 500 ppi, resize factor 0.5",
		recapDownDefault,
		"interpolation method: bilinear",
		"filter shape: ideal",
		"resizer: native",
		"padding: top=0 left=0 bottom=3 right=3",
		"padded size: 100x64",
		"output size: 48x30",
	}, res.Log)
	assert.Equal(t, Padding{Bottom: 3, Right: 3}, res.Info.Padding)
	assert.Len(t, res.Stages, 8)
}

// TestResample_InputErrors verifies nil and empty images are rejected.
func TestResample_InputErrors(t *testing.T) {
	cfg := Config{SourceRate: Rate1000, TargetRate: Rate500}

	_, err := Resample(nil, cfg)
	assert.True(t, IsConfigError(err))

	_, err = Resample(image.NewGray(image.Rect(0, 0, 0, 10)), cfg)
	assert.True(t, IsConfigError(err))
}

// TestResample_ProcessingError verifies a collapsed resize is tagged with its stage.
func TestResample_ProcessingError(t *testing.T) {
	_, err := Resample(testutil.Uniform(3, 3, 128), Config{SourceRate: 1000, TargetRate: 100})
	require.Error(t, err)
	assert.True(t, IsProcessingError(err))
	assert.ErrorIs(t, err, engine.ErrEmptyOutput)

	var rerr *Error
	require.ErrorAs(t, err, &rerr)
	assert.Equal(t, pipeline.StageResize, rerr.Op)
}

// TestResample_Canceled verifies a done context stops processing.
func TestResample_Canceled(t *testing.T) {
	r, err := New1000to500()
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = r.ResampleContext(ctx, testutil.Noise(32, 32, noiseSeed))
	assert.True(t, IsProcessingError(err))
	assert.ErrorIs(t, err, context.Canceled)
}

// TestResample_Resizers verifies backend selection.
func TestResample_Resizers(t *testing.T) {
	src := testutil.Noise(50, 40, noiseSeed)

	res, err := Resample(src, Config{SourceRate: Rate1000, TargetRate: Rate500, Resizer: engine.NameNfnt})
	require.NoError(t, err)
	assert.Equal(t, engine.NameNfnt, res.Info.Resizer)
	testutil.AssertSize(t, res.Image, 25, 20)

	_, err = Resample(src, Config{SourceRate: Rate1000, TargetRate: Rate500, Resizer: "magick"})
	assert.True(t, IsConfigError(err))
}

type panicStage struct{}

func (panicStage) Name() string                  { return "panic" }
func (panicStage) Process(*pipeline.Frame) error { panic("index out of range") }

type panicStrategy struct{}

func (panicStrategy) pipeline() *pipeline.Pipeline { return pipeline.New(panicStage{}) }
func (panicStrategy) resizerName() string          { return "none" }

// TestExecute_RecoversPanics verifies primitive panics become processing errors.
func TestExecute_RecoversPanics(t *testing.T) {
	frame, timings, err := execute(context.Background(), panicStrategy{}, testutil.Uniform(4, 4, 0))

	assert.Nil(t, frame)
	assert.Nil(t, timings)
	assert.True(t, IsProcessingError(err))
	assert.Contains(t, err.Error(), "index out of range")
}

// TestDescribe verifies resolution without an image.
func TestDescribe(t *testing.T) {
	info, err := Describe(Config{SourceRate: Rate600, TargetRate: Rate500})
	require.NoError(t, err)

	assert.Equal(t, Downsample, info.Direction)
	assert.InDelta(t, 500.0/600.0, info.ResizeFactor, 1e-15)
	assert.Equal(t, engine.DefaultName, info.Resizer)

	report := info.String()
	assert.Contains(t, report, "DOWNSAMPLE configuration:")
	assert.Contains(t, report, "filter/mask shape:     ideal")
	assert.Contains(t, report, "interpolation method:  bicubic")

	_, err = Describe(Config{SourceRate: 500, TargetRate: 500})
	assert.True(t, IsConfigError(err))
}
