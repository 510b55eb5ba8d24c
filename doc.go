// Package resampler changes the sample rate (pixels per inch) of 8-bit
// grayscale images, such as fingerprint impressions, while keeping the
// frequency content below the target Nyquist rate.
//
// The algorithm follows the NIST Fingerprint Image Resampler (NFIR).
//
// # Quick Start
//
// For one-shot resampling with recommended settings:
//
//	out, err := resampler.ResampleSimple(img, resampler.Rate1000, resampler.Rate500)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// For repeated use with explicit settings:
//
//	r, err := resampler.New(resampler.Config{
//	    SourceRate:    1200,
//	    TargetRate:    500,
//	    Interpolation: "bilinear",
//	    FilterShape:   "gaussian",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, img := range images {
//	    res, err := r.Resample(img)
//	    if err != nil {
//	        log.Print(err)
//	        continue
//	    }
//	    save(res.Image)
//	}
//
// # Downsampling
//
// Reducing the rate runs a frequency-domain low-pass before the resize:
//
//	pad -> mask -> forward DFT -> scale 1/N -> x mask -> inverse DFT -> crop -> resize
//
// The image is padded on the bottom and right with white to the smallest even
// size whose factors are 2, 3 and 5. The mask has the padded size and its
// cutoff scales with target/source:
//
//   - ideal: binary ellipse aligned with the image aspect ratio
//   - gaussian: separable Gaussian normalized to [0, 1]
//
// When Interpolation and FilterShape are both empty the recommended
// combination for the source rate is used:
//
//   - 600 ppi: ideal, bicubic
//   - 1000 ppi: ideal, bilinear
//   - 1200 ppi: gaussian, bilinear
//   - other rates: ideal, bilinear
//
// Setting only one of the two is a configuration error.
//
// # Upsampling
//
// Increasing the rate is a single interpolated resize, bicubic by default.
//
// # Errors
//
// Every error is an [*Error]. Configuration errors match [ErrInvalidConfig]
// and fail identically for any image; batch callers should stop. Processing
// errors match [ErrProcessing] and concern one image; batch callers should
// skip it and continue.
//
// # Resize Backends
//
// The final resize uses a pure-Go kernel matching OpenCV's cubic and linear
// interpolation by default. Set [Config.Resizer] to "nfnt" for
// github.com/nfnt/resize, or to "opencv" in binaries built with the opencv
// tag.
//
// # Thread Safety
//
// A [Resampler] holds no per-call state and may be shared between
// goroutines.
package resampler
