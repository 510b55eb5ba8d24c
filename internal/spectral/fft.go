package spectral

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/dsp/fourier"
)

// Below this many coefficients the transform runs on the calling goroutine.
const parallelThreshold = 1 << 14

// transform runs a 1-D complex FFT over every row and then every column.
// Gonum's inverse is unnormalized, so forward followed by inverse scales the
// data by Width·Height.
func (s *Spectrum) transform(inverse bool) error {
	w, h := s.Width, s.Height

	err := forEachChunk(h, len(s.Data), func(lo, hi int) error {
		fft := fourier.NewCmplxFFT(w)
		buf := make([]complex128, w)
		for y := lo; y < hi; y++ {
			row := s.Data[y*w : (y+1)*w]
			apply(fft, buf, row, inverse)
			copy(row, buf)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return forEachChunk(w, len(s.Data), func(lo, hi int) error {
		fft := fourier.NewCmplxFFT(h)
		col := make([]complex128, h)
		buf := make([]complex128, h)
		for x := lo; x < hi; x++ {
			for y := range h {
				col[y] = s.Data[y*w+x]
			}
			apply(fft, buf, col, inverse)
			for y := range h {
				s.Data[y*w+x] = buf[y]
			}
		}
		return nil
	})
}

func apply(fft *fourier.CmplxFFT, dst, src []complex128, inverse bool) {
	if inverse {
		fft.Sequence(dst, src)
	} else {
		fft.Coefficients(dst, src)
	}
}

// forEachChunk splits [0, n) into contiguous ranges and runs fn on each,
// concurrently when the plane is large enough. Each fn call owns its range.
func forEachChunk(n, size int, fn func(lo, hi int) error) error {
	workers := runtime.GOMAXPROCS(0)
	if size < parallelThreshold || workers < 2 || n < 2 {
		return fn(0, n)
	}
	workers = min(workers, n)

	var g errgroup.Group
	step := (n + workers - 1) / workers
	for lo := 0; lo < n; lo += step {
		hi := min(lo+step, n)
		g.Go(func() error {
			return fn(lo, hi)
		})
	}
	return g.Wait()
}
