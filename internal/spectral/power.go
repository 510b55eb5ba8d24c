package spectral

import (
	"image"
	"math"
)

// AC power at or below this fraction of the DC power is rounding noise.
const negligiblePowerRatio = 1e-18

// PowerAbove returns the fraction of the AC spectral power of img found at
// normalized radial frequencies strictly above cutoff.
//
// A bin at wrapped frequency (u, v) sits at radius sqrt((2u/W)² + (2v/H)²),
// so the Nyquist frequency of either axis is at radius 1. The DC bin is
// excluded. An image whose AC power is negligible next to its DC power
// yields 0.
func PowerAbove(img *image.Gray, cutoff float64) (float64, error) {
	s, err := Forward(img)
	if err != nil {
		return 0, err
	}

	var total, above float64
	for y := range s.Height {
		fv := normalizedFrequency(y, s.Height)
		for x := range s.Width {
			if x == 0 && y == 0 {
				continue
			}
			fu := normalizedFrequency(x, s.Width)
			c := s.Data[y*s.Width+x]
			p := real(c)*real(c) + imag(c)*imag(c)
			total += p
			if math.Hypot(fu, fv) > cutoff {
				above += p
			}
		}
	}

	dc := real(s.Data[0])*real(s.Data[0]) + imag(s.Data[0])*imag(s.Data[0])
	if total == 0 || total <= negligiblePowerRatio*dc {
		return 0, nil
	}
	return above / total, nil
}

// normalizedFrequency maps bin i of an n-point axis to 2·wrap(i)/n.
func normalizedFrequency(i, n int) float64 {
	if i > n/2 {
		i -= n
	}
	return 2 * float64(i) / float64(n)
}
