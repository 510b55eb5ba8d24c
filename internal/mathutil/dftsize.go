package mathutil

// OptimalDFTSize returns the smallest size >= n whose only prime factors are
// 2, 3 and 5. Transforms of such lengths factor completely into the fast
// radix kernels. Returns 1 for n <= 1.
func OptimalDFTSize(n int) int {
	if n <= 1 {
		return 1
	}

	// The next power of two is always a candidate.
	best := 1
	for best < n {
		best *= radix2
	}

	for p5 := 1; p5 < best; p5 *= radix5 {
		for p35 := p5; p35 < best; p35 *= radix3 {
			size := p35
			for size < n {
				size *= radix2
			}
			if size < best {
				best = size
			}
		}
	}

	return best
}

// OptimalEvenDFTSize returns OptimalDFTSize(n), bumped by one when odd so the
// result can be split into equal quadrants.
func OptimalEvenDFTSize(n int) int {
	size := OptimalDFTSize(n)
	if size%radix2 != 0 {
		size++
	}
	return size
}

// IsRegular reports whether n > 0 has no prime factors other than 2, 3 and 5.
func IsRegular(n int) bool {
	if n < 1 {
		return false
	}
	for _, p := range [...]int{radix2, radix3, radix5} {
		for n%p == 0 {
			n /= p
		}
	}
	return n == 1
}
