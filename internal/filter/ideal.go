package filter

import (
	"math"
)

// IdealBuilder builds binary elliptical low-pass masks.
type IdealBuilder struct {
	srcRate int
	tgtRate int
	radius  float64
}

// NewIdeal creates an ideal mask builder for the rate pair.
func NewIdeal(srcRate, tgtRate int) *IdealBuilder {
	return &IdealBuilder{
		srcRate: srcRate,
		tgtRate: tgtRate,
		radius:  radiusFactor(srcRate, tgtRate),
	}
}

// Shape returns ShapeIdeal.
func (b *IdealBuilder) Shape() Shape { return ShapeIdeal }

// RadiusFactor returns targetRate/sourceRate.
func (b *IdealBuilder) RadiusFactor() float64 { return b.radius }

// Build returns the ideal mask for a width×height spectrum.
//
// Each axis is indexed by its wrapped frequency: u = j for j <= W/2,
// otherwise j - W (likewise v over rows). The column frequency is scaled by
// the vertical vertex b = H/(2r) and the row frequency by the horizontal
// vertex a = W/(2r), and the magnitude of the scaled pair is compared with a
// cutoff distance. Because of that cross scaling the ellipse stays aligned
// with the image aspect ratio and reduces to a circle for square sizes.
//
// The cutoff is the smaller of the largest distances found along row 0 and
// column 0, times r. Both maxima equal W·H/(4r), so the cutoff is W·H/4 and a
// bin passes when (2u/W)² + (2v/H)² < r².
func (b *IdealBuilder) Build(width, height int) (*Mask, error) {
	if err := validateSize(width, height); err != nil {
		return nil, err
	}

	aVertex := float64(width) / (vertexDivisor * b.radius)
	bVertex := float64(height) / (vertexDivisor * b.radius)

	// Wrapped frequency index per column and per row.
	u := wrappedAxis(width)
	v := wrappedAxis(height)

	dist := make([]float64, width*height)
	for y := range height {
		sv := aVertex * v[y]
		row := dist[y*width : (y+1)*width]
		for x := range width {
			row[x] = math.Hypot(bVertex*u[x], sv)
		}
	}

	var rowMax, colMax float64
	for x := range width {
		rowMax = math.Max(rowMax, dist[x])
	}
	for y := range height {
		colMax = math.Max(colMax, dist[y*width])
	}
	cutoff := math.Min(rowMax, colMax) * b.radius

	data := make([]float64, width*height)
	for i, d := range dist {
		if d < cutoff {
			data[i] = passWeight
		} else {
			data[i] = stopWeight
		}
	}

	return &Mask{
		Shape:  ShapeIdeal,
		Width:  width,
		Height: height,
		Data:   data,
	}, nil
}

// Cutoff returns the cutoff distance the grid search settles on for a
// width×height mask, without building the mask.
func (b *IdealBuilder) Cutoff(width, height int) float64 {
	aVertex := float64(width) / (vertexDivisor * b.radius)
	bVertex := float64(height) / (vertexDivisor * b.radius)
	rowMax := bVertex * float64(width/evenDivisor)
	colMax := aVertex * float64(height/evenDivisor)
	return math.Min(rowMax, colMax) * b.radius
}

// wrappedAxis returns i for i <= n/2 and i-n past the midpoint.
func wrappedAxis(n int) []float64 {
	axis := make([]float64, n)
	for i := range n {
		if i <= n/evenDivisor {
			axis[i] = float64(i)
		} else {
			axis[i] = float64(i - n)
		}
	}
	return axis
}
