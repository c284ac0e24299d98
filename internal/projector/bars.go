package projector

import "math"

// BarWidths scales values to percentages of the group maximum. An empty
// or all-zero group yields all zeros.
func BarWidths(values []float64) []float64 {
	widths := make([]float64, len(values))

	max := 0.0
	for _, v := range values {
		if v > max {
			max = v
		}
	}
	if max <= 0 {
		return widths
	}

	for i, v := range values {
		if v > 0 {
			widths[i] = v / max * 100
		}
	}
	return widths
}

// PercentWidth clamps a percentage metric to [0, 100]
func PercentWidth(p float64) float64 {
	if math.IsNaN(p) || p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}

// NetworkWidth scales network throughput by 20, capped at 100
func NetworkWidth(io float64) float64 {
	if math.IsNaN(io) || io < 0 {
		return 0
	}
	return math.Min(io*20, 100)
}
