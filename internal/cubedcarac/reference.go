package cubedcarac

import "math"

// ExpectedArea is the per-cell area if the whole unit sphere (area 4π) were
// split into 6 faces of n² equal cells.
func ExpectedArea(n int) Real {
	return 4 * math.Pi / 6 / Real(n*n)
}

// ExpectedRadius is sqrt(ExpectedArea/2), the half-diagonal of a square of
// area ExpectedArea.
func ExpectedRadius(n int) Real {
	return math.Sqrt(ExpectedArea(n) / 2)
}
