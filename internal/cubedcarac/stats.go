package cubedcarac

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary describes the finite values of a field.
type Summary struct {
	Count        int
	Min, Max     Real
	Mean, StdDev Real
	NonFinite    int
}

// Summarize returns min/max/mean/stddev over the finite entries of x.
func Summarize(x []Real) Summary {
	finite := make([]Real, 0, len(x))
	for _, v := range x {
		if isFinite(v) {
			finite = append(finite, v)
		}
	}
	s := Summary{Count: len(finite), NonFinite: len(x) - len(finite)}
	if len(finite) == 0 {
		s.Min, s.Max, s.Mean, s.StdDev = math.NaN(), math.NaN(), math.NaN(), math.NaN()
		return s
	}
	s.Min = floats.Min(finite)
	s.Max = floats.Max(finite)
	if len(finite) == 1 {
		s.Mean = finite[0]
		return s
	}
	s.Mean, s.StdDev = stat.MeanStdDev(finite, nil)
	return s
}

// Histogram counts values into equal-width bins over [Lo, Hi].
// Values outside the range (and non-finite ones) are dropped; Hi itself
// lands in the last bin.
type Histogram struct {
	Lo, Hi   Real
	Dividers []Real // len(Counts)+1
	Counts   []Real
}

// NewHistogram bins x into bins equal-width bins over [lo, hi].
func NewHistogram(x []Real, bins int, lo, hi Real) *Histogram {
	if bins < 1 {
		bins = 1
	}
	dividers := floats.Span(make([]Real, bins+1), lo, hi)
	h := &Histogram{Lo: lo, Hi: hi, Dividers: dividers}

	in := make([]Real, 0, len(x))
	for _, v := range x {
		if isFinite(v) && v >= lo && v <= hi {
			in = append(in, v)
		}
	}
	sort.Float64s(in)
	// stat.Histogram wants every value strictly below the last divider.
	divs := make([]Real, len(dividers))
	copy(divs, dividers)
	divs[bins] = math.Nextafter(hi, math.Inf(1))
	h.Counts = stat.Histogram(nil, divs, in, nil)
	return h
}

// Total is the number of binned values.
func (h *Histogram) Total() Real { return floats.Sum(h.Counts) }

// MaxCount is the largest bin count.
func (h *Histogram) MaxCount() Real {
	if len(h.Counts) == 0 {
		return 0
	}
	return floats.Max(h.Counts)
}
