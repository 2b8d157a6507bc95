package cubedcarac

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarize(t *testing.T) {
	s := Summarize([]Real{1, 2, 3, 4, math.Inf(1), math.NaN()})
	assert.Equal(t, 4, s.Count)
	assert.Equal(t, 2, s.NonFinite)
	assert.Equal(t, Real(1), s.Min)
	assert.Equal(t, Real(4), s.Max)
	assert.InDelta(t, 2.5, s.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s.StdDev, 1e-12) // sample stddev

	one := Summarize([]Real{7})
	assert.Equal(t, Real(7), one.Mean)
	assert.Equal(t, Real(0), one.StdDev)

	empty := Summarize(nil)
	assert.True(t, math.IsNaN(empty.Mean))
}

func TestHistogram(t *testing.T) {
	x := []Real{0.69, 0.7, 0.75, 0.85, 1.05, 1.49, 1.5, 1.51, math.NaN()}
	h := NewHistogram(x, 8, 0.7, 1.5)
	require.Len(t, h.Counts, 8)
	require.Len(t, h.Dividers, 9)
	assert.InDelta(t, 0.8, h.Dividers[1], 1e-12)
	assert.Equal(t, Real(6), h.Total(), "0.69, 1.51 and NaN are dropped; 1.5 lands in the last bin")
	assert.Equal(t, Real(2), h.Counts[0])
	assert.Equal(t, Real(2), h.Counts[7])
	assert.Equal(t, Real(2), h.MaxCount())
}

func TestHistogramEmpty(t *testing.T) {
	h := NewHistogram(nil, HistBins, HistLo, HistHi)
	assert.Len(t, h.Counts, HistBins)
	assert.Equal(t, Real(0), h.Total())
	assert.Equal(t, Real(0), h.MaxCount())
}
