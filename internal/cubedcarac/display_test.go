package cubedcarac

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReferenceConstants(t *testing.T) {
	a := ExpectedArea(10)
	if math.Abs(a-4*math.Pi/600) > 1e-15 {
		t.Fatalf("ExpectedArea(10)=%.17g", a)
	}
	if math.Abs(a-0.020943951023931952) > 1e-15 {
		t.Fatalf("ExpectedArea(10) literal mismatch: %.17g", a)
	}
	r := ExpectedRadius(10)
	if math.Abs(r-math.Sqrt(a/2)) > 1e-15 || math.Abs(r-0.10233267079464885) > 1e-12 {
		t.Fatalf("ExpectedRadius(10)=%.17g", r)
	}
}

func TestDisplayNormalization(t *testing.T) {
	m := mustMetrics(t, 10, Options{})
	d := NewDisplay(m)
	aExp, rExp := ExpectedArea(10), ExpectedRadius(10)

	require.Equal(t, 81, len(d.RinFlat))
	for i := 0; i < 9; i++ {
		for j := 0; j < 9; j++ {
			k := i*9 + j
			assert.InDelta(t, m.Area.At(i, j)/aExp, d.AreaRatio.At(i, j), 1e-12)
			assert.InDelta(t, math.Abs(m.Ellipticity.At(i, j)-1), d.EllipticityDev.At(i, j), 1e-15)
			assert.InDelta(t, m.RadiusMax.At(i, j)/rExp, d.RmaxFlat[k], 1e-12)
			assert.InDelta(t, m.RadiusMin.At(i, j)/rExp, d.RminFlat[k], 1e-12)

			rmin, rmax := d.RminFlat[k], d.RmaxFlat[k]
			assert.InDelta(t, rmin*rmax/math.Sqrt(rmin*rmin+rmax*rmax), d.RinFlat[k], 1e-12)
			assert.LessOrEqual(t, d.RinFlat[k], rmin)
		}
	}
	// the metric fields are untouched
	assert.NotEqual(t, m.Area.Data, d.AreaRatio.Data)
}

func TestDisplayRatiosNearOne(t *testing.T) {
	// equal-angle cells stay within the default display ranges
	d := NewDisplay(mustMetrics(t, 40, Options{}))
	area := Summarize(d.AreaRatio.Data)
	assert.Greater(t, area.Min, 0.7)
	assert.Less(t, area.Max, 1.3)
	ellip := Summarize(d.EllipticityDev.Data)
	assert.Less(t, ellip.Max, EllipticityVMax)
	// the face center cell is the least distorted
	assert.InDelta(t, 0, ellip.Min, 1e-3)
}

func TestHarmonicRadiusZero(t *testing.T) {
	assert.Equal(t, Real(0), harmonicRadius(0, 0))
}
